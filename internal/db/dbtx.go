package db

import (
	"context"
	"database/sql"
)

// DBTX is what the snapshot and view-session repositories query through.
// A *sql.DB serves plain reads; a *sql.Tx handed out by UnitOfWork lets an
// import store its snapshot and prune old ones atomically.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
