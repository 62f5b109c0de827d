package db

import (
	"context"
	"database/sql"
	"fmt"
)

// UnitOfWork runs one named piece of work, such as storing a snapshot or
// saving a view session, in a single transaction. The callback builds its
// repositories from the tx it is handed.
type UnitOfWork interface {
	WithinTx(ctx context.Context, work string, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork runs work in database/sql transactions.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

// WithinTx commits when fn succeeds and rolls back otherwise. Errors from fn
// come back unwrapped so callers can still match typed validation errors.
// A context cancelled while fn ran discards the work instead of committing it.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, work string, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: beginning transaction: %w", work, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%s: rollback failed: %v (after: %w)", work, rbErr, err)
		}
		return err
	}

	if err := ctx.Err(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%s: not committed: %w", work, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: committing: %w", work, err)
	}
	return nil
}
