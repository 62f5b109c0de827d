package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/cycleboard/internal/db"
)

// NewTestDB opens an in-memory board database with the snapshots and
// view_sessions tables migrated. It is closed when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening board database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// CountRows returns the number of rows in one of the board tables.
func CountRows(t *testing.T, conn db.DBTX, table string) int {
	t.Helper()
	switch table {
	case "snapshots", "view_sessions":
	default:
		t.Fatalf("CountRows: unknown table %q", table)
	}
	var n int
	if err := conn.QueryRowContext(t.Context(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return n
}
