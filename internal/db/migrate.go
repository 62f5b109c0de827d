package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are re-run on every open,
// so each must be idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		id          TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		fetched_at  TEXT NOT NULL,
		raw         BLOB NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_snapshots_fetched ON snapshots(fetched_at)`,

	`CREATE TABLE IF NOT EXISTS view_sessions (
		id            TEXT PRIMARY KEY,
		current_view  TEXT NOT NULL,
		filters_json  TEXT NOT NULL DEFAULT '{}',
		updated_at    TEXT NOT NULL
	)`,

	`ALTER TABLE snapshots ADD COLUMN initiative_count INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE snapshots ADD COLUMN roadmap_item_count INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE snapshots ADD COLUMN release_item_count INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE snapshots ADD COLUMN warning_count INTEGER NOT NULL DEFAULT 0`,
}
