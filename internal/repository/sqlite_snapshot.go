package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/cycleboard/internal/db"
	"github.com/alexanderramin/cycleboard/internal/domain"
)

// SQLiteSnapshotRepo implements SnapshotRepo using a SQLite database.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

// NewSQLiteSnapshotRepo creates a new SQLiteSnapshotRepo.
func NewSQLiteSnapshotRepo(conn db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: conn}
}

const snapshotColumns = `id, source, fetched_at, initiative_count, roadmap_item_count, release_item_count, warning_count`

func (r *SQLiteSnapshotRepo) Create(ctx context.Context, s *domain.Snapshot) error {
	query := `INSERT INTO snapshots (id, source, fetched_at, raw,
		initiative_count, roadmap_item_count, release_item_count, warning_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Source,
		formatTimestamp(s.FetchedAt),
		s.Raw,
		s.InitiativeCount,
		s.RoadmapItemCount,
		s.ReleaseItemCount,
		s.WarningCount,
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + `, raw FROM snapshots WHERE id = ?`
	return r.scanSnapshotWithRaw(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSnapshotRepo) Latest(ctx context.Context) (*domain.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + `, raw FROM snapshots
		ORDER BY fetched_at DESC, rowid DESC LIMIT 1`
	return r.scanSnapshotWithRaw(r.db.QueryRowContext(ctx, query))
}

func (r *SQLiteSnapshotRepo) List(ctx context.Context, limit int) ([]*domain.Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT ` + snapshotColumns + ` FROM snapshots
		ORDER BY fetched_at DESC, rowid DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*domain.Snapshot
	for rows.Next() {
		var s domain.Snapshot
		var fetchedAt string
		if err := rows.Scan(&s.ID, &s.Source, &fetchedAt,
			&s.InitiativeCount, &s.RoadmapItemCount, &s.ReleaseItemCount, &s.WarningCount); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		if s.FetchedAt, err = parseTimestamp("fetched_at", fetchedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return snapshots, nil
}

func (r *SQLiteSnapshotRepo) PruneKeepNewest(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		keep = 1
	}
	query := `DELETE FROM snapshots WHERE id NOT IN (
		SELECT id FROM snapshots ORDER BY fetched_at DESC, rowid DESC LIMIT ?)`
	res, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned snapshots: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteSnapshotRepo) scanSnapshotWithRaw(row *sql.Row) (*domain.Snapshot, error) {
	var s domain.Snapshot
	var fetchedAt string
	err := row.Scan(&s.ID, &s.Source, &fetchedAt,
		&s.InitiativeCount, &s.RoadmapItemCount, &s.ReleaseItemCount, &s.WarningCount, &s.Raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	if s.FetchedAt, err = parseTimestamp("fetched_at", fetchedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
