package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/cycleboard/internal/db"
	"github.com/alexanderramin/cycleboard/internal/domain"
)

// SQLiteViewSessionRepo implements ViewSessionRepo using a SQLite database.
// Filter buckets are stored as a JSON document per session.
type SQLiteViewSessionRepo struct {
	db db.DBTX
}

// NewSQLiteViewSessionRepo creates a new SQLiteViewSessionRepo.
func NewSQLiteViewSessionRepo(conn db.DBTX) *SQLiteViewSessionRepo {
	return &SQLiteViewSessionRepo{db: conn}
}

func (r *SQLiteViewSessionRepo) Get(ctx context.Context, id string) (*domain.ViewSession, error) {
	query := `SELECT id, current_view, filters_json, updated_at FROM view_sessions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var s domain.ViewSession
	var filtersJSON, updatedAt string
	if err := row.Scan(&s.ID, &s.CurrentView, &filtersJSON, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("view session %q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning view session: %w", err)
	}
	if err := json.Unmarshal([]byte(filtersJSON), &s.Filters); err != nil {
		return nil, fmt.Errorf("decoding view session filters: %w", err)
	}
	var err error
	if s.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteViewSessionRepo) Upsert(ctx context.Context, s *domain.ViewSession) error {
	filtersJSON, err := json.Marshal(s.Filters)
	if err != nil {
		return fmt.Errorf("encoding view session filters: %w", err)
	}
	query := `INSERT INTO view_sessions (id, current_view, filters_json, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			current_view = excluded.current_view,
			filters_json = excluded.filters_json,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.CurrentView,
		string(filtersJSON),
		formatTimestamp(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting view session: %w", err)
	}
	return nil
}

func (r *SQLiteViewSessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM view_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting view session: %w", err)
	}
	return nil
}
