package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/cycleboard/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

type SnapshotRepo interface {
	Create(ctx context.Context, s *domain.Snapshot) error
	GetByID(ctx context.Context, id string) (*domain.Snapshot, error)
	Latest(ctx context.Context) (*domain.Snapshot, error)
	// List returns snapshot metadata, newest first, without the raw payload.
	List(ctx context.Context, limit int) ([]*domain.Snapshot, error)
	// PruneKeepNewest deletes all but the keep newest snapshots and reports
	// how many rows were removed.
	PruneKeepNewest(ctx context.Context, keep int) (int, error)
}

type ViewSessionRepo interface {
	Get(ctx context.Context, id string) (*domain.ViewSession, error)
	Upsert(ctx context.Context, s *domain.ViewSession) error
	Delete(ctx context.Context, id string) error
}
