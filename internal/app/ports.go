package app

import (
	"context"
	"time"

	"github.com/alexanderramin/cycleboard/internal/domain"
)

type ImportResult struct {
	Snapshot *domain.Snapshot
	Counts   ExtractCounts
	Warnings []string
	// Pruned is the number of older snapshots removed by retention.
	Pruned int
}

type ImportUseCase interface {
	ImportExtract(ctx context.Context, path string) (*ImportResult, error)
}

type BoardUseCase interface {
	GetBoard(ctx context.Context, req BoardRequest) (*BoardResponse, error)
	ListCycles(ctx context.Context, snapshotID string, now time.Time) ([]domain.CycleView, error)
}

type ViewSessionUseCase interface {
	Get(ctx context.Context, sessionID string) (*SessionView, error)
	SwitchView(ctx context.Context, sessionID, view string) (*SessionView, error)
	UpdateFilter(ctx context.Context, sessionID, key string, values []string) (*SessionView, error)
	ClearFilters(ctx context.Context, sessionID string) (*SessionView, error)
}
