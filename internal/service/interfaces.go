package service

import (
	"context"

	"github.com/alexanderramin/cycleboard/internal/app"
	"github.com/alexanderramin/cycleboard/internal/domain"
	"github.com/alexanderramin/cycleboard/internal/viewstate"
)

type ImportService interface {
	app.ImportUseCase
	// Check parses and diagnoses an extract without storing it.
	Check(ctx context.Context, path string) (*app.ImportResult, error)
	ListSnapshots(ctx context.Context, limit int) ([]*domain.Snapshot, error)
}

type BoardService interface {
	app.BoardUseCase
	// Options returns the nested data of a snapshot for building filter
	// pickers, unfiltered.
	Options(ctx context.Context, snapshotID string) (*domain.NestedCycleData, error)
}

type ViewSessionService interface {
	app.ViewSessionUseCase
	Registry() *viewstate.Registry
}
