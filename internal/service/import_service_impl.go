package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alexanderramin/cycleboard/internal/app"
	"github.com/alexanderramin/cycleboard/internal/db"
	"github.com/alexanderramin/cycleboard/internal/domain"
	"github.com/alexanderramin/cycleboard/internal/importer"
	"github.com/alexanderramin/cycleboard/internal/repository"
	"github.com/google/uuid"
)

// DefaultSnapshotRetention is how many imported extracts are kept.
const DefaultSnapshotRetention = 10

type importService struct {
	snapshots repository.SnapshotRepo
	uow       db.UnitOfWork
	retention int
	observer  UseCaseObserver
	now       func() time.Time
}

func NewImportService(
	snapshots repository.SnapshotRepo,
	uow db.UnitOfWork,
	retention int,
	observers ...UseCaseObserver,
) ImportService {
	if retention < 1 {
		retention = DefaultSnapshotRetention
	}
	return &importService{
		snapshots: snapshots,
		uow:       uow,
		retention: retention,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *importService) ImportExtract(ctx context.Context, path string) (result *app.ImportResult, err error) {
	fields := map[string]any{"source": filepath.Base(path)}
	defer observe(ctx, s.observer, "import-extract", time.Now(), fields, &err)

	result, raw, err := s.analyze(path)
	if err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{
		ID:               uuid.New().String(),
		Source:           filepath.Base(path),
		FetchedAt:        s.now(),
		Raw:              raw,
		InitiativeCount:  result.Counts.Initiatives,
		RoadmapItemCount: result.Counts.RoadmapItems,
		ReleaseItemCount: result.Counts.ReleaseItems,
		WarningCount:     len(result.Warnings),
	}

	err = s.uow.WithinTx(ctx, "store snapshot", func(ctx context.Context, tx db.DBTX) error {
		txSnapshots := repository.NewSQLiteSnapshotRepo(tx)
		if err := txSnapshots.Create(ctx, snap); err != nil {
			return err
		}
		pruned, err := txSnapshots.PruneKeepNewest(ctx, s.retention)
		if err != nil {
			return err
		}
		result.Pruned = pruned
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storing snapshot: %w", err)
	}

	result.Snapshot = snap
	fields["snapshot"] = snap.ID
	fields["release_items"] = result.Counts.ReleaseItems
	fields["warnings"] = len(result.Warnings)
	fields["pruned"] = result.Pruned
	return result, nil
}

func (s *importService) Check(ctx context.Context, path string) (result *app.ImportResult, err error) {
	defer observe(ctx, s.observer, "check-extract", time.Now(), map[string]any{"source": filepath.Base(path)}, &err)

	result, _, err = s.analyze(path)
	return result, err
}

func (s *importService) analyze(path string) (*app.ImportResult, []byte, error) {
	raw, data, err := importer.LoadRawCycleData(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading extract: %w", err)
	}
	nested := importer.Nest(raw)
	return &app.ImportResult{
		Counts:   app.CountsOf(&nested),
		Warnings: importer.Diagnose(raw),
	}, data, nil
}

func (s *importService) ListSnapshots(ctx context.Context, limit int) ([]*domain.Snapshot, error) {
	return s.snapshots.List(ctx, limit)
}
