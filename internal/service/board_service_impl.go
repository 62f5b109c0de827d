package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cycleboard/internal/app"
	"github.com/alexanderramin/cycleboard/internal/domain"
	"github.com/alexanderramin/cycleboard/internal/filter"
	"github.com/alexanderramin/cycleboard/internal/progress"
	"github.com/alexanderramin/cycleboard/internal/repository"
	"github.com/alexanderramin/cycleboard/internal/viewstate"
)

type boardService struct {
	loader   *snapshotLoader
	sessions repository.ViewSessionRepo
	registry *viewstate.Registry
	observer UseCaseObserver
}

func NewBoardService(
	snapshots repository.SnapshotRepo,
	sessions repository.ViewSessionRepo,
	registry *viewstate.Registry,
	observers ...UseCaseObserver,
) BoardService {
	return &boardService{
		loader:   newSnapshotLoader(snapshots),
		sessions: sessions,
		registry: registry,
		observer: useCaseObserverOrNoop(observers),
	}
}

// GetBoard restores the session's view state, applies the per-request view
// and overrides on a copy, and filters the snapshot with the merged
// criteria. Nothing is persisted.
func (s *boardService) GetBoard(ctx context.Context, req app.BoardRequest) (resp *app.BoardResponse, err error) {
	fields := map[string]any{"session": req.SessionID}
	defer observe(ctx, s.observer, "get-board", time.Now(), fields, &err)

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	loaded, err := s.loader.load(ctx, req.SnapshotID)
	if err != nil {
		return nil, err
	}
	fields["snapshot"] = loaded.snapshot.ID

	state, _, err := restoreState(ctx, s.sessions, s.registry, req.SessionID)
	if err != nil {
		return nil, err
	}
	if req.View != "" {
		if state, err = state.SwitchView(viewstate.View(req.View)); err != nil {
			return nil, err
		}
	}
	for _, o := range req.Overrides {
		if state, err = state.UpdateFilter(viewstate.FilterKey(o.Key), o.Values...); err != nil {
			return nil, err
		}
	}

	criteria := state.ActiveFilters()
	fields["view"] = string(state.CurrentView())
	criteriaFields(fields, criteria)

	result := filter.Apply(loaded.data, criteria)
	fields["release_items"] = result.TotalReleaseItems

	cycles := progress.CycleViews(loaded.data.Cycles, now)
	return &app.BoardResponse{
		SnapshotID:    loaded.snapshot.ID,
		FetchedAt:     loaded.snapshot.FetchedAt,
		View:          string(state.CurrentView()),
		AvailableKeys: keyNames(s.registry.KeysFor(state.CurrentView())),
		Criteria:      criteria,
		Result:        result,
		Cycles:        cycles,
		ActiveCycle:   activeCycleView(cycles),
	}, nil
}

func (s *boardService) ListCycles(ctx context.Context, snapshotID string, now time.Time) (views []domain.CycleView, err error) {
	defer observe(ctx, s.observer, "list-cycles", time.Now(), map[string]any{"snapshot": snapshotID}, &err)

	loaded, err := s.loader.load(ctx, snapshotID)
	if err != nil {
		return nil, err
	}
	return progress.CycleViews(loaded.data.Cycles, now), nil
}

func (s *boardService) Options(ctx context.Context, snapshotID string) (*domain.NestedCycleData, error) {
	loaded, err := s.loader.load(ctx, snapshotID)
	if err != nil {
		return nil, err
	}
	data := loaded.data
	return &data, nil
}

func activeCycleView(views []domain.CycleView) *domain.CycleView {
	for i := range views {
		if views[i].Cycle.State == domain.CycleActive {
			v := views[i]
			return &v
		}
	}
	return nil
}
