package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cycleboard/internal/app"
	"github.com/alexanderramin/cycleboard/internal/db"
	"github.com/alexanderramin/cycleboard/internal/repository"
	"github.com/alexanderramin/cycleboard/internal/viewstate"
)

type viewSessionService struct {
	sessions repository.ViewSessionRepo
	registry *viewstate.Registry
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewViewSessionService(
	sessions repository.ViewSessionRepo,
	registry *viewstate.Registry,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ViewSessionService {
	return &viewSessionService{
		sessions: sessions,
		registry: registry,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *viewSessionService) Registry() *viewstate.Registry {
	return s.registry
}

func (s *viewSessionService) Get(ctx context.Context, sessionID string) (*app.SessionView, error) {
	id := sessionOrDefault(sessionID)
	state, updatedAt, err := restoreState(ctx, s.sessions, s.registry, id)
	if err != nil {
		return nil, err
	}
	return toSessionView(id, state, updatedAt), nil
}

func (s *viewSessionService) SwitchView(ctx context.Context, sessionID, view string) (*app.SessionView, error) {
	return s.mutate(ctx, "switch-view", sessionID, map[string]any{"view": view},
		func(st viewstate.State) (viewstate.State, error) {
			return st.SwitchView(viewstate.View(view))
		})
}

func (s *viewSessionService) UpdateFilter(ctx context.Context, sessionID, key string, values []string) (*app.SessionView, error) {
	return s.mutate(ctx, "update-filter", sessionID, map[string]any{"key": key, "values": len(values)},
		func(st viewstate.State) (viewstate.State, error) {
			return st.UpdateFilter(viewstate.FilterKey(key), values...)
		})
}

func (s *viewSessionService) ClearFilters(ctx context.Context, sessionID string) (*app.SessionView, error) {
	return s.mutate(ctx, "clear-filters", sessionID, map[string]any{},
		func(st viewstate.State) (viewstate.State, error) {
			return st.ClearFilters(), nil
		})
}

// mutate applies one transition and persists the result in a single
// transaction. A rejected transition leaves the stored session untouched.
func (s *viewSessionService) mutate(
	ctx context.Context,
	name, sessionID string,
	fields map[string]any,
	transition func(viewstate.State) (viewstate.State, error),
) (view *app.SessionView, err error) {
	id := sessionOrDefault(sessionID)
	fields["session"] = id
	defer observe(ctx, s.observer, name, time.Now(), fields, &err)

	err = s.uow.WithinTx(ctx, "save view session "+id, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteViewSessionRepo(tx)
		state, _, err := restoreState(ctx, txSessions, s.registry, id)
		if err != nil {
			return err
		}
		next, err := transition(state)
		if err != nil {
			return err
		}
		stored := next.Session(id, s.now())
		if err := txSessions.Upsert(ctx, &stored); err != nil {
			return err
		}
		view = toSessionView(id, next, stored.UpdatedAt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func sessionOrDefault(id string) string {
	if id == "" {
		return DefaultSessionID
	}
	return id
}
