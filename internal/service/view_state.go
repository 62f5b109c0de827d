package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cycleboard/internal/app"
	"github.com/alexanderramin/cycleboard/internal/domain"
	"github.com/alexanderramin/cycleboard/internal/repository"
	"github.com/alexanderramin/cycleboard/internal/viewstate"
)

// DefaultSessionID names the session used when the caller does not pick one.
const DefaultSessionID = "default"

// restoreState loads the persisted session, or a fresh default state when
// the session has never been saved. The returned time is the last save.
func restoreState(ctx context.Context, sessions repository.ViewSessionRepo, reg *viewstate.Registry, id string) (viewstate.State, time.Time, error) {
	if id == "" {
		return viewstate.NewState(reg), time.Time{}, nil
	}
	stored, err := sessions.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return viewstate.NewState(reg), time.Time{}, nil
	}
	if err != nil {
		return viewstate.State{}, time.Time{}, fmt.Errorf("loading view session: %w", err)
	}
	return viewstate.Restore(reg, *stored), stored.UpdatedAt, nil
}

func keyNames(keys []viewstate.FilterKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}

func viewNames(views []viewstate.View) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = string(v)
	}
	return out
}

func toSessionView(id string, state viewstate.State, updatedAt time.Time) *app.SessionView {
	reg := state.Registry()
	return &app.SessionView{
		ID:            id,
		View:          string(state.CurrentView()),
		Views:         viewNames(reg.Views()),
		AvailableKeys: keyNames(reg.KeysFor(state.CurrentView())),
		Filters:       state.Filters(),
		Criteria:      state.ActiveFilters(),
		UpdatedAt:     updatedAt,
	}
}

// criteriaFields flattens criteria for use-case logging.
func criteriaFields(fields map[string]any, c domain.FilterCriteria) {
	if c.Area != "" {
		fields["area"] = c.Area
	}
	if c.Cycle != "" {
		fields["cycle"] = c.Cycle
	}
	if len(c.Initiatives) > 0 {
		fields["initiatives"] = len(c.Initiatives)
	}
	if len(c.Stages) > 0 {
		fields["stages"] = len(c.Stages)
	}
	if len(c.Assignees) > 0 {
		fields["assignees"] = len(c.Assignees)
	}
}
