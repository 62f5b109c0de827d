package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/cycleboard/internal/viewstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewSession_GetFreshSession(t *testing.T) {
	ts := newTestServices(t)

	v, err := ts.sessions.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionID, v.ID)
	assert.Equal(t, "roadmap", v.View)
	assert.Equal(t, []string{"roadmap", "cycle-overview"}, v.Views)
	assert.True(t, v.UpdatedAt.IsZero())
}

func TestViewSession_SwitchBackRestoresSelections(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	_, err := ts.sessions.UpdateFilter(ctx, "s", "area", []string{"frontend"})
	require.NoError(t, err)
	_, err = ts.sessions.SwitchView(ctx, "s", "cycle-overview")
	require.NoError(t, err)
	v, err := ts.sessions.UpdateFilter(ctx, "s", "stages", []string{"s1", "s2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, v.Criteria.Stages)
	assert.Equal(t, "frontend", v.Criteria.Area)

	v, err = ts.sessions.SwitchView(ctx, "s", "roadmap")
	require.NoError(t, err)
	assert.Nil(t, v.Criteria.Stages)

	v, err = ts.sessions.SwitchView(ctx, "s", "cycle-overview")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, v.Criteria.Stages)
	assert.False(t, v.UpdatedAt.IsZero())
}

func TestViewSession_RejectedTransitionIsNotPersisted(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	_, err := ts.sessions.UpdateFilter(ctx, "s", "area", []string{"frontend"})
	require.NoError(t, err)

	_, err = ts.sessions.UpdateFilter(ctx, "s", "stages", []string{"s1"})
	var vErr *viewstate.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, viewstate.ErrKeyNotInView, vErr.Code)
	assert.False(t, ts.events.last().Success)

	_, err = ts.sessions.SwitchView(ctx, "s", "kanban")
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, viewstate.ErrUnknownView, vErr.Code)

	v, err := ts.sessions.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "roadmap", v.View)
	assert.Equal(t, "frontend", v.Criteria.Area)
}

func TestViewSession_ClearFilters(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	_, err := ts.sessions.UpdateFilter(ctx, "s", "initiatives", []string{"ini-1"})
	require.NoError(t, err)
	v, err := ts.sessions.ClearFilters(ctx, "s")
	require.NoError(t, err)
	assert.Nil(t, v.Criteria.Initiatives)
	assert.Equal(t, "clear-filters", ts.events.last().Name)

	v, err = ts.sessions.Get(ctx, "s")
	require.NoError(t, err)
	assert.Nil(t, v.Criteria.Initiatives)
}

func TestViewSession_SessionsAreIndependent(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	_, err := ts.sessions.SwitchView(ctx, "a", "cycle-overview")
	require.NoError(t, err)

	b, err := ts.sessions.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "roadmap", b.View)
}
