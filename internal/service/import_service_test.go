package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/cycleboard/internal/repository"
	"github.com/alexanderramin/cycleboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportExtract_StoresSnapshotWithCounts(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	res, err := ts.imports.ImportExtract(ctx, testutil.WriteExtract(t, testutil.BoardExtract))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Counts.Initiatives)
	assert.Equal(t, 3, res.Counts.RoadmapItems)
	assert.Equal(t, 4, res.Counts.ReleaseItems)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 0, res.Pruned)
	require.NotNil(t, res.Snapshot)
	assert.Equal(t, "extract.json", res.Snapshot.Source)

	stored, err := ts.snaps.GetByID(ctx, res.Snapshot.ID)
	require.NoError(t, err)
	assert.JSONEq(t, testutil.BoardExtract, string(stored.Raw))
	assert.Equal(t, 4, stored.ReleaseItemCount)

	ev := ts.events.last()
	assert.Equal(t, "import-extract", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, res.Snapshot.ID, ev.Fields["snapshot"])
}

func TestImportExtract_ReportsWarnings(t *testing.T) {
	ts := newTestServices(t)

	body := `{"roadmapItems": [{"id": "r1", "initiativeId": "i", "releaseItems": [
		{"id": "x1", "status": "blocked", "effort": "lots"}]}]}`
	res, err := ts.imports.ImportExtract(context.Background(), testutil.WriteExtract(t, body))
	require.NoError(t, err)

	assert.Len(t, res.Warnings, 2)
	assert.Equal(t, 2, res.Snapshot.WarningCount)
	assert.Equal(t, 1, res.Counts.ReleaseItems)
}

func TestImportExtract_RetentionPrunesOldest(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	var ids []string
	var last int
	for i := 0; i < 4; i++ {
		res, err := ts.imports.ImportExtract(ctx, testutil.WriteExtract(t, testutil.BoardExtract))
		require.NoError(t, err)
		ids = append(ids, res.Snapshot.ID)
		last = res.Pruned
	}
	assert.Equal(t, 1, last)

	left, err := ts.imports.ListSnapshots(ctx, 0)
	require.NoError(t, err)
	require.Len(t, left, 3)
	for _, s := range left {
		assert.NotEqual(t, ids[0], s.ID)
	}
}

func TestImportExtract_MalformedJSONStoresNothing(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	_, err := ts.imports.ImportExtract(ctx, testutil.WriteExtract(t, `{"roadmapItems": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading extract")
	assert.False(t, ts.events.last().Success)

	left, err := ts.imports.ListSnapshots(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestImportExtract_RollsBackWhenPruneFails(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	failing := &testutil.FailOnNthExecUoW{DB: ts.db, FailOn: 2, Err: errors.New("disk full")}
	svc := NewImportService(ts.snaps, failing, 3)

	_, err := svc.ImportExtract(ctx, testutil.WriteExtract(t, testutil.BoardExtract))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	_, err = ts.snaps.Latest(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Zero(t, testutil.CountRows(t, ts.db, "snapshots"))
}

func TestCheck_DoesNotStore(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	res, err := ts.imports.Check(ctx, testutil.WriteExtract(t, testutil.BoardExtract))
	require.NoError(t, err)
	assert.Nil(t, res.Snapshot)
	assert.Equal(t, 3, res.Counts.RoadmapItems)

	left, err := ts.imports.ListSnapshots(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestCheck_MissingFile(t *testing.T) {
	ts := newTestServices(t)

	_, err := ts.imports.Check(context.Background(), "/does/not/exist.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading extract")
}
