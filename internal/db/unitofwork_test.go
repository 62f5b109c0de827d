package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/cycleboard/internal/db"
	"github.com/alexanderramin/cycleboard/internal/domain"
	"github.com/alexanderramin/cycleboard/internal/repository"
	"github.com/alexanderramin/cycleboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinTx_CommitsSnapshotAndPrune(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	ctx := context.Background()

	old := testutil.NewTestSnapshot(testutil.WithFetchedAt(testutil.BoardNow.Add(-time.Hour)))
	require.NoError(t, repository.NewSQLiteSnapshotRepo(database).Create(ctx, old))

	fresh := testutil.NewTestSnapshot()
	err := uow.WithinTx(ctx, "store snapshot", func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteSnapshotRepo(tx)
		if err := repo.Create(ctx, fresh); err != nil {
			return err
		}
		_, err := repo.PruneKeepNewest(ctx, 1)
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, 1, testutil.CountRows(t, database, "snapshots"))
	latest, err := repository.NewSQLiteSnapshotRepo(database).Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, latest.ID)
}

func TestWithinTx_RollbackKeepsTypedError(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	rejected := errors.New("KEY_NOT_IN_VIEW")

	err := uow.WithinTx(context.Background(), "save view session default", func(ctx context.Context, tx db.DBTX) error {
		s := &domain.ViewSession{ID: "default", CurrentView: "roadmap", UpdatedAt: testutil.BoardNow}
		if err := repository.NewSQLiteViewSessionRepo(tx).Upsert(ctx, s); err != nil {
			return err
		}
		return rejected
	})
	assert.Same(t, rejected, err)
	assert.Zero(t, testutil.CountRows(t, database, "view_sessions"))
}

func TestWithinTx_CancelledContextDiscardsWork(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	ctx, cancel := context.WithCancel(context.Background())

	err := uow.WithinTx(ctx, "store snapshot", func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSnapshotRepo(tx).Create(ctx, testutil.NewTestSnapshot()); err != nil {
			return err
		}
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "store snapshot: not committed")
	assert.Zero(t, testutil.CountRows(t, database, "snapshots"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), "store snapshot", func(ctx context.Context, tx db.DBTX) error {
			_ = repository.NewSQLiteSnapshotRepo(tx).Create(ctx, testutil.NewTestSnapshot())
			panic("boom")
		})
	})
	assert.Zero(t, testutil.CountRows(t, database, "snapshots"))
}
