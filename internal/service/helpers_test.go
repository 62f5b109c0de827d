package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/cycleboard/internal/repository"
	"github.com/alexanderramin/cycleboard/internal/testutil"
	"github.com/alexanderramin/cycleboard/internal/viewstate"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	db       *sql.DB
	snaps    repository.SnapshotRepo
	imports  ImportService
	board    BoardService
	sessions ViewSessionService
	events   *recordingObserver
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	snaps := repository.NewSQLiteSnapshotRepo(database)
	sessions := repository.NewSQLiteViewSessionRepo(database)
	uow := testutil.NewTestUoW(database)
	reg := viewstate.DefaultRegistry()
	events := &recordingObserver{}

	return &testServices{
		db:       database,
		snaps:    snaps,
		imports:  NewImportService(snaps, uow, 3, events),
		board:    NewBoardService(snaps, sessions, reg, events),
		sessions: NewViewSessionService(sessions, reg, uow, events),
		events:   events,
	}
}

// importBoard imports testutil.BoardExtract and returns the snapshot id.
func (ts *testServices) importBoard(t *testing.T) string {
	t.Helper()
	res, err := ts.imports.ImportExtract(context.Background(), testutil.WriteExtract(t, testutil.BoardExtract))
	require.NoError(t, err)
	return res.Snapshot.ID
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
