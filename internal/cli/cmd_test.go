package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alexanderramin/cycleboard/internal/contract"
	"github.com/alexanderramin/cycleboard/internal/repository"
	"github.com/alexanderramin/cycleboard/internal/service"
	"github.com/alexanderramin/cycleboard/internal/testutil"
	"github.com/alexanderramin/cycleboard/internal/viewstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	snaps := repository.NewSQLiteSnapshotRepo(database)
	sessions := repository.NewSQLiteViewSessionRepo(database)
	uow := testutil.NewTestUoW(database)
	reg := viewstate.DefaultRegistry()

	return &App{
		Import:        service.NewImportService(snaps, uow, service.DefaultSnapshotRetention),
		Board:         service.NewBoardService(snaps, sessions, reg),
		Sessions:      service.NewViewSessionService(sessions, reg, uow),
		SessionID:     service.DefaultSessionID,
		IsInteractive: func() bool { return false },
	}
}

// seedBoard imports testutil.BoardExtract.
func seedBoard(t *testing.T, app *App) {
	t.Helper()
	_, err := app.Import.ImportExtract(context.Background(), testutil.WriteExtract(t, testutil.BoardExtract))
	require.NoError(t, err)
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func requireValidation(t *testing.T, err error, code viewstate.ValidationErrorCode) {
	t.Helper()
	var verr *viewstate.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	assert.Equal(t, code, verr.Code)
}

// --- import / check / snapshots ---

func TestImportCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "import", testutil.WriteExtract(t, testutil.BoardExtract))
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")
	assert.Contains(t, out, "extract.json")
	assert.Contains(t, out, "2 initiatives · 3 roadmap items · 4 release items")

	out, err = executeCmd(t, app, "snapshots")
	require.NoError(t, err)
	assert.Contains(t, out, "extract.json")
}

func TestImportCmd_MissingFile(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "import", "/nonexistent/extract.json")
	require.Error(t, err)
}

func TestCheckCmd_DoesNotStore(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "check", testutil.WriteExtract(t, testutil.BoardExtract))
	require.NoError(t, err)
	assert.Contains(t, out, "not stored")

	out, err = executeCmd(t, app, "snapshots")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing imported yet")
}

func TestCheckCmd_ReportsWarnings(t *testing.T) {
	app := testApp(t)
	extract := `{"roadmapItems": [{"name": "no id", "releaseItems": [{"id": "x", "effort": "lots"}]}]}`

	out, err := executeCmd(t, app, "check", testutil.WriteExtract(t, extract))
	require.NoError(t, err)
	assert.Contains(t, out, "WARNING")
}

// --- board / cycles ---

func TestBoardCmd_NothingImported(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "board")
	var berr *contract.BoardError
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, contract.BoardErrNoSnapshot, berr.Code)
}

func TestBoardCmd_RoadmapHidesReleaseItems(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	out, err := executeCmd(t, app, "board")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart redesign")
	assert.Contains(t, out, "Query parser")
	assert.NotContains(t, out, "Cart UI")
}

func TestBoardCmd_ViewFlagDoesNotSwitchSession(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	out, err := executeCmd(t, app, "board", "--view", "cycle-overview")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart UI")

	v, err := app.Sessions.Get(context.Background(), app.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "roadmap", v.View)
}

func TestBoardCmd_AreaOverride(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	out, err := executeCmd(t, app, "board", "--area", "frontend")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart redesign")
	assert.NotContains(t, out, "Payment API")
	assert.NotContains(t, out, "Query parser")
}

func TestBoardCmd_KeyNotInView(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	_, err := executeCmd(t, app, "board", "--stage", "s1")
	requireValidation(t, err, viewstate.ErrKeyNotInView)
}

func TestBoardCmd_JSON(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	out, err := executeCmd(t, app, "board", "--view", "cycle-overview", "--cycle", "c1", "--at", "2024-02-15", "--json")
	require.NoError(t, err)

	var doc contract.BoardDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "cycle-overview", doc.View)
	assert.Equal(t, "c1", doc.Criteria.Cycle)
	assert.Equal(t, 1, doc.TotalInitiatives)
	assert.Equal(t, 1, doc.TotalRoadmapItems)
	assert.Equal(t, 1, doc.TotalReleaseItems)
	require.NotNil(t, doc.ActiveCycle)
	assert.Equal(t, "c2", doc.ActiveCycle.Cycle.ID)
}

func TestBoardCmd_InvalidDate(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	_, err := executeCmd(t, app, "board", "--at", "15/02/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--at")
}

func TestCyclesCmd(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	out, err := executeCmd(t, app, "cycles", "--at", "2024-02-15")
	require.NoError(t, err)
	assert.Contains(t, out, "January")
	assert.Contains(t, out, "February")
}

// --- view / filter ---

func TestViewCmd_ShowAndSwitch(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "view")
	require.NoError(t, err)
	assert.Contains(t, out, "● roadmap")

	out, err = executeCmd(t, app, "view", "cycle-overview")
	require.NoError(t, err)
	assert.Contains(t, out, "● cycle-overview")

	_, err = executeCmd(t, app, "view", "gantt")
	requireValidation(t, err, viewstate.ErrUnknownView)
}

func TestFilterCmd_SetShowClear(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	_, err := executeCmd(t, app, "filter", "set", "area", "frontend")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "filter", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "area=frontend")

	out, err = executeCmd(t, app, "board")
	require.NoError(t, err)
	assert.NotContains(t, out, "Payment API")

	out, err = executeCmd(t, app, "filter", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "none")
}

func TestFilterCmd_ViewIsolation(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "filter", "set", "stage", "s1")
	requireValidation(t, err, viewstate.ErrKeyNotInView)

	_, err = executeCmd(t, app, "view", "cycle-overview")
	require.NoError(t, err)
	out, err := executeCmd(t, app, "filter", "set", "stages", "s1", "s2")
	require.NoError(t, err)
	assert.Contains(t, out, "stages=s1,s2")

	out, err = executeCmd(t, app, "view", "roadmap")
	require.NoError(t, err)
	assert.Contains(t, out, "active  none")
}

func TestFilterCmd_UnknownKey(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "filter", "set", "team", "core")
	requireValidation(t, err, viewstate.ErrUnknownKey)
}

func TestFilterCmd_ScalarKeyTakesOneValue(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "filter", "set", "area", "frontend", "backend")
	requireValidation(t, err, viewstate.ErrInvalidValue)
}

func TestSessionFlag_SelectsSession(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "--session", "other", "filter", "set", "area", "backend")
	require.NoError(t, err)
	assert.Equal(t, service.DefaultSessionID, app.SessionID)

	out, err := executeCmd(t, app, "filter", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "area=backend")

	out, err = executeCmd(t, app, "--session", "other", "filter", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "area=backend")
}

// --- interactive commands ---

func TestInteractiveCommandsNeedTerminal(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	for _, args := range [][]string{{"filter", "pick"}, {"tui"}} {
		_, err := executeCmd(t, app, args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "interactive terminal")
	}
}
