package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/cycleboard/internal/cli/formatter"
	"github.com/alexanderramin/cycleboard/internal/contract"
	"github.com/alexanderramin/cycleboard/internal/domain"
	"github.com/alexanderramin/cycleboard/internal/viewstate"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── key bindings ─────────────────────────────────────────────────────────────

type boardKeyMap struct {
	NextView key.Binding
	Area     key.Binding
	Cycle    key.Binding
	Clear    key.Binding
	Reload   key.Binding
	Quit     key.Binding
}

func newBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		NextView: key.NewBinding(key.WithKeys("tab", "v"), key.WithHelp("tab", "next view")),
		Area:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "area")),
		Cycle:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cycle")),
		Clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextView, k.Area, k.Cycle, k.Clear, k.Reload, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ── messages ─────────────────────────────────────────────────────────────────

type boardLoadedMsg struct {
	board   *contract.BoardResponse
	session *contract.SessionView
	options *domain.NestedCycleData
	err     error
}

// transitionRejectedMsg carries a ValidationError from a session mutation.
// The board stays as it was.
type transitionRejectedMsg struct {
	err error
}

// ── model ────────────────────────────────────────────────────────────────────

// boardChromeHeight is the number of lines around the viewport: title,
// filters, notice, blank, and help.
const boardChromeHeight = 5

// boardModel is the interactive board. Every key that changes the view or a
// filter goes through the view session service, so the TUI and the CLI
// share one persisted state.
type boardModel struct {
	app  *App
	keys boardKeyMap
	help help.Model
	vp   viewport.Model

	board   *contract.BoardResponse
	session *contract.SessionView
	options *domain.NestedCycleData
	loading bool
	err     error
	notice  string
}

func newBoardModel(app *App) *boardModel {
	return &boardModel{
		app:     app,
		keys:    newBoardKeyMap(),
		help:    help.New(),
		vp:      viewport.New(80, 24-boardChromeHeight),
		loading: true,
	}
}

func (m *boardModel) Init() tea.Cmd {
	return m.load()
}

func (m *boardModel) load() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx := context.Background()
		id := app.sessionID()

		session, err := app.Sessions.Get(ctx, id)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		board, err := app.Board.GetBoard(ctx, contract.NewBoardRequest(id))
		if err != nil {
			return boardLoadedMsg{session: session, err: err}
		}
		options, err := app.Board.Options(ctx, board.SnapshotID)
		if err != nil {
			return boardLoadedMsg{session: session, err: err}
		}
		return boardLoadedMsg{board: board, session: session, options: options}
	}
}

// mutate runs a session change and reloads the board when it is accepted.
func (m *boardModel) mutate(change func(ctx context.Context, id string) error) tea.Cmd {
	app := m.app
	reload := m.load()
	return func() tea.Msg {
		if err := change(context.Background(), app.sessionID()); err != nil {
			var verr *viewstate.ValidationError
			if errors.As(err, &verr) {
				return transitionRejectedMsg{err: err}
			}
			return boardLoadedMsg{err: err}
		}
		return reload()
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.vp.Width = msg.Width
		m.vp.Height = max(1, msg.Height-boardChromeHeight)
		m.refreshContent()
		return m, nil

	case boardLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.session != nil {
			m.session = msg.session
		}
		if msg.err == nil {
			m.board = msg.board
			m.options = msg.options
			m.notice = ""
		}
		m.refreshContent()
		return m, nil

	case transitionRejectedMsg:
		m.notice = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.load()
	}

	if m.session == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextView):
		next := nextValue(m.session.View, m.session.Views, false)
		return m, m.mutate(func(ctx context.Context, id string) error {
			_, err := m.app.Sessions.SwitchView(ctx, id, next)
			return err
		})
	case key.Matches(msg, m.keys.Area):
		return m, m.cycleFilter(viewstate.KeyArea, m.session.Criteria.Area)
	case key.Matches(msg, m.keys.Cycle):
		return m, m.cycleFilter(viewstate.KeyCycle, m.session.Criteria.Cycle)
	case key.Matches(msg, m.keys.Clear):
		return m, m.mutate(func(ctx context.Context, id string) error {
			_, err := m.app.Sessions.ClearFilters(ctx, id)
			return err
		})
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// cycleFilter steps a scalar filter through "all" and each value in the
// snapshot, in order.
func (m *boardModel) cycleFilter(k viewstate.FilterKey, current string) tea.Cmd {
	var values []string
	if m.options != nil {
		for _, c := range pickerChoices(k, m.options) {
			values = append(values, c.Value)
		}
	}
	var next []string
	if v := nextValue(current, values, true); v != "" {
		next = []string{v}
	}
	return m.mutate(func(ctx context.Context, id string) error {
		_, err := m.app.Sessions.UpdateFilter(ctx, id, string(k), next)
		return err
	})
}

// nextValue returns the value after current, wrapping around. With
// withAll, "" stands for "all" and sits before the first value.
func nextValue(current string, values []string, withAll bool) string {
	if withAll {
		values = append([]string{""}, values...)
	}
	if len(values) == 0 {
		return current
	}
	i := slices.Index(values, current)
	return values[(i+1)%len(values)]
}

func (m *boardModel) refreshContent() {
	if m.board == nil {
		m.vp.SetContent("")
		return
	}
	var b strings.Builder
	if len(m.board.Result.Data.Initiatives) == 0 {
		b.WriteString(formatter.Dim("No items match the current filters.") + "\n")
	} else {
		b.WriteString(formatter.RenderTree(formatter.BoardTree(m.board.Result.Data, m.board.View != string(viewstate.ViewRoadmap))))
	}
	b.WriteString("\n" + formatter.Dim(fmt.Sprintf("%d initiatives · %d roadmap items · %d release items",
		m.board.Result.TotalInitiatives, m.board.Result.TotalRoadmapItems, m.board.Result.TotalReleaseItems)))
	m.vp.SetContent(b.String())
}

func (m *boardModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.StyleHeader.Render("CYCLEBOARD") + "  " + m.viewTabs() + "\n")

	switch {
	case m.loading:
		b.WriteString(formatter.Dim("Loading board…") + "\n")
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
		var berr *contract.BoardError
		if errors.As(m.err, &berr) && berr.Code == contract.BoardErrNoSnapshot {
			b.WriteString(formatter.Dim("Run `cycleboard import <file>` first.") + "\n")
		}
	case m.board != nil:
		line := formatter.Dim("filters ") + formatter.StyleBlue.Render(formatter.FormatCriteria(m.board.Criteria))
		if m.board.ActiveCycle != nil {
			line += "   " + formatter.Dim("cycle ") + m.board.ActiveCycle.Cycle.Name + " " +
				formatter.RenderProgress(m.board.ActiveCycle.Metadata.CurrentDayPercentage, 10)
		}
		b.WriteString(line + "\n")
	}

	if m.notice != "" {
		b.WriteString(formatter.StyleYellow.Render(m.notice) + "\n")
	}
	if m.board != nil && m.err == nil {
		b.WriteString("\n" + m.vp.View() + "\n")
	}
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m *boardModel) viewTabs() string {
	if m.session == nil {
		return ""
	}
	active := lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true).Underline(true)
	tabs := make([]string, len(m.session.Views))
	for i, v := range m.session.Views {
		if v == m.session.View {
			tabs[i] = active.Render(v)
		} else {
			tabs[i] = formatter.Dim(v)
		}
	}
	return strings.Join(tabs, formatter.Dim(" | "))
}
