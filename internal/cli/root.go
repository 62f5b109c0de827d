package cli

import (
	"io"
	"time"

	"github.com/alexanderramin/cycleboard/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Import   service.ImportService
	Board    service.BoardService
	Sessions service.ViewSessionService

	// SessionID is the view session read and written by board, view and
	// filter commands.
	SessionID string

	HTTPAddr        string
	ShutdownTimeout time.Duration
	// AccessLog receives the HTTP access log of "serve"; nil disables it.
	AccessLog io.Writer

	// IsInteractive reports whether stdin is a terminal. The picker and the
	// TUI refuse to start without one.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) sessionID() string {
	if a.SessionID == "" {
		return service.DefaultSessionID
	}
	return a.SessionID
}

// NewRootCmd creates the top-level "cycleboard" command and registers all
// subcommands against the provided App. Flags bind to a copy, so parsing
// never changes the caller's App.
func NewRootCmd(base *App) *cobra.Command {
	app := new(App)
	*app = *base

	root := &cobra.Command{
		Use:           "cycleboard",
		Short:         "Roadmap and cycle progress board over tracker extracts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&app.SessionID, "session", base.SessionID, "View session to read and update")

	root.AddCommand(
		newImportCmd(app),
		newCheckCmd(app),
		newSnapshotsCmd(app),
		newBoardCmd(app),
		newCyclesCmd(app),
		newViewCmd(app),
		newFilterCmd(app),
		newTUICmd(app),
		newServeCmd(app),
	)

	return root
}
