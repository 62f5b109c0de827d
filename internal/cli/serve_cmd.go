package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/cycleboard/internal/httpapi"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board as a read-only JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.HTTPAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			h := httpapi.NewHandler(app.Import, app.Board, app.Sessions, app.sessionID())
			srv := httpapi.NewServer(addr, h, app.AccessLog, app.ShutdownTimeout)
			fmt.Fprintf(cmd.ErrOrStderr(), "cycleboard API listening on %s\n", addr)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from CYCLEBOARD_HTTP_ADDR)")

	return cmd
}
