package cli

import (
	"fmt"

	"github.com/alexanderramin/cycleboard/internal/cli/formatter"
	"github.com/alexanderramin/cycleboard/internal/contract"
	"github.com/spf13/cobra"
)

func newViewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view [name]",
		Short: "Show the session's view, or switch to another one",
		Long: `Without an argument, show the current view and its filters. With a
view name, switch the session to it. Filters stored for other views are
kept and come back when you switch back.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				v   *contract.SessionView
				err error
			)
			if len(args) == 1 {
				v, err = app.Sessions.SwitchView(cmd.Context(), app.sessionID(), args[0])
			} else {
				v, err = app.Sessions.Get(cmd.Context(), app.sessionID())
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSession(v))
			return nil
		},
	}
}
