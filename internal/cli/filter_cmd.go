package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/cycleboard/internal/cli/formatter"
	"github.com/alexanderramin/cycleboard/internal/contract"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newFilterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Manage the filters stored in the view session",
	}

	cmd.AddCommand(
		newFilterSetCmd(app),
		newFilterShowCmd(app),
		newFilterClearCmd(app),
		newFilterPickCmd(app),
	)

	return cmd
}

func newFilterSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> [values...]",
		Short: "Set one filter for the current view",
		Long: `Set a filter key to the given values. Keys: area, initiatives, stages,
assignees, cycle (singular forms are accepted). No values, or "all",
removes the filter. Keys that do not belong to the current view are
rejected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.Sessions.UpdateFilter(cmd.Context(), app.sessionID(), filterKeyArg(args[0]), args[1:])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSession(v))
			return nil
		},
	}
}

func newFilterShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.Sessions.Get(cmd.Context(), app.sessionID())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSession(v))
			return nil
		},
	}
}

func newFilterClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the filters of the current view",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.Sessions.ClearFilters(cmd.Context(), app.sessionID())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSession(v))
			return nil
		},
	}
}

func newFilterPickCmd(app *App) *cobra.Command {
	var snapshotID string

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose filters for the current view from the snapshot's values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("filter pick needs an interactive terminal; use \"filter set\" instead")
			}
			ctx := cmd.Context()

			session, err := app.Sessions.Get(ctx, app.sessionID())
			if err != nil {
				return err
			}
			data, err := app.Board.Options(ctx, snapshotID)
			if err != nil {
				return err
			}

			picker := newFilterPicker(session, data)
			form := picker.form()
			if form == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "The current view has no filters to pick.")
				return nil
			}
			if err := form.RunWithContext(ctx); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return err
			}

			v, err := picker.apply(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSession(v))
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshotID, "snapshot", "", "Snapshot to take values from (default: latest)")

	return cmd
}

// filterKeyArg accepts either a filter key or its singular flag name.
func filterKeyArg(arg string) string {
	for _, p := range contract.FilterParams {
		if arg == p.Name {
			return p.Key
		}
	}
	return arg
}
