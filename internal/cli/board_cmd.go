package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/cycleboard/internal/cli/formatter"
	"github.com/alexanderramin/cycleboard/internal/contract"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	var (
		view       string
		snapshotID string
		at         *time.Time
		asJSON     bool
		area       string
		cycle      string
		initiative []string
		stage      []string
		assignee   []string
	)

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the filtered roadmap board",
		Long: `Show the board for the current view session. Flags override the
session's filters for this run only; use "filter set" to persist them.
Use "all" as a value to lift a stored filter.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewBoardRequest(app.sessionID())
			req.SnapshotID = snapshotID
			req.View = view
			if at != nil {
				req.Now = at
			}

			values := map[string][]string{
				"area":       {area},
				"initiative": initiative,
				"stage":      stage,
				"assignee":   assignee,
				"cycle":      {cycle},
			}
			for _, p := range contract.FilterParams {
				if cmd.Flags().Changed(p.Name) {
					req = contract.WithOverride(req, p.Key, values[p.Name]...)
				}
			}

			resp, err := app.Board.GetBoard(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(contract.NewBoardDocument(resp))
			}
			fmt.Fprint(out, formatter.FormatBoard(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", "", "Render in this view without switching the session")
	cmd.Flags().StringVar(&snapshotID, "snapshot", "", "Snapshot ID (default: latest)")
	cmd.Flags().Var(newDateValue(&at), "at", "Evaluate cycle progress on this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the board as JSON")
	cmd.Flags().StringVar(&area, "area", "", "Area")
	cmd.Flags().StringVar(&cycle, "cycle", "", "Cycle ID")
	cmd.Flags().StringSliceVar(&initiative, "initiative", nil, "Initiative ID (repeatable)")
	cmd.Flags().StringSliceVar(&stage, "stage", nil, "Stage ID (repeatable)")
	cmd.Flags().StringSliceVar(&assignee, "assignee", nil, "Assignee ID or account ID (repeatable)")

	return cmd
}

func newCyclesCmd(app *App) *cobra.Command {
	var snapshotID string
	var at *time.Time

	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "Show the cycle timeline of a snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			if at != nil {
				now = *at
			}

			views, err := app.Board.ListCycles(cmd.Context(), snapshotID, now)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCycles(views))
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshotID, "snapshot", "", "Snapshot ID (default: latest)")
	cmd.Flags().Var(newDateValue(&at), "at", "Evaluate elapsed days on this date (YYYY-MM-DD)")

	return cmd
}
