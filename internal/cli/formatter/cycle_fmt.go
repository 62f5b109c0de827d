package formatter

import (
	"fmt"

	"github.com/alexanderramin/cycleboard/internal/domain"
)

// FormatCycles renders the cycle timeline as a table.
func FormatCycles(views []domain.CycleView) string {
	if len(views) == 0 {
		return RenderBox("Cycles", Dim("The extract has no cycles."))
	}

	headers := []string{"ID", "NAME", "STATE", "START", "END", "DAYS", "ELAPSED"}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		days := Dim("--")
		elapsed := Dim("--")
		if v.Cycle.StartDate != nil && v.Cycle.EffectiveEnd() != nil {
			days = fmt.Sprintf("%d", v.Metadata.DaysInCycle)
			elapsed = RenderProgress(v.Metadata.CurrentDayPercentage, 10)
		}
		rows = append(rows, []string{
			v.Cycle.ID,
			Bold(v.Cycle.Name),
			CycleStateIndicator(v.Cycle.State),
			HumanDate(v.Cycle.StartDate),
			HumanDate(v.Cycle.EffectiveEnd()),
			days,
			elapsed,
		})
	}
	return RenderBox("Cycles", RenderTable(headers, rows))
}
