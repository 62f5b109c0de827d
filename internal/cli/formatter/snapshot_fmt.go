package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cycleboard/internal/contract"
	"github.com/alexanderramin/cycleboard/internal/domain"
)

// FormatSnapshotList renders cached extracts, newest first.
func FormatSnapshotList(snapshots []*domain.Snapshot) string {
	if len(snapshots) == 0 {
		return RenderBox("Snapshots", Dim("Nothing imported yet. Run `cycleboard import <file>`."))
	}
	headers := []string{"ID", "SOURCE", "IMPORTED", "INITIATIVES", "ROADMAP", "RELEASE", "WARNINGS"}
	rows := make([][]string, 0, len(snapshots))
	for i, s := range snapshots {
		id := TruncID(s.ID)
		if i == 0 {
			id = StyleGreen.Render(s.ID[:min(8, len(s.ID))])
		}
		warnings := Dim("0")
		if s.WarningCount > 0 {
			warnings = StyleYellow.Render(fmt.Sprintf("%d", s.WarningCount))
		}
		rows = append(rows, []string{
			id,
			s.Source,
			HumanTimestamp(s.FetchedAt),
			fmt.Sprintf("%d", s.InitiativeCount),
			fmt.Sprintf("%d", s.RoadmapItemCount),
			fmt.Sprintf("%d", s.ReleaseItemCount),
			warnings,
		})
	}
	return RenderBox("Snapshots", RenderTable(headers, rows))
}

// FormatImportResult summarises an import or a dry-run check.
func FormatImportResult(res *contract.ImportResult) string {
	var b strings.Builder

	if res.Snapshot != nil {
		b.WriteString(fmt.Sprintf("%s %s\n", StyleGreen.Render("✔ Imported"), Bold(res.Snapshot.Source)))
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("snapshot"), res.Snapshot.ID))
	} else {
		b.WriteString(StyleBlue.Render("Checked extract (not stored)") + "\n")
	}
	b.WriteString(fmt.Sprintf("%d initiatives · %d roadmap items · %d release items\n",
		res.Counts.Initiatives, res.Counts.RoadmapItems, res.Counts.ReleaseItems))
	if res.Pruned > 0 {
		b.WriteString(Dim(fmt.Sprintf("%d older snapshot(s) pruned", res.Pruned)) + "\n")
	}

	if len(res.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%d data warning(s):", len(res.Warnings))) + "\n")
		for _, w := range res.Warnings {
			b.WriteString(StyleYellow.Render("  WARNING: ") + w + "\n")
		}
	}

	return RenderBox("Import", b.String())
}
