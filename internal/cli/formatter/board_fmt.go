package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cycleboard/internal/contract"
	"github.com/alexanderramin/cycleboard/internal/domain"
)

const boardProgressBarWidth = 12

// FormatBoard renders a filtered board. The roadmap view stops at roadmap
// items; any other view also lists release items.
func FormatBoard(resp *contract.BoardResponse) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		Dim("view"), Bold(resp.View),
		Dim("snapshot"), TruncID(resp.SnapshotID)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("filters"), StyleBlue.Render(FormatCriteria(resp.Criteria))))
	if resp.ActiveCycle != nil {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			Dim("cycle"),
			Bold(resp.ActiveCycle.Cycle.Name),
			RenderProgress(resp.ActiveCycle.Metadata.CurrentDayPercentage, 10)))
	}
	b.WriteString("\n")

	if len(resp.Result.Data.Initiatives) == 0 {
		b.WriteString(Dim("No items match the current filters.") + "\n")
	} else {
		b.WriteString(RenderTree(BoardTree(resp.Result.Data, resp.View != "roadmap")))
	}

	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d initiatives · %d roadmap items · %d release items",
		resp.Result.TotalInitiatives, resp.Result.TotalRoadmapItems, resp.Result.TotalReleaseItems)) + "\n")

	return RenderBox("Board", b.String())
}

// BoardTree flattens the hierarchy into tree rows. Release items are only
// included when withReleaseItems is set.
func BoardTree(data domain.NestedCycleData, withReleaseItems bool) []TreeItem {
	var items []TreeItem
	for i, ini := range data.Initiatives {
		items = append(items, TreeItem{
			Title:  Bold(ini.Name),
			Level:  0,
			IsLast: i == len(data.Initiatives)-1,
			Detail: progressDetail(ini.Progress),
		})
		for j, rm := range ini.RoadmapItems {
			title := rm.Name
			if rm.Area != "" {
				title += " " + StylePurple.Render(rm.Area)
			}
			items = append(items, TreeItem{
				Title:  title,
				Level:  1,
				IsLast: j == len(ini.RoadmapItems)-1,
				Detail: progressDetail(rm.Progress),
			})
			if !withReleaseItems {
				continue
			}
			for k := range rm.ReleaseItems {
				ri := &rm.ReleaseItems[k]
				items = append(items, TreeItem{
					Title:  releaseItemTitle(ri),
					Level:  2,
					IsLast: k == len(rm.ReleaseItems)-1,
					Status: ri.NormalizedStatus(),
					Detail: releaseItemDetail(ri),
				})
			}
		}
	}
	return items
}

func progressDetail(p domain.ProgressMetrics) string {
	return fmt.Sprintf("%s %d%% of %s", RenderCompactBar(p.Progress, boardProgressBarWidth), p.Progress, FormatWeeks(p.Weeks))
}

func releaseItemTitle(ri *domain.ReleaseItem) string {
	name := domain.CoalesceTrimmed(ri.Name, ri.TicketID, ri.ID)
	if ri.TicketID != "" && ri.TicketID != name {
		name = ri.TicketID + " " + name
	}
	return name
}

func releaseItemDetail(ri *domain.ReleaseItem) string {
	parts := []string{FormatWeeks(ri.Effort)}
	if ri.Stage != "" {
		parts = append(parts, ri.Stage)
	}
	if ri.Assignee != nil {
		parts = append(parts, domain.CoalesceTrimmed(ri.Assignee.DisplayName, ri.Assignee.ID, ri.Assignee.AccountID))
	}
	if ri.CycleID != "" {
		parts = append(parts, ri.CycleID)
	}
	return strings.Join(parts, " · ")
}
