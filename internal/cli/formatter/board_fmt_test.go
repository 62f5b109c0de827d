package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/cycleboard/internal/contract"
	"github.com/alexanderramin/cycleboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleBoard(view string) *contract.BoardResponse {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	cycle := domain.CycleView{
		Cycle:    domain.Cycle{ID: "c2", Name: "February", StartDate: &start, EndDate: &end, State: domain.CycleActive},
		Metadata: domain.CycleMetadata{DaysInCycle: 28, CurrentDayPercentage: 50},
	}
	data := domain.NestedCycleData{Initiatives: []domain.Initiative{{
		ID:   "ini-1",
		Name: "Checkout",
		RoadmapItems: []domain.RoadmapItem{{
			ID:   "r1",
			Name: "Cart redesign",
			Area: "frontend",
			ReleaseItems: []domain.ReleaseItem{
				{ID: "x1", Name: "Cart UI", Status: "done", Effort: 2, Stage: "s1", Assignee: &domain.Assignee{ID: "u1", DisplayName: "Ada"}, CycleID: "c1"},
				{ID: "x2", TicketID: "CB-2", Name: "Cart tests", Status: "inprogress", Effort: 1},
			},
			Progress: domain.ProgressMetrics{Weeks: 3, Progress: 67},
		}},
		Progress: domain.ProgressMetrics{Weeks: 3, Progress: 67},
	}}}
	return &contract.BoardResponse{
		SnapshotID: "0123456789abcdef",
		View:       view,
		Criteria:   domain.FilterCriteria{Area: "frontend"},
		Result: domain.FilterResult{
			Data:              data,
			TotalInitiatives:  1,
			TotalRoadmapItems: 1,
			TotalReleaseItems: 2,
		},
		Cycles:      []domain.CycleView{cycle},
		ActiveCycle: &cycle,
	}
}

func TestFormatBoard_RoadmapHidesReleaseItems(t *testing.T) {
	out := stripANSI(FormatBoard(sampleBoard("roadmap")))

	assert.Contains(t, out, "roadmap")
	assert.Contains(t, out, "01234567")
	assert.Contains(t, out, "area=frontend")
	assert.Contains(t, out, "February")
	assert.Contains(t, out, "Checkout")
	assert.Contains(t, out, "Cart redesign")
	assert.Contains(t, out, "67% of 3w")
	assert.NotContains(t, out, "Cart UI")
	assert.Contains(t, out, "1 initiatives · 1 roadmap items · 2 release items")
}

func TestFormatBoard_CycleOverviewListsReleaseItems(t *testing.T) {
	out := stripANSI(FormatBoard(sampleBoard("cycle-overview")))

	assert.Contains(t, out, "✔ Cart UI")
	assert.Contains(t, out, "2w · s1 · Ada · c1")
	assert.Contains(t, out, "▶ CB-2 Cart tests")
}

func TestFormatBoard_EmptyResult(t *testing.T) {
	resp := sampleBoard("roadmap")
	resp.Result = domain.FilterResult{}
	resp.ActiveCycle = nil

	out := stripANSI(FormatBoard(resp))
	assert.Contains(t, out, "No items match the current filters.")
	assert.NotContains(t, out, "February")
}

func TestFormatCycles(t *testing.T) {
	resp := sampleBoard("roadmap")
	open := domain.CycleView{Cycle: domain.Cycle{ID: "c3", Name: "Someday", State: domain.CycleFuture}}

	out := stripANSI(FormatCycles(append(resp.Cycles, open)))
	assert.Contains(t, out, "Feb 1, 2024")
	assert.Contains(t, out, "Feb 29, 2024")
	assert.Contains(t, out, "● active")
	assert.Contains(t, out, "○ future")
	assert.Contains(t, out, " 50%")
	assert.Contains(t, out, "--")

	assert.Contains(t, stripANSI(FormatCycles(nil)), "no cycles")
}
