package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/cycleboard/internal/contract"
	"github.com/alexanderramin/cycleboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatSnapshotList(t *testing.T) {
	at := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	out := stripANSI(FormatSnapshotList([]*domain.Snapshot{
		{ID: "aaaaaaaa-1111", Source: "feb.json", FetchedAt: at, InitiativeCount: 2, RoadmapItemCount: 3, ReleaseItemCount: 4, WarningCount: 1},
		{ID: "bbbbbbbb-2222", Source: "jan.json", FetchedAt: at.Add(-time.Hour)},
	}))
	assert.Contains(t, out, "aaaaaaaa")
	assert.Contains(t, out, "feb.json")
	assert.Contains(t, out, "bbbbbbbb")
	assert.NotContains(t, out, "-1111")

	assert.Contains(t, stripANSI(FormatSnapshotList(nil)), "Nothing imported yet")
}

func TestFormatImportResult(t *testing.T) {
	stored := stripANSI(FormatImportResult(&contract.ImportResult{
		Snapshot: &domain.Snapshot{ID: "snap-1", Source: "feb.json"},
		Counts:   contract.ExtractCounts{Initiatives: 2, RoadmapItems: 3, ReleaseItems: 4},
		Warnings: []string{`releaseItems[0].status: unrecognized value "blocked"`},
		Pruned:   2,
	}))
	assert.Contains(t, stored, "✔ Imported")
	assert.Contains(t, stored, "snap-1")
	assert.Contains(t, stored, "2 initiatives · 3 roadmap items · 4 release items")
	assert.Contains(t, stored, "2 older snapshot(s) pruned")
	assert.Contains(t, stored, "1 data warning(s):")
	assert.Contains(t, stored, `unrecognized value "blocked"`)

	checked := stripANSI(FormatImportResult(&contract.ImportResult{}))
	assert.Contains(t, checked, "not stored")
	assert.NotContains(t, checked, "WARNING")
}

func TestFormatSession(t *testing.T) {
	out := stripANSI(FormatSession(&contract.SessionView{
		ID:            "default",
		View:          "cycle-overview",
		Views:         []string{"roadmap", "cycle-overview"},
		AvailableKeys: []string{"area", "initiatives", "stages", "assignees", "cycle"},
		Filters: domain.ViewFilterState{
			Specific: map[string]domain.FilterValues{"cycle-overview": {"cycle": {"c2"}, "stages": {"s1"}}},
		},
		Criteria: domain.FilterCriteria{Stages: []string{"s1"}, Cycle: "c2"},
	}))
	assert.Contains(t, out, "● cycle-overview")
	assert.Contains(t, out, "○ roadmap")
	assert.Contains(t, out, "stages=s1 cycle=c2")
	assert.Contains(t, out, "cycle-overview stages=s1 cycle=c2")
}
