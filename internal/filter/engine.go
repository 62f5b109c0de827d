// Package filter applies multi-criteria cascading filters to the nested
// initiative hierarchy. Release items are pruned first, roadmap items and
// initiatives are reconciled afterwards, and aggregate progress is
// re-derived from the survivors.
package filter

import (
	"github.com/alexanderramin/cycleboard/internal/domain"
	"github.com/alexanderramin/cycleboard/internal/progress"
)

// Apply filters data by criteria. The input is never modified; unchanged
// subtrees are shared with the result.
func Apply(data domain.NestedCycleData, criteria domain.FilterCriteria) domain.FilterResult {
	c := compile(criteria)
	if c.empty() {
		return newResult(data, c.applied)
	}

	out := data
	out.Initiatives = make([]domain.Initiative, 0, len(data.Initiatives))
	for i := range data.Initiatives {
		ini := &data.Initiatives[i]
		if !c.matchInitiative(ini) {
			continue
		}
		if !c.hasLeafCriteria() {
			out.Initiatives = append(out.Initiatives, *ini)
			continue
		}
		if kept, ok := c.filterInitiative(ini); ok {
			out.Initiatives = append(out.Initiatives, kept)
		}
	}
	return newResult(out, c.applied)
}

// filterInitiative prunes an initiative's roadmap items. It reports false
// when no roadmap item survives.
func (c *compiled) filterInitiative(ini *domain.Initiative) (domain.Initiative, bool) {
	items := make([]domain.RoadmapItem, 0, len(ini.RoadmapItems))
	changed := false
	for j := range ini.RoadmapItems {
		rm := &ini.RoadmapItems[j]
		kept, ok, same := c.filterRoadmapItem(rm)
		if !ok {
			changed = true
			continue
		}
		if !same {
			changed = true
		}
		items = append(items, kept)
	}
	if len(items) == 0 {
		return domain.Initiative{}, false
	}
	if !changed {
		return *ini, true
	}
	result := *ini
	result.RoadmapItems = items
	result.Progress = progress.InitiativeProgress(&result)
	return result, true
}

// filterRoadmapItem keeps the passing release items. A roadmap item with
// no passing release item survives only when its own area matches the
// area criterion; it is then kept with an empty release item list and
// zeroed metrics, so initiative totals only count surviving work. same reports that the item is returned untouched.
func (c *compiled) filterRoadmapItem(rm *domain.RoadmapItem) (kept domain.RoadmapItem, ok bool, same bool) {
	passing := make([]domain.ReleaseItem, 0, len(rm.ReleaseItems))
	for k := range rm.ReleaseItems {
		if c.matchReleaseItem(&rm.ReleaseItems[k]) {
			passing = append(passing, rm.ReleaseItems[k])
		}
	}

	if len(passing) == len(rm.ReleaseItems) && len(passing) > 0 {
		return *rm, true, true
	}

	if len(passing) == 0 {
		if !c.matchRoadmapArea(rm) {
			return domain.RoadmapItem{}, false, false
		}
		if len(rm.ReleaseItems) == 0 {
			return *rm, true, true
		}
		result := *rm
		result.ReleaseItems = []domain.ReleaseItem{}
		result.Progress = progress.RoadmapItemProgress(&result)
		return result, true, false
	}

	result := *rm
	result.ReleaseItems = passing
	result.Progress = progress.RoadmapItemProgress(&result)
	return result, true, false
}

func newResult(data domain.NestedCycleData, applied domain.FilterCriteria) domain.FilterResult {
	ini, rm, rel := data.Counts()
	return domain.FilterResult{
		Data:              data,
		AppliedFilters:    applied,
		TotalInitiatives:  ini,
		TotalRoadmapItems: rm,
		TotalReleaseItems: rel,
	}
}
