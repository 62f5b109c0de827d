package importer

import (
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/cycleboard/internal/domain"
	"github.com/alexanderramin/cycleboard/internal/progress"
)

// Nest groups the flat extract into Initiatives → RoadmapItems →
// ReleaseItems, normalizes optional fields, computes progress at every
// level, and orders initiatives by descending total weeks. The input is
// not modified.
func Nest(raw *RawCycleData) domain.NestedCycleData {
	if raw == nil {
		return domain.NestedCycleData{}
	}

	lookup := newReleaseLookup(raw.ReleaseItems)
	initiativeNames := make(map[string]string, len(raw.Initiatives))
	for _, ref := range raw.Initiatives {
		id := string(ref.ID)
		if id != "" {
			initiativeNames[id] = domain.CoalesceTrimmed(ref.Name, ref.Value)
		}
	}

	var initiatives []domain.Initiative
	index := make(map[string]int)
	for i := range raw.RoadmapItems {
		rr := &raw.RoadmapItems[i]
		key := strings.TrimSpace(string(rr.InitiativeID))
		name := domain.CoalesceTrimmed(initiativeNames[key], rr.Initiative.Value, key)
		if key == "" {
			key = domain.UnassignedInitiativeID
			name = domain.UnassignedInitiativeName
		}

		pos, ok := index[key]
		if !ok {
			pos = len(initiatives)
			index[key] = pos
			initiatives = append(initiatives, domain.Initiative{ID: key, Name: name})
		}

		rm := convertRoadmapItem(rr, lookup)
		rm.InitiativeID = key
		initiatives[pos].RoadmapItems = append(initiatives[pos].RoadmapItems, rm)
	}

	for i := range initiatives {
		initiatives[i].Progress = progress.InitiativeProgress(&initiatives[i])
	}
	sort.SliceStable(initiatives, func(i, j int) bool {
		return initiatives[i].Progress.Weeks > initiatives[j].Progress.Weeks
	})

	return domain.NestedCycleData{
		Initiatives: initiatives,
		Cycles:      convertCycles(raw.Cycles),
		Areas:       convertAreas(raw.Areas),
		Assignees:   convertAssignees(raw.Assignees),
		Stages:      convertStages(raw.Stages),
	}
}

// releaseLookup indexes the flat release item table.
type releaseLookup struct {
	byID      map[string]*RawReleaseItem
	byRoadmap map[string][]*RawReleaseItem
}

func newReleaseLookup(items []RawReleaseItem) releaseLookup {
	l := releaseLookup{
		byID:      make(map[string]*RawReleaseItem, len(items)),
		byRoadmap: make(map[string][]*RawReleaseItem),
	}
	for i := range items {
		it := &items[i]
		if id := string(it.ID); id != "" {
			if _, dup := l.byID[id]; !dup {
				l.byID[id] = it
			}
		}
		if parent := string(it.RoadmapItemID); parent != "" {
			l.byRoadmap[parent] = append(l.byRoadmap[parent], it)
		}
	}
	return l
}

// children resolves a roadmap item's release items: embedded first, then
// id references, then flat rows pointing at the roadmap item.
func (l releaseLookup) children(rr *RawRoadmapItem) []*RawReleaseItem {
	if rr.ReleaseItems != nil {
		out := make([]*RawReleaseItem, len(rr.ReleaseItems))
		for i := range rr.ReleaseItems {
			out[i] = &rr.ReleaseItems[i]
		}
		return out
	}
	if len(rr.ReleaseItemIDs) > 0 {
		out := make([]*RawReleaseItem, 0, len(rr.ReleaseItemIDs))
		for _, id := range rr.ReleaseItemIDs {
			if it, ok := l.byID[id]; ok {
				out = append(out, it)
			}
		}
		return out
	}
	return l.byRoadmap[string(rr.ID)]
}

func convertRoadmapItem(rr *RawRoadmapItem, lookup releaseLookup) domain.RoadmapItem {
	children := lookup.children(rr)
	items := make([]domain.ReleaseItem, 0, len(children))
	for _, c := range children {
		items = append(items, convertReleaseItem(c))
	}
	rm := domain.RoadmapItem{
		ID:           string(rr.ID),
		Name:         rr.Name,
		Area:         rr.Area.Value,
		Theme:        rr.Theme.Value,
		Team:         rr.Team.Value,
		URL:          rr.URL,
		ReleaseItems: items,
	}
	rm.Progress = progress.RoadmapItemProgress(&rm)
	return rm
}

func convertReleaseItem(ri *RawReleaseItem) domain.ReleaseItem {
	effort := 0.0
	if ri.Effort.Valid && ri.Effort.Value > 0 {
		effort = ri.Effort.Value
	}

	validations := make([]domain.Validation, 0, len(ri.Validations.Items))
	for _, v := range ri.Validations.Items {
		validations = append(validations, domain.Validation(v))
	}

	var assignee *domain.Assignee
	if ri.Assignee != nil && (ri.Assignee.ID != "" || ri.Assignee.AccountID != "") {
		assignee = &domain.Assignee{
			ID:          string(ri.Assignee.ID),
			AccountID:   ri.Assignee.AccountID,
			DisplayName: ri.Assignee.DisplayName,
		}
	}

	var areaIDs []string
	if len(ri.AreaIDs) > 0 {
		areaIDs = append([]string(nil), ri.AreaIDs...)
	}

	return domain.ReleaseItem{
		ID:          string(ri.ID),
		TicketID:    ri.TicketID,
		Name:        ri.Name,
		Area:        ri.Area.Value,
		AreaIDs:     areaIDs,
		Stage:       domain.CoalesceStr(ri.Stage.ID, ri.Stage.Value),
		Status:      ri.Status,
		Effort:      effort,
		Assignee:    assignee,
		CycleID:     cycleLink(ri),
		Validations: validations,
	}
}

// cycleLink returns the direct cycle id, or the id of a nested cycle or
// sprint object.
func cycleLink(ri *RawReleaseItem) string {
	if id := string(ri.CycleID); id != "" {
		return id
	}
	if ri.Cycle != nil && ri.Cycle.ID != "" {
		return string(ri.Cycle.ID)
	}
	if ri.Sprint != nil {
		return string(ri.Sprint.ID)
	}
	return ""
}

func convertCycles(raw []RawCycle) []domain.Cycle {
	cycles := make([]domain.Cycle, 0, len(raw))
	for _, rc := range raw {
		cycles = append(cycles, domain.Cycle{
			ID:           string(rc.ID),
			Name:         rc.Name,
			StartDate:    parseISODate(rc.StartDate),
			EndDate:      parseISODate(rc.EndDate),
			DeliveryDate: parseISODate(rc.Delivery()),
			State:        domain.ParseCycleState(rc.State),
		})
	}
	return cycles
}

func convertAreas(raw []RawRef) []domain.Area {
	areas := make([]domain.Area, 0, len(raw))
	for _, r := range raw {
		areas = append(areas, domain.Area{ID: string(r.ID), Name: domain.CoalesceTrimmed(r.Name, r.Value, string(r.ID))})
	}
	return areas
}

func convertStages(raw []RawRef) []domain.Stage {
	stages := make([]domain.Stage, 0, len(raw))
	for _, r := range raw {
		stages = append(stages, domain.Stage{ID: domain.CoalesceStr(string(r.ID), r.Value), Name: domain.CoalesceTrimmed(r.Name, r.Value, string(r.ID))})
	}
	return stages
}

func convertAssignees(raw []RawAssignee) []domain.Assignee {
	out := make([]domain.Assignee, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.Assignee{ID: string(r.ID), AccountID: r.AccountID, DisplayName: r.DisplayName})
	}
	return out
}

var isoLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05.000Z07:00", "2006-01-02T15:04:05"}

// parseISODate parses an ISO-8601 date or timestamp. Empty or unparseable
// values yield nil.
func parseISODate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
