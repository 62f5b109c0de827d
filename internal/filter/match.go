package filter

import (
	"strings"

	"github.com/alexanderramin/cycleboard/internal/domain"
)

// compiled is a FilterCriteria with sentinels resolved and list criteria
// turned into sets.
type compiled struct {
	applied     domain.FilterCriteria
	area        string // lowercased; "" when unconstrained
	cycle       string
	initiatives map[string]bool
	stages      map[string]bool
	assignees   map[string]bool
}

func compile(criteria domain.FilterCriteria) *compiled {
	n := criteria.Normalized()
	return &compiled{
		applied:     n,
		area:        strings.ToLower(n.Area),
		cycle:       n.Cycle,
		initiatives: toSet(n.Initiatives),
		stages:      toSet(n.Stages),
		assignees:   toSet(n.Assignees),
	}
}

func toSet(vals []string) map[string]bool {
	if len(vals) == 0 {
		return nil
	}
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return set
}

func (c *compiled) empty() bool {
	return c.initiatives == nil && !c.hasLeafCriteria()
}

func (c *compiled) hasLeafCriteria() bool {
	return c.area != "" || c.cycle != "" || c.stages != nil || c.assignees != nil
}

func (c *compiled) matchInitiative(ini *domain.Initiative) bool {
	return c.initiatives == nil || c.initiatives[ini.ID]
}

// matchReleaseItem ANDs every specified leaf criterion.
func (c *compiled) matchReleaseItem(ri *domain.ReleaseItem) bool {
	return c.matchItemArea(ri) && c.matchStage(ri) && c.matchAssignee(ri) && c.matchCycle(ri)
}

// matchItemArea compares case-insensitively against the item's area and,
// when present, its area-id set.
func (c *compiled) matchItemArea(ri *domain.ReleaseItem) bool {
	if c.area == "" {
		return true
	}
	if strings.ToLower(strings.TrimSpace(ri.Area)) == c.area {
		return true
	}
	for _, id := range ri.AreaIDs {
		if strings.ToLower(strings.TrimSpace(id)) == c.area {
			return true
		}
	}
	return false
}

func (c *compiled) matchRoadmapArea(rm *domain.RoadmapItem) bool {
	return c.area != "" && strings.ToLower(strings.TrimSpace(rm.Area)) == c.area
}

func (c *compiled) matchStage(ri *domain.ReleaseItem) bool {
	return c.stages == nil || c.stages[ri.Stage]
}

// matchAssignee accepts either the assignee's id or accountId.
func (c *compiled) matchAssignee(ri *domain.ReleaseItem) bool {
	if c.assignees == nil {
		return true
	}
	for _, key := range ri.Assignee.Keys() {
		if c.assignees[key] {
			return true
		}
	}
	return false
}

func (c *compiled) matchCycle(ri *domain.ReleaseItem) bool {
	return c.cycle == "" || ri.CycleID == c.cycle
}
