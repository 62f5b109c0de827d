package domain

import "strings"

// AllSentinel marks a criterion as unconstrained.
const AllSentinel = "all"

// FilterCriteria is the flat set of filter selections consumed by the
// cascading filter. Empty or sentinel values mean "no constraint".
type FilterCriteria struct {
	Area        string   `json:"area"`
	Initiatives []string `json:"initiatives"`
	Stages      []string `json:"stages"`
	Assignees   []string `json:"assignees"`
	Cycle       string   `json:"cycle"`
}

// IsUnconstrainedValue reports whether a scalar criterion is unset.
func IsUnconstrainedValue(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == AllSentinel
}

// IsUnconstrainedList reports whether a list criterion is unset: nil, empty,
// or containing the "all" sentinel.
func IsUnconstrainedList(vals []string) bool {
	if len(vals) == 0 {
		return true
	}
	for _, v := range vals {
		if v == AllSentinel {
			return true
		}
	}
	return false
}

// Normalized returns a copy with every unconstrained criterion cleared, so
// two criteria with the same meaning compare equal.
func (c FilterCriteria) Normalized() FilterCriteria {
	var out FilterCriteria
	if !IsUnconstrainedValue(c.Area) {
		out.Area = strings.TrimSpace(c.Area)
	}
	if !IsUnconstrainedValue(c.Cycle) {
		out.Cycle = strings.TrimSpace(c.Cycle)
	}
	if !IsUnconstrainedList(c.Initiatives) {
		out.Initiatives = append([]string(nil), c.Initiatives...)
	}
	if !IsUnconstrainedList(c.Stages) {
		out.Stages = append([]string(nil), c.Stages...)
	}
	if !IsUnconstrainedList(c.Assignees) {
		out.Assignees = append([]string(nil), c.Assignees...)
	}
	return out
}

// IsEmpty reports whether no criterion constrains anything.
func (c FilterCriteria) IsEmpty() bool {
	return IsUnconstrainedValue(c.Area) &&
		IsUnconstrainedValue(c.Cycle) &&
		IsUnconstrainedList(c.Initiatives) &&
		IsUnconstrainedList(c.Stages) &&
		IsUnconstrainedList(c.Assignees)
}

// FilterResult is the output of the cascading filter. Counts reflect the
// post-filter structure.
type FilterResult struct {
	Data              NestedCycleData `json:"data"`
	AppliedFilters    FilterCriteria  `json:"appliedFilters"`
	TotalInitiatives  int             `json:"totalInitiatives"`
	TotalRoadmapItems int             `json:"totalRoadmapItems"`
	TotalReleaseItems int             `json:"totalReleaseItems"`
}
