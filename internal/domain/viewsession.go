package domain

import "time"

// FilterValues maps a filter key to its selected values. Scalar keys hold
// at most one value.
type FilterValues map[string][]string

// ViewFilterState splits filter selections into a common bucket, valid in
// every view, and one bucket per declared view for view-specific keys.
type ViewFilterState struct {
	Common   FilterValues            `json:"common,omitempty"`
	Specific map[string]FilterValues `json:"specific,omitempty"`
}

// Clone returns a deep copy.
func (s ViewFilterState) Clone() ViewFilterState {
	out := ViewFilterState{Common: s.Common.Clone()}
	if s.Specific != nil {
		out.Specific = make(map[string]FilterValues, len(s.Specific))
		for view, vals := range s.Specific {
			out.Specific[view] = vals.Clone()
		}
	}
	return out
}

// Clone returns a deep copy.
func (v FilterValues) Clone() FilterValues {
	if v == nil {
		return nil
	}
	out := make(FilterValues, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

// ViewSession is the persisted filter state of one logical session.
type ViewSession struct {
	ID          string
	CurrentView string
	Filters     ViewFilterState
	UpdatedAt   time.Time
}
