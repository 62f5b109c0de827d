package viewstate

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cycleboard/internal/domain"
)

// State is the filter state of one session: the current view plus the
// common and per-view buckets. It is a value; every transition returns a
// new State and never alters the receiver.
type State struct {
	registry *Registry
	view     View
	filters  domain.ViewFilterState
}

// NewState starts a session in the registry's default view with no filters.
func NewState(reg *Registry) State {
	return State{registry: reg, view: reg.DefaultView()}
}

// Restore rebuilds a State from a persisted session. A stored view that is
// no longer declared falls back to the default view, and values for keys
// that are undeclared or out of scope are dropped.
func Restore(reg *Registry, session domain.ViewSession) State {
	s := NewState(reg)
	if v := View(session.CurrentView); reg.HasView(v) {
		s.view = v
	}

	for key, vals := range session.Filters.Common {
		c, ok := reg.Category(FilterKey(key))
		if !ok || c.Scope != ScopeCommon {
			continue
		}
		s.filters.Common = withValue(s.filters.Common, FilterKey(key), vals)
	}
	for view, bucket := range session.Filters.Specific {
		if !reg.HasView(View(view)) {
			continue
		}
		for key, vals := range bucket {
			c, ok := reg.Category(FilterKey(key))
			if !ok || c.Scope != ScopeView || !reg.AllowedIn(FilterKey(key), View(view)) {
				continue
			}
			if s.filters.Specific == nil {
				s.filters.Specific = make(map[string]domain.FilterValues)
			}
			s.filters.Specific[view] = withValue(s.filters.Specific[view], FilterKey(key), vals)
		}
	}
	return s
}

// Registry returns the registry the state validates against.
func (s State) Registry() *Registry { return s.registry }

// CurrentView returns the active view.
func (s State) CurrentView() View { return s.view }

// Filters returns a copy of both buckets.
func (s State) Filters() domain.ViewFilterState { return s.filters.Clone() }

// SwitchView changes the current view. Selections made in other views are
// kept, so switching back restores them.
func (s State) SwitchView(v View) (State, error) {
	if !s.registry.HasView(v) {
		return s, &ValidationError{
			Code:    ErrUnknownView,
			View:    v,
			Message: fmt.Sprintf("view %q is not declared", v),
		}
	}
	next := s
	next.view = v
	return next, nil
}

// UpdateFilter sets key to values in the bucket that owns it. Scalar keys
// accept at most one value; no values clears the key. A key not valid for
// the current view yields a ValidationError and the unchanged state.
func (s State) UpdateFilter(key FilterKey, values ...string) (State, error) {
	c, ok := s.registry.Category(key)
	if !ok {
		return s, &ValidationError{
			Code:    ErrUnknownKey,
			Key:     key,
			View:    s.view,
			Message: fmt.Sprintf("filter %q is not registered", key),
		}
	}
	if !s.registry.AllowedIn(key, s.view) {
		return s, &ValidationError{
			Code:    ErrKeyNotInView,
			Key:     key,
			View:    s.view,
			Message: fmt.Sprintf("filter %q is not available in view %q", key, s.view),
		}
	}
	vals := cleanValues(values)
	if key.IsScalar() && len(vals) > 1 {
		return s, &ValidationError{
			Code:    ErrInvalidValue,
			Key:     key,
			View:    s.view,
			Message: fmt.Sprintf("filter %q takes a single value, got %d", key, len(vals)),
		}
	}

	next := s
	next.filters = s.filters.Clone()
	if c.Scope == ScopeCommon {
		next.filters.Common = withValue(next.filters.Common, key, vals)
		return next, nil
	}
	if next.filters.Specific == nil {
		next.filters.Specific = make(map[string]domain.FilterValues)
	}
	bucket := withValue(next.filters.Specific[string(s.view)], key, vals)
	if bucket == nil {
		delete(next.filters.Specific, string(s.view))
	} else {
		next.filters.Specific[string(s.view)] = bucket
	}
	return next, nil
}

// ClearFilters empties the common bucket and the current view's bucket.
// Other views keep their selections.
func (s State) ClearFilters() State {
	next := s
	next.filters = s.filters.Clone()
	next.filters.Common = nil
	delete(next.filters.Specific, string(s.view))
	return next
}

// ActiveFilters merges the common bucket with the current view's bucket
// into the criteria consumed by the cascading filter.
func (s State) ActiveFilters() domain.FilterCriteria {
	var c domain.FilterCriteria
	get := func(key FilterKey) []string {
		if !s.registry.AllowedIn(key, s.view) {
			return nil
		}
		cat, _ := s.registry.Category(key)
		if cat.Scope == ScopeCommon {
			return s.filters.Common[string(key)]
		}
		return s.filters.Specific[string(s.view)][string(key)]
	}

	if v := get(KeyArea); len(v) > 0 {
		c.Area = v[0]
	}
	if v := get(KeyCycle); len(v) > 0 {
		c.Cycle = v[0]
	}
	c.Initiatives = append([]string(nil), get(KeyInitiatives)...)
	c.Stages = append([]string(nil), get(KeyStages)...)
	c.Assignees = append([]string(nil), get(KeyAssignees)...)
	return c
}

// Session converts the state into its persisted form.
func (s State) Session(id string, now time.Time) domain.ViewSession {
	return domain.ViewSession{
		ID:          id,
		CurrentView: string(s.view),
		Filters:     s.filters.Clone(),
		UpdatedAt:   now,
	}
}

// withValue returns bucket with key set, or removed when vals is empty or
// unconstrained. bucket must already be a private copy.
func withValue(bucket domain.FilterValues, key FilterKey, vals []string) domain.FilterValues {
	vals = cleanValues(vals)
	if unconstrained(key, vals) {
		delete(bucket, string(key))
		if len(bucket) == 0 {
			return nil
		}
		return bucket
	}
	if bucket == nil {
		bucket = make(domain.FilterValues)
	}
	bucket[string(key)] = vals
	return bucket
}

func unconstrained(key FilterKey, vals []string) bool {
	if key.IsScalar() {
		return len(vals) == 0 || domain.IsUnconstrainedValue(vals[0])
	}
	return domain.IsUnconstrainedList(vals)
}

// cleanValues trims, drops blanks and removes duplicates, keeping order.
func cleanValues(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
