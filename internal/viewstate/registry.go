// Package viewstate owns which filter keys are legal in which view and the
// immutable per-session filter state built on top of that registry.
package viewstate

import (
	"fmt"
	"slices"
)

// View names a presentation view.
type View string

const (
	ViewRoadmap       View = "roadmap"
	ViewCycleOverview View = "cycle-overview"
)

// FilterKey names one filter criterion.
type FilterKey string

const (
	KeyArea        FilterKey = "area"
	KeyInitiatives FilterKey = "initiatives"
	KeyStages      FilterKey = "stages"
	KeyAssignees   FilterKey = "assignees"
	KeyCycle       FilterKey = "cycle"
)

// AllKeys lists the filter keys the cascading filter understands.
var AllKeys = []FilterKey{KeyArea, KeyInitiatives, KeyStages, KeyAssignees, KeyCycle}

// IsScalar reports whether the key holds a single value rather than a list.
func (k FilterKey) IsScalar() bool {
	return k == KeyArea || k == KeyCycle
}

// Scope says whether a key lives in the common bucket or in per-view buckets.
type Scope string

const (
	ScopeCommon Scope = "common"
	ScopeView   Scope = "view"
)

// Category declares where one filter key is valid.
type Category struct {
	Key   FilterKey
	Scope Scope
	Views []View // only for ScopeView
}

// Registry is the validated, read-only mapping of filter keys to views.
type Registry struct {
	views       []View
	defaultView View
	categories  map[FilterKey]Category
}

// NewRegistry validates the declarations and builds a Registry. Every view
// named by a category must be declared; a violation is a ConfigError.
func NewRegistry(views []View, defaultView View, categories []Category) (*Registry, error) {
	var problems []string

	if len(views) == 0 {
		problems = append(problems, "at least one view must be declared")
	}
	declared := make(map[View]bool, len(views))
	for _, v := range views {
		if v == "" {
			problems = append(problems, "view names must not be empty")
			continue
		}
		if declared[v] {
			problems = append(problems, fmt.Sprintf("view %q declared twice", v))
		}
		declared[v] = true
	}

	if defaultView == "" && len(views) > 0 {
		defaultView = views[0]
	}
	if defaultView != "" && !declared[defaultView] {
		problems = append(problems, fmt.Sprintf("default view %q is not declared", defaultView))
	}

	cats := make(map[FilterKey]Category, len(categories))
	for _, c := range categories {
		if !slices.Contains(AllKeys, c.Key) {
			problems = append(problems, fmt.Sprintf("unknown filter key %q", c.Key))
			continue
		}
		if _, dup := cats[c.Key]; dup {
			problems = append(problems, fmt.Sprintf("filter key %q declared twice", c.Key))
			continue
		}
		switch c.Scope {
		case ScopeCommon:
			if len(c.Views) > 0 {
				problems = append(problems, fmt.Sprintf("filter key %q is common but lists views", c.Key))
			}
		case ScopeView:
			if len(c.Views) == 0 {
				problems = append(problems, fmt.Sprintf("filter key %q is view-specific but lists no views", c.Key))
			}
			for _, v := range c.Views {
				if !declared[v] {
					problems = append(problems, fmt.Sprintf("filter key %q references undeclared view %q", c.Key, v))
				}
			}
		default:
			problems = append(problems, fmt.Sprintf("filter key %q has invalid scope %q", c.Key, c.Scope))
		}
		c.Views = slices.Clone(c.Views)
		cats[c.Key] = c
	}

	if len(problems) > 0 {
		return nil, &ConfigError{Problems: problems}
	}
	return &Registry{
		views:       slices.Clone(views),
		defaultView: defaultView,
		categories:  cats,
	}, nil
}

// MustRegistry is NewRegistry for compiled-in declarations; it panics on a
// configuration bug.
func MustRegistry(views []View, defaultView View, categories []Category) *Registry {
	r, err := NewRegistry(views, defaultView, categories)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultCategories are the built-in filter declarations: area and
// initiatives everywhere, the delivery-detail filters only in the cycle
// overview.
func DefaultCategories() []Category {
	return []Category{
		{Key: KeyArea, Scope: ScopeCommon},
		{Key: KeyInitiatives, Scope: ScopeCommon},
		{Key: KeyStages, Scope: ScopeView, Views: []View{ViewCycleOverview}},
		{Key: KeyAssignees, Scope: ScopeView, Views: []View{ViewCycleOverview}},
		{Key: KeyCycle, Scope: ScopeView, Views: []View{ViewCycleOverview}},
	}
}

// DefaultRegistry returns the built-in registry.
func DefaultRegistry() *Registry {
	return MustRegistry([]View{ViewRoadmap, ViewCycleOverview}, ViewRoadmap, DefaultCategories())
}

// Views returns the declared views in declaration order.
func (r *Registry) Views() []View {
	return slices.Clone(r.views)
}

// DefaultView returns the view a new session starts in.
func (r *Registry) DefaultView() View {
	return r.defaultView
}

// HasView reports whether v is declared.
func (r *Registry) HasView(v View) bool {
	return slices.Contains(r.views, v)
}

// Category returns the declaration of key.
func (r *Registry) Category(key FilterKey) (Category, bool) {
	c, ok := r.categories[key]
	return c, ok
}

// AllowedIn reports whether key may be set while view is current.
func (r *Registry) AllowedIn(key FilterKey, view View) bool {
	c, ok := r.categories[key]
	if !ok {
		return false
	}
	return c.Scope == ScopeCommon || slices.Contains(c.Views, view)
}

// KeysFor lists the keys valid in view, in canonical order.
func (r *Registry) KeysFor(view View) []FilterKey {
	var keys []FilterKey
	for _, k := range AllKeys {
		if r.AllowedIn(k, view) {
			keys = append(keys, k)
		}
	}
	return keys
}
