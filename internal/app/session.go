package app

import (
	"time"

	"github.com/alexanderramin/cycleboard/internal/domain"
)

// SessionView is a persisted view session together with what it resolves
// to under the current registry.
type SessionView struct {
	ID            string
	View          string
	Views         []string
	AvailableKeys []string
	Filters       domain.ViewFilterState
	Criteria      domain.FilterCriteria
	UpdatedAt     time.Time
}
