package app

import (
	"time"

	"github.com/alexanderramin/cycleboard/internal/domain"
)

type BoardRequest struct {
	// SnapshotID selects a cached extract; empty means the latest.
	SnapshotID string
	// SessionID restores persisted view state; empty starts from defaults.
	SessionID string
	// View overrides the session's current view for this request only.
	View string
	// Overrides are applied in order on top of the session filters and
	// are never persisted.
	Overrides []FilterOverride
	Now       *time.Time
}

type BoardResponse struct {
	SnapshotID    string
	FetchedAt     time.Time
	View          string
	AvailableKeys []string
	Criteria      domain.FilterCriteria
	Result        domain.FilterResult
	Cycles        []domain.CycleView
	ActiveCycle   *domain.CycleView
}

type BoardErrorCode string

const (
	BoardErrNoSnapshot      BoardErrorCode = "NO_SNAPSHOT"
	BoardErrCorruptSnapshot BoardErrorCode = "CORRUPT_SNAPSHOT"
)

type BoardError struct {
	Code    BoardErrorCode
	Message string
}

func (e *BoardError) Error() string {
	return string(e.Code) + ": " + e.Message
}
