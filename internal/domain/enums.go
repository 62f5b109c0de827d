package domain

import "strings"

type CycleState string

const (
	CycleActive CycleState = "active"
	CycleClosed CycleState = "closed"
	CycleFuture CycleState = "future"
)

// ReleaseStatus is the normalized lifecycle status of a release item.
type ReleaseStatus string

const (
	StatusTodo       ReleaseStatus = "todo"
	StatusInProgress ReleaseStatus = "inprogress"
	StatusDone       ReleaseStatus = "done"
	StatusCancelled  ReleaseStatus = "cancelled"
	StatusPostponed  ReleaseStatus = "postponed"
	StatusReplanned  ReleaseStatus = "replanned"
	StatusUnknown    ReleaseStatus = ""
)

// KnownStatuses lists every normalized status in display order.
var KnownStatuses = []ReleaseStatus{
	StatusTodo, StatusInProgress, StatusDone,
	StatusCancelled, StatusPostponed, StatusReplanned,
}

// ParseReleaseStatus matches a tracker status string case-insensitively.
// Separators are ignored, so "In Progress", "in_progress" and "in-progress"
// all map to StatusInProgress. Unrecognized values return StatusUnknown.
func ParseReleaseStatus(s string) ReleaseStatus {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	switch key {
	case "todo":
		return StatusTodo
	case "inprogress":
		return StatusInProgress
	case "done":
		return StatusDone
	case "cancelled", "canceled":
		return StatusCancelled
	case "postponed":
		return StatusPostponed
	case "replanned":
		return StatusReplanned
	}
	return StatusUnknown
}

// ParseCycleState normalizes a cycle lifecycle state. Unknown values are
// returned lowercased so they still display.
func ParseCycleState(s string) CycleState {
	return CycleState(strings.ToLower(strings.TrimSpace(s)))
}
