package domain

import "time"

// Snapshot is a cached raw extract from the issue tracker. The counts are
// taken when the extract is imported so listings need not re-parse Raw.
type Snapshot struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetchedAt"`
	Raw       []byte    `json:"-"`

	InitiativeCount  int `json:"initiativeCount"`
	RoadmapItemCount int `json:"roadmapItemCount"`
	ReleaseItemCount int `json:"releaseItemCount"`
	WarningCount     int `json:"warningCount"`
}
