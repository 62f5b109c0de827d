package domain

// ProgressMetrics holds effort-weighted progress for one level of the
// hierarchy. Raw counters are summable; percentages are always derived
// from counters and never averaged.
type ProgressMetrics struct {
	Weeks                 float64 `json:"weeks"`
	WeeksDone             float64 `json:"weeksDone"`
	WeeksInProgress       float64 `json:"weeksInProgress"`
	WeeksTodo             float64 `json:"weeksTodo"`
	WeeksCancelled        float64 `json:"weeksCancelled"`
	WeeksPostponed        float64 `json:"weeksPostponed"`
	WeeksNotToDo          float64 `json:"weeksNotToDo"`
	ReleaseItemsCount     int     `json:"releaseItemsCount"`
	ReleaseItemsDoneCount int     `json:"releaseItemsDoneCount"`

	Progress               int `json:"progress"`
	ProgressWithInProgress int `json:"progressWithInProgress"`
	ProgressByItemCount    int `json:"progressByItemCount"`
	PercentageNotToDo      int `json:"percentageNotToDo"`
}
