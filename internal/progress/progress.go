// Package progress computes effort-weighted progress for the release-item
// hierarchy and cycle display metadata. All functions are pure.
package progress

import "github.com/alexanderramin/cycleboard/internal/domain"

// ComputeReleaseItemProgress sums effort by status over a set of release
// items. Replanned items are skipped entirely. Items with zero effort
// (missing or non-numeric in the extract) still count toward
// ReleaseItemsCount.
func ComputeReleaseItemProgress(items []domain.ReleaseItem) domain.ProgressMetrics {
	var m domain.ProgressMetrics
	for i := range items {
		status := items[i].NormalizedStatus()
		if status == domain.StatusReplanned {
			continue
		}
		weeks := items[i].Effort
		if weeks < 0 {
			weeks = 0
		}

		m.ReleaseItemsCount++
		m.Weeks += weeks
		switch status {
		case domain.StatusDone:
			m.WeeksDone += weeks
			m.ReleaseItemsDoneCount++
		case domain.StatusInProgress:
			m.WeeksInProgress += weeks
		case domain.StatusTodo:
			m.WeeksTodo += weeks
		case domain.StatusCancelled:
			m.WeeksCancelled += weeks
		case domain.StatusPostponed:
			m.WeeksPostponed += weeks
		}
	}
	return derive(m)
}

// AggregateProgressMetrics sums the raw counters of every child and
// re-derives the percentages from the totals.
func AggregateProgressMetrics(children []domain.ProgressMetrics) domain.ProgressMetrics {
	var m domain.ProgressMetrics
	for _, c := range children {
		m.Weeks += c.Weeks
		m.WeeksDone += c.WeeksDone
		m.WeeksInProgress += c.WeeksInProgress
		m.WeeksTodo += c.WeeksTodo
		m.WeeksCancelled += c.WeeksCancelled
		m.WeeksPostponed += c.WeeksPostponed
		m.ReleaseItemsCount += c.ReleaseItemsCount
		m.ReleaseItemsDoneCount += c.ReleaseItemsDoneCount
	}
	return derive(m)
}

// RoadmapItemProgress computes a roadmap item's metrics from its release items.
func RoadmapItemProgress(rm *domain.RoadmapItem) domain.ProgressMetrics {
	return ComputeReleaseItemProgress(rm.ReleaseItems)
}

// InitiativeProgress rolls up the metrics already stored on an initiative's
// roadmap items.
func InitiativeProgress(ini *domain.Initiative) domain.ProgressMetrics {
	children := make([]domain.ProgressMetrics, len(ini.RoadmapItems))
	for i := range ini.RoadmapItems {
		children[i] = ini.RoadmapItems[i].Progress
	}
	return AggregateProgressMetrics(children)
}

// derive normalizes week counters and fills every derived field.
// WeeksNotToDo is recomputed here so it cannot drift from its parts.
func derive(m domain.ProgressMetrics) domain.ProgressMetrics {
	m.Weeks = NormalizeOneDecimal(m.Weeks)
	m.WeeksDone = NormalizeOneDecimal(m.WeeksDone)
	m.WeeksInProgress = NormalizeOneDecimal(m.WeeksInProgress)
	m.WeeksTodo = NormalizeOneDecimal(m.WeeksTodo)
	m.WeeksCancelled = NormalizeOneDecimal(m.WeeksCancelled)
	m.WeeksPostponed = NormalizeOneDecimal(m.WeeksPostponed)
	m.WeeksNotToDo = NormalizeOneDecimal(m.WeeksCancelled + m.WeeksPostponed)

	m.Progress = percent(m.WeeksDone, m.Weeks)
	m.ProgressWithInProgress = percent(m.WeeksDone+m.WeeksInProgress, m.Weeks)
	m.ProgressByItemCount = percent(float64(m.ReleaseItemsDoneCount), float64(m.ReleaseItemsCount))
	m.PercentageNotToDo = percent(m.WeeksNotToDo, m.Weeks)
	return m
}
