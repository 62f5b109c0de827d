package progress

import (
	"time"

	"github.com/alexanderramin/cycleboard/internal/domain"
)

const day = 24 * time.Hour

// CalculateCycleMetadata derives month labels and elapsed-day figures for a
// cycle relative to now. A nil cycle or missing dates yield zero metadata.
func CalculateCycleMetadata(cycle *domain.Cycle, now time.Time) domain.CycleMetadata {
	var md domain.CycleMetadata
	if cycle == nil {
		return md
	}
	end := cycle.EffectiveEnd()
	if cycle.StartDate != nil {
		md.StartMonth = cycle.StartDate.Format("Jan")
	}
	if end != nil {
		md.EndMonth = end.Format("Jan")
	}
	if cycle.StartDate == nil || end == nil {
		return md
	}

	start := *cycle.StartDate
	md.DaysInCycle = wholeDays(start, *end)
	if md.DaysInCycle < 0 {
		md.DaysInCycle = 0
	}

	md.DaysFromStartOfCycle = clamp(wholeDays(start, now), 0, md.DaysInCycle)

	if md.DaysInCycle > 0 {
		md.CurrentDayPercentage = clamp(percent(float64(md.DaysFromStartOfCycle), float64(md.DaysInCycle)), 0, 100)
	}
	return md
}

// CycleViews pairs every cycle with its metadata, preserving order.
func CycleViews(cycles []domain.Cycle, now time.Time) []domain.CycleView {
	views := make([]domain.CycleView, len(cycles))
	for i := range cycles {
		views[i] = domain.CycleView{
			Cycle:    cycles[i],
			Metadata: CalculateCycleMetadata(&cycles[i], now),
		}
	}
	return views
}

// wholeDays returns the number of complete days from a to b (negative when
// b precedes a).
func wholeDays(a, b time.Time) int {
	return int(b.Sub(a) / day)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
