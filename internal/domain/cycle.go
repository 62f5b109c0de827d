package domain

import "time"

// Cycle is a time-boxed delivery window. Dates are nil when the extract
// omitted them or carried an unparseable value.
type Cycle struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	DeliveryDate *time.Time `json:"deliveryDate,omitempty"`
	State        CycleState `json:"state"`
}

// EffectiveEnd returns the end date, falling back to the delivery date.
func (c *Cycle) EffectiveEnd() *time.Time {
	if c.EndDate != nil {
		return c.EndDate
	}
	return c.DeliveryDate
}

// CycleMetadata is display data derived from a Cycle and a reference time.
// It is never written back onto the Cycle.
type CycleMetadata struct {
	StartMonth           string `json:"startMonth"`
	EndMonth             string `json:"endMonth"`
	DaysInCycle          int    `json:"daysInCycle"`
	DaysFromStartOfCycle int    `json:"daysFromStartOfCycle"`
	CurrentDayPercentage int    `json:"currentDayPercentage"`
}

// CycleView pairs a cycle with its derived metadata.
type CycleView struct {
	Cycle    Cycle         `json:"cycle"`
	Metadata CycleMetadata `json:"metadata"`
}

// ActiveCycle returns the first cycle in the active state, or nil.
func ActiveCycle(cycles []Cycle) *Cycle {
	for i := range cycles {
		if cycles[i].State == CycleActive {
			return &cycles[i]
		}
	}
	return nil
}
