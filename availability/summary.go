/*
summary.go - Utilization reporting over a computed slot list

PURPOSE:
  Summarizes what a GetAvailabilities call produced: how many distinct
  slots, how much capacity, how many minutes are actually on offer, and
  what share of slots is open versus backfilled-empty. Ratios use decimal
  arithmetic to avoid floating-point drift in downstream reporting.
*/
package availability

import "github.com/shopspring/decimal"

// Utilization is a summary of one computed slot list.
type Utilization struct {
	// Slots is the number of distinct (start,end) pairs.
	Slots int

	// Open counts slots with at least one unit of availability;
	// Placeholders counts the zero-count entries added by backfill.
	Open         int
	Placeholders int

	// Capacity is the sum of availability across all slots.
	Capacity int

	// OfferedMinutes is capacity weighted by slot length.
	OfferedMinutes int

	// OpenShare is Open/Slots; MeanCapacity is Capacity/Slots. Both are
	// zero when the slot list is empty.
	OpenShare    decimal.Decimal
	MeanCapacity decimal.Decimal
}

// Summarize computes the utilization of a slot list.
func Summarize(slots []Timeslot) Utilization {
	u := Utilization{
		OpenShare:    decimal.Zero,
		MeanCapacity: decimal.Zero,
	}
	for _, slot := range slots {
		u.Slots++
		if slot.Available > 0 {
			u.Open++
		} else {
			u.Placeholders++
		}
		u.Capacity += slot.Available
		u.OfferedMinutes += slot.Available * slot.Minutes()
	}
	if u.Slots > 0 {
		total := decimal.NewFromInt(int64(u.Slots))
		u.OpenShare = decimal.NewFromInt(int64(u.Open)).Div(total)
		u.MeanCapacity = decimal.NewFromInt(int64(u.Capacity)).Div(total)
	}
	return u
}
