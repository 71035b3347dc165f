/*
engine.go - The availability orchestrator

PURPOSE:
  Composes the lower-level passes into the two operations this package
  exposes:

    GetAvailabilities:    counted, capacity-accurate slots for N schedules
    EarliestAvailability: first instant satisfying a minimum lead time

COMPOSITION ORDER (GetAvailabilities):
  1. normalize defaults, validate
  2. expand + partition all schedules into the raw slot stream
  3. aggregate into counted slots
  4. remove slots overlapping global blackouts (all-or-nothing)
  5. reduce against allocations (unit-by-unit capacity accounting)
  6. backfill business hours as zero-count placeholders, if configured
  7. remove slots overlapping holidays

  Steps 4/5 vs 7 bracket the backfill deliberately: allocations must not
  touch the zero-count placeholders, while holidays must remove them.

CLOCK:
  The engine is pure except for the earliest-availability default start,
  which comes from the injectable Now. Tests pin it; production uses
  time.Now.
*/
package availability

import "time"

// Engine computes availability. The zero value is not usable; construct
// with NewEngine.
type Engine struct {
	// Now supplies the current instant for defaulting. Never consulted
	// when the caller provides explicit bounds.
	Now func() time.Time
}

// NewEngine returns an engine backed by the real clock.
func NewEngine() *Engine {
	return &Engine{Now: time.Now}
}

// GetAvailabilities computes the bookable slots for the request. It fails
// only on validation; an empty result is a normal, non-nil empty slice.
func (e *Engine) GetAvailabilities(req AvailabilityRequest) ([]Timeslot, error) {
	req = req.withDefaults()
	if err := req.validate(); err != nil {
		return nil, err
	}
	bounds := req.bounds()

	raw, err := PartitionSchedules(req.Schedules, bounds, req.DurationMinutes, req.OffsetMinutes)
	if err != nil {
		return nil, err
	}

	slots := Aggregate(raw)
	slots = RemoveOverlapping(slots, req.Blackouts)
	slots = Reduce(slots, req.Allocations)

	if req.BusinessHours != nil {
		window, err := PartitionSchedules(
			[]Schedule{{Weekly: req.BusinessHours}},
			bounds, req.DurationMinutes, req.OffsetMinutes,
		)
		if err != nil {
			return nil, err
		}
		slots = Backfill(slots, window)
	}

	slots = RemoveOverlapping(slots, req.Holidays)

	if slots == nil {
		slots = []Timeslot{}
	}
	return slots, nil
}

// EarliestAvailability returns the first instant at which the schedule has
// accumulated the requested minimum notice. The scan walks the schedule's
// bookable windows in order, consuming the notice budget from each; the
// answer lands inside the window where the budget reaches zero. Exhausting
// every window without covering the budget is a normal "not found" result,
// reported via ok=false, not an error.
func (e *Engine) EarliestAvailability(req EarliestNoticeRequest) (at time.Time, ok bool, err error) {
	req = req.withDefaults(e.Now())
	if err := req.validate(); err != nil {
		return time.Time{}, false, err
	}

	windows, err := req.Schedule.Intervals(req.bounds())
	if err != nil {
		return time.Time{}, false, err
	}

	budget := req.MinimumNoticeMinutes
	for _, window := range Sort(windows) {
		length := window.Minutes()
		if length < budget {
			budget -= length
			continue
		}
		return window.Start.Add(time.Duration(budget) * time.Minute), true, nil
	}
	return time.Time{}, false, nil
}
