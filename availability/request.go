/*
request.go - Engine inputs and default filling

PURPOSE:
  The two request shapes accepted by the engine, plus the explicit
  normalization step that fills optional fields before validation runs.
  Defaults are never applied implicitly mid-computation: a request is
  normalized once, validated once, then computed.
*/
package availability

import "time"

// =============================================================================
// AVAILABILITY REQUEST
// =============================================================================

// AvailabilityRequest describes one availability computation.
type AvailabilityRequest struct {
	// Start and End bound the computation; Start must strictly precede End.
	Start time.Time
	End   time.Time

	// DurationMinutes is the slot length. OffsetMinutes is the distance
	// between consecutive slot starts; zero means "same as duration".
	DurationMinutes int
	OffsetMinutes   int

	// Schedules are the availability sources; at least one is required.
	Schedules []Schedule

	// Blackouts remove any overlapping slot outright.
	Blackouts []Interval

	// Allocations each consume one unit of capacity from every slot they
	// overlap.
	Allocations []Interval

	// BusinessHours, when present, backfills explicit zero-count slots for
	// business windows with no real offer.
	BusinessHours WeeklyTimetable

	// Holidays remove any overlapping slot outright.
	Holidays []Interval
}

// withDefaults returns a copy with optional fields filled.
func (r AvailabilityRequest) withDefaults() AvailabilityRequest {
	if r.OffsetMinutes == 0 {
		r.OffsetMinutes = r.DurationMinutes
	}
	return r
}

// bounds returns the primary date range as an interval.
func (r AvailabilityRequest) bounds() Interval {
	return Interval{Start: r.Start, End: r.End}
}

// =============================================================================
// EARLIEST NOTICE REQUEST
// =============================================================================

// DefaultNoticeWindow is how far ahead the earliest-availability search
// looks when the caller does not bound it.
const DefaultNoticeWindow = 14 * 24 * time.Hour

// EarliestNoticeRequest asks for the first instant at which the schedule
// has accumulated MinimumNoticeMinutes of availability.
type EarliestNoticeRequest struct {
	// Start defaults to the engine clock's now; End to Start plus
	// DefaultNoticeWindow.
	Start time.Time
	End   time.Time

	MinimumNoticeMinutes int

	Schedule Schedule
}

// withDefaults returns a copy with the range resolved against now.
func (r EarliestNoticeRequest) withDefaults(now time.Time) EarliestNoticeRequest {
	if r.Start.IsZero() {
		r.Start = now
	}
	if r.End.IsZero() {
		r.End = r.Start.Add(DefaultNoticeWindow)
	}
	return r
}

func (r EarliestNoticeRequest) bounds() Interval {
	return Interval{Start: r.Start, End: r.End}
}
