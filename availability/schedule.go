/*
schedule.go - Schedule expansion

PURPOSE:
  A Schedule is the composite input shape fed to the engine: one record
  can carry a recurring weekly pattern, ad-hoc absolute availability
  windows layered on top of (or instead of) it, and blackout periods.
  Expansion turns all of that into plain bookable intervals, and
  partitioning slices those into duration/offset sub-slots.

PIPELINE:
  weekly pattern --expand--> absolute windows
                 --union ad-hoc availabilities, combine, clamp-->
                 --subtract blackouts--> bookable intervals
                 --partition--> raw slot stream (per schedule)

SEE ALSO:
  - timetable.go: weekly expansion
  - timeslot.go:  counting the concatenated slot stream
*/
package availability

// Schedule combines a recurring weekly pattern with ad-hoc absolute
// overrides. Any of the fields may be empty; an entirely empty schedule
// offers nothing.
type Schedule struct {
	Weekly         WeeklyTimetable
	Availabilities []Interval
	Blackouts      []Interval
}

// expand resolves the weekly pattern over bounds, unions it with the
// explicit availabilities, combines and clamps the union, and clamps the
// blackouts. The returned schedule carries only absolute intervals.
func (s Schedule) expand(bounds Interval) (Schedule, error) {
	windows, err := s.Weekly.expandOver(bounds)
	if err != nil {
		return Schedule{}, err
	}

	union := make([]Interval, 0, len(windows)+len(s.Availabilities))
	union = append(union, windows...)
	union = append(union, s.Availabilities...)

	return Schedule{
		Availabilities: ClampToRange(Combine(union), bounds),
		Blackouts:      ClampToRange(s.Blackouts, bounds),
	}, nil
}

// Intervals returns the schedule's bookable windows inside bounds: the
// expanded availabilities with the (combined) blackouts subtracted.
func (s Schedule) Intervals(bounds Interval) ([]Interval, error) {
	expanded, err := s.expand(bounds)
	if err != nil {
		return nil, err
	}

	blackouts := Combine(expanded.Blackouts)
	var out []Interval
	for _, window := range expanded.Availabilities {
		out = append(out, SubtractAll(window, blackouts)...)
	}
	return out, nil
}

// PartitionSchedules expands every schedule to its bookable windows and
// slices each window into duration/offset sub-slots. The streams are
// concatenated in schedule order; counting and deduplication happen later
// during aggregation.
func PartitionSchedules(schedules []Schedule, bounds Interval, durationMinutes, offsetMinutes int) ([]Interval, error) {
	var out []Interval
	for _, s := range schedules {
		windows, err := s.Intervals(bounds)
		if err != nil {
			return nil, err
		}
		for _, window := range windows {
			out = append(out, NewPartitioner(window, durationMinutes, offsetMinutes).Collect()...)
		}
	}
	return out, nil
}
