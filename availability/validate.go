/*
validate.go - Structural request validation

PURPOSE:
  All validation happens eagerly, before any interval computation, so a
  failure never leaves partially computed output. Validation is purely
  structural: it looks at the request alone and never consults stored
  state.

SEE ALSO:
  - errors.go: the error taxonomy raised here
*/
package availability

import "fmt"

// validate checks an already-normalized availability request.
func (r AvailabilityRequest) validate() error {
	if !r.bounds().IsOrdered() {
		return fmt.Errorf("%w: got %s", ErrInvalidDateRange, r.bounds())
	}
	if r.DurationMinutes <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDuration, r.DurationMinutes)
	}
	if r.OffsetMinutes <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidOffset, r.OffsetMinutes)
	}

	for _, s := range r.Schedules {
		if err := validateSchedule(s); err != nil {
			return err
		}
	}
	if err := validateIntervals(r.Blackouts, ErrInvalidBlackoutRange); err != nil {
		return err
	}
	if err := validateIntervals(r.Allocations, ErrInvalidAllocationRange); err != nil {
		return err
	}
	if err := validateTimetable(r.BusinessHours, ErrInvalidBusinessHoursRange); err != nil {
		return err
	}
	// The taxonomy names no holiday-specific kind; a malformed holiday
	// interval is an invalid date range.
	if err := validateIntervals(r.Holidays, ErrInvalidDateRange); err != nil {
		return err
	}
	return nil
}

// validate checks an already-normalized earliest-notice request.
func (r EarliestNoticeRequest) validate() error {
	if r.MinimumNoticeMinutes <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMinimumNotice, r.MinimumNoticeMinutes)
	}
	if !r.bounds().IsOrdered() {
		return fmt.Errorf("%w: got %s", ErrInvalidDateRange, r.bounds())
	}
	return validateSchedule(r.Schedule)
}

func validateSchedule(s Schedule) error {
	if err := validateTimetable(s.Weekly, ErrInvalidScheduleTimeRange); err != nil {
		return err
	}
	if err := validateIntervals(s.Availabilities, ErrInvalidAvailabilityRange); err != nil {
		return err
	}
	return validateIntervals(s.Blackouts, ErrInvalidBlackoutRange)
}

// validateTimetable checks every range for parseability and strict
// ordering. rangeErr is the kind raised when from >= to; parse failures
// always raise ErrInvalidTimeFormat.
func validateTimetable(tt WeeklyTimetable, rangeErr error) error {
	for _, ranges := range tt {
		for _, r := range ranges {
			fromHour, fromMinute, err := ParseClock(r.From)
			if err != nil {
				return err
			}
			toHour, toMinute, err := ParseClock(r.To)
			if err != nil {
				return err
			}
			if fromHour*60+fromMinute >= toHour*60+toMinute {
				return fmt.Errorf("%w: got %s-%s", rangeErr, r.From, r.To)
			}
		}
	}
	return nil
}

func validateIntervals(intervals []Interval, kind error) error {
	for _, iv := range intervals {
		if !iv.IsOrdered() {
			return fmt.Errorf("%w: got %s", kind, iv)
		}
	}
	return nil
}
