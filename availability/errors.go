/*
errors.go - Validation error taxonomy

PURPOSE:
  All engine failures are immediate, non-retryable validation errors,
  surfaced to the caller before any interval computation begins. A failure
  therefore never leaves partially computed output behind.

USAGE:
  Callers match with errors.Is:

    if errors.Is(err, availability.ErrInvalidDateRange) { ... }

  or classify generically:

    if availability.IsValidationError(err) { // HTTP 400 territory }

SEE ALSO:
  - validate.go: where these are raised
*/
package availability

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDateRange is returned when a supplied date range is not
	// strictly ordered (start must precede end).
	ErrInvalidDateRange = errors.New("invalid date range: start must be before end")

	// ErrInvalidDuration is returned when the slot duration is not a
	// positive number of minutes.
	ErrInvalidDuration = errors.New("invalid duration: must be a positive number of minutes")

	// ErrInvalidOffset is returned when an explicitly supplied slot offset
	// is not a positive number of minutes.
	ErrInvalidOffset = errors.New("invalid offset: must be a positive number of minutes")

	// ErrInvalidTimeFormat is returned when a time-of-day string does not
	// parse as HH:mm.
	ErrInvalidTimeFormat = errors.New("invalid time of day: expected HH:mm")

	// ErrInvalidScheduleTimeRange is returned when a weekly schedule range
	// resolves to from >= to on a concrete day.
	ErrInvalidScheduleTimeRange = errors.New("invalid schedule time range: from must be before to")

	// ErrInvalidBlackoutRange is returned for a malformed blackout interval,
	// whether on a schedule or supplied globally.
	ErrInvalidBlackoutRange = errors.New("invalid blackout range: start must be before end")

	// ErrInvalidAvailabilityRange is returned for a malformed ad-hoc
	// availability interval on a schedule.
	ErrInvalidAvailabilityRange = errors.New("invalid availability range: start must be before end")

	// ErrInvalidAllocationRange is returned for a malformed allocation
	// interval.
	ErrInvalidAllocationRange = errors.New("invalid allocation range: start must be before end")

	// ErrInvalidBusinessHoursRange is returned when a business-hours range
	// resolves to from >= to on a concrete day.
	ErrInvalidBusinessHoursRange = errors.New("invalid business hours range: from must be before to")

	// ErrInvalidMinimumNotice is returned when the minimum notice is not a
	// positive number of minutes.
	ErrInvalidMinimumNotice = errors.New("invalid minimum notice: must be a positive number of minutes")
)

// IsValidationError reports whether err belongs to the validation taxonomy
// above. Transport layers use this to distinguish client mistakes from
// internal failures.
func IsValidationError(err error) bool {
	for _, sentinel := range []error{
		ErrInvalidDateRange,
		ErrInvalidDuration,
		ErrInvalidOffset,
		ErrInvalidTimeFormat,
		ErrInvalidScheduleTimeRange,
		ErrInvalidBlackoutRange,
		ErrInvalidAvailabilityRange,
		ErrInvalidAllocationRange,
		ErrInvalidBusinessHoursRange,
		ErrInvalidMinimumNotice,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
