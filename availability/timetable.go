/*
timetable.go - Weekly working-hour patterns

PURPOSE:
  A WeeklyTimetable maps weekdays to wall-clock ranges that recur every
  week. Expanding a timetable over a date range anchors each range to the
  concrete days inside that range, producing absolute intervals the rest
  of the algebra can work with.

SEE ALSO:
  - schedule.go: merges the expansion with ad-hoc overrides and blackouts
*/
package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// TIME OF DAY
// =============================================================================

// TimeOfDayRange is a wall-clock range within a single day, e.g.
// {From: "09:00", To: "17:30"}. From must resolve strictly before To on
// any concrete day.
type TimeOfDayRange struct {
	From string
	To   string
}

// ParseClock parses an "HH:mm" string into hour and minute components.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return hour, minute, nil
}

// resolve anchors the range to a concrete day, in that day's location.
func (r TimeOfDayRange) resolve(day time.Time) (Interval, error) {
	fromHour, fromMinute, err := ParseClock(r.From)
	if err != nil {
		return Interval{}, err
	}
	toHour, toMinute, err := ParseClock(r.To)
	if err != nil {
		return Interval{}, err
	}
	year, month, dom := day.Date()
	loc := day.Location()
	return Interval{
		Start: time.Date(year, month, dom, fromHour, fromMinute, 0, 0, loc),
		End:   time.Date(year, month, dom, toHour, toMinute, 0, 0, loc),
	}, nil
}

// =============================================================================
// WEEKLY TIMETABLE
// =============================================================================

// WeeklyTimetable maps a weekday (time.Sunday .. time.Saturday) to the
// wall-clock ranges worked on that day, recurring every week. Days with no
// entry simply contribute nothing.
type WeeklyTimetable map[time.Weekday][]TimeOfDayRange

// expandOver resolves the timetable against every calendar day fully or
// partially inside bounds. The result is neither combined nor clamped;
// schedule expansion takes care of both.
func (tt WeeklyTimetable) expandOver(bounds Interval) ([]Interval, error) {
	if len(tt) == 0 {
		return nil, nil
	}

	var out []Interval
	year, month, dom := bounds.Start.Date()
	day := time.Date(year, month, dom, 0, 0, 0, 0, bounds.Start.Location())
	for day.Before(bounds.End) {
		for _, r := range tt[day.Weekday()] {
			iv, err := r.resolve(day)
			if err != nil {
				return nil, err
			}
			out = append(out, iv)
		}
		day = day.AddDate(0, 0, 1)
	}
	return out, nil
}
