/*
Package factory provides JSON to Go schedule conversion.

PURPOSE:
  Converts JSON schedule definitions into availability.Schedule and
  availability.WeeklyTimetable values. This enables schedule configuration
  without code changes - weekly hours can be defined in JSON by an admin
  UI, stored in the database, or shipped as scenario seed data, and the
  factory creates the proper Go structs.

JSON SCHEMA:
  {
    "weekly": {
      "monday":    [{"from": "09:00", "to": "12:00"}],
      "wednesday": [{"from": "14:00", "to": "18:00"}]
    },
    "availabilities": [
      {"start": "2025-06-02T09:00:00Z", "end": "2025-06-02T14:00:00Z"}
    ],
    "blackouts": [
      {"start": "2025-06-02T12:00:00Z", "end": "2025-06-02T13:00:00Z"}
    ]
  }

  Weekday keys are lower-case English day names; numeric keys "0" (Sunday)
  through "6" (Saturday) are also accepted. Instants are RFC3339.

USAGE:
  schedule, err := factory.ParseSchedule(jsonStr)
  slots, err := engine.GetAvailabilities(availability.AvailabilityRequest{
      Schedules: []availability.Schedule{schedule},
      ...
  })

SEE ALSO:
  - availability/schedule.go: the target types
  - api/dto.go: reuses these wire shapes over HTTP
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/noyou75/GitlabsApp-Backend-sub001/availability"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// TimeRangeJSON is the wire form of a wall-clock range.
type TimeRangeJSON struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// TimetableJSON maps weekday names to wall-clock ranges.
type TimetableJSON map[string][]TimeRangeJSON

// IntervalJSON is the wire form of an absolute interval.
type IntervalJSON struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ScheduleJSON is the wire form of a composite schedule.
type ScheduleJSON struct {
	Weekly         TimetableJSON  `json:"weekly,omitempty"`
	Availabilities []IntervalJSON `json:"availabilities,omitempty"`
	Blackouts      []IntervalJSON `json:"blackouts,omitempty"`
}

// =============================================================================
// PARSING
// =============================================================================

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"0":         time.Sunday,
	"1":         time.Monday,
	"2":         time.Tuesday,
	"3":         time.Wednesday,
	"4":         time.Thursday,
	"5":         time.Friday,
	"6":         time.Saturday,
}

// ParseWeekday resolves a weekday key ("monday" or "1") to time.Weekday.
func ParseWeekday(s string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return day, nil
}

// WeekdayKey returns the canonical JSON key for a weekday.
func WeekdayKey(day time.Weekday) string {
	return strings.ToLower(day.String())
}

// Timetable converts the wire form into an engine timetable.
func (tj TimetableJSON) Timetable() (availability.WeeklyTimetable, error) {
	if len(tj) == 0 {
		return nil, nil
	}
	tt := make(availability.WeeklyTimetable, len(tj))
	for key, ranges := range tj {
		day, err := ParseWeekday(key)
		if err != nil {
			return nil, err
		}
		for _, r := range ranges {
			tt[day] = append(tt[day], availability.TimeOfDayRange{From: r.From, To: r.To})
		}
	}
	return tt, nil
}

// Intervals converts a list of wire intervals.
func Intervals(ivs []IntervalJSON) []availability.Interval {
	if len(ivs) == 0 {
		return nil
	}
	out := make([]availability.Interval, len(ivs))
	for i, iv := range ivs {
		out[i] = availability.NewInterval(iv.Start, iv.End)
	}
	return out
}

// Schedule converts the wire form into an engine schedule.
func (sj ScheduleJSON) Schedule() (availability.Schedule, error) {
	weekly, err := sj.Weekly.Timetable()
	if err != nil {
		return availability.Schedule{}, err
	}
	return availability.Schedule{
		Weekly:         weekly,
		Availabilities: Intervals(sj.Availabilities),
		Blackouts:      Intervals(sj.Blackouts),
	}, nil
}

// ParseSchedule parses a JSON string into an engine schedule.
func ParseSchedule(jsonStr string) (availability.Schedule, error) {
	var sj ScheduleJSON
	if err := json.Unmarshal([]byte(jsonStr), &sj); err != nil {
		return availability.Schedule{}, fmt.Errorf("failed to parse schedule JSON: %w", err)
	}
	return sj.Schedule()
}

// ParseTimetable parses a JSON string into an engine timetable.
func ParseTimetable(jsonStr string) (availability.WeeklyTimetable, error) {
	var tj TimetableJSON
	if err := json.Unmarshal([]byte(jsonStr), &tj); err != nil {
		return nil, fmt.Errorf("failed to parse timetable JSON: %w", err)
	}
	return tj.Timetable()
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// TimetableToJSON converts an engine timetable back to its wire form.
func TimetableToJSON(tt availability.WeeklyTimetable) TimetableJSON {
	if len(tt) == 0 {
		return nil
	}
	out := make(TimetableJSON, len(tt))
	for day, ranges := range tt {
		rs := make([]TimeRangeJSON, len(ranges))
		for i, r := range ranges {
			rs[i] = TimeRangeJSON{From: r.From, To: r.To}
		}
		out[WeekdayKey(day)] = rs
	}
	return out
}

// IntervalsToJSON converts engine intervals back to their wire form.
func IntervalsToJSON(ivs []availability.Interval) []IntervalJSON {
	if len(ivs) == 0 {
		return nil
	}
	out := make([]IntervalJSON, len(ivs))
	for i, iv := range ivs {
		out[i] = IntervalJSON{Start: iv.Start, End: iv.End}
	}
	return out
}
