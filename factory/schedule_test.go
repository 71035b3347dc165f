package factory_test

import (
	"testing"
	"time"

	"github.com/noyou75/GitlabsApp-Backend-sub001/factory"
)

func TestParseSchedule(t *testing.T) {
	// GIVEN a full schedule definition in JSON
	jsonStr := `{
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
	}`

	// WHEN parsing it
	schedule, err := factory.ParseSchedule(jsonStr)
	if err != nil {
		t.Fatalf("ParseSchedule failed: %v", err)
	}

	// THEN the weekly ranges land on the right days
	if got := len(schedule.Weekly[time.Monday]); got != 1 {
		t.Errorf("expected 1 Monday range, got %d", got)
	}
	if got := schedule.Weekly[time.Monday][0].From; got != "09:00" {
		t.Errorf("expected Monday to start at 09:00, got %s", got)
	}
	if got := len(schedule.Weekly[time.Wednesday]); got != 1 {
		t.Errorf("expected 1 Wednesday range, got %d", got)
	}

	// AND the absolute intervals round-trip as instants
	if len(schedule.Availabilities) != 1 || len(schedule.Blackouts) != 1 {
		t.Fatalf("expected 1 availability and 1 blackout, got %d and %d",
			len(schedule.Availabilities), len(schedule.Blackouts))
	}
	want := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	if !schedule.Availabilities[0].Start.Equal(want) {
		t.Errorf("expected availability start %v, got %v", want, schedule.Availabilities[0].Start)
	}
}

func TestParseScheduleNumericWeekdays(t *testing.T) {
	// GIVEN numeric weekday keys (0 = Sunday)
	schedule, err := factory.ParseSchedule(`{"weekly": {"1": [{"from": "08:00", "to": "10:00"}]}}`)
	if err != nil {
		t.Fatalf("ParseSchedule failed: %v", err)
	}

	// THEN "1" resolves to Monday
	if got := len(schedule.Weekly[time.Monday]); got != 1 {
		t.Errorf("expected 1 Monday range, got %d", got)
	}
}

func TestParseScheduleUnknownWeekday(t *testing.T) {
	_, err := factory.ParseSchedule(`{"weekly": {"someday": [{"from": "08:00", "to": "10:00"}]}}`)
	if err == nil {
		t.Fatal("expected error for unknown weekday key")
	}
}

func TestParseScheduleMalformedJSON(t *testing.T) {
	_, err := factory.ParseSchedule(`{not json`)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestTimetableRoundTrip(t *testing.T) {
	tt, err := factory.ParseTimetable(`{"friday": [{"from": "10:00", "to": "16:00"}]}`)
	if err != nil {
		t.Fatalf("ParseTimetable failed: %v", err)
	}

	wire := factory.TimetableToJSON(tt)
	ranges, ok := wire["friday"]
	if !ok || len(ranges) != 1 {
		t.Fatalf("expected friday key with 1 range, got %v", wire)
	}
	if ranges[0].From != "10:00" || ranges[0].To != "16:00" {
		t.Errorf("unexpected range after round trip: %+v", ranges[0])
	}
}
