package availability_test

import (
	"errors"
	"testing"
	"time"

	"github.com/noyou75/GitlabsApp-Backend-sub001/availability"
)

// weekBounds covers Sunday June 1 through Sunday June 8, 2025.
func weekBounds() availability.Interval {
	return availability.NewInterval(at(1, 0, 0), at(8, 0, 0))
}

// =============================================================================
// CLOCK PARSING
// =============================================================================

func TestParseClock(t *testing.T) {
	hour, minute, err := availability.ParseClock("09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hour != 9 || minute != 30 {
		t.Fatalf("expected 9:30, got %d:%d", hour, minute)
	}

	for _, bad := range []string{"", "9am", "25:00", "10:75", "10", "10:00:00"} {
		if _, _, err := availability.ParseClock(bad); !errors.Is(err, availability.ErrInvalidTimeFormat) {
			t.Errorf("%q: expected ErrInvalidTimeFormat, got %v", bad, err)
		}
	}
}

// =============================================================================
// SCHEDULE EXPANSION
// =============================================================================

func TestScheduleIntervals_WeeklyPattern(t *testing.T) {
	// GIVEN: Monday and Wednesday working hours
	// WHEN: expanding over one week
	// THEN: one absolute interval per configured day, nothing else

	s := availability.Schedule{
		Weekly: availability.WeeklyTimetable{
			time.Monday:    {{From: "09:00", To: "12:00"}},
			time.Wednesday: {{From: "14:00", To: "16:00"}},
		},
	}

	got, err := s.Intervals(weekBounds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sameIntervals(t, got, []availability.Interval{
		span(2, 9, 0, 12, 0),  // Monday
		span(4, 14, 0, 16, 0), // Wednesday
	})
}

func TestScheduleIntervals_AdHocMergedWithWeekly(t *testing.T) {
	// GIVEN: a weekly Monday morning plus an ad-hoc window extending it
	// THEN: the union is combined into a single window

	s := availability.Schedule{
		Weekly: availability.WeeklyTimetable{
			time.Monday: {{From: "09:00", To: "12:00"}},
		},
		Availabilities: []availability.Interval{span(2, 12, 0, 14, 0)},
	}

	got, err := s.Intervals(weekBounds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sameIntervals(t, got, []availability.Interval{span(2, 9, 0, 14, 0)})
}

func TestScheduleIntervals_BlackoutSubtracted(t *testing.T) {
	s := availability.Schedule{
		Weekly: availability.WeeklyTimetable{
			time.Monday: {{From: "09:00", To: "17:00"}},
		},
		Blackouts: []availability.Interval{span(2, 12, 0, 13, 0)},
	}

	got, err := s.Intervals(weekBounds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sameIntervals(t, got, []availability.Interval{
		span(2, 9, 0, 12, 0),
		span(2, 13, 0, 17, 0),
	})
}

func TestScheduleIntervals_ClampedToBounds(t *testing.T) {
	// GIVEN: a weekly pattern and bounds starting mid-morning on Monday
	// THEN: Monday's window is clipped to the bounds

	s := availability.Schedule{
		Weekly: availability.WeeklyTimetable{
			time.Monday: {{From: "09:00", To: "17:00"}},
		},
	}
	bounds := availability.NewInterval(at(2, 10, 30), at(8, 0, 0))

	got, err := s.Intervals(bounds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sameIntervals(t, got, []availability.Interval{span(2, 10, 30, 17, 0)})
}

func TestScheduleIntervals_EmptyScheduleOffersNothing(t *testing.T) {
	got, err := availability.Schedule{}.Intervals(weekBounds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no intervals, got %v", got)
	}
}

func TestScheduleIntervals_MalformedClock(t *testing.T) {
	s := availability.Schedule{
		Weekly: availability.WeeklyTimetable{
			time.Monday: {{From: "morning", To: "12:00"}},
		},
	}

	if _, err := s.Intervals(weekBounds()); !errors.Is(err, availability.ErrInvalidTimeFormat) {
		t.Fatalf("expected ErrInvalidTimeFormat, got %v", err)
	}
}

// =============================================================================
// MULTI-SCHEDULE PARTITIONING
// =============================================================================

func TestPartitionSchedules_ConcatenatesStreams(t *testing.T) {
	a := availability.Schedule{
		Weekly: availability.WeeklyTimetable{time.Monday: {{From: "09:00", To: "11:00"}}},
	}
	b := availability.Schedule{
		Weekly: availability.WeeklyTimetable{time.Monday: {{From: "10:00", To: "12:00"}}},
	}

	got, err := availability.PartitionSchedules(
		[]availability.Schedule{a, b}, weekBounds(), 60, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Raw stream: not yet deduplicated, schedule order preserved.
	sameIntervals(t, got, []availability.Interval{
		span(2, 9, 0, 10, 0),
		span(2, 10, 0, 11, 0),
		span(2, 10, 0, 11, 0),
		span(2, 11, 0, 12, 0),
	})
}
