package availability_test

import (
	"testing"

	"github.com/noyou75/GitlabsApp-Backend-sub001/availability"
	"github.com/shopspring/decimal"
)

func TestSummarize(t *testing.T) {
	// Two open slots (one double-booked capacity) and two placeholders.
	u := availability.Summarize([]availability.Timeslot{
		slot(2, 9, 0, 10, 0, 2),
		slot(2, 10, 0, 11, 0, 1),
		slot(2, 11, 0, 12, 0, 0),
		slot(2, 12, 0, 13, 0, 0),
	})

	if u.Slots != 4 || u.Open != 2 || u.Placeholders != 2 {
		t.Fatalf("unexpected counts: %+v", u)
	}
	if u.Capacity != 3 {
		t.Fatalf("expected capacity 3, got %d", u.Capacity)
	}
	if u.OfferedMinutes != 180 {
		t.Fatalf("expected 180 offered minutes, got %d", u.OfferedMinutes)
	}
	if !u.OpenShare.Equal(decimal.RequireFromString("0.5")) {
		t.Fatalf("expected open share 0.5, got %s", u.OpenShare)
	}
	if !u.MeanCapacity.Equal(decimal.RequireFromString("0.75")) {
		t.Fatalf("expected mean capacity 0.75, got %s", u.MeanCapacity)
	}
}

func TestSummarize_Empty(t *testing.T) {
	u := availability.Summarize(nil)

	if u.Slots != 0 || u.Capacity != 0 {
		t.Fatalf("unexpected summary for empty input: %+v", u)
	}
	if !u.OpenShare.IsZero() || !u.MeanCapacity.IsZero() {
		t.Fatalf("ratios must be zero for empty input: %+v", u)
	}
}
