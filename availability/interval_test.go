package availability_test

import (
	"testing"
	"time"

	"github.com/noyou75/GitlabsApp-Backend-sub001/availability"
)

// =============================================================================
// TEST HELPERS
// =============================================================================
// The anchor week is June 2025: the 1st is a Sunday, the 2nd a Monday.

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.June, day, hour, minute, 0, 0, time.UTC)
}

func span(day, fromHour, fromMinute, toHour, toMinute int) availability.Interval {
	return availability.NewInterval(at(day, fromHour, fromMinute), at(day, toHour, toMinute))
}

func sameIntervals(t *testing.T, got, want []availability.Interval) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d intervals, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("interval %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

// =============================================================================
// OVERLAP PREDICATES
// =============================================================================

func TestOverlaps_TouchingEndpoints(t *testing.T) {
	// GIVEN: two intervals sharing only a boundary instant
	// THEN: they overlap inclusively but not exclusively

	a := span(2, 9, 0, 10, 0)
	b := span(2, 10, 0, 11, 0)

	if a.Overlaps(b) {
		t.Error("touching intervals must not overlap exclusively")
	}
	if !a.OverlapsInclusive(b) {
		t.Error("touching intervals must overlap inclusively")
	}
}

func TestOverlaps_Disjoint(t *testing.T) {
	a := span(2, 9, 0, 10, 0)
	b := span(2, 11, 0, 12, 0)

	if a.Overlaps(b) || a.OverlapsInclusive(b) {
		t.Error("disjoint intervals must not overlap under either test")
	}
}

// =============================================================================
// SORT AND COMBINE
// =============================================================================

func TestSort_ByStartThenEnd(t *testing.T) {
	input := []availability.Interval{
		span(2, 10, 0, 12, 0),
		span(2, 9, 0, 11, 0),
		span(2, 9, 0, 10, 0),
	}

	got := availability.Sort(input)

	sameIntervals(t, got, []availability.Interval{
		span(2, 9, 0, 10, 0),
		span(2, 9, 0, 11, 0),
		span(2, 10, 0, 12, 0),
	})

	// Input order untouched.
	if !input[0].Equal(span(2, 10, 0, 12, 0)) {
		t.Error("Sort must not reorder its input slice")
	}
}

func TestCombine_MergesTouchingAndOverlapping(t *testing.T) {
	got := availability.Combine([]availability.Interval{
		span(2, 9, 0, 10, 0),
		span(2, 10, 0, 11, 0), // touches previous
		span(2, 10, 30, 12, 0),
		span(2, 14, 0, 15, 0), // disjoint
	})

	sameIntervals(t, got, []availability.Interval{
		span(2, 9, 0, 12, 0),
		span(2, 14, 0, 15, 0),
	})
}

func TestCombine_Idempotent(t *testing.T) {
	input := []availability.Interval{
		span(2, 9, 0, 10, 30),
		span(2, 10, 0, 11, 0),
		span(3, 9, 0, 10, 0),
	}

	once := availability.Combine(input)
	twice := availability.Combine(once)

	sameIntervals(t, twice, once)
}

func TestCombine_ContainedIntervalAbsorbed(t *testing.T) {
	got := availability.Combine([]availability.Interval{
		span(2, 9, 0, 17, 0),
		span(2, 10, 0, 11, 0),
	})

	sameIntervals(t, got, []availability.Interval{span(2, 9, 0, 17, 0)})
}

// =============================================================================
// CLAMP
// =============================================================================

func TestClampToRange_DropsTouchingOnly(t *testing.T) {
	// GIVEN: an interval that touches the range boundary without entering it
	// THEN: it is dropped, because clamping uses the exclusive overlap test

	bounds := span(2, 9, 0, 17, 0)
	got := availability.ClampToRange([]availability.Interval{
		span(2, 8, 0, 9, 0),   // touches start
		span(2, 17, 0, 18, 0), // touches end
	}, bounds)

	if len(got) != 0 {
		t.Fatalf("expected no intervals, got %v", got)
	}
}

func TestClampToRange_ClipsPartialOverlap(t *testing.T) {
	bounds := span(2, 9, 0, 17, 0)
	got := availability.ClampToRange([]availability.Interval{
		span(2, 8, 0, 10, 0),
		span(2, 16, 0, 18, 0),
		span(2, 11, 0, 12, 0),
	}, bounds)

	sameIntervals(t, got, []availability.Interval{
		span(2, 9, 0, 10, 0),
		span(2, 16, 0, 17, 0),
		span(2, 11, 0, 12, 0),
	})
}

// =============================================================================
// SUBTRACT
// =============================================================================

func TestSubtract_NoOverlap_Unchanged(t *testing.T) {
	a := span(2, 9, 0, 10, 0)
	b := span(2, 10, 0, 11, 0) // touching does not count

	sameIntervals(t, availability.Subtract(a, b), []availability.Interval{a})
}

func TestSubtract_Self_Empty(t *testing.T) {
	a := span(2, 9, 0, 10, 0)

	if got := availability.Subtract(a, a); len(got) != 0 {
		t.Fatalf("subtracting an interval from itself must be empty, got %v", got)
	}
}

func TestSubtract_ContainedInclusive_Empty(t *testing.T) {
	a := span(2, 10, 0, 11, 0)
	b := span(2, 9, 0, 11, 0) // shares a's end

	if got := availability.Subtract(a, b); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestSubtract_StrictlyInterior_TwoFragments(t *testing.T) {
	a := span(2, 9, 0, 12, 0)
	b := span(2, 10, 0, 11, 0)

	sameIntervals(t, availability.Subtract(a, b), []availability.Interval{
		span(2, 9, 0, 10, 0),
		span(2, 11, 0, 12, 0),
	})
}

func TestSubtract_PartialOverlap_SingleRemainder(t *testing.T) {
	// Overhang on the right.
	sameIntervals(t,
		availability.Subtract(span(2, 9, 0, 11, 0), span(2, 10, 0, 12, 0)),
		[]availability.Interval{span(2, 9, 0, 10, 0)})

	// Overhang on the left.
	sameIntervals(t,
		availability.Subtract(span(2, 10, 0, 12, 0), span(2, 9, 0, 11, 0)),
		[]availability.Interval{span(2, 11, 0, 12, 0)})

	// Shared start.
	sameIntervals(t,
		availability.Subtract(span(2, 9, 0, 11, 0), span(2, 9, 0, 10, 0)),
		[]availability.Interval{span(2, 10, 0, 11, 0)})
}

func TestSubtract_FragmentsReconstructSource(t *testing.T) {
	// GIVEN: any overlapping pair
	// THEN: fragments plus the clipped subtrahend re-union to the source

	a := span(2, 9, 0, 12, 0)
	b := span(2, 10, 0, 11, 0)

	pieces := availability.Subtract(a, b)
	pieces = append(pieces, availability.ClampToRange([]availability.Interval{b}, a)...)

	sameIntervals(t, availability.Combine(pieces), []availability.Interval{a})
}

func TestSubtractAll_SortedDisjointSubtrahends(t *testing.T) {
	a := span(2, 9, 0, 17, 0)
	got := availability.SubtractAll(a, []availability.Interval{
		span(2, 12, 0, 13, 0), // out of order on purpose; SubtractAll sorts
		span(2, 10, 0, 11, 0),
	})

	sameIntervals(t, got, []availability.Interval{
		span(2, 9, 0, 10, 0),
		span(2, 11, 0, 12, 0),
		span(2, 13, 0, 17, 0),
	})
}

func TestSubtractAll_OnlyLastFragmentRevisited(t *testing.T) {
	// The fold only ever revisits the last fragment. A subtrahend landing
	// inside an earlier, already-finalized fragment is ignored; this is the
	// documented behavior, kept for compatibility.

	a := span(2, 9, 0, 17, 0)
	got := availability.SubtractAll(a, []availability.Interval{
		span(2, 10, 0, 11, 0),
		span(2, 10, 15, 10, 45), // precedes the last fragment; the fold never looks back
	})

	sameIntervals(t, got, []availability.Interval{
		span(2, 9, 0, 10, 0),
		span(2, 11, 0, 17, 0),
	})
}

func TestSubtractAll_EmptyStaysEmpty(t *testing.T) {
	a := span(2, 9, 0, 10, 0)
	got := availability.SubtractAll(a, []availability.Interval{
		span(2, 9, 0, 10, 0),  // wipes a out entirely
		span(2, 9, 30, 11, 0), // nothing left to subtract from
	})

	if len(got) != 0 {
		t.Fatalf("expected empty fragment list, got %v", got)
	}
}

// =============================================================================
// PARTITION
// =============================================================================

func TestPartitioner_AlignedStartStaysPut(t *testing.T) {
	got := availability.NewPartitioner(span(2, 9, 0, 12, 0), 60, 60).Collect()

	sameIntervals(t, got, []availability.Interval{
		span(2, 9, 0, 10, 0),
		span(2, 10, 0, 11, 0),
		span(2, 11, 0, 12, 0),
	})
}

func TestPartitioner_MinuteOfHourRounding(t *testing.T) {
	// GIVEN: a 10:10 start and a 30-minute offset
	// THEN: the first slot starts at 10:30 (minute-of-hour rounding)

	got := availability.NewPartitioner(span(2, 10, 10, 12, 0), 30, 30).Collect()

	sameIntervals(t, got, []availability.Interval{
		span(2, 10, 30, 11, 0),
		span(2, 11, 0, 11, 30),
		span(2, 11, 30, 12, 0),
	})
}

func TestPartitioner_OverlappingSlots(t *testing.T) {
	// Offset smaller than duration yields overlapping slots.
	got := availability.NewPartitioner(span(2, 9, 0, 12, 0), 60, 30).Collect()

	want := []availability.Interval{
		span(2, 9, 0, 10, 0),
		span(2, 9, 30, 10, 30),
		span(2, 10, 0, 11, 0),
		span(2, 10, 30, 11, 30),
		span(2, 11, 0, 12, 0),
	}
	sameIntervals(t, got, want)
}

func TestPartitioner_NeverPastSourceEnd(t *testing.T) {
	src := span(2, 9, 5, 10, 0)
	for _, slot := range availability.NewPartitioner(src, 25, 15).Collect() {
		if slot.End.After(src.End) {
			t.Errorf("slot %s extends past source end %s", slot, src.End)
		}
	}
}

func TestPartitioner_TooShort_NoSlots(t *testing.T) {
	if got := availability.NewPartitioner(span(2, 9, 0, 9, 30), 60, 60).Collect(); len(got) != 0 {
		t.Fatalf("expected no slots, got %v", got)
	}
}

func TestPartitioner_NotRestartable(t *testing.T) {
	p := availability.NewPartitioner(span(2, 9, 0, 10, 0), 60, 60)

	if _, ok := p.Next(); !ok {
		t.Fatal("expected one slot")
	}
	if _, ok := p.Next(); ok {
		t.Fatal("sequence must stay drained")
	}
	if got := p.Collect(); len(got) != 0 {
		t.Fatalf("drained partitioner must collect nothing, got %v", got)
	}
}
