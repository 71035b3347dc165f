/*
Package availability computes bookable time slots.

PURPOSE:
  This package is the computational core of the system. Given recurring
  weekly working-hour patterns, ad-hoc overrides, blackout periods,
  already-consumed bookings and optional business-hours/holiday overlays,
  it produces the set of bookable time slots (with a concurrency count)
  inside a date range. It can also find the earliest moment that satisfies
  a minimum lead-time requirement against a single schedule.

KEY CONCEPTS IN THIS FILE (interval.go):
  - Interval: an absolute time range with a start and end instant
  - Two overlap predicates: inclusive (touching endpoints overlap) and
    exclusive (touching endpoints do not)
  - Combine/ClampToRange/Subtract/SubtractAll: interval set algebra
  - Partitioner: slices an interval into fixed-length sub-intervals

DESIGN PRINCIPLES:
  1. Purity: no I/O, no clocks (except the injectable Engine clock),
     no shared state between calls
  2. Immutability: every operation returns new values; caller slices are
     never modified or aliased
  3. Determinism: same inputs always yield the same slot list

SEE ALSO:
  - timetable.go: weekly pattern expansion into absolute intervals
  - schedule.go:  blackout subtraction and duration/offset partitioning
  - timeslot.go:  aggregation, capacity reduction, hard exclusion
  - engine.go:    the two public operations
*/
package availability

import (
	"fmt"
	"sort"
	"time"
)

// =============================================================================
// INTERVAL - Absolute time range
// =============================================================================

// Interval is a contiguous absolute time range. A well-formed Interval has
// Start strictly before End; validation rejects anything else before the
// algebra below ever sees it.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds an interval from two instants.
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// IsOrdered reports whether Start strictly precedes End.
func (iv Interval) IsOrdered() bool {
	return iv.Start.Before(iv.End)
}

// Minutes returns the length of the interval in whole minutes.
func (iv Interval) Minutes() int {
	return int(iv.End.Sub(iv.Start) / time.Minute)
}

// Equal reports whether both endpoints match exactly.
func (iv Interval) Equal(other Interval) bool {
	return iv.Start.Equal(other.Start) && iv.End.Equal(other.End)
}

// Overlaps is the exclusive overlap test: intervals that merely touch at an
// endpoint do NOT overlap. Used for clamping, allocations and blackout
// matching, where a slot ending exactly when a booking starts is unaffected.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// OverlapsInclusive is the inclusive overlap test: touching endpoints count
// as overlap. Used when merging intervals, so that back-to-back windows
// collapse into one.
func (iv Interval) OverlapsInclusive(other Interval) bool {
	return !iv.Start.After(other.End) && !other.Start.After(iv.End)
}

// containsInclusive reports whether other lies fully inside iv, endpoints
// included.
func (iv Interval) containsInclusive(other Interval) bool {
	return !iv.Start.After(other.Start) && !iv.End.Before(other.End)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s]",
		iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// =============================================================================
// INTERVAL SET ALGEBRA
// =============================================================================

// Sort returns a new slice ordered by start ascending, then end ascending.
// The input is left untouched.
func Sort(intervals []Interval) []Interval {
	out := make([]Interval, len(intervals))
	copy(out, intervals)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].End.Before(out[j].End)
	})
	return out
}

// Combine merges the input into the minimal set of disjoint (or touching)
// intervals covering it. Merging is inclusive: windows that touch at an
// endpoint become one.
func Combine(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := Sort(intervals)

	out := make([]Interval, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if current.OverlapsInclusive(next) {
			if next.End.After(current.End) {
				current.End = next.End
			}
			continue
		}
		out = append(out, current)
		current = next
	}
	return append(out, current)
}

// ClampToRange keeps only intervals that exclusively overlap bounds (a
// touching-only boundary does not count) and clips the survivors so they
// fit inside it.
func ClampToRange(intervals []Interval, bounds Interval) []Interval {
	var out []Interval
	for _, iv := range intervals {
		if !iv.Overlaps(bounds) {
			continue
		}
		clipped := iv
		if clipped.Start.Before(bounds.Start) {
			clipped.Start = bounds.Start
		}
		if clipped.End.After(bounds.End) {
			clipped.End = bounds.End
		}
		out = append(out, clipped)
	}
	return out
}

// Subtract removes b from a, producing zero, one or two fragments:
//
//  1. no overlap                 -> a unchanged
//  2. a inside b (inclusive)     -> nothing
//  3. b strictly interior to a   -> two fragments around b
//  4. partial boundary overlap   -> one bounded remainder
func Subtract(a, b Interval) []Interval {
	switch {
	case !a.Overlaps(b):
		return []Interval{a}
	case b.containsInclusive(a):
		return nil
	case a.Start.Before(b.Start) && b.End.Before(a.End):
		return []Interval{
			{Start: a.Start, End: b.Start},
			{Start: b.End, End: a.End},
		}
	default:
		remainder := Interval{Start: b.End, End: b.Start}
		if a.Start.Before(b.Start) {
			remainder.Start = a.Start
		}
		if a.End.After(b.End) {
			remainder.End = a.End
		}
		return []Interval{remainder}
	}
}

// SubtractAll removes every interval in subtrahends from a. It folds left
// over the subtrahends in start order, replacing only the LAST fragment of
// the working list with the result of subtracting the current subtrahend.
//
// Precondition: correct only when later (rightward) subtrahends never
// intersect an earlier, already-finalized fragment. That holds for sorted,
// non-overlapping exclusion sets; overlapping or out-of-order sets may see
// results that differ from a full sweep-line difference. The fold is kept
// as-is for compatibility with the established fragment sequence.
func SubtractAll(a Interval, subtrahends []Interval) []Interval {
	fragments := []Interval{a}
	for _, b := range Sort(subtrahends) {
		if len(fragments) == 0 {
			break
		}
		last := fragments[len(fragments)-1]
		fragments = append(fragments[:len(fragments)-1], Subtract(last, b)...)
	}
	return fragments
}

// =============================================================================
// PARTITIONER - Fixed-length sub-interval sequence
// =============================================================================

// Partitioner yields consecutive sub-intervals of a source interval, each
// duration minutes long and offset minutes apart. The sequence is finite
// and not restartable: once drained, Next keeps reporting false.
//
// The first sub-interval starts at the earliest instant at or after the
// source start whose minute-of-hour is a multiple of offset. The rounding
// looks at the minute field alone, not at elapsed time from any epoch:
// a 10:10 start with a 30-minute offset rounds to 10:30, while a 10:00
// start stays put for any offset. No sub-interval ever extends past the
// source end.
type Partitioner struct {
	cursor   time.Time
	duration time.Duration
	offset   time.Duration
	left     int
}

// NewPartitioner prepares the slot sequence for one interval. An offset of
// zero (or less) falls back to the duration, giving adjacent slots.
func NewPartitioner(iv Interval, durationMinutes, offsetMinutes int) *Partitioner {
	if offsetMinutes <= 0 {
		offsetMinutes = durationMinutes
	}
	p := &Partitioner{
		duration: time.Duration(durationMinutes) * time.Minute,
		offset:   time.Duration(offsetMinutes) * time.Minute,
	}
	if durationMinutes <= 0 {
		return p
	}

	start := iv.Start
	if rem := start.Minute() % offsetMinutes; rem != 0 {
		start = start.Add(time.Duration(offsetMinutes-rem) * time.Minute)
	}

	available := int(iv.End.Sub(start) / time.Minute)
	usable := available - durationMinutes + offsetMinutes
	if usable > available {
		usable = available
	}
	if usable <= 0 {
		return p
	}

	p.cursor = start
	p.left = usable / offsetMinutes
	return p
}

// Next returns the next sub-interval, or false once the sequence is drained.
func (p *Partitioner) Next() (Interval, bool) {
	if p.left <= 0 {
		return Interval{}, false
	}
	slot := Interval{Start: p.cursor, End: p.cursor.Add(p.duration)}
	p.cursor = p.cursor.Add(p.offset)
	p.left--
	return slot, true
}

// Collect drains the remaining sequence into a slice.
func (p *Partitioner) Collect() []Interval {
	var out []Interval
	for {
		slot, ok := p.Next()
		if !ok {
			return out
		}
		out = append(out, slot)
	}
}
