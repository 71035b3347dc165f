/*
timeslot.go - Slot counting, capacity reduction and hard exclusion

PURPOSE:
  A Timeslot is an interval annotated with how many concurrent bookings
  are on offer at exactly that interval. This file turns the raw slot
  stream produced by schedule expansion into counted, capacity-accurate
  slots:

    Aggregate:          count identical (start,end) pairs
    Backfill:           add zero-count placeholders for business hours
    Reduce:             allocations consume one unit of capacity each
    RemoveOverlapping:  blackouts/holidays discard slots outright

COPY-ON-WRITE:
  Every function below returns freshly built Timeslot values. Input slices
  and their elements are never modified, so callers can reuse the same
  source lists across calls.

SEE ALSO:
  - engine.go: composes these passes in order
*/
package availability

import "sort"

// =============================================================================
// TIMESLOT
// =============================================================================

// Timeslot is an interval plus the count of concurrently offered bookings
// at exactly that interval. Two slots merge only when their (start,end)
// pair is identical, never when they merely overlap.
type Timeslot struct {
	Interval
	Available int
}

// slotKey normalizes an interval for identity lookups. UnixNano ignores
// location, so equal instants in different zones collapse to one key.
type slotKey struct {
	start int64
	end   int64
}

func keyOf(iv Interval) slotKey {
	return slotKey{start: iv.Start.UnixNano(), end: iv.End.UnixNano()}
}

func sortSlots(slots []Timeslot) []Timeslot {
	out := make([]Timeslot, len(slots))
	copy(out, slots)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].End.Before(out[j].End)
	})
	return out
}

// =============================================================================
// AGGREGATION
// =============================================================================

// Aggregate counts the raw slot stream: each occurrence of an identical
// (start,end) pair increments that slot's availability by one. The result
// is sorted by start, then end, with no duplicate pairs.
func Aggregate(intervals []Interval) []Timeslot {
	index := make(map[slotKey]int, len(intervals))
	var out []Timeslot
	for _, iv := range Sort(intervals) {
		k := keyOf(iv)
		if i, ok := index[k]; ok {
			out[i].Available++
			continue
		}
		index[k] = len(out)
		out = append(out, Timeslot{Interval: iv, Available: 1})
	}
	return out
}

// Backfill overlays the business-hours slot stream onto already counted
// slots. Slots that already exist keep their count untouched; business
// windows with no real offer materialize as explicit zero-count entries
// instead of being silently omitted.
func Backfill(slots []Timeslot, windows []Interval) []Timeslot {
	merged := make([]Timeslot, 0, len(slots)+len(windows))
	merged = append(merged, slots...)
	for _, iv := range windows {
		merged = append(merged, Timeslot{Interval: iv, Available: 0})
	}

	// Stable sort keeps an existing slot ahead of a placeholder with the
	// same (start,end) pair, so the existing count wins.
	index := make(map[slotKey]struct{}, len(merged))
	var out []Timeslot
	for _, slot := range sortSlots(merged) {
		k := keyOf(slot.Interval)
		if _, ok := index[k]; ok {
			continue
		}
		index[k] = struct{}{}
		out = append(out, Timeslot{Interval: slot.Interval, Available: slot.Available})
	}
	return out
}

// =============================================================================
// REDUCTION AND REMOVAL
// =============================================================================

// Reduce decrements each slot's availability by the number of allocations
// that exclusively overlap it: one allocation consumes exactly one unit of
// capacity from every slot it touches, regardless of how many slots it
// spans. Availability never goes negative; slots reduced to zero are
// dropped.
func Reduce(slots []Timeslot, allocations []Interval) []Timeslot {
	var out []Timeslot
	for _, slot := range slots {
		consumed := 0
		for _, alloc := range allocations {
			if slot.Overlaps(alloc) {
				consumed++
			}
		}
		remaining := slot.Available - consumed
		if remaining <= 0 {
			continue
		}
		out = append(out, Timeslot{Interval: slot.Interval, Available: remaining})
	}
	return out
}

// RemoveOverlapping discards any slot that exclusively overlaps at least
// one of the exclusion intervals, regardless of its count. This is the
// all-or-nothing pass used for hard blackouts and holidays.
func RemoveOverlapping(slots []Timeslot, exclusions []Interval) []Timeslot {
	var out []Timeslot
	for _, slot := range slots {
		excluded := false
		for _, ex := range exclusions {
			if slot.Overlaps(ex) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		out = append(out, Timeslot{Interval: slot.Interval, Available: slot.Available})
	}
	return out
}
