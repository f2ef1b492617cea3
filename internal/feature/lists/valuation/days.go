package valuation

import (
	"iter"
	"time"
)

// DefaultWindowDays is the length of the rolling snapshot window.
const DefaultWindowDays = 30

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SnapshotDays yields windowDays calendar days in ascending order, from
// today-windowDays to today-1. The sequence can be ranged over repeatedly.
func SnapshotDays(windowDays int, today time.Time) iter.Seq[time.Time] {
	start := Day(today).AddDate(0, 0, -windowDays)
	return func(yield func(time.Time) bool) {
		for i := 0; i < windowDays; i++ {
			if !yield(start.AddDate(0, 0, i)) {
				return
			}
		}
	}
}
