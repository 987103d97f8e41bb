// Package week holds the Monday-anchored week arithmetic shared by goal
// dissection and rebalancing. Weeks run Monday through Sunday and are
// labeled "YYYY-WW", where WW is the zero-padded week-of-year number
// counted with Monday as the first day of the week (days before the
// year's first Monday fall in week 00).
package week

import (
	"fmt"
	"time"
)

// Span is one Monday-to-Sunday week.
type Span struct {
	Start time.Time
	End   time.Time
}

// StartOf returns the Monday of the week containing d, truncated to
// midnight UTC.
func StartOf(d time.Time) time.Time {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// EndOf returns the Sunday that closes the week starting at weekStart.
func EndOf(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 6)
}

// Label returns the "YYYY-WW" label for the week containing d.
// The week number matches strftime's %W: all days preceding the first
// Monday of the year are week 00. Callers must never sort by this label
// across years; sort by the week's start date instead.
func Label(d time.Time) string {
	yday := d.YearDay() - 1
	wday := (int(d.Weekday()) + 6) % 7
	return fmt.Sprintf("%04d-%02d", d.Year(), (yday+7-wday)/7)
}

// Between enumerates every week from the one containing start through the
// one containing end, inclusive. Returns nil when end precedes start.
func Between(start, end time.Time) []Span {
	cur := StartOf(start)
	last := StartOf(end)

	var spans []Span
	for !cur.After(last) {
		spans = append(spans, Span{Start: cur, End: EndOf(cur)})
		cur = cur.AddDate(0, 0, 7)
	}
	return spans
}

// DistributeEvenly splits total across slots, giving the remainder to the
// earliest slots: DistributeEvenly(10, 3) = [4 3 3].
func DistributeEvenly(total, slots int) []int {
	if slots <= 0 {
		return nil
	}
	base := total / slots
	rem := total % slots

	counts := make([]int, slots)
	for i := range counts {
		counts[i] = base
		if i < rem {
			counts[i]++
		}
	}
	return counts
}
