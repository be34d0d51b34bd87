package fare

import "time"

// =============================================================================
// PERIOD KEYS - Explicit "period key + count" pairs for counter resets
// =============================================================================

// MonthKey identifies the (year, month) period of the frequent-use counter.
// A change in either component resets the counter; the reset is a pure
// comparison, never an exception path.
type MonthKey struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// DayKey identifies the calendar day of the per-class daily usage counters.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

func DayOf(t time.Time) DayKey {
	return DayKey{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}
