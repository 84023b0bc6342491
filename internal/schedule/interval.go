package schedule

import "time"

// Interval is an inclusive day-granularity date range. Start > End is
// accepted everywhere; the math stays permissive and editing operations
// are responsible for never committing an inverted range.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Day truncates t to midnight UTC. All interval math operates on
// normalized days so DST and wall-clock offsets can never split a date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a date by n calendar days, handling month and year
// rollover.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// DaysBetween returns the whole days from a to b (negative if b is
// earlier).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / (24 * time.Hour))
}

// Overlaps reports whether the two inclusive intervals share at least
// one day. Symmetric, and an interval always overlaps itself.
func (iv Interval) Overlaps(other Interval) bool {
	return !(Day(iv.End).Before(Day(other.Start)) || Day(iv.Start).After(Day(other.End)))
}

// Shift moves both endpoints by the given number of days.
func (iv Interval) Shift(days int) Interval {
	return Interval{Start: AddDays(iv.Start, days), End: AddDays(iv.End, days)}
}

// Days returns the inclusive length in days: a single-day interval has
// length 1.
func (iv Interval) Days() int {
	return DaysBetween(iv.Start, iv.End) + 1
}
