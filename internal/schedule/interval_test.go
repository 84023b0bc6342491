package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayNormalizes(t *testing.T) {
	loc := time.FixedZone("plus5", 5*3600)
	in := time.Date(2024, 3, 15, 23, 45, 0, 0, loc)
	assert.Equal(t, date(2024, 3, 15), Day(in))
}

func TestAddDaysRollsOverMonths(t *testing.T) {
	assert.Equal(t, date(2024, 2, 1), AddDays(date(2024, 1, 31), 1))
	assert.Equal(t, date(2023, 12, 31), AddDays(date(2024, 1, 1), -1))
	// leap day
	assert.Equal(t, date(2024, 2, 29), AddDays(date(2024, 2, 28), 1))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(date(2024, 1, 1), date(2024, 1, 1)))
	assert.Equal(t, 4, DaysBetween(date(2024, 1, 1), date(2024, 1, 5)))
	assert.Equal(t, -4, DaysBetween(date(2024, 1, 5), date(2024, 1, 1)))
	// across a month boundary
	assert.Equal(t, 31, DaysBetween(date(2024, 1, 15), date(2024, 2, 15)))
}

func TestOverlaps(t *testing.T) {
	a := Interval{Start: date(2024, 1, 1), End: date(2024, 1, 3)}
	b := Interval{Start: date(2024, 1, 2), End: date(2024, 1, 5)}
	c := Interval{Start: date(2024, 1, 6), End: date(2024, 1, 8)}

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a), "overlap must be symmetric")
	assert.False(t, a.Overlaps(c))
	assert.False(t, c.Overlaps(a))

	// an interval overlaps itself
	assert.True(t, a.Overlaps(a))

	// touching endpoints count: intervals are inclusive
	d := Interval{Start: date(2024, 1, 3), End: date(2024, 1, 4)}
	assert.True(t, a.Overlaps(d))
}

func TestOverlapsIgnoresTimeOfDay(t *testing.T) {
	a := Interval{
		Start: time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 3, 1, 0, 0, 0, time.UTC),
	}
	b := Interval{Start: date(2024, 1, 3), End: date(2024, 1, 4)}
	assert.True(t, a.Overlaps(b))
}

func TestShift(t *testing.T) {
	iv := Interval{Start: date(2024, 1, 1), End: date(2024, 1, 3)}

	shifted := iv.Shift(2)
	assert.Equal(t, date(2024, 1, 3), shifted.Start)
	assert.Equal(t, date(2024, 1, 5), shifted.End)

	// shifting back is the identity
	assert.Equal(t, iv, shifted.Shift(-2))
	assert.Equal(t, iv, iv.Shift(0))

	// duration is preserved
	assert.Equal(t, iv.Days(), shifted.Days())
}

func TestDaysInclusive(t *testing.T) {
	single := Interval{Start: date(2024, 1, 1), End: date(2024, 1, 1)}
	assert.Equal(t, 1, single.Days())

	three := Interval{Start: date(2024, 1, 1), End: date(2024, 1, 3)}
	assert.Equal(t, 3, three.Days())
}
