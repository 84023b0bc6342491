package timeline

import (
	"time"

	"github.com/solidpoint/spsched/internal/models"
	"github.com/solidpoint/spsched/internal/schedule"
)

// Window is the visible date range of the timeline: a fixed-length run
// of calendar days starting at the anchor date.
type Window struct {
	Start time.Time
	End   time.Time
	Dates []time.Time
}

// ComputeWindow derives the visible window from a view mode and anchor
// date. A zero anchor defaults to seven days before today, matching
// the initial view.
func ComputeWindow(mode models.ViewMode, anchor time.Time) Window {
	if anchor.IsZero() {
		anchor = schedule.AddDays(time.Now(), -7)
	}
	start := schedule.Day(anchor)
	n := mode.Days()
	dates := make([]time.Time, n)
	for i := 0; i < n; i++ {
		dates[i] = schedule.AddDays(start, i)
	}
	return Window{Start: start, End: dates[n-1], Dates: dates}
}

// Contains reports whether a project's interval overlaps the window at
// all; projects entirely outside are excluded before stacking.
func (w Window) Contains(iv schedule.Interval) bool {
	return iv.Overlaps(schedule.Interval{Start: w.Start, End: w.End})
}

// MonthSpan is one cell of the secondary header row: a month label and
// the number of day columns it covers.
type MonthSpan struct {
	Label string
	Cols  int
}

// MonthSpans groups the window's dates by calendar month. The year is
// appended only for months outside the current year.
func (w Window) MonthSpans() []MonthSpan {
	return w.monthSpans(time.Now().Year())
}

func (w Window) monthSpans(currentYear int) []MonthSpan {
	var spans []MonthSpan
	for _, d := range w.Dates {
		label := d.Format("January")
		if d.Year() != currentYear {
			label = d.Format("January 2006")
		}
		if len(spans) > 0 && spans[len(spans)-1].Label == label {
			spans[len(spans)-1].Cols++
			continue
		}
		spans = append(spans, MonthSpan{Label: label, Cols: 1})
	}
	return spans
}

// IsWeekend reports whether a date falls on Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsToday reports whether a date is the current calendar day.
func IsToday(d time.Time) bool {
	return schedule.Day(d).Equal(schedule.Day(time.Now()))
}
