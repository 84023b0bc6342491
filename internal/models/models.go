package models

import "time"

// ViewMode selects the width of the visible timeline window.
type ViewMode string

const (
	ViewWeek    ViewMode = "week"
	ViewTwoWeek ViewMode = "2week"
	ViewMonth   ViewMode = "month"
)

// Days returns the number of calendar days the view mode spans.
func (m ViewMode) Days() int {
	switch m {
	case ViewTwoWeek:
		return 14
	case ViewMonth:
		return 30
	default:
		return 7
	}
}

// Next cycles week -> 2week -> month -> week.
func (m ViewMode) Next() ViewMode {
	switch m {
	case ViewWeek:
		return ViewTwoWeek
	case ViewTwoWeek:
		return ViewMonth
	default:
		return ViewWeek
	}
}

// Resource is a single schedulable row of the timeline grid.
// ID is a stable surrogate key; Name is display-only and may be renamed.
type Resource struct {
	ID   string
	Name string
}

// ResourceGroup is an ordered collection of resources shown under one
// sidebar heading. Order is user-controlled and persisted.
type ResourceGroup struct {
	ID        string
	Name      string
	Resources []Resource
}

// Project is a dated bar on the timeline. Start and End are inclusive
// day-granularity dates; Start <= End is maintained by the editing
// operations but never enforced on load.
type Project struct {
	ID         string
	Name       string
	ResourceID string
	GroupID    string // owning resource group, informational
	Start      time.Time
	End        time.Time
	Color      string
	Notes      string
	Pinned     bool
}

// DayOffType categorizes a day-off entry.
type DayOffType string

const (
	DayOffHoliday  DayOffType = "holiday"
	DayOffWeekend  DayOffType = "weekend"
	DayOffSick     DayOffType = "sick"
	DayOffPersonal DayOffType = "personal"
	DayOffOther    DayOffType = "other"
)

// DayOff shades a single calendar column. It is not scheduled into
// lanes and never collides with projects.
type DayOff struct {
	ID    string
	Date  time.Time
	Type  DayOffType
	Color string
	Notes string
}

// ProjectGroup bundles two or more projects that move, recolor and
// delete as a unit. Distinct from ResourceGroup. A group with fewer
// than two members is never kept; it is deleted by the grouping store.
type ProjectGroup struct {
	ID         string
	Name       string
	ProjectIDs []string
}

// Contains reports whether the group holds the given project id.
func (g *ProjectGroup) Contains(projectID string) bool {
	for _, id := range g.ProjectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}

// Settings is the persisted view state.
type Settings struct {
	ViewMode ViewMode
	Anchor   time.Time // first visible date; zero means "today - 7 days"
}
