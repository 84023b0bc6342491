package schedule

import (
	"sort"

	"github.com/solidpoint/spsched/internal/models"
)

// ProjectInterval returns the project's date range as an Interval.
func ProjectInterval(p models.Project) Interval {
	return Interval{Start: p.Start, End: p.End}
}

// AssignLanes packs the given projects (all on one resource) into
// lanes so that no two projects sharing a lane overlap. Projects are
// taken in start-date order with input order breaking ties, and each
// is placed in the first lane whose most recent occupant it does not
// overlap. Greedy first-fit over start-sorted intervals; the result is
// deterministic for a given input order.
func AssignLanes(projects []models.Project) map[string]int {
	sorted := make([]models.Project, len(projects))
	copy(sorted, projects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Day(sorted[i].Start).Before(Day(sorted[j].Start))
	})

	lanes := make(map[string]int, len(sorted))
	var last []Interval // most recently placed interval per lane
	for _, p := range sorted {
		iv := ProjectInterval(p)
		placed := false
		for lane := range last {
			if !iv.Overlaps(last[lane]) {
				last[lane] = iv
				lanes[p.ID] = lane
				placed = true
				break
			}
		}
		if !placed {
			last = append(last, iv)
			lanes[p.ID] = len(last) - 1
		}
	}
	return lanes
}

// LaneCount returns the number of lanes a lane assignment uses, with a
// minimum of one so an empty resource still renders a single row.
func LaneCount(lanes map[string]int) int {
	count := 1
	for _, lane := range lanes {
		if lane+1 > count {
			count = lane + 1
		}
	}
	return count
}
