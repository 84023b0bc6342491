package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/solidpoint/spsched/internal/models"
)

// Edge identifies which end of a project a resize grabs.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
)

// Command is a single state mutation. Commands are applied through
// State.Apply, which is the only mutation entry point the interaction
// layer uses.
type Command interface {
	run(s *State) bool
}

// MoveProject relocates a project to a new start date and resource,
// preserving its duration. Moving a grouped project shifts every
// member by the same day offset; the group changes resource only when
// all members already share one. Pinned projects reject the move
// outright; the UI confirms and unpins before retrying.
type MoveProject struct {
	ProjectID  string
	Start      time.Time
	ResourceID string
}

func (c MoveProject) run(s *State) bool {
	p := s.Project(c.ProjectID)
	if p == nil || p.Pinned {
		return false
	}
	offset := DaysBetween(p.Start, c.Start)
	g := s.Groups.ByProject(p.ID)
	if g == nil {
		if offset == 0 && p.ResourceID == c.ResourceID {
			return false
		}
		iv := ProjectInterval(*p).Shift(offset)
		p.Start, p.End = iv.Start, iv.End
		if c.ResourceID != "" {
			p.ResourceID = c.ResourceID
			if _, rg := s.Resource(c.ResourceID); rg != nil {
				p.GroupID = rg.ID
			}
		}
		return true
	}

	moveResource := c.ResourceID != "" && c.ResourceID != p.ResourceID && s.groupOnSingleResource(g.ID)
	if offset == 0 && !moveResource {
		return false
	}
	_, rg := s.Resource(c.ResourceID)
	for _, pid := range g.ProjectIDs {
		m := s.Project(pid)
		if m == nil {
			continue
		}
		iv := ProjectInterval(*m).Shift(offset)
		m.Start, m.End = iv.Start, iv.End
		if moveResource {
			m.ResourceID = c.ResourceID
			if rg != nil {
				m.GroupID = rg.ID
			}
		}
	}
	return true
}

// ResizeProject moves one edge of a project to a new date. A resize
// that would invert the interval is rejected and leaves the project
// unchanged. Pin state does not restrict resizing.
type ResizeProject struct {
	ProjectID string
	Edge      Edge
	Date      time.Time
}

func (c ResizeProject) run(s *State) bool {
	p := s.Project(c.ProjectID)
	if p == nil {
		return false
	}
	d := Day(c.Date)
	switch c.Edge {
	case EdgeLeft:
		if d.After(Day(p.End)) {
			return false
		}
		if d.Equal(Day(p.Start)) {
			return false
		}
		p.Start = d
	case EdgeRight:
		if d.Before(Day(p.Start)) {
			return false
		}
		if d.Equal(Day(p.End)) {
			return false
		}
		p.End = d
	}
	return true
}

// GroupProjects runs the user-level grouping action on a selection of
// two or more projects. Touching no existing group creates one;
// touching exactly one adds the remaining selection to it; touching
// several merges them all (plus any ungrouped selections) into one new
// group. Projects joining an existing group take its color.
type GroupProjects struct {
	ProjectIDs []string
}

func (c GroupProjects) run(s *State) bool {
	if len(c.ProjectIDs) < 2 {
		return false
	}
	var existing []string
	var ungrouped []string
	seenGroup := make(map[string]bool)
	for _, pid := range c.ProjectIDs {
		if s.Project(pid) == nil {
			continue
		}
		if g := s.Groups.ByProject(pid); g != nil {
			if !seenGroup[g.ID] {
				seenGroup[g.ID] = true
				existing = append(existing, g.ID)
			}
		} else {
			ungrouped = append(ungrouped, pid)
		}
	}

	switch len(existing) {
	case 0:
		if len(ungrouped) < 2 {
			return false
		}
		return s.Groups.Create(ungrouped, s.defaultGroupName(ungrouped[0])) != nil
	case 1:
		if len(ungrouped) == 0 {
			return false
		}
		gid := existing[0]
		color := s.groupColor(gid)
		added := false
		for _, pid := range ungrouped {
			if s.Groups.AddProject(gid, pid) {
				added = true
				if color != "" {
					if p := s.Project(pid); p != nil {
						p.Color = color
					}
				}
			}
		}
		return added
	default:
		name := ""
		if g := s.Groups.ByID(existing[0]); g != nil && len(g.ProjectIDs) > 0 {
			name = s.defaultGroupName(g.ProjectIDs[0])
		}
		return s.Groups.Merge(existing, ungrouped, name) != nil
	}
}

func (s *State) defaultGroupName(projectID string) string {
	if p := s.Project(projectID); p != nil {
		return p.Name + " Group"
	}
	return "New Group"
}

// groupColor returns the color of the first member found, the color a
// newly added member inherits.
func (s *State) groupColor(groupID string) string {
	g := s.Groups.ByID(groupID)
	if g == nil {
		return ""
	}
	for _, pid := range g.ProjectIDs {
		if p := s.Project(pid); p != nil {
			return p.Color
		}
	}
	return ""
}

// UngroupProject detaches a project from its group; the group is
// deleted if that leaves it with fewer than two members.
type UngroupProject struct {
	ProjectID string
}

func (c UngroupProject) run(s *State) bool {
	return s.Groups.RemoveProject(c.ProjectID)
}

// DeleteProjects removes the selected projects. A selected project
// that belongs to a group takes the whole group with it: every member
// is deleted and the group itself is removed.
type DeleteProjects struct {
	ProjectIDs []string
}

func (c DeleteProjects) run(s *State) bool {
	doomed := make(map[string]bool)
	for _, pid := range c.ProjectIDs {
		if s.Project(pid) == nil {
			continue
		}
		if g := s.Groups.ByProject(pid); g != nil {
			for _, member := range g.ProjectIDs {
				doomed[member] = true
			}
			s.Groups.Delete(g.ID)
		} else {
			doomed[pid] = true
		}
	}
	if len(doomed) == 0 {
		return false
	}
	kept := s.Projects[:0]
	for _, p := range s.Projects {
		if !doomed[p.ID] {
			kept = append(kept, p)
		}
	}
	s.Projects = kept
	s.Groups.Cleanup()
	return true
}

// DuplicateProject copies a project under a new id with a "(Copy)"
// suffix. The copy is never a member of the original's group.
type DuplicateProject struct {
	ProjectID string

	// Created holds the new project's id after a successful apply.
	Created string
}

func (c *DuplicateProject) run(s *State) bool {
	p := s.Project(c.ProjectID)
	if p == nil {
		return false
	}
	dup := *p
	dup.ID = uuid.NewString()
	dup.Name = p.Name + " (Copy)"
	dup.Pinned = false
	s.Projects = append(s.Projects, dup)
	c.Created = dup.ID
	return true
}

// DuplicateGroup copies every member of a project-group and bundles
// the copies into a new group.
type DuplicateGroup struct {
	GroupID string
}

func (c DuplicateGroup) run(s *State) bool {
	g := s.Groups.ByID(c.GroupID)
	if g == nil {
		return false
	}
	var newIDs []string
	for _, pid := range g.ProjectIDs {
		p := s.Project(pid)
		if p == nil {
			continue
		}
		dup := *p
		dup.ID = uuid.NewString()
		dup.Name = p.Name + " (Copy)"
		dup.Pinned = false
		s.Projects = append(s.Projects, dup)
		newIDs = append(newIDs, dup.ID)
	}
	if len(newIDs) < 2 {
		return len(newIDs) > 0
	}
	s.Groups.Create(newIDs, g.Name+" (Copy)")
	return true
}

// UpdateProject commits a form edit. Changing the color of a grouped
// project rewrites every member of the group to the new color.
type UpdateProject struct {
	Project models.Project
}

func (c UpdateProject) run(s *State) bool {
	p := s.Project(c.Project.ID)
	if p == nil {
		return false
	}
	colorChanged := p.Color != c.Project.Color
	g := s.Groups.ByProject(p.ID)
	*p = c.Project
	if g != nil && colorChanged {
		for _, pid := range g.ProjectIDs {
			if m := s.Project(pid); m != nil {
				m.Color = c.Project.Color
			}
		}
	}
	return true
}

// TogglePin flips a single project's pin state.
type TogglePin struct {
	ProjectID string
}

func (c TogglePin) run(s *State) bool {
	p := s.Project(c.ProjectID)
	if p == nil {
		return false
	}
	p.Pinned = !p.Pinned
	return true
}

// TogglePinGroup pins every member of a group, or unpins them all if
// every member is already pinned.
type TogglePinGroup struct {
	GroupID string
}

func (c TogglePinGroup) run(s *State) bool {
	members := s.GroupMembers(c.GroupID)
	if len(members) == 0 {
		return false
	}
	allPinned := true
	for _, m := range members {
		if !m.Pinned {
			allPinned = false
			break
		}
	}
	for _, m := range members {
		if p := s.Project(m.ID); p != nil {
			p.Pinned = !allPinned
		}
	}
	return true
}

// ShiftAnchor pans the visible window by whole days.
type ShiftAnchor struct {
	Days int
}

func (c ShiftAnchor) run(s *State) bool {
	if c.Days == 0 {
		return false
	}
	s.Settings.Anchor = AddDays(s.Anchor(), c.Days)
	return true
}

// SetAnchor jumps the window to a specific first visible date.
type SetAnchor struct {
	Anchor time.Time
}

func (c SetAnchor) run(s *State) bool {
	s.Settings.Anchor = Day(c.Anchor)
	return true
}

// SetViewMode switches between the week, two-week and month windows.
type SetViewMode struct {
	Mode models.ViewMode
}

func (c SetViewMode) run(s *State) bool {
	if s.Settings.ViewMode == c.Mode {
		return false
	}
	s.Settings.ViewMode = c.Mode
	return true
}
