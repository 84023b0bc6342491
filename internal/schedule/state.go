package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/solidpoint/spsched/internal/models"
)

// DefaultProjectColor matches the color new projects are born with.
const DefaultProjectColor = "#b39ddb"

// State is the single source of truth for everything the timeline
// shows: the resource hierarchy, projects, project-groups, day-offs
// and view settings. All interaction-driven mutation goes through
// Apply; the UI re-renders after every change.
type State struct {
	ResourceGroups []models.ResourceGroup
	Projects       []models.Project
	Groups         *GroupStore
	DayOffs        []models.DayOff
	Settings       models.Settings
}

// NewState builds a state container around loaded data.
func NewState(groups []models.ResourceGroup, projects []models.Project, projectGroups []models.ProjectGroup, dayOffs []models.DayOff, settings models.Settings) *State {
	return &State{
		ResourceGroups: groups,
		Projects:       projects,
		Groups:         NewGroupStore(projectGroups),
		DayOffs:        dayOffs,
		Settings:       settings,
	}
}

// Apply runs a command against the state and reports whether anything
// changed. Commands that would violate a constraint leave the state
// untouched and return false.
func (s *State) Apply(cmd Command) bool {
	if cmd == nil {
		return false
	}
	return cmd.run(s)
}

// Project returns the project with the given id, or nil.
func (s *State) Project(id string) *models.Project {
	for i := range s.Projects {
		if s.Projects[i].ID == id {
			return &s.Projects[i]
		}
	}
	return nil
}

// Resource resolves a resource id to the resource and its owning
// group.
func (s *State) Resource(id string) (*models.Resource, *models.ResourceGroup) {
	for gi := range s.ResourceGroups {
		g := &s.ResourceGroups[gi]
		for ri := range g.Resources {
			if g.Resources[ri].ID == id {
				return &g.Resources[ri], g
			}
		}
	}
	return nil, nil
}

// GroupMembers returns the projects belonging to a project-group, in
// the group's member order.
func (s *State) GroupMembers(groupID string) []models.Project {
	g := s.Groups.ByID(groupID)
	if g == nil {
		return nil
	}
	var members []models.Project
	for _, pid := range g.ProjectIDs {
		if p := s.Project(pid); p != nil {
			members = append(members, *p)
		}
	}
	return members
}

// groupOnSingleResource reports whether every member of the group sits
// on one resource. Mixed-resource groups cannot be relocated.
func (s *State) groupOnSingleResource(groupID string) bool {
	members := s.GroupMembers(groupID)
	if len(members) == 0 {
		return false
	}
	first := members[0].ResourceID
	for _, m := range members[1:] {
		if m.ResourceID != first {
			return false
		}
	}
	return true
}

// DayOffOn returns the day-off entry covering the given date, or nil.
func (s *State) DayOffOn(date time.Time) *models.DayOff {
	d := Day(date)
	for i := range s.DayOffs {
		if Day(s.DayOffs[i].Date).Equal(d) {
			return &s.DayOffs[i]
		}
	}
	return nil
}

// CreateProjectAt adds a default one-day project on the clicked cell
// and returns it.
func (s *State) CreateProjectAt(groupID, resourceID string, date time.Time) *models.Project {
	p := models.Project{
		ID:         uuid.NewString(),
		Name:       "New Project",
		ResourceID: resourceID,
		GroupID:    groupID,
		Start:      Day(date),
		End:        Day(date),
		Color:      DefaultProjectColor,
	}
	s.Projects = append(s.Projects, p)
	return &s.Projects[len(s.Projects)-1]
}

// AddDayOff records a day-off for a date, replacing any existing entry
// on the same date.
func (s *State) AddDayOff(d models.DayOff) {
	s.RemoveDayOff(d.Date)
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.Date = Day(d.Date)
	s.DayOffs = append(s.DayOffs, d)
}

// RemoveDayOff deletes the day-off on the given date, if any.
func (s *State) RemoveDayOff(date time.Time) bool {
	d := Day(date)
	for i := range s.DayOffs {
		if Day(s.DayOffs[i].Date).Equal(d) {
			s.DayOffs = append(s.DayOffs[:i], s.DayOffs[i+1:]...)
			return true
		}
	}
	return false
}

// AddResourceGroup appends a new empty resource group.
func (s *State) AddResourceGroup(name string) *models.ResourceGroup {
	s.ResourceGroups = append(s.ResourceGroups, models.ResourceGroup{
		ID:   uuid.NewString(),
		Name: name,
	})
	return &s.ResourceGroups[len(s.ResourceGroups)-1]
}

// AddResource appends a resource to a group.
func (s *State) AddResource(groupID, name string) *models.Resource {
	for gi := range s.ResourceGroups {
		g := &s.ResourceGroups[gi]
		if g.ID == groupID {
			g.Resources = append(g.Resources, models.Resource{ID: uuid.NewString(), Name: name})
			return &g.Resources[len(g.Resources)-1]
		}
	}
	return nil
}

// RemoveResource deletes a resource and every project scheduled on it.
func (s *State) RemoveResource(resourceID string) bool {
	for gi := range s.ResourceGroups {
		g := &s.ResourceGroups[gi]
		for ri := range g.Resources {
			if g.Resources[ri].ID == resourceID {
				g.Resources = append(g.Resources[:ri], g.Resources[ri+1:]...)
				kept := s.Projects[:0]
				for _, p := range s.Projects {
					if p.ResourceID != resourceID {
						kept = append(kept, p)
					} else {
						s.Groups.RemoveProject(p.ID)
					}
				}
				s.Projects = kept
				return true
			}
		}
	}
	return false
}

// RemoveResourceGroup deletes a group, its resources and their
// projects.
func (s *State) RemoveResourceGroup(groupID string) bool {
	for gi := range s.ResourceGroups {
		if s.ResourceGroups[gi].ID == groupID {
			for _, r := range s.ResourceGroups[gi].Resources {
				kept := s.Projects[:0]
				for _, p := range s.Projects {
					if p.ResourceID != r.ID {
						kept = append(kept, p)
					} else {
						s.Groups.RemoveProject(p.ID)
					}
				}
				s.Projects = kept
			}
			s.ResourceGroups = append(s.ResourceGroups[:gi], s.ResourceGroups[gi+1:]...)
			return true
		}
	}
	return false
}

// Anchor returns the effective first visible date: the stored anchor,
// or seven days before today when none is set.
func (s *State) Anchor() time.Time {
	if s.Settings.Anchor.IsZero() {
		return AddDays(time.Now(), -7)
	}
	return Day(s.Settings.Anchor)
}

// Clone deep-copies the state so a snapshot can be persisted from a
// goroutine while the UI keeps mutating the original.
func (s *State) Clone() *State {
	groups := make([]models.ResourceGroup, len(s.ResourceGroups))
	for i, g := range s.ResourceGroups {
		g.Resources = append([]models.Resource(nil), g.Resources...)
		groups[i] = g
	}
	pgs := make([]models.ProjectGroup, len(s.Groups.Groups()))
	for i, g := range s.Groups.Groups() {
		g.ProjectIDs = append([]string(nil), g.ProjectIDs...)
		pgs[i] = g
	}
	return &State{
		ResourceGroups: groups,
		Projects:       append([]models.Project(nil), s.Projects...),
		Groups:         &GroupStore{groups: pgs},
		DayOffs:        append([]models.DayOff(nil), s.DayOffs...),
		Settings:       s.Settings,
	}
}
