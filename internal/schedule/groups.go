package schedule

import (
	"github.com/google/uuid"

	"github.com/solidpoint/spsched/internal/models"
)

// GroupStore maintains the project-group relation. Invariant after
// every mutating call: each group has at least two members, and a
// project id appears in at most one group.
type GroupStore struct {
	groups []models.ProjectGroup
}

// NewGroupStore wraps an existing slice of groups (e.g. freshly
// loaded), sweeping away any degenerate ones.
func NewGroupStore(groups []models.ProjectGroup) *GroupStore {
	s := &GroupStore{groups: groups}
	s.Cleanup()
	return s
}

// Groups returns the live group slice, ordered by creation.
func (s *GroupStore) Groups() []models.ProjectGroup {
	return s.groups
}

// Create makes a new group from the given project ids. Returns nil if
// fewer than two ids are supplied. An empty name gets a default later,
// at the call site that knows the project names.
func (s *GroupStore) Create(projectIDs []string, name string) *models.ProjectGroup {
	if len(projectIDs) < 2 {
		return nil
	}
	if name == "" {
		name = "New Group"
	}
	g := models.ProjectGroup{
		ID:         uuid.NewString(),
		Name:       name,
		ProjectIDs: append([]string(nil), projectIDs...),
	}
	s.groups = append(s.groups, g)
	return &s.groups[len(s.groups)-1]
}

// ByID returns the group with the given id, or nil.
func (s *GroupStore) ByID(groupID string) *models.ProjectGroup {
	for i := range s.groups {
		if s.groups[i].ID == groupID {
			return &s.groups[i]
		}
	}
	return nil
}

// ByProject returns the group containing the given project, or nil.
// At most one group can match.
func (s *GroupStore) ByProject(projectID string) *models.ProjectGroup {
	for i := range s.groups {
		if s.groups[i].Contains(projectID) {
			return &s.groups[i]
		}
	}
	return nil
}

// AddProject appends a project to an existing group. Returns false if
// the group does not exist or the project is already a member.
func (s *GroupStore) AddProject(groupID, projectID string) bool {
	g := s.ByID(groupID)
	if g == nil || g.Contains(projectID) {
		return false
	}
	g.ProjectIDs = append(g.ProjectIDs, projectID)
	return true
}

// RemoveProject removes a project from whichever group contains it.
// A group left with fewer than two members is deleted, not shrunk.
// Returns false if no group contained the project.
func (s *GroupStore) RemoveProject(projectID string) bool {
	removed := false
	for i := range s.groups {
		g := &s.groups[i]
		for j, id := range g.ProjectIDs {
			if id == projectID {
				g.ProjectIDs = append(g.ProjectIDs[:j], g.ProjectIDs[j+1:]...)
				removed = true
				break
			}
		}
	}
	if removed {
		s.Cleanup()
	}
	return removed
}

// Delete removes a group entirely, leaving its members ungrouped.
func (s *GroupStore) Delete(groupID string) bool {
	for i := range s.groups {
		if s.groups[i].ID == groupID {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			return true
		}
	}
	return false
}

// Rename changes a group's display name.
func (s *GroupStore) Rename(groupID, name string) bool {
	g := s.ByID(groupID)
	if g == nil {
		return false
	}
	g.Name = name
	return true
}

// Merge unions the members of the given groups plus any extra project
// ids into one new group, deleting the sources. Used when a selection
// spans multiple existing groups.
func (s *GroupStore) Merge(groupIDs []string, extraProjectIDs []string, name string) *models.ProjectGroup {
	var members []string
	seen := make(map[string]bool)
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			members = append(members, id)
		}
	}
	for _, gid := range groupIDs {
		if g := s.ByID(gid); g != nil {
			for _, pid := range g.ProjectIDs {
				add(pid)
			}
		}
	}
	for _, pid := range extraProjectIDs {
		add(pid)
	}
	for _, gid := range groupIDs {
		s.Delete(gid)
	}
	return s.Create(members, name)
}

// Cleanup drops every group with fewer than two members. Idempotent
// and safe to call at any time; returns the number removed.
func (s *GroupStore) Cleanup() int {
	kept := s.groups[:0]
	removed := 0
	for _, g := range s.groups {
		if len(g.ProjectIDs) >= 2 {
			kept = append(kept, g)
		} else {
			removed++
		}
	}
	s.groups = kept
	return removed
}
