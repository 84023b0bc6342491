package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solidpoint/spsched/internal/models"
)

func TestCreateRejectsFewerThanTwo(t *testing.T) {
	s := NewGroupStore(nil)

	assert.Nil(t, s.Create(nil, ""))
	assert.Nil(t, s.Create([]string{"a"}, ""))
	assert.Empty(t, s.Groups())

	g := s.Create([]string{"a", "b"}, "")
	require.NotNil(t, g)
	assert.Equal(t, "New Group", g.Name)
	assert.Equal(t, []string{"a", "b"}, g.ProjectIDs)
}

func TestNewGroupStoreSweepsDegenerates(t *testing.T) {
	s := NewGroupStore([]models.ProjectGroup{
		{ID: "g1", Name: "ok", ProjectIDs: []string{"a", "b"}},
		{ID: "g2", Name: "single", ProjectIDs: []string{"c"}},
		{ID: "g3", Name: "empty"},
	})

	require.Len(t, s.Groups(), 1)
	assert.Equal(t, "g1", s.Groups()[0].ID)
}

func TestByProject(t *testing.T) {
	s := NewGroupStore(nil)
	g := s.Create([]string{"a", "b"}, "one")
	require.NotNil(t, g)

	found := s.ByProject("b")
	require.NotNil(t, found)
	assert.Equal(t, g.ID, found.ID)

	assert.Nil(t, s.ByProject("zzz"))
}

func TestAddProjectRejectsDuplicates(t *testing.T) {
	s := NewGroupStore(nil)
	g := s.Create([]string{"a", "b"}, "one")

	assert.True(t, s.AddProject(g.ID, "c"))
	assert.False(t, s.AddProject(g.ID, "c"), "already a member")
	assert.False(t, s.AddProject("nope", "d"))
	assert.Equal(t, []string{"a", "b", "c"}, s.ByID(g.ID).ProjectIDs)
}

func TestRemoveProjectCascadesToGroupDeletion(t *testing.T) {
	s := NewGroupStore(nil)
	g := s.Create([]string{"a", "b", "c"}, "one")

	require.True(t, s.RemoveProject("c"))
	require.NotNil(t, s.ByID(g.ID), "two members remain, group survives")

	require.True(t, s.RemoveProject("b"))
	assert.Nil(t, s.ByID(g.ID), "one member left, group is deleted not shrunk")
	assert.Nil(t, s.ByProject("a"))
}

func TestRemoveProjectUnknown(t *testing.T) {
	s := NewGroupStore(nil)
	s.Create([]string{"a", "b"}, "one")
	assert.False(t, s.RemoveProject("zzz"))
	assert.Len(t, s.Groups(), 1)
}

func TestProjectInAtMostOneGroup(t *testing.T) {
	s := NewGroupStore(nil)
	s.Create([]string{"a", "b"}, "one")
	s.Create([]string{"c", "d"}, "two")

	// membership checks look at every group; a project must only ever
	// resolve to one
	count := 0
	for _, g := range s.Groups() {
		if g.Contains("a") {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestMergeUnionsAndDeletesSources(t *testing.T) {
	s := NewGroupStore(nil)
	g1 := s.Create([]string{"a", "b"}, "one")
	g2 := s.Create([]string{"b", "c"}, "two") // shared member on purpose

	merged := s.Merge([]string{g1.ID, g2.ID}, []string{"d"}, "merged")
	require.NotNil(t, merged)

	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, merged.ProjectIDs)
	assert.Nil(t, s.ByID(g1.ID))
	assert.Nil(t, s.ByID(g2.ID))
	require.Len(t, s.Groups(), 1)
}

func TestDeleteLeavesMembersUngrouped(t *testing.T) {
	s := NewGroupStore(nil)
	g := s.Create([]string{"a", "b"}, "one")

	require.True(t, s.Delete(g.ID))
	assert.Nil(t, s.ByProject("a"))
	assert.Nil(t, s.ByProject("b"))
	assert.False(t, s.Delete(g.ID))
}

func TestRename(t *testing.T) {
	s := NewGroupStore(nil)
	g := s.Create([]string{"a", "b"}, "one")

	require.True(t, s.Rename(g.ID, "renamed"))
	assert.Equal(t, "renamed", s.ByID(g.ID).Name)
	assert.False(t, s.Rename("nope", "x"))
}

func TestCleanupIdempotent(t *testing.T) {
	s := NewGroupStore(nil)
	s.Create([]string{"a", "b"}, "one")

	assert.Equal(t, 0, s.Cleanup())
	assert.Equal(t, 0, s.Cleanup())
	assert.Len(t, s.Groups(), 1)
}

// Interleaved operations must never leave a degenerate group behind.
func TestInvariantAcrossOperationSequence(t *testing.T) {
	s := NewGroupStore(nil)

	g1 := s.Create([]string{"a", "b"}, "one")
	s.AddProject(g1.ID, "c")
	s.RemoveProject("a")
	g2 := s.Create([]string{"d", "e"}, "two")
	s.Merge([]string{g1.ID, g2.ID}, nil, "merged")
	s.RemoveProject("b")
	s.RemoveProject("c")
	s.RemoveProject("d")

	for _, g := range s.Groups() {
		assert.GreaterOrEqual(t, len(g.ProjectIDs), 2,
			"group %s violates the minimum-membership invariant", g.Name)
	}
}
