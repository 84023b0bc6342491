package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewModeDays(t *testing.T) {
	assert.Equal(t, 7, ViewWeek.Days())
	assert.Equal(t, 14, ViewTwoWeek.Days())
	assert.Equal(t, 30, ViewMonth.Days())
	assert.Equal(t, 7, ViewMode("bogus").Days(), "unknown modes fall back to a week")
}

func TestViewModeNextCycles(t *testing.T) {
	assert.Equal(t, ViewTwoWeek, ViewWeek.Next())
	assert.Equal(t, ViewMonth, ViewTwoWeek.Next())
	assert.Equal(t, ViewWeek, ViewMonth.Next())
}

func TestProjectGroupContains(t *testing.T) {
	g := ProjectGroup{ID: "g", ProjectIDs: []string{"a", "b"}}
	assert.True(t, g.Contains("a"))
	assert.False(t, g.Contains("c"))
}
