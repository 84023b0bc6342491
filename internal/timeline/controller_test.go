package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solidpoint/spsched/internal/models"
	"github.com/solidpoint/spsched/internal/schedule"
)

func newControllerFixture(t *testing.T) (*Controller, Grid, *schedule.State) {
	t.Helper()
	st := schedule.NewState(testResourceGroups(), testProjects(), nil, nil,
		models.Settings{ViewMode: models.ViewWeek, Anchor: date(2024, 1, 1)})
	w := ComputeWindow(models.ViewWeek, date(2024, 1, 1))
	grid := BuildGrid(st.ResourceGroups, st.Projects, w, 10, 4)
	return NewController(), grid, st
}

// A press and release without crossing the threshold is a click and
// selects the project.
func TestClickSelectsProject(t *testing.T) {
	c, g, st := newControllerFixture(t)
	y := HeaderRows + 1 // lane 0 of r1, project A
	x := g.ColX(1)

	res := c.MouseDown(x, y, g, st, Modifiers{})
	assert.True(t, res.Changed)
	assert.Equal(t, GesturePending, c.State())

	res = c.MouseUp(x, y, g, st)
	assert.True(t, res.Changed)
	assert.Empty(t, res.Commands)
	assert.Equal(t, []string{"A"}, c.Selection())
	assert.Equal(t, GestureIdle, c.State())
}

func TestClickOnGroupedProjectSelectsWholeGroup(t *testing.T) {
	c, g, st := newControllerFixture(t)
	require.True(t, st.Apply(schedule.GroupProjects{ProjectIDs: []string{"A", "B"}}))

	y := HeaderRows + 1
	x := g.ColX(1)
	c.MouseDown(x, y, g, st, Modifiers{})
	c.MouseUp(x, y, g, st)

	assert.ElementsMatch(t, []string{"A", "B"}, c.Selection())
}

func TestCtrlClickTogglesSelection(t *testing.T) {
	c, g, st := newControllerFixture(t)
	y := HeaderRows + 1
	x := g.ColX(1)

	res := c.MouseDown(x, y, g, st, Modifiers{Ctrl: true})
	assert.True(t, res.Changed)
	assert.Equal(t, GestureIdle, c.State(), "ctrl-click never starts a gesture")
	assert.Equal(t, []string{"A"}, c.Selection())

	// ctrl+shift removes
	c.MouseDown(x, y, g, st, Modifiers{Ctrl: true, Shift: true})
	assert.Empty(t, c.Selection())
}

func TestDragMovesProject(t *testing.T) {
	c, g, st := newControllerFixture(t)
	y := HeaderRows + 1
	x := g.ColX(1) // grab A on its second day

	c.MouseDown(x, y, g, st, Modifiers{})

	// movement inside the threshold stays a pending click
	res := c.MouseMove(x+1, y, g, st)
	assert.False(t, res.Changed)
	assert.Equal(t, GesturePending, c.State())

	// crossing the threshold starts the drag and places the ghost
	res = c.MouseMove(x+2*g.DayWidth, y, g, st)
	assert.True(t, res.Changed)
	assert.Equal(t, GestureDragging, c.State())

	ghost, ok := c.GhostProject(st)
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 3), ghost.Start, "grab offset preserved")
	assert.Equal(t, date(2024, 1, 5), ghost.End)

	res = c.MouseUp(x+2*g.DayWidth, y, g, st)
	require.Len(t, res.Commands, 1)
	move, ok := res.Commands[0].(schedule.MoveProject)
	require.True(t, ok)
	assert.Equal(t, "A", move.ProjectID)
	assert.Equal(t, date(2024, 1, 3), move.Start)
	assert.Equal(t, "r1", move.ResourceID)
	assert.Equal(t, GestureIdle, c.State())
}

func TestDragAcrossBandsChangesResource(t *testing.T) {
	c, g, st := newControllerFixture(t)
	y := HeaderRows + 1
	x := g.ColX(1) // grab A one day in; its first cell is the resize handle

	c.MouseDown(x, y, g, st, Modifiers{})
	r2Y := g.Bands[1].Y
	c.MouseMove(x, r2Y, g, st)

	res := c.MouseUp(x, r2Y, g, st)
	require.Len(t, res.Commands, 1)
	move := res.Commands[0].(schedule.MoveProject)
	assert.Equal(t, "r2", move.ResourceID)
	assert.Equal(t, date(2024, 1, 1), move.Start)
}

func TestDropOnPinnedProjectPrompts(t *testing.T) {
	c, g, st := newControllerFixture(t)
	require.True(t, st.Apply(schedule.TogglePin{ProjectID: "A"}))

	y := HeaderRows + 1
	x := g.ColX(1)
	c.MouseDown(x, y, g, st, Modifiers{})
	c.MouseMove(x+2*g.DayWidth, y, g, st)
	res := c.MouseUp(x+2*g.DayWidth, y, g, st)

	assert.Empty(t, res.Commands, "nothing applied until the user confirms")
	require.NotNil(t, res.PinPrompt)
	assert.Equal(t, "A", res.PinPrompt.ProjectID)
	assert.Equal(t, date(2024, 1, 3), res.PinPrompt.Move.Start)
}

func TestResizeEmitsLiveCommands(t *testing.T) {
	c, g, st := newControllerFixture(t)
	y := HeaderRows + 1
	x := g.ColX(2) + g.DayWidth - 1 // A's right handle

	res := c.MouseDown(x, y, g, st, Modifiers{})
	assert.True(t, res.Changed)
	assert.Equal(t, GestureResizing, c.State())

	res = c.MouseMove(g.ColX(4), y, g, st)
	require.Len(t, res.Commands, 1)
	resize := res.Commands[0].(schedule.ResizeProject)
	assert.Equal(t, "A", resize.ProjectID)
	assert.Equal(t, schedule.EdgeRight, resize.Edge)
	assert.Equal(t, date(2024, 1, 5), resize.Date)

	res = c.MouseUp(g.ColX(4), y, g, st)
	assert.Empty(t, res.Commands, "edits were already applied during the move")
	assert.Equal(t, GestureIdle, c.State())
}

func TestLeftHandleResize(t *testing.T) {
	c, g, st := newControllerFixture(t)
	y := HeaderRows + 1

	c.MouseDown(g.ColX(0), y, g, st, Modifiers{})
	require.Equal(t, GestureResizing, c.State())

	res := c.MouseMove(g.ColX(1), y, g, st)
	require.Len(t, res.Commands, 1)
	resize := res.Commands[0].(schedule.ResizeProject)
	assert.Equal(t, schedule.EdgeLeft, resize.Edge)
	assert.Equal(t, date(2024, 1, 2), resize.Date)
}

func TestEmptyCellClick(t *testing.T) {
	c, g, st := newControllerFixture(t)
	y := g.Bands[1].Y // r2's band
	x := g.ColX(0)    // Jan 1, C starts Jan 6

	c.MouseDown(x, y, g, st, Modifiers{})
	res := c.MouseUp(x, y, g, st)

	require.NotNil(t, res.CellClick)
	assert.Equal(t, "rg1", res.CellClick.GroupID)
	assert.Equal(t, "r2", res.CellClick.ResourceID)
	assert.Equal(t, date(2024, 1, 1), res.CellClick.Date)
}

func TestEmptyCellPressMovedAwayIsNotAClick(t *testing.T) {
	c, g, st := newControllerFixture(t)
	y := g.Bands[1].Y
	x := g.ColX(0)

	c.MouseDown(x, y, g, st, Modifiers{})
	c.MouseMove(x+3, y, g, st)
	res := c.MouseUp(x+3, y, g, st)

	assert.Nil(t, res.CellClick)
}

func TestGroupSelection(t *testing.T) {
	c, g, st := newControllerFixture(t)
	y := HeaderRows + 1

	res := c.GroupSelection()
	assert.Empty(t, res.Commands, "empty selection groups nothing")

	c.MouseDown(g.ColX(1), y, g, st, Modifiers{Ctrl: true})
	res = c.GroupSelection()
	assert.Empty(t, res.Commands, "one project is not groupable")

	c.MouseDown(g.ColX(1), y+1, g, st, Modifiers{Ctrl: true}) // B
	res = c.GroupSelection()
	require.Len(t, res.Commands, 1)
	group := res.Commands[0].(schedule.GroupProjects)
	assert.ElementsMatch(t, []string{"A", "B"}, group.ProjectIDs)
	assert.Empty(t, c.Selection(), "selection cleared after grouping")
}

func TestDeleteSelection(t *testing.T) {
	c, g, st := newControllerFixture(t)

	_, ok := c.DeleteSelection()
	assert.False(t, ok)

	y := HeaderRows + 1
	c.MouseDown(g.ColX(1), y, g, st, Modifiers{Ctrl: true})
	del, ok := c.DeleteSelection()
	require.True(t, ok)
	assert.Equal(t, []string{"A"}, del.ProjectIDs)
}

func TestEscapeCancelsDragWithoutMoving(t *testing.T) {
	c, g, st := newControllerFixture(t)
	y := HeaderRows + 1
	x := g.ColX(1)

	c.MouseDown(x, y, g, st, Modifiers{})
	c.MouseMove(x+2*g.DayWidth, y, g, st)
	require.Equal(t, GestureDragging, c.State())

	res := c.Escape()
	assert.True(t, res.Changed)
	assert.Equal(t, GestureIdle, c.State())
	assert.Empty(t, c.Selection())

	// releasing afterwards produces nothing
	res = c.MouseUp(x+2*g.DayWidth, y, g, st)
	assert.Empty(t, res.Commands)
}

func TestHoldNavTicksAndCancellation(t *testing.T) {
	c, _, _ := newControllerFixture(t)

	seq := c.StartHoldNav(1)
	assert.True(t, c.Navigating())

	cmd, ok := c.HoldTick(seq)
	require.True(t, ok)
	assert.Equal(t, schedule.ShiftAnchor{Days: 1}, cmd)

	// a new hold invalidates the old sequence
	seq2 := c.StartHoldNav(-1)
	_, ok = c.HoldTick(seq)
	assert.False(t, ok, "stale tick after restart")

	cmd, ok = c.HoldTick(seq2)
	require.True(t, ok)
	assert.Equal(t, schedule.ShiftAnchor{Days: -1}, cmd)

	c.StopHoldNav()
	assert.False(t, c.Navigating())
	_, ok = c.HoldTick(seq2)
	assert.False(t, ok, "ticks after stop produce nothing")
}

func TestMouseDownDuringHoldNavStopsIt(t *testing.T) {
	c, g, st := newControllerFixture(t)
	seq := c.StartHoldNav(1)

	c.MouseDown(g.ColX(1), HeaderRows+1, g, st, Modifiers{})
	assert.False(t, c.Navigating())
	_, ok := c.HoldTick(seq)
	assert.False(t, ok)
}

func TestOnlyOneGestureAtATime(t *testing.T) {
	c, g, st := newControllerFixture(t)
	y := HeaderRows + 1

	c.MouseDown(g.ColX(1), y, g, st, Modifiers{})
	require.Equal(t, GesturePending, c.State())

	// a second press while a gesture is active is ignored
	res := c.MouseDown(g.ColX(0), g.Bands[1].Y, g, st, Modifiers{})
	assert.False(t, res.Changed)
	assert.Equal(t, GesturePending, c.State())
}
