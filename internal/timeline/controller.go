package timeline

import (
	"time"

	"github.com/solidpoint/spsched/internal/models"
	"github.com/solidpoint/spsched/internal/schedule"
)

// GestureState is the controller's pointer state machine.
type GestureState int

const (
	GestureIdle GestureState = iota
	GesturePending // button down on a bar, movement still below threshold
	GestureDragging
	GestureResizing
	GestureHoldNav
)

// DragThreshold is how far the pointer must travel, in cells, before a
// press on a bar becomes a drag instead of a click.
const DragThreshold = 1

// Modifiers carries the modifier keys held during a pointer event.
type Modifiers struct {
	Ctrl  bool
	Shift bool
}

// CellClick reports a click on an empty timeline cell.
type CellClick struct {
	GroupID    string
	ResourceID string
	Date       time.Time
}

// PinPrompt is a drop on a pinned project awaiting user confirmation.
// Confirming unpins the project and replays the move.
type PinPrompt struct {
	ProjectID string
	Move      schedule.MoveProject
}

// Result is what a pointer or key event produced: commands to apply,
// and any interaction the view must surface.
type Result struct {
	Commands  []schedule.Command
	CellClick *CellClick
	PinPrompt *PinPrompt
	Changed   bool // selection or ghost moved; re-render even without commands
}

// Controller translates pointer and keyboard input into schedule
// commands. Exactly one gesture can be active at a time; drag, resize
// and hold-navigation are mutually exclusive.
type Controller struct {
	state GestureState

	selection []string

	// drag gesture
	dragID        string
	downX, downY  int
	grabDays      int // days between the pointer's date and the bar's start at press
	ghostStart    time.Time
	ghostResource string
	ghostActive   bool

	// resize gesture
	resizeID   string
	resizeEdge schedule.Edge

	// press on an empty cell, resolved as a click on release
	pendingCell *CellClick

	// hold navigation
	navDir int
	navSeq int
}

// NewController returns an idle controller with an empty selection.
func NewController() *Controller {
	return &Controller{}
}

// State returns the current gesture state.
func (c *Controller) State() GestureState {
	return c.state
}

// Selection returns the selected project ids in selection order.
func (c *Controller) Selection() []string {
	return append([]string(nil), c.selection...)
}

// Selected reports whether a project is in the selection.
func (c *Controller) Selected(projectID string) bool {
	for _, id := range c.selection {
		if id == projectID {
			return true
		}
	}
	return false
}

// ClearSelection empties the selection set.
func (c *Controller) ClearSelection() {
	c.selection = nil
}

// Ghost returns the drag ghost's target while a drag is in flight.
func (c *Controller) Ghost() (projectID string, start time.Time, resourceID string, active bool) {
	if c.state != GestureDragging || !c.ghostActive {
		return "", time.Time{}, "", false
	}
	return c.dragID, c.ghostStart, c.ghostResource, true
}

// Navigating reports whether hold-navigation is active; view-mode
// changes are suppressed while it is.
func (c *Controller) Navigating() bool {
	return c.state == GestureHoldNav
}

// MouseDown starts a gesture. On a bar body it arms a pending drag; on
// a resize handle it starts resizing; on an empty cell it remembers
// the cell so a clean release becomes a cell click. Ctrl-clicks only
// edit the selection and never start a gesture.
func (c *Controller) MouseDown(x, y int, grid Grid, st *schedule.State, mods Modifiers) Result {
	if c.state == GestureHoldNav {
		c.StopHoldNav()
	}
	if c.state != GestureIdle {
		return Result{}
	}

	if p, zone, ok := grid.ProjectAt(x, y); ok {
		if mods.Ctrl {
			c.toggleSelection(st, p.ID, mods.Shift)
			return Result{Changed: true}
		}
		switch zone {
		case ZoneLeftHandle:
			c.state = GestureResizing
			c.resizeID = p.ID
			c.resizeEdge = schedule.EdgeLeft
		case ZoneRightHandle:
			c.state = GestureResizing
			c.resizeID = p.ID
			c.resizeEdge = schedule.EdgeRight
		default:
			c.state = GesturePending
			c.dragID = p.ID
			c.downX, c.downY = x, y
			if _, date, ok := grid.HitTest(x, y); ok {
				c.grabDays = schedule.DaysBetween(p.Start, date)
			}
		}
		return Result{Changed: true}
	}

	if resourceID, date, ok := grid.HitTest(x, y); ok {
		if band := grid.BandAt(y); band != nil {
			c.pendingCell = &CellClick{GroupID: band.GroupID, ResourceID: resourceID, Date: date}
			c.downX, c.downY = x, y
		}
	}
	return Result{}
}

// MouseMove advances an active gesture. A pending drag crosses the
// movement threshold into a real drag; a drag updates the snapped
// ghost cell; a resize applies the grabbed edge's new date on every
// move, clamped by the reducer so the interval can never invert.
func (c *Controller) MouseMove(x, y int, grid Grid, st *schedule.State) Result {
	switch c.state {
	case GesturePending:
		if abs(x-c.downX) <= DragThreshold && y == c.downY {
			return Result{}
		}
		c.state = GestureDragging
		c.ghostActive = false
		fallthrough

	case GestureDragging:
		resourceID, date, ok := grid.HitTest(x, y)
		if !ok {
			return Result{}
		}
		start := schedule.AddDays(date, -c.grabDays)
		if c.ghostActive && c.ghostStart.Equal(start) && c.ghostResource == resourceID {
			return Result{}
		}
		c.ghostStart = start
		c.ghostResource = resourceID
		c.ghostActive = true
		return Result{Changed: true}

	case GestureResizing:
		_, date, ok := grid.HitTest(x, y)
		if !ok {
			return Result{}
		}
		return Result{
			Commands: []schedule.Command{
				schedule.ResizeProject{ProjectID: c.resizeID, Edge: c.resizeEdge, Date: date},
			},
		}
	}

	if c.pendingCell != nil && (x != c.downX || y != c.downY) {
		c.pendingCell = nil
	}
	return Result{}
}

// MouseUp ends the active gesture. A pending drag that never crossed
// the threshold is a click and selects the project (or its whole
// group); a drag commits the move, prompting first when the project
// is pinned; a resize just ends, its edits already applied.
func (c *Controller) MouseUp(x, y int, grid Grid, st *schedule.State) Result {
	switch c.state {
	case GesturePending:
		id := c.dragID
		c.reset()
		c.selectProject(st, id)
		return Result{Changed: true}

	case GestureDragging:
		id := c.dragID
		ghostStart, ghostResource, active := c.ghostStart, c.ghostResource, c.ghostActive
		c.reset()
		if !active {
			return Result{Changed: true}
		}
		move := schedule.MoveProject{ProjectID: id, Start: ghostStart, ResourceID: ghostResource}
		if p := st.Project(id); p != nil && p.Pinned {
			return Result{PinPrompt: &PinPrompt{ProjectID: id, Move: move}, Changed: true}
		}
		return Result{Commands: []schedule.Command{move}, Changed: true}

	case GestureResizing:
		c.reset()
		return Result{Changed: true}
	}

	if cell := c.pendingCell; cell != nil {
		c.pendingCell = nil
		return Result{CellClick: cell}
	}
	return Result{}
}

// Escape cancels the active gesture and clears the selection.
func (c *Controller) Escape() Result {
	changed := c.state != GestureIdle || len(c.selection) > 0 || c.pendingCell != nil
	if c.state == GestureHoldNav {
		c.StopHoldNav()
	}
	c.reset()
	c.selection = nil
	return Result{Changed: changed}
}

// GroupSelection runs the grouping action on the current selection and
// clears it on success.
func (c *Controller) GroupSelection() Result {
	if len(c.selection) < 2 {
		return Result{}
	}
	ids := c.Selection()
	c.selection = nil
	return Result{
		Commands: []schedule.Command{schedule.GroupProjects{ProjectIDs: ids}},
		Changed:  true,
	}
}

// DeleteSelection builds the delete command for the current selection.
// The view confirms before applying it; grouped selections delete the
// whole group of every selected member.
func (c *Controller) DeleteSelection() (schedule.DeleteProjects, bool) {
	if len(c.selection) == 0 {
		return schedule.DeleteProjects{}, false
	}
	return schedule.DeleteProjects{ProjectIDs: c.Selection()}, true
}

// StartHoldNav begins hold-to-pan in the given direction (-1 or +1)
// and returns the timer sequence. Starting a new hold cancels any
// previous one; only one may be active at a time.
func (c *Controller) StartHoldNav(dir int) int {
	c.reset()
	c.state = GestureHoldNav
	c.navDir = dir
	c.navSeq++
	return c.navSeq
}

// HoldTick emits one anchor shift for an active hold. Ticks from a
// cancelled hold (stale sequence) produce nothing.
func (c *Controller) HoldTick(seq int) (schedule.Command, bool) {
	if c.state != GestureHoldNav || seq != c.navSeq {
		return nil, false
	}
	return schedule.ShiftAnchor{Days: c.navDir}, true
}

// StopHoldNav ends hold-navigation and invalidates outstanding ticks.
func (c *Controller) StopHoldNav() {
	if c.state == GestureHoldNav {
		c.state = GestureIdle
	}
	c.navSeq++
	c.navDir = 0
}

// selectProject replaces the selection with the project, expanded to
// its whole group when it has one.
func (c *Controller) selectProject(st *schedule.State, projectID string) {
	c.selection = nil
	if g := st.Groups.ByProject(projectID); g != nil {
		c.selection = append(c.selection, g.ProjectIDs...)
		return
	}
	if st.Project(projectID) != nil {
		c.selection = []string{projectID}
	}
}

// toggleSelection adds a project (or its whole group) to the
// selection, or removes it when shift is held.
func (c *Controller) toggleSelection(st *schedule.State, projectID string, remove bool) {
	ids := []string{projectID}
	if g := st.Groups.ByProject(projectID); g != nil {
		ids = g.ProjectIDs
	}
	if remove {
		for _, id := range ids {
			c.removeFromSelection(id)
		}
		return
	}
	for _, id := range ids {
		if !c.Selected(id) {
			c.selection = append(c.selection, id)
		}
	}
}

func (c *Controller) removeFromSelection(projectID string) {
	for i, id := range c.selection {
		if id == projectID {
			c.selection = append(c.selection[:i], c.selection[i+1:]...)
			return
		}
	}
}

func (c *Controller) reset() {
	if c.state != GestureHoldNav {
		c.state = GestureIdle
	}
	c.dragID = ""
	c.ghostActive = false
	c.resizeID = ""
	c.pendingCell = nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// GhostProject returns the dragged project with the ghost's target
// applied, for rendering the live preview. Grouped drags preview only
// the dragged bar; members snap on commit.
func (c *Controller) GhostProject(st *schedule.State) (models.Project, bool) {
	id, start, resourceID, active := c.Ghost()
	if !active {
		return models.Project{}, false
	}
	p := st.Project(id)
	if p == nil {
		return models.Project{}, false
	}
	ghost := *p
	offset := schedule.DaysBetween(p.Start, start)
	iv := schedule.ProjectInterval(*p).Shift(offset)
	ghost.Start, ghost.End = iv.Start, iv.End
	ghost.ResourceID = resourceID
	return ghost, true
}
