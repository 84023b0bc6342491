package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/solidpoint/spsched/internal/db"
	"github.com/solidpoint/spsched/internal/models"
	"github.com/solidpoint/spsched/internal/schedule"
	"github.com/solidpoint/spsched/internal/timeline"
	"github.com/solidpoint/spsched/internal/ui/keys"
	"github.com/solidpoint/spsched/internal/ui/styles"
)

type timelineMode int

const (
	modeNormal timelineMode = iota
	modeEditing
	modeDayOff
	modeConfirmDelete
	modeConfirmPin
	modeResources
	modeHelp
)

// Hold navigation repeats at roughly seven ticks per second after a
// short initial delay.
const (
	holdNavDelay    = 350 * time.Millisecond
	holdNavInterval = 143 * time.Millisecond
)

// Once a destructive action is confirmed, further confirmations are
// skipped for this long.
const confirmSuppression = 5 * time.Minute

type holdTickMsg struct{ seq int }

type savedMsg struct{ err error }

type clearStatusMsg struct{ seq int }

type toolbarZone struct {
	x0, x1 int
	id     string
}

// TimelineView renders the resource-by-time grid and owns all
// interaction with it.
type TimelineView struct {
	db     *db.DB
	state  *schedule.State
	ctrl   *timeline.Controller
	styles *styles.Styles
	keys   keys.KeyMap

	width   int
	height  int
	scrollY int

	grid timeline.Grid
	mode timelineMode

	form       *projectForm
	dayOffForm *dayOffForm
	resources  *resourcePanel

	pendingDelete schedule.DeleteProjects
	suppressUntil time.Time

	pinPrompt *timeline.PinPrompt

	status    string
	statusSeq int

	toolbar []toolbarZone

	// date of the most recent cell interaction, seeds the day-off form
	lastDate time.Time
}

// NewTimelineView builds the view around loaded state.
func NewTimelineView(database *db.DB, state *schedule.State) *TimelineView {
	v := &TimelineView{
		db:     database,
		state:  state,
		ctrl:   timeline.NewController(),
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		width:  80,
		height: 24,
	}
	v.rebuildGrid()
	return v
}

func (v *TimelineView) Init() tea.Cmd {
	return nil
}

// rebuildGrid recomputes the layout table after any state or size
// change. Both rendering and mouse hit-testing read from it.
func (v *TimelineView) rebuildGrid() {
	nameWidth := 12
	for _, g := range v.state.ResourceGroups {
		for _, r := range g.Resources {
			if len(r.Name)+2 > nameWidth {
				nameWidth = len(r.Name) + 2
			}
		}
	}
	if nameWidth > 20 {
		nameWidth = 20
	}

	window := timeline.ComputeWindow(v.state.Settings.ViewMode, v.state.Settings.Anchor)
	dayWidth := (v.width - nameWidth) / len(window.Dates)
	if dayWidth < 3 {
		dayWidth = 3
	}
	if dayWidth > 10 {
		dayWidth = 10
	}

	var projects []models.Project
	projects = append(projects, v.state.Projects...)
	v.grid = timeline.BuildGrid(v.state.ResourceGroups, projects, window, nameWidth, dayWidth)

	maxScroll := v.grid.Height - v.contentHeight()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if v.scrollY > maxScroll {
		v.scrollY = maxScroll
	}
}

// contentHeight is the rows available to the grid above the toolbar
// and help line.
func (v *TimelineView) contentHeight() int {
	h := v.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

// apply runs commands through the state and schedules an async save
// when anything changed.
func (v *TimelineView) apply(cmds ...schedule.Command) tea.Cmd {
	changed := false
	for _, cmd := range cmds {
		if v.state.Apply(cmd) {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	v.rebuildGrid()
	return v.saveCmd()
}

// saveCmd persists a snapshot of the state in the background. The
// in-memory state stays authoritative; a failed save is logged and
// surfaced in the status line.
func (v *TimelineView) saveCmd() tea.Cmd {
	snapshot := v.state.Clone()
	database := v.db
	return func() tea.Msg {
		return savedMsg{err: database.SaveState(snapshot)}
	}
}

func (v *TimelineView) setStatus(msg string) tea.Cmd {
	v.status = msg
	v.statusSeq++
	seq := v.statusSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (v *TimelineView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.rebuildGrid()
		return v, nil

	case savedMsg:
		if msg.err != nil {
			logrus.WithError(msg.err).Error("saving schedule")
			return v, v.setStatus("save failed, see log")
		}
		return v, nil

	case clearStatusMsg:
		if msg.seq == v.statusSeq {
			v.status = ""
		}
		return v, nil

	case holdTickMsg:
		cmd, ok := v.ctrl.HoldTick(msg.seq)
		if !ok {
			return v, nil
		}
		applyCmd := v.apply(cmd)
		seq := msg.seq
		tick := tea.Tick(holdNavInterval, func(time.Time) tea.Msg {
			return holdTickMsg{seq: seq}
		})
		return v, tea.Batch(applyCmd, tick)

	case tea.MouseMsg:
		return v.updateMouse(msg)

	case tea.KeyMsg:
		switch v.mode {
		case modeEditing:
			return v.updateEditing(msg)
		case modeDayOff:
			return v.updateDayOff(msg)
		case modeConfirmDelete:
			return v.updateConfirmDelete(msg)
		case modeConfirmPin:
			return v.updateConfirmPin(msg)
		case modeResources:
			return v.updateResources(msg)
		case modeHelp:
			v.mode = modeNormal
			return v, nil
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TimelineView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := v.keys
	switch {
	case keyMatches(msg, k.Quit):
		return v, tea.Quit

	case keyMatches(msg, k.Back):
		v.ctrl.Escape()
		return v, nil

	case keyMatches(msg, k.Left):
		return v, v.apply(schedule.ShiftAnchor{Days: -1})

	case keyMatches(msg, k.Right):
		return v, v.apply(schedule.ShiftAnchor{Days: 1})

	case keyMatches(msg, k.Up):
		if v.scrollY > 0 {
			v.scrollY--
		}
		return v, nil

	case keyMatches(msg, k.Down):
		if v.scrollY < v.grid.Height-v.contentHeight() {
			v.scrollY++
		}
		return v, nil

	case keyMatches(msg, k.Today):
		return v, v.apply(schedule.SetAnchor{Anchor: schedule.AddDays(time.Now(), -7)})

	case keyMatches(msg, k.ViewMode):
		if v.ctrl.Navigating() {
			return v, nil
		}
		next := v.state.Settings.ViewMode.Next()
		return v, v.apply(schedule.SetViewMode{Mode: next})

	case keyMatches(msg, k.Group):
		res := v.ctrl.GroupSelection()
		if len(res.Commands) == 0 {
			return v, v.setStatus("select two or more projects to group")
		}
		return v, v.apply(res.Commands...)

	case keyMatches(msg, k.Ungroup):
		var cmds []schedule.Command
		for _, id := range v.ctrl.Selection() {
			cmds = append(cmds, schedule.UngroupProject{ProjectID: id})
		}
		if len(cmds) == 0 {
			return v, nil
		}
		v.ctrl.ClearSelection()
		return v, v.apply(cmds...)

	case keyMatches(msg, k.Delete):
		del, ok := v.ctrl.DeleteSelection()
		if !ok {
			return v, nil
		}
		if time.Now().Before(v.suppressUntil) {
			v.ctrl.ClearSelection()
			return v, v.apply(del)
		}
		v.pendingDelete = del
		v.mode = modeConfirmDelete
		return v, nil

	case keyMatches(msg, k.Duplicate):
		return v, v.duplicateSelection()

	case keyMatches(msg, k.Pin):
		return v, v.togglePinSelection()

	case keyMatches(msg, k.Edit), keyMatches(msg, k.Enter):
		sel := v.ctrl.Selection()
		if len(sel) == 0 {
			return v, nil
		}
		p := v.state.Project(sel[0])
		if p == nil {
			return v, nil
		}
		v.form = newProjectForm(*p, v.styles)
		v.mode = modeEditing
		return v, v.form.Focus()

	case keyMatches(msg, k.New):
		return v.createProjectAtDefault()

	case keyMatches(msg, k.DayOff):
		date := v.lastDate
		if date.IsZero() {
			date = v.grid.Window.Start
		}
		v.dayOffForm = newDayOffForm(date, v.state.DayOffOn(date), v.styles)
		v.mode = modeDayOff
		return v, v.dayOffForm.Focus()

	case keyMatches(msg, k.Resources):
		v.resources = newResourcePanel(v.state, v.styles)
		v.mode = modeResources
		return v, nil

	case keyMatches(msg, k.Help):
		v.mode = modeHelp
		return v, nil
	}
	return v, nil
}

// createProjectAtDefault seeds a project on the first resource at the
// window start when there is no cell to click.
func (v *TimelineView) createProjectAtDefault() (tea.Model, tea.Cmd) {
	for _, g := range v.state.ResourceGroups {
		if len(g.Resources) == 0 {
			continue
		}
		p := v.state.CreateProjectAt(g.ID, g.Resources[0].ID, v.grid.Window.Start)
		v.rebuildGrid()
		v.form = newProjectForm(*p, v.styles)
		v.mode = modeEditing
		return v, tea.Batch(v.saveCmd(), v.form.Focus())
	}
	return v, v.setStatus("add a resource first (r)")
}

// duplicateSelection copies every selected project; a fully selected
// group is copied as a group.
func (v *TimelineView) duplicateSelection() tea.Cmd {
	sel := v.ctrl.Selection()
	if len(sel) == 0 {
		return nil
	}
	var cmds []schedule.Command
	seenGroup := make(map[string]bool)
	for _, id := range sel {
		if g := v.state.Groups.ByProject(id); g != nil {
			if !seenGroup[g.ID] {
				seenGroup[g.ID] = true
				cmds = append(cmds, schedule.DuplicateGroup{GroupID: g.ID})
			}
			continue
		}
		cmds = append(cmds, &schedule.DuplicateProject{ProjectID: id})
	}
	v.ctrl.ClearSelection()
	return v.apply(cmds...)
}

func (v *TimelineView) togglePinSelection() tea.Cmd {
	sel := v.ctrl.Selection()
	if len(sel) == 0 {
		return nil
	}
	var cmds []schedule.Command
	seenGroup := make(map[string]bool)
	for _, id := range sel {
		if g := v.state.Groups.ByProject(id); g != nil {
			if !seenGroup[g.ID] {
				seenGroup[g.ID] = true
				cmds = append(cmds, schedule.TogglePinGroup{GroupID: g.ID})
			}
			continue
		}
		cmds = append(cmds, schedule.TogglePin{ProjectID: id})
	}
	return v.apply(cmds...)
}

func (v *TimelineView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = modeNormal
		v.ctrl.ClearSelection()
		return v, v.apply(v.pendingDelete)
	case "a", "A":
		// confirm and stop asking for a while
		v.mode = modeNormal
		v.ctrl.ClearSelection()
		v.suppressUntil = time.Now().Add(confirmSuppression)
		return v, v.apply(v.pendingDelete)
	case "n", "N", "esc":
		v.mode = modeNormal
		return v, nil
	}
	return v, nil
}

func (v *TimelineView) updateConfirmPin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = modeNormal
		prompt := v.pinPrompt
		v.pinPrompt = nil
		if prompt == nil {
			return v, nil
		}
		return v, v.apply(schedule.TogglePin{ProjectID: prompt.ProjectID}, prompt.Move)
	case "n", "N", "esc":
		v.mode = modeNormal
		v.pinPrompt = nil
		return v, nil
	}
	return v, nil
}

func (v *TimelineView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	done, cmd := v.form.Update(msg)
	switch done {
	case formCancelled:
		v.mode = modeNormal
		v.form = nil
		return v, nil
	case formSaved:
		update, err := v.form.Result()
		v.mode = modeNormal
		v.form = nil
		if err != nil {
			return v, v.setStatus(err.Error())
		}
		return v, v.apply(update)
	}
	return v, cmd
}

func (v *TimelineView) updateDayOff(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	done, cmd := v.dayOffForm.Update(msg)
	switch done {
	case formCancelled:
		v.mode = modeNormal
		v.dayOffForm = nil
		return v, nil
	case formSaved:
		dayOff, remove, err := v.dayOffForm.Result()
		v.mode = modeNormal
		v.dayOffForm = nil
		if err != nil {
			return v, v.setStatus(err.Error())
		}
		if remove {
			v.state.RemoveDayOff(dayOff.Date)
		} else {
			v.state.AddDayOff(dayOff)
		}
		v.rebuildGrid()
		return v, v.saveCmd()
	}
	return v, cmd
}

func (v *TimelineView) updateResources(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	done, changed := v.resources.Update(msg)
	var cmd tea.Cmd
	if changed {
		v.rebuildGrid()
		cmd = v.saveCmd()
	}
	if done {
		v.mode = modeNormal
		v.resources = nil
	}
	return v, cmd
}

// updateMouse translates terminal mouse events into controller calls.
// Screen rows map to grid rows through the vertical scroll offset; the
// bottom two lines belong to the toolbar and help bar.
func (v *TimelineView) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if v.mode != modeNormal {
		return v, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if v.scrollY > 0 {
			v.scrollY--
		}
		return v, nil
	case tea.MouseButtonWheelDown:
		if v.scrollY < v.grid.Height-v.contentHeight() {
			v.scrollY++
		}
		return v, nil
	case tea.MouseButtonWheelLeft:
		return v, v.apply(schedule.ShiftAnchor{Days: -1})
	case tea.MouseButtonWheelRight:
		return v, v.apply(schedule.ShiftAnchor{Days: 1})
	}

	toolbarY := v.contentHeight()
	if msg.Y >= toolbarY {
		// a release over the toolbar still ends an in-flight gesture
		if msg.Action == tea.MouseActionRelease && v.ctrl.State() != timeline.GestureIdle {
			res := v.ctrl.MouseUp(msg.X, msg.Y+v.scrollY, v.grid, v.state)
			return v, v.handleResult(res)
		}
		return v.updateToolbarMouse(msg)
	}

	gridY := msg.Y + v.scrollY
	mods := timeline.Modifiers{Ctrl: msg.Ctrl, Shift: msg.Shift}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return v, nil
		}
		res := v.ctrl.MouseDown(msg.X, gridY, v.grid, v.state, mods)
		return v, v.handleResult(res)

	case tea.MouseActionMotion:
		res := v.ctrl.MouseMove(msg.X, gridY, v.grid, v.state)
		return v, v.handleResult(res)

	case tea.MouseActionRelease:
		v.ctrl.StopHoldNav()
		res := v.ctrl.MouseUp(msg.X, gridY, v.grid, v.state)
		return v, v.handleResult(res)
	}
	return v, nil
}

func (v *TimelineView) updateToolbarMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionRelease {
		v.ctrl.StopHoldNav()
		return v, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return v, nil
	}

	id := ""
	for _, z := range v.toolbar {
		if msg.X >= z.x0 && msg.X <= z.x1 {
			id = z.id
			break
		}
	}

	switch id {
	case "nav-left", "nav-right":
		dir := 1
		if id == "nav-left" {
			dir = -1
		}
		applyCmd := v.apply(schedule.ShiftAnchor{Days: dir})
		seq := v.ctrl.StartHoldNav(dir)
		tick := tea.Tick(holdNavDelay, func(time.Time) tea.Msg {
			return holdTickMsg{seq: seq}
		})
		return v, tea.Batch(applyCmd, tick)
	case "today":
		return v, v.apply(schedule.SetAnchor{Anchor: schedule.AddDays(time.Now(), -7)})
	case "view":
		if v.ctrl.Navigating() {
			return v, nil
		}
		return v, v.apply(schedule.SetViewMode{Mode: v.state.Settings.ViewMode.Next()})
	case "resources":
		v.resources = newResourcePanel(v.state, v.styles)
		v.mode = modeResources
		return v, nil
	}
	return v, nil
}

// handleResult applies what the controller produced and surfaces any
// interaction it wants from the user.
func (v *TimelineView) handleResult(res timeline.Result) tea.Cmd {
	var cmds []tea.Cmd

	if len(res.Commands) > 0 {
		cmds = append(cmds, v.apply(res.Commands...))
	}

	if res.CellClick != nil {
		cell := res.CellClick
		v.lastDate = cell.Date
		p := v.state.CreateProjectAt(cell.GroupID, cell.ResourceID, cell.Date)
		v.rebuildGrid()
		v.form = newProjectForm(*p, v.styles)
		v.mode = modeEditing
		cmds = append(cmds, v.saveCmd(), v.form.Focus())
	}

	if res.PinPrompt != nil {
		v.pinPrompt = res.PinPrompt
		v.mode = modeConfirmPin
	}

	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (v *TimelineView) View() string {
	switch v.mode {
	case modeEditing:
		return v.form.View(v.width, v.height)
	case modeDayOff:
		return v.dayOffForm.View(v.width, v.height)
	case modeResources:
		return v.resources.View(v.width, v.height)
	case modeHelp:
		return v.renderHelpPopup()
	}

	lines := v.renderGrid()

	top := v.scrollY
	bottom := top + v.contentHeight()
	if bottom > len(lines) {
		bottom = len(lines)
	}
	visible := make([]string, 0, v.contentHeight()+2)
	if top < bottom {
		visible = append(visible, lines[top:bottom]...)
	}
	for len(visible) < v.contentHeight() {
		visible = append(visible, "")
	}

	visible = append(visible, v.renderToolbar())
	visible = append(visible, v.renderHelp())

	out := strings.Join(visible, "\n")

	switch v.mode {
	case modeConfirmDelete:
		return v.renderConfirm(v.deleteConfirmText())
	case modeConfirmPin:
		return v.renderConfirm("Project is pinned. Unpin and move it? (y/n)")
	}
	return out
}

// renderGrid draws every grid row, headers included, into a line per
// row so the view can scroll through them.
func (v *TimelineView) renderGrid() []string {
	lines := make([]string, v.grid.Height)

	cols := v.visibleCols()
	lines[0] = v.renderMonthHeader(cols)
	lines[1] = v.renderDateHeader(cols)

	for gid, row := range v.grid.GroupRows {
		name := gid
		for _, g := range v.state.ResourceGroups {
			if g.ID == gid {
				name = g.Name
			}
		}
		label := truncate(" "+name, v.width)
		lines[row] = v.styles.GroupHeader.Render(padRight(label, v.width))
	}

	ghost, ghostActive := v.ctrl.GhostProject(v.state)

	for bi := range v.grid.Bands {
		band := &v.grid.Bands[bi]
		for lane := 0; lane < band.Lanes; lane++ {
			var g *models.Project
			if ghostActive && ghost.ResourceID == band.ResourceID && lane == 0 {
				g = &ghost
			}
			lines[band.Y+lane] = v.renderBandLane(band, lane, cols, g)
		}
	}

	return lines
}

// visibleCols clips rendering to the columns that fit the terminal;
// the grid itself keeps the full window for hit-testing.
func (v *TimelineView) visibleCols() int {
	cols := (v.width - v.grid.NameWidth) / v.grid.DayWidth
	if cols > v.grid.Cols() {
		cols = v.grid.Cols()
	}
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (v *TimelineView) renderMonthHeader(cols int) string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(padRight(" spsched", v.grid.NameWidth)))
	remaining := cols
	for _, span := range v.grid.Window.MonthSpans() {
		n := span.Cols
		if n > remaining {
			n = remaining
		}
		if n <= 0 {
			break
		}
		w := n * v.grid.DayWidth
		b.WriteString(v.styles.MonthHeader.Render(padRight(truncate(span.Label, w), w)))
		remaining -= n
	}
	return b.String()
}

func (v *TimelineView) renderDateHeader(cols int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", v.grid.NameWidth))
	for col := 0; col < cols; col++ {
		d := v.grid.Window.Dates[col]
		label := d.Format("2")
		if v.grid.DayWidth >= 6 {
			label = d.Format("Mon 2")
		}
		cell := padRight(truncate(label, v.grid.DayWidth), v.grid.DayWidth)
		style := v.styles.DateHeader
		switch {
		case timeline.IsToday(d):
			style = v.styles.DateToday
		case v.state.DayOffOn(d) != nil:
			style = v.dayOffStyle(d)
		case timeline.IsWeekend(d):
			style = v.styles.DateWeekend
		}
		b.WriteString(style.Render(cell))
	}
	return b.String()
}

func (v *TimelineView) dayOffStyle(d time.Time) lipgloss.Style {
	entry := v.state.DayOffOn(d)
	if entry == nil || entry.Color == "" {
		return v.styles.DateWeekend
	}
	return lipgloss.NewStyle().
		Foreground(styles.Current.ForegroundDim).
		Background(lipgloss.Color(entry.Color))
}

// renderBandLane draws one lane row: the resource name on the first
// lane, then each column either as background or as part of a bar.
// The drag ghost, when present, overlays lane zero of its target band.
func (v *TimelineView) renderBandLane(band *timeline.Band, lane, cols int, ghost *models.Project) string {
	var b strings.Builder

	name := ""
	if lane == 0 {
		if r, _ := v.state.Resource(band.ResourceID); r != nil {
			name = " " + r.Name
		}
	}
	b.WriteString(v.styles.ResourceName.Render(padRight(truncate(name, v.grid.NameWidth), v.grid.NameWidth)))

	// owner of each visible column: a project id, "ghost", or empty
	owners := make([]string, cols)
	for _, p := range band.Projects {
		if band.LaneOf[p.ID] != lane {
			continue
		}
		startCol, endCol, visible := v.grid.BarSpan(p)
		if !visible {
			continue
		}
		for col := startCol; col <= endCol && col < cols; col++ {
			owners[col] = p.ID
		}
	}
	if ghost != nil {
		startCol, endCol, visible := v.grid.BarSpan(*ghost)
		if visible {
			for col := startCol; col <= endCol && col < cols; col++ {
				owners[col] = "ghost"
			}
		}
	}

	for col := 0; col < cols; {
		owner := owners[col]
		end := col
		for end < cols && owners[end] == owner {
			end++
		}
		width := (end - col) * v.grid.DayWidth

		if owner == "" {
			b.WriteString(v.renderBackground(col, end))
		} else if owner == "ghost" {
			b.WriteString(v.renderBar(*ghost, width, true))
		} else {
			if p := v.state.Project(owner); p != nil {
				b.WriteString(v.renderBar(*p, width, false))
			} else {
				b.WriteString(strings.Repeat(" ", width))
			}
		}
		col = end
	}

	return b.String()
}

func (v *TimelineView) renderBackground(fromCol, toCol int) string {
	var b strings.Builder
	for col := fromCol; col < toCol; col++ {
		d := v.grid.Window.Dates[col]
		cell := "·" + strings.Repeat(" ", v.grid.DayWidth-1)
		style := v.styles.Cell
		switch {
		case timeline.IsToday(d):
			style = v.styles.CellToday
		case v.state.DayOffOn(d) != nil:
			style = v.dayOffStyle(d)
		case timeline.IsWeekend(d):
			style = v.styles.CellWeekend
		}
		b.WriteString(style.Render(cell))
	}
	return b.String()
}

func (v *TimelineView) renderBar(p models.Project, width int, isGhost bool) string {
	label := p.Name
	if p.Pinned {
		label = "⚑ " + label
	}
	if v.state.Groups.ByProject(p.ID) != nil {
		label = "⛓ " + label
	}
	if p.Start.Before(v.grid.Window.Start) {
		label = "«" + label
	}
	if p.End.After(v.grid.Window.End) {
		label = label + "»"
	}
	text := padRight(truncate(" "+label, width), width)

	if isGhost {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Color)).
			Faint(true).
			Render(text)
	}

	style := lipgloss.NewStyle().
		Background(lipgloss.Color(p.Color)).
		Foreground(styles.Current.Background)
	if v.ctrl.Selected(p.ID) {
		style = style.Reverse(true).Bold(true)
	}
	return style.Render(text)
}

// renderToolbar draws the button row and records each button's hit
// zone for pointer dispatch.
func (v *TimelineView) renderToolbar() string {
	v.toolbar = v.toolbar[:0]

	viewLabel := "Week"
	switch v.state.Settings.ViewMode {
	case models.ViewTwoWeek:
		viewLabel = "2 Weeks"
	case models.ViewMonth:
		viewLabel = "Month"
	}

	buttons := []struct {
		id    string
		label string
	}{
		{"nav-left", " ◀ "},
		{"nav-right", " ▶ "},
		{"today", " Today "},
		{"view", " [" + viewLabel + "] "},
		{"resources", " Resources "},
	}

	var b strings.Builder
	x := 0
	for i, btn := range buttons {
		if i > 0 {
			b.WriteString(" ")
			x++
		}
		w := len([]rune(btn.label))
		v.toolbar = append(v.toolbar, toolbarZone{x0: x, x1: x + w - 1, id: btn.id})
		b.WriteString(v.styles.ButtonPrimary.Render(btn.label))
		x += w
	}

	if v.status != "" {
		b.WriteString(v.styles.StatusMsg.Render("  " + v.status))
	} else if n := len(v.ctrl.Selection()); n > 0 {
		b.WriteString(v.styles.StatusBar.Render(fmt.Sprintf("  %d selected", n)))
	}

	return b.String()
}

func (v *TimelineView) renderHelp() string {
	s := v.styles
	parts := []string{
		s.HelpKey.Render("click") + s.HelpDesc.Render(" select/new"),
		s.HelpKey.Render("drag") + s.HelpDesc.Render(" move"),
		s.HelpKey.Render("g") + s.HelpDesc.Render(" group"),
		s.HelpKey.Render("d") + s.HelpDesc.Render(" delete"),
		s.HelpKey.Render("e") + s.HelpDesc.Render(" edit"),
		s.HelpKey.Render("v") + s.HelpDesc.Render(" view"),
		s.HelpKey.Render("?") + s.HelpDesc.Render(" help"),
		s.HelpKey.Render("q") + s.HelpDesc.Render(" quit"),
	}
	return v.styles.Help.Render(strings.Join(parts, "  "))
}

func (v *TimelineView) deleteConfirmText() string {
	n := len(v.pendingDelete.ProjectIDs)
	groups := 0
	seen := make(map[string]bool)
	for _, id := range v.pendingDelete.ProjectIDs {
		if g := v.state.Groups.ByProject(id); g != nil && !seen[g.ID] {
			seen[g.ID] = true
			groups++
		}
	}
	if groups > 0 {
		return fmt.Sprintf("Delete %d project(s)? %d group(s) will be deleted with all members. (y/n, a = yes and stop asking)", n, groups)
	}
	return fmt.Sprintf("Delete %d project(s)? (y/n, a = yes and stop asking)", n)
}

func (v *TimelineView) renderConfirm(text string) string {
	panel := v.styles.Panel.
		BorderForeground(styles.Current.Warning).
		Render(text)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, panel)
}

func (v *TimelineView) renderHelpPopup() string {
	s := v.styles
	rows := []struct{ key, desc string }{
		{"click", "select a project (whole group if grouped)"},
		{"ctrl+click", "add to selection; +shift removes"},
		{"click empty cell", "create a project there"},
		{"drag", "move a project (grouped projects move together)"},
		{"drag bar edge", "resize a project"},
		{"hold ◀ / ▶", "pan the window continuously"},
		{"←/→ h/l", "pan one day"},
		{"↑/↓ k/j", "scroll"},
		{"t", "jump to today"},
		{"v", "cycle week / 2 weeks / month"},
		{"g", "group the selection"},
		{"u", "ungroup selected projects"},
		{"d", "delete selection (grouped: whole group)"},
		{"c", "duplicate selection"},
		{"p", "pin / unpin"},
		{"e / enter", "edit the selected project"},
		{"n", "new project"},
		{"o", "day-off editor"},
		{"r", "manage resources"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Keyboard & mouse") + "\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			s.HelpKey.Render(padRight(r.key, 18)),
			s.HelpDesc.Render(r.desc)))
	}
	b.WriteString("\n" + s.TitleMuted.Render("press any key to close"))

	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center,
		s.Panel.Render(b.String()))
}

func keyMatches(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}

func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 1 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}

func padRight(s string, w int) string {
	n := w - len([]rune(s))
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}
