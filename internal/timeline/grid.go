package timeline

import (
	"time"

	"github.com/solidpoint/spsched/internal/models"
	"github.com/solidpoint/spsched/internal/schedule"
)

// HeaderRows is the number of grid rows occupied by the month header
// and the date header.
const HeaderRows = 2

// BarZone tells which part of a project bar a pointer position hits.
type BarZone int

const (
	ZoneBody BarZone = iota
	ZoneLeftHandle
	ZoneRightHandle
)

// Band is the horizontal strip of rows belonging to one resource: one
// grid row per stacking lane.
type Band struct {
	GroupID    string
	ResourceID string
	Y          int // first grid row of the band
	Lanes      int
	LaneOf     map[string]int
	Projects   []models.Project // projects visible in the window, this resource only
}

// Grid maps (resource, date, lane) triples to character-cell geometry.
// It is computed once per render from the current state and window and
// is the single coordinate table both rendering and hit-testing use.
type Grid struct {
	Window    Window
	NameWidth int // width of the resource-name column
	DayWidth  int // width of one date column
	Bands     []Band
	GroupRows map[string]int // group id -> grid row of its header line
	Height    int            // total grid rows including headers and padding
}

// BuildGrid lays out the resource hierarchy against a window. Each
// resource's visible projects are stacked into lanes; the lane count
// sets the band height. Groups get a header row and a padding row.
func BuildGrid(groups []models.ResourceGroup, projects []models.Project, w Window, nameWidth, dayWidth int) Grid {
	g := Grid{
		Window:    w,
		NameWidth: nameWidth,
		DayWidth:  dayWidth,
		GroupRows: make(map[string]int),
	}
	y := HeaderRows
	for _, rg := range groups {
		g.GroupRows[rg.ID] = y
		y++ // group header line
		for _, r := range rg.Resources {
			var visible []models.Project
			for _, p := range projects {
				if p.ResourceID == r.ID && w.Contains(schedule.ProjectInterval(p)) {
					visible = append(visible, p)
				}
			}
			lanes := schedule.AssignLanes(visible)
			band := Band{
				GroupID:    rg.ID,
				ResourceID: r.ID,
				Y:          y,
				Lanes:      schedule.LaneCount(lanes),
				LaneOf:     lanes,
				Projects:   visible,
			}
			g.Bands = append(g.Bands, band)
			y += band.Lanes
		}
		y++ // padding row between groups
	}
	g.Height = y
	return g
}

// Cols returns the number of date columns.
func (g Grid) Cols() int {
	return len(g.Window.Dates)
}

// Width returns the total grid width in cells.
func (g Grid) Width() int {
	return g.NameWidth + g.Cols()*g.DayWidth
}

// ColX returns the x position of a date column's left edge.
func (g Grid) ColX(col int) int {
	return g.NameWidth + col*g.DayWidth
}

// DateCol resolves an x position to a date column.
func (g Grid) DateCol(x int) (int, bool) {
	if x < g.NameWidth {
		return 0, false
	}
	col := (x - g.NameWidth) / g.DayWidth
	if col >= g.Cols() {
		return 0, false
	}
	return col, true
}

// BandAt returns the band covering a grid row, or nil.
func (g Grid) BandAt(y int) *Band {
	for i := range g.Bands {
		b := &g.Bands[i]
		if y >= b.Y && y < b.Y+b.Lanes {
			return b
		}
	}
	return nil
}

// HitTest resolves a pointer position to the resource and date under
// it. Pure geometry; no rendering surface involved.
func (g Grid) HitTest(x, y int) (resourceID string, date time.Time, ok bool) {
	b := g.BandAt(y)
	if b == nil {
		return "", time.Time{}, false
	}
	col, ok := g.DateCol(x)
	if !ok {
		return "", time.Time{}, false
	}
	return b.ResourceID, g.Window.Dates[col], true
}

// BarSpan returns the first and last date columns a project bar covers
// in this window, clipped at the window edges.
func (g Grid) BarSpan(p models.Project) (startCol, endCol int, visible bool) {
	if !g.Window.Contains(schedule.ProjectInterval(p)) {
		return 0, 0, false
	}
	startCol = schedule.DaysBetween(g.Window.Start, p.Start)
	if startCol < 0 {
		startCol = 0
	}
	endCol = schedule.DaysBetween(g.Window.Start, p.End)
	if endCol > g.Cols()-1 {
		endCol = g.Cols() - 1
	}
	if endCol < startCol {
		endCol = startCol
	}
	return startCol, endCol, true
}

// ProjectAt finds the project bar under a pointer position and which
// zone of the bar was hit. The bar's first cell is the left resize
// handle and its last cell the right one; everything between is body.
func (g Grid) ProjectAt(x, y int) (models.Project, BarZone, bool) {
	b := g.BandAt(y)
	if b == nil {
		return models.Project{}, ZoneBody, false
	}
	lane := y - b.Y
	col, ok := g.DateCol(x)
	if !ok {
		return models.Project{}, ZoneBody, false
	}
	for _, p := range b.Projects {
		if b.LaneOf[p.ID] != lane {
			continue
		}
		startCol, endCol, visible := g.BarSpan(p)
		if !visible || col < startCol || col > endCol {
			continue
		}
		x0 := g.ColX(startCol)
		x1 := g.ColX(endCol) + g.DayWidth - 1
		switch {
		case x == x0 && startCol != endCol:
			return p, ZoneLeftHandle, true
		case x == x1 && startCol != endCol:
			return p, ZoneRightHandle, true
		default:
			return p, ZoneBody, true
		}
	}
	return models.Project{}, ZoneBody, false
}
