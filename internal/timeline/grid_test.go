package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solidpoint/spsched/internal/models"
)

func testResourceGroups() []models.ResourceGroup {
	return []models.ResourceGroup{
		{
			ID:   "rg1",
			Name: "Crew",
			Resources: []models.Resource{
				{ID: "r1", Name: "Alice"},
				{ID: "r2", Name: "Bob"},
			},
		},
	}
}

func testProjects() []models.Project {
	return []models.Project{
		{ID: "A", Name: "A", ResourceID: "r1", Start: date(2024, 1, 1), End: date(2024, 1, 3)},
		{ID: "B", Name: "B", ResourceID: "r1", Start: date(2024, 1, 2), End: date(2024, 1, 5)},
		{ID: "C", Name: "C", ResourceID: "r2", Start: date(2024, 1, 6), End: date(2024, 1, 7)},
	}
}

func buildTestGrid(t *testing.T) Grid {
	t.Helper()
	w := ComputeWindow(models.ViewWeek, date(2024, 1, 1))
	return BuildGrid(testResourceGroups(), testProjects(), w, 10, 4)
}

func TestBuildGridLayout(t *testing.T) {
	g := buildTestGrid(t)

	require.Len(t, g.Bands, 2)
	assert.Equal(t, HeaderRows, g.GroupRows["rg1"], "group header right below the date headers")

	// r1 holds two overlapping projects, so its band is two lanes tall
	r1 := g.Bands[0]
	assert.Equal(t, "r1", r1.ResourceID)
	assert.Equal(t, HeaderRows+1, r1.Y)
	assert.Equal(t, 2, r1.Lanes)

	r2 := g.Bands[1]
	assert.Equal(t, "r2", r2.ResourceID)
	assert.Equal(t, r1.Y+r1.Lanes, r2.Y)
	assert.Equal(t, 1, r2.Lanes)

	// header rows + group header + 2 lanes + 1 lane + padding
	assert.Equal(t, HeaderRows+1+2+1+1, g.Height)
}

func TestBuildGridExcludesProjectsOutsideWindow(t *testing.T) {
	w := ComputeWindow(models.ViewWeek, date(2024, 1, 1))
	projects := append(testProjects(), models.Project{
		ID: "far", Name: "far", ResourceID: "r2",
		Start: date(2024, 6, 1), End: date(2024, 6, 10),
	})
	g := BuildGrid(testResourceGroups(), projects, w, 10, 4)

	r2 := g.Bands[1]
	require.Len(t, r2.Projects, 1)
	assert.Equal(t, "C", r2.Projects[0].ID)
	assert.Equal(t, 1, r2.Lanes)
}

func TestBuildGridEmptyResourceIsOneLane(t *testing.T) {
	w := ComputeWindow(models.ViewWeek, date(2024, 1, 1))
	g := BuildGrid(testResourceGroups(), nil, w, 10, 4)

	for _, b := range g.Bands {
		assert.Equal(t, 1, b.Lanes)
	}
}

func TestDateCol(t *testing.T) {
	g := buildTestGrid(t)

	// name column never resolves to a date
	_, ok := g.DateCol(3)
	assert.False(t, ok)

	col, ok := g.DateCol(10)
	require.True(t, ok)
	assert.Equal(t, 0, col)

	col, ok = g.DateCol(13)
	require.True(t, ok)
	assert.Equal(t, 0, col, "anywhere inside the day cell maps to it")

	col, ok = g.DateCol(14)
	require.True(t, ok)
	assert.Equal(t, 1, col)

	// past the last column
	_, ok = g.DateCol(10 + 7*4)
	assert.False(t, ok)
}

func TestHitTest(t *testing.T) {
	g := buildTestGrid(t)

	// second lane of r1's band, third day column
	resourceID, d, ok := g.HitTest(10+2*4, HeaderRows+2)
	require.True(t, ok)
	assert.Equal(t, "r1", resourceID)
	assert.Equal(t, date(2024, 1, 3), d)

	// group header row is not a band
	_, _, ok = g.HitTest(12, HeaderRows)
	assert.False(t, ok)

	// padding row below the last band
	_, _, ok = g.HitTest(12, g.Height-1)
	assert.False(t, ok)
}

func TestBarSpanClipsAtWindowEdges(t *testing.T) {
	g := buildTestGrid(t)

	spill := models.Project{
		ID: "S", ResourceID: "r1",
		Start: date(2023, 12, 28), End: date(2024, 1, 9),
	}
	startCol, endCol, visible := g.BarSpan(spill)
	require.True(t, visible)
	assert.Equal(t, 0, startCol)
	assert.Equal(t, g.Cols()-1, endCol)

	outside := models.Project{
		ID: "O", ResourceID: "r1",
		Start: date(2024, 2, 1), End: date(2024, 2, 3),
	}
	_, _, visible = g.BarSpan(outside)
	assert.False(t, visible)
}

func TestProjectAtZones(t *testing.T) {
	g := buildTestGrid(t)

	// A spans cols 0..2 in lane 0 of r1's band
	y := HeaderRows + 1

	p, zone, ok := g.ProjectAt(g.ColX(0), y)
	require.True(t, ok)
	assert.Equal(t, "A", p.ID)
	assert.Equal(t, ZoneLeftHandle, zone)

	p, zone, ok = g.ProjectAt(g.ColX(1), y)
	require.True(t, ok)
	assert.Equal(t, "A", p.ID)
	assert.Equal(t, ZoneBody, zone)

	p, zone, ok = g.ProjectAt(g.ColX(2)+g.DayWidth-1, y)
	require.True(t, ok)
	assert.Equal(t, "A", p.ID)
	assert.Equal(t, ZoneRightHandle, zone)

	// same x one lane down hits B instead
	p, _, ok = g.ProjectAt(g.ColX(1), y+1)
	require.True(t, ok)
	assert.Equal(t, "B", p.ID)

	// empty area past A's bar in lane 0
	_, _, ok = g.ProjectAt(g.ColX(5), y)
	assert.False(t, ok)
}

func TestProjectAtSingleColumnBarHasNoHandles(t *testing.T) {
	w := ComputeWindow(models.ViewWeek, date(2024, 1, 1))
	projects := []models.Project{
		{ID: "one", ResourceID: "r1", Start: date(2024, 1, 2), End: date(2024, 1, 2)},
	}
	g := BuildGrid(testResourceGroups(), projects, w, 10, 4)

	y := HeaderRows + 1
	for x := g.ColX(1); x < g.ColX(2); x++ {
		p, zone, ok := g.ProjectAt(x, y)
		require.True(t, ok)
		assert.Equal(t, "one", p.ID)
		assert.Equal(t, ZoneBody, zone, "single-cell bars cannot be resized by their edges")
	}
}
