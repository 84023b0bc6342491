package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solidpoint/spsched/internal/models"
	"github.com/solidpoint/spsched/internal/schedule"
)

func exportState() *schedule.State {
	groups := []models.ResourceGroup{
		{
			ID:   "rg1",
			Name: "Crew",
			Resources: []models.Resource{
				{ID: "r1", Name: "Alice"},
			},
		},
	}
	projects := []models.Project{
		{
			ID: "p1", Name: "Install", ResourceID: "r1", GroupID: "rg1",
			Start: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			Color: "#b39ddb", Notes: "second floor",
		},
		{
			ID: "p2", Name: "Orphan", ResourceID: "gone",
			Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	return schedule.NewState(groups, projects, nil, nil, models.Settings{})
}

func TestRows(t *testing.T) {
	rows := Rows(exportState())
	require.Len(t, rows, 2)

	assert.Equal(t, Row{
		Group:    "Crew",
		Resource: "Alice",
		Project:  "Install",
		Start:    "2024-01-02",
		End:      "2024-01-05",
		Color:    "#b39ddb",
		Notes:    "second floor",
	}, rows[0])

	// a dangling resource id exports with empty names rather than failing
	assert.Empty(t, rows[1].Resource)
	assert.Empty(t, rows[1].Group)
	assert.Equal(t, "Orphan", rows[1].Project)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Rows(exportState())))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Group", "Resource", "Project", "Start", "End", "Color", "Notes"}, records[0])
	assert.Equal(t, "Install", records[1][2])
	assert.Equal(t, "2024-01-02", records[1][3])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Rows(exportState())))

	var decoded []Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Crew", decoded[0].Group)
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1, "header only")
}
