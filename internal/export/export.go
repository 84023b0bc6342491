package export

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/solidpoint/spsched/internal/schedule"
)

const dateFormat = "2006-01-02"

// Row is one line of the flat export table: a read-only projection of
// a project joined with its resource and group names.
type Row struct {
	Group    string `json:"group"`
	Resource string `json:"resource"`
	Project  string `json:"project"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Color    string `json:"color"`
	Notes    string `json:"notes"`
}

// Rows flattens the schedule into export rows, one per project, in
// stored project order.
func Rows(st *schedule.State) []Row {
	rows := make([]Row, 0, len(st.Projects))
	for _, p := range st.Projects {
		row := Row{
			Project: p.Name,
			Start:   p.Start.Format(dateFormat),
			End:     p.End.Format(dateFormat),
			Color:   p.Color,
			Notes:   p.Notes,
		}
		if r, g := st.Resource(p.ResourceID); r != nil {
			row.Resource = r.Name
			row.Group = g.Name
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes the rows as CSV with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Group", "Resource", "Project", "Start", "End", "Color", "Notes"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Group, r.Resource, r.Project, r.Start, r.End, r.Color, r.Notes}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
