package db

import (
	"database/sql"
	"time"

	"github.com/solidpoint/spsched/internal/models"
	"github.com/solidpoint/spsched/internal/schedule"
)

const dateFormat = "2006-01-02"

// LoadState reads the whole schedule document: resource groups with
// their resources, projects, project-groups, day-offs and settings.
func (db *DB) LoadState() (*schedule.State, error) {
	groups, err := db.loadResourceGroups()
	if err != nil {
		return nil, err
	}
	projects, err := db.loadProjects()
	if err != nil {
		return nil, err
	}
	projectGroups, err := db.loadProjectGroups()
	if err != nil {
		return nil, err
	}
	dayOffs, err := db.loadDayOffs()
	if err != nil {
		return nil, err
	}
	settings, err := db.loadSettings()
	if err != nil {
		return nil, err
	}
	return schedule.NewState(groups, projects, projectGroups, dayOffs, settings), nil
}

// SaveState rewrites the whole document in one transaction. The state
// is small (a single user's schedule) and the full rewrite keeps save
// semantics identical to the key-value document store it replaces.
func (db *DB) SaveState(st *schedule.State) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{
		"project_group_members", "project_groups", "projects",
		"resources", "resource_groups", "day_offs",
	} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	for gi, g := range st.ResourceGroups {
		if _, err := tx.Exec(`
			INSERT INTO resource_groups (id, name, position) VALUES (?, ?, ?)
		`, g.ID, g.Name, gi); err != nil {
			return err
		}
		for ri, r := range g.Resources {
			if _, err := tx.Exec(`
				INSERT INTO resources (id, group_id, name, position) VALUES (?, ?, ?, ?)
			`, r.ID, g.ID, r.Name, ri); err != nil {
				return err
			}
		}
	}

	for _, p := range st.Projects {
		if _, err := tx.Exec(`
			INSERT INTO projects (id, name, resource_id, group_id, start_date, end_date, color, notes, pinned)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.Name, p.ResourceID, p.GroupID,
			p.Start.Format(dateFormat), p.End.Format(dateFormat),
			p.Color, p.Notes, p.Pinned); err != nil {
			return err
		}
	}

	for gi, g := range st.Groups.Groups() {
		if _, err := tx.Exec(`
			INSERT INTO project_groups (id, name, position) VALUES (?, ?, ?)
		`, g.ID, g.Name, gi); err != nil {
			return err
		}
		for pi, pid := range g.ProjectIDs {
			if _, err := tx.Exec(`
				INSERT INTO project_group_members (group_id, project_id, position) VALUES (?, ?, ?)
			`, g.ID, pid, pi); err != nil {
				return err
			}
		}
	}

	for _, d := range st.DayOffs {
		if _, err := tx.Exec(`
			INSERT INTO day_offs (id, date, type, color, notes) VALUES (?, ?, ?, ?, ?)
		`, d.ID, d.Date.Format(dateFormat), string(d.Type), d.Color, d.Notes); err != nil {
			return err
		}
	}

	if err := saveSetting(tx, "view_mode", string(st.Settings.ViewMode)); err != nil {
		return err
	}
	anchor := ""
	if !st.Settings.Anchor.IsZero() {
		anchor = st.Settings.Anchor.Format(dateFormat)
	}
	if err := saveSetting(tx, "anchor", anchor); err != nil {
		return err
	}

	return tx.Commit()
}

func saveSetting(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (db *DB) loadResourceGroups() ([]models.ResourceGroup, error) {
	rows, err := db.Query(`
		SELECT id, name FROM resource_groups ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.ResourceGroup
	for rows.Next() {
		var g models.ResourceGroup
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range groups {
		resources, err := db.loadResources(groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Resources = resources
	}
	return groups, nil
}

func (db *DB) loadResources(groupID string) ([]models.Resource, error) {
	rows, err := db.Query(`
		SELECT id, name FROM resources WHERE group_id = ? ORDER BY position
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []models.Resource
	for rows.Next() {
		var r models.Resource
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

func (db *DB) loadProjects() ([]models.Project, error) {
	rows, err := db.Query(`
		SELECT id, name, resource_id, group_id, start_date, end_date, color, notes, pinned
		FROM projects
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		var start, end string
		if err := rows.Scan(&p.ID, &p.Name, &p.ResourceID, &p.GroupID, &start, &end, &p.Color, &p.Notes, &p.Pinned); err != nil {
			return nil, err
		}
		p.Start, _ = time.ParseInLocation(dateFormat, start, time.UTC)
		p.End, _ = time.ParseInLocation(dateFormat, end, time.UTC)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (db *DB) loadProjectGroups() ([]models.ProjectGroup, error) {
	rows, err := db.Query(`
		SELECT id, name FROM project_groups ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.ProjectGroup
	for rows.Next() {
		var g models.ProjectGroup
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range groups {
		members, err := db.loadGroupMembers(groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].ProjectIDs = members
	}
	return groups, nil
}

func (db *DB) loadGroupMembers(groupID string) ([]string, error) {
	rows, err := db.Query(`
		SELECT project_id FROM project_group_members WHERE group_id = ? ORDER BY position
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (db *DB) loadDayOffs() ([]models.DayOff, error) {
	rows, err := db.Query(`
		SELECT id, date, type, color, notes FROM day_offs ORDER BY date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dayOffs []models.DayOff
	for rows.Next() {
		var d models.DayOff
		var date, typ string
		if err := rows.Scan(&d.ID, &date, &typ, &d.Color, &d.Notes); err != nil {
			return nil, err
		}
		d.Date, _ = time.ParseInLocation(dateFormat, date, time.UTC)
		d.Type = models.DayOffType(typ)
		dayOffs = append(dayOffs, d)
	}
	return dayOffs, rows.Err()
}

func (db *DB) loadSettings() (models.Settings, error) {
	settings := models.Settings{ViewMode: models.ViewWeek}

	mode, err := db.GetSetting("view_mode")
	if err != nil {
		return settings, err
	}
	switch models.ViewMode(mode) {
	case models.ViewWeek, models.ViewTwoWeek, models.ViewMonth:
		settings.ViewMode = models.ViewMode(mode)
	}

	anchor, err := db.GetSetting("anchor")
	if err != nil {
		return settings, err
	}
	if anchor != "" {
		if t, err := time.ParseInLocation(dateFormat, anchor, time.UTC); err == nil {
			settings.Anchor = t
		}
	}
	return settings, nil
}
