package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/solidpoint/spsched/internal/config"
	"github.com/solidpoint/spsched/internal/db"
	"github.com/solidpoint/spsched/internal/models"
	"github.com/solidpoint/spsched/internal/ui/views"
)

// App is the bubbletea model wrapping the timeline view.
type App struct {
	db       *db.DB
	timeline *views.TimelineView
}

// NewApp loads the schedule and builds the application model.
func NewApp(database *db.DB, cfg *config.Config) (*App, error) {
	state, err := database.LoadState()
	if err != nil {
		return nil, err
	}

	if state.Settings.ViewMode == "" {
		state.Settings.ViewMode = viewModeOrDefault(cfg.DefaultViewMode)
	}

	logrus.WithFields(logrus.Fields{
		"resource_groups": len(state.ResourceGroups),
		"projects":        len(state.Projects),
	}).Info("schedule loaded")

	return &App{
		db:       database,
		timeline: views.NewTimelineView(database, state),
	}, nil
}

func viewModeOrDefault(s string) models.ViewMode {
	switch models.ViewMode(s) {
	case models.ViewWeek, models.ViewTwoWeek, models.ViewMonth:
		return models.ViewMode(s)
	}
	return models.ViewWeek
}

func (a *App) Init() tea.Cmd {
	return a.timeline.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := a.timeline.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	return a.timeline.View()
}
