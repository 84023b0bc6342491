package commands

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/solidpoint/spsched/internal/config"
	"github.com/solidpoint/spsched/internal/db"
	"github.com/solidpoint/spsched/internal/ui"
)

var (
	flagConfig string
	flagDB     string
)

var rootCmd = &cobra.Command{
	Use:   "spsched",
	Short: "A resource timeline scheduler for the terminal",
	Long: `spsched renders a resource-by-time grid in which projects are
assigned to named resources. Projects can be dragged, resized, stacked
and bundled into groups that move, recolor and delete together.`,
	Version:      "0.1.0",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		setupLogging(cfg)

		dbPath := flagDB
		if dbPath == "" {
			dbPath = cfg.DBPath
		}
		database, err := db.New(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		app, err := ui.NewApp(database, cfg)
		if err != nil {
			return err
		}

		p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running application: %w", err)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// setupLogging points logrus at a rotating file in the data directory.
// Logging must never touch the terminal while the TUI owns it.
func setupLogging(cfg *config.Config) {
	logFile := cfg.LogFile
	if logFile == "" {
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				logrus.SetOutput(os.Stderr)
				return
			}
			dataDir = filepath.Join(home, ".local", "share")
		}
		logFile = filepath.Join(dataDir, "spsched", "spsched.log")
	}

	logrus.SetOutput(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database file path")
	rootCmd.AddCommand(exportCmd)
}
