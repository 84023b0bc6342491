package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/solidpoint/spsched/internal/config"
	"github.com/solidpoint/spsched/internal/db"
	"github.com/solidpoint/spsched/internal/export"
)

var (
	flagFormat string
	flagOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the schedule as a flat CSV or JSON table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		dbPath := flagDB
		if dbPath == "" {
			dbPath = cfg.DBPath
		}
		database, err := db.New(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		state, err := database.LoadState()
		if err != nil {
			return fmt.Errorf("loading schedule: %w", err)
		}
		rows := export.Rows(state)

		out := os.Stdout
		if flagOut != "" {
			f, err := os.Create(flagOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		switch flagFormat {
		case "csv":
			err = export.WriteCSV(out, rows)
		case "json":
			err = export.WriteJSON(out, rows)
		default:
			return fmt.Errorf("unknown format %q (want csv or json)", flagFormat)
		}
		if err != nil {
			return err
		}

		if flagOut != "" {
			color.Green("Exported %d projects to %s", len(rows), flagOut)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&flagFormat, "format", "f", "csv", "output format: csv or json")
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file (default stdout)")
}
