package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/adapter/csvdata"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/adapter/logger"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"
)

var inspectData bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the raw CSV exports",
	Long:  "Reads the raw station, trip and maintenance exports, drops rows that fail the shape checks and writes the cleaned CSVs the graph is built from.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&inspectData, "inspect", false, "print per-file diagnostics before cleaning")
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.NewLoggerAdapter(cfg.App.Env)
	cleaner := csvdata.NewCleaner(validator.New())

	feeds := []struct {
		name    string
		rawPath string
		outPath string
		columns []string
		clean   func([]domain.Row) []domain.Row
	}{
		{"stations", cfg.Data.RawStationsPath, cfg.Data.StationsPath, csvdata.StationColumns, cleaner.CleanStations},
		{"trips", cfg.Data.RawTripsPath, cfg.Data.TripsPath, csvdata.TripColumns, cleaner.CleanTrips},
		{"maintenance", cfg.Data.RawMaintenancePath, cfg.Data.MaintenancePath, csvdata.MaintenanceColumns, cleaner.CleanMaintenance},
	}

	for _, feed := range feeds {
		raw, err := csvdata.ReadRows(feed.rawPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", feed.name, err)
		}
		if inspectData {
			fmt.Println(csvdata.Diagnose(feed.name, raw))
		}

		cleaned := feed.clean(raw)

		if err := os.MkdirAll(filepath.Dir(feed.outPath), 0o755); err != nil {
			return fmt.Errorf("creating output dir for %s: %w", feed.name, err)
		}
		if err := csvdata.WriteRows(feed.outPath, feed.columns, cleaned); err != nil {
			return fmt.Errorf("writing %s: %w", feed.name, err)
		}

		log.Info("Feed cleaned", map[string]interface{}{
			"feed":    feed.name,
			"rows":    len(raw),
			"kept":    len(cleaned),
			"dropped": len(raw) - len(cleaned),
			"out":     feed.outPath,
		})
		fmt.Printf("%s: %d rows in, %d kept, %d dropped -> %s\n",
			feed.name, len(raw), len(cleaned), len(raw)-len(cleaned), feed.outPath)
	}
	return nil
}
