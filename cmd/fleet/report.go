package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/adapter/csvdata"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/adapter/logger"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/adapter/report"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/services"
)

var (
	reportOutDir  string
	searchStation string
	showDemo      bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the fleet graph and export the analytics report",
	Long:  "Builds the linked object graph from the cleaned CSVs, prints the summary report and exports the CSV tables.",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportOutDir, "out", "", "report output directory (default from config)")
	reportCmd.Flags().StringVar(&searchStation, "station", "", "look up one station by id after the build")
	reportCmd.Flags().BoolVar(&showDemo, "demo", false, "print the sort and stats walkthrough")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log := logger.NewLoggerAdapter(cfg.App.Env)

	source := csvdata.FileSource{
		StationsPath:    cfg.Data.StationsPath,
		TripsPath:       cfg.Data.TripsPath,
		MaintenancePath: cfg.Data.MaintenancePath,
	}
	fleet, summary, err := services.BuildFleet(source, log)
	if err != nil {
		return fmt.Errorf("building fleet graph: %w", err)
	}
	fmt.Printf("graph: %d stations, %d trips, %d maintenance records (%d placeholders)\n",
		summary.Stations.Loaded, summary.Trips.Loaded, summary.Maintenance.Loaded,
		summary.Trips.Created+summary.Maintenance.Created)

	if showDemo {
		printDemo(fleet)
	}

	if searchStation != "" {
		station, err := fleet.SearchStations(searchStation, "station_id")
		if err != nil {
			fmt.Printf("station %q: not found\n", searchStation)
		} else {
			fmt.Printf("station %q: %s (capacity %d)\n", searchStation, station.Name, station.Capacity)
		}
	}

	fleetReport := services.ComputeReport(fleet)
	fmt.Println()
	fmt.Println(report.Render(fleetReport))

	outDir := reportOutDir
	if outDir == "" {
		outDir = cfg.Data.ReportDir
	}
	writer := report.NewWriter(outDir, log)
	paths, err := writer.Export(fleetReport)
	if err != nil {
		return fmt.Errorf("exporting report: %w", err)
	}
	for _, path := range paths {
		fmt.Println("wrote", path)
	}
	return nil
}

// printDemo walks the sort and the vectorized statistics over the
// loaded trips, mirroring what the pipeline logs on every run.
func printDemo(fleet *services.FleetService) {
	trips := fleet.Trips()
	limit := len(trips)
	if limit > 20 {
		limit = 20
	}

	fmt.Print("before sort:")
	for _, trip := range trips[:limit] {
		fmt.Printf(" %.1f", trip.DistanceKM)
	}
	fmt.Println()

	sorted := fleet.SortTripsByDistance(false)
	fmt.Print("after merge sort:")
	for _, trip := range sorted[:limit] {
		fmt.Printf(" %.1f", trip.DistanceKM)
	}
	fmt.Println()

	stats, err := services.ComputeTripStats(trips)
	if err != nil {
		fmt.Println("trip stats: no trips loaded")
		return
	}
	fmt.Printf("duration stats: mean=%.2f median=%.2f std=%.2f p25=%.2f p75=%.2f\n",
		stats.Durations.Mean, stats.Durations.Median, stats.Durations.Std,
		stats.Durations.P25, stats.Durations.P75)
	fmt.Printf("distance stats: mean=%.2f median=%.2f std=%.2f p25=%.2f p75=%.2f\n",
		stats.Distances.Mean, stats.Distances.Median, stats.Distances.Std,
		stats.Distances.P25, stats.Distances.P75)
}
