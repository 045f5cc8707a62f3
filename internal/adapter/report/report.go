package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/ports"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/services"
)

// Writer exports the analytics report as a text summary plus the three
// CSV tables downstream dashboards consume.
type Writer struct {
	outDir string
	logger ports.LoggerPort
}

func NewWriter(outDir string, logger ports.LoggerPort) *Writer {
	return &Writer{outDir: outDir, logger: logger}
}

// Export writes every report artifact and returns the written paths.
func (w *Writer) Export(r *services.FleetReport) ([]string, error) {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report dir: %w", err)
	}

	paths := make([]string, 0, 4)

	path, err := w.writeTopStations(r)
	if err != nil {
		return paths, err
	}
	paths = append(paths, path)

	path, err = w.writeTopUsers(r)
	if err != nil {
		return paths, err
	}
	paths = append(paths, path)

	path, err = w.writeMaintenanceSummary(r)
	if err != nil {
		return paths, err
	}
	paths = append(paths, path)

	path, err = w.WriteSummary(r)
	if err != nil {
		return paths, err
	}
	paths = append(paths, path)

	w.logger.Info("Report exported", map[string]interface{}{
		"dir":   w.outDir,
		"files": len(paths),
	})
	return paths, nil
}

// writeTopStations joins the start and end rankings into one table;
// stations appearing in only one ranking keep a zero for the other.
func (w *Writer) writeTopStations(r *services.FleetReport) (string, error) {
	type stationRow struct {
		id         string
		startCount int
		endCount   int
	}

	var order []string
	byID := make(map[string]*stationRow)
	for _, kc := range r.TopStartStations {
		order = append(order, kc.Key)
		byID[kc.Key] = &stationRow{id: kc.Key, startCount: kc.Count}
	}
	for _, kc := range r.TopEndStations {
		row, ok := byID[kc.Key]
		if !ok {
			row = &stationRow{id: kc.Key}
			order = append(order, kc.Key)
			byID[kc.Key] = row
		}
		row.endCount = kc.Count
	}

	records := [][]string{{"station_id", "start_trip_count", "end_trip_count"}}
	for _, id := range order {
		row := byID[id]
		records = append(records, []string{row.id, strconv.Itoa(row.startCount), strconv.Itoa(row.endCount)})
	}
	return w.writeCSV("top_stations.csv", records)
}

func (w *Writer) writeTopUsers(r *services.FleetReport) (string, error) {
	records := [][]string{{"user_id", "trip_count"}}
	for _, kc := range r.TopUsers {
		records = append(records, []string{kc.Key, strconv.Itoa(kc.Count)})
	}
	return w.writeCSV("top_users.csv", records)
}

func (w *Writer) writeMaintenanceSummary(r *services.FleetReport) (string, error) {
	records := [][]string{{"bike_type", "total_cost", "records", "unique_bikes", "avg_cost"}}
	for _, s := range r.MaintenanceSummary {
		records = append(records, []string{
			s.BikeType,
			formatAmount(s.TotalCost),
			strconv.Itoa(s.Records),
			strconv.Itoa(s.UniqueBikes),
			formatAmount(s.AvgCost),
		})
	}
	return w.writeCSV("maintenance_summary.csv", records)
}

func (w *Writer) writeCSV(name string, records [][]string) (string, error) {
	path := filepath.Join(w.outDir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// WriteSummary renders the human-readable report.
func (w *Writer) WriteSummary(r *services.FleetReport) (string, error) {
	path := filepath.Join(w.outDir, "summary_report.txt")
	if err := os.WriteFile(path, []byte(Render(r)), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Render lays out the summary the reporting pipeline has always
// produced; numbers are informative, not contract.
func Render(r *services.FleetReport) string {
	lines := []string{
		"CityBike Analytics Summary Report",
		"================================",
		"",
		"1) Core KPIs",
		fmt.Sprintf("- Total trips: %d", r.TotalTrips),
		fmt.Sprintf("- Total distance (km): %.2f", r.TotalDistanceKM),
		fmt.Sprintf("- Average trip duration (min): %.2f", r.AvgDurationMinutes),
		"",
		"2) Station popularity",
		fmt.Sprintf("- Top start station: %s", firstKey(r.TopStartStations)),
		fmt.Sprintf("- Top end station: %s", firstKey(r.TopEndStations)),
		"",
		"3) Temporal demand",
		fmt.Sprintf("- Peak usage hour: %s", peakHour(r.PeakHours)),
		fmt.Sprintf("- Highest trip-volume weekday: %s (%d trips)", r.BusiestWeekday, r.BusiestWeekdayTrips),
		"",
		"4) Customer and behavior insights",
		fmt.Sprintf("- Avg distance by user type: %s", formatMap(r.AvgDistanceByUserType)),
		fmt.Sprintf("- Avg trips per user by user type: %s", formatMap(r.AvgTripsPerUserByType)),
		"",
		"5) Fleet and utilization",
		fmt.Sprintf("- Bike utilization rate (approx): %.2f%%", r.UtilizationPercent),
		fmt.Sprintf("- Most maintained bike: %s", rankedEntry(r.MaintenanceFrequency, "records")),
		"",
		"6) Growth and retention",
		fmt.Sprintf("- Monthly trend growing: %t", r.TrendGrowing),
		fmt.Sprintf("- Monthly trend slope: %.3f", r.TrendSlope),
		fmt.Sprintf("- Completion rate: %.2f%% (Completed=%d, Cancelled=%d)",
			r.CompletionPercent, r.CompletedTrips, r.CancelledTrips),
		"",
		"7) Business hotspots",
		fmt.Sprintf("- Top active user: %s", rankedEntry(r.TopUsers, "trips")),
		fmt.Sprintf("- Top route: %s", rankedEntry(r.TopRoutes, "trips")),
		"",
		"8) Maintenance spend",
		fmt.Sprintf("- Maintenance cost by bike type: %s", formatMap(r.MaintenanceCostByBikeType)),
		"",
		"9) Data quality / anomalies",
		fmt.Sprintf("- Outlier trips detected (z-score > 3 on duration/distance): %d", len(r.OutlierTrips)),
		"",
	}
	return strings.Join(lines, "\n")
}

func firstKey(entries []services.KeyCount) string {
	if len(entries) == 0 {
		return "N/A"
	}
	return entries[0].Key
}

func rankedEntry(entries []services.KeyCount, unit string) string {
	if len(entries) == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%s (%d %s)", entries[0].Key, entries[0].Count, unit)
}

func peakHour(hours []services.HourCount) string {
	if len(hours) == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d:00", hours[0].Hour)
}

func formatMap(values map[string]float64) string {
	if len(values) == 0 {
		return "N/A"
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%.2f", k, values[k])
	}
	return strings.Join(parts, ", ")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
