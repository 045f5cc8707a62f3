package services

import (
	"encoding/json"
	"math"
	"time"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/ports"
	"github.com/sm8ta/webike_fleet_analytics_nikita/pkg/algo"
)

const (
	reportCacheKey = "analytics:report"
	reportCacheTTL = 15 * time.Minute

	outlierZThreshold = 3.0
)

// KeyCount is one row of a ranked frequency table.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// HourCount is trip volume for one hour of day.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// OutlierTrip is a trip whose duration or distance deviates more than
// the z-score threshold from the fleet mean.
type OutlierTrip struct {
	TripID          string  `json:"trip_id"`
	DurationMinutes float64 `json:"duration_minutes"`
	DistanceKM      float64 `json:"distance_km"`
	MaxAbsZ         float64 `json:"max_abs_z"`
}

// MaintenanceTypeSummary aggregates workshop spend for one bike type.
type MaintenanceTypeSummary struct {
	BikeType    string  `json:"bike_type"`
	TotalCost   float64 `json:"total_cost"`
	Records     int     `json:"records"`
	UniqueBikes int     `json:"unique_bikes"`
	AvgCost     float64 `json:"avg_cost"`
}

// FleetReport is the full analytics snapshot computed from the linked
// object graph. Undefined ratios (no trips, no finished trips) are
// reported as zero rather than omitted.
type FleetReport struct {
	GeneratedAt time.Time `json:"generated_at"`

	TotalTrips         int     `json:"total_trips"`
	TotalDistanceKM    float64 `json:"total_distance_km"`
	AvgDurationMinutes float64 `json:"avg_duration_minutes"`

	TopStartStations []KeyCount `json:"top_start_stations"`
	TopEndStations   []KeyCount `json:"top_end_stations"`

	PeakHours           []HourCount `json:"peak_hours"`
	WeekdayVolumes      []KeyCount  `json:"weekday_volumes"`
	BusiestWeekday      string      `json:"busiest_weekday"`
	BusiestWeekdayTrips int         `json:"busiest_weekday_trips"`

	AvgDistanceByUserType map[string]float64 `json:"avg_distance_by_user_type"`
	UtilizationPercent    float64            `json:"utilization_percent"`

	MonthlyTrend []KeyCount `json:"monthly_trend"`
	TrendSlope   float64    `json:"trend_slope"`
	TrendGrowing bool       `json:"trend_growing"`

	TopUsers []KeyCount `json:"top_users"`

	MaintenanceCostByBikeType map[string]float64       `json:"maintenance_cost_by_bike_type"`
	MaintenanceFrequency      []KeyCount               `json:"maintenance_frequency"`
	MaintenanceSummary        []MaintenanceTypeSummary `json:"maintenance_summary"`

	TopRoutes []KeyCount `json:"top_routes"`

	CompletedTrips    int     `json:"completed_trips"`
	CancelledTrips    int     `json:"cancelled_trips"`
	CompletionPercent float64 `json:"completion_percent"`

	AvgTripsPerUserByType map[string]float64 `json:"avg_trips_per_user_by_type"`

	OutlierTrips []OutlierTrip `json:"outlier_trips"`

	StationCount int `json:"station_count"`
}

// AnalyticsService derives the fleet report from a built graph. The
// report is cached as JSON; cache trouble degrades to recomputation.
type AnalyticsService struct {
	logger ports.LoggerPort
	cache  ports.CachePort
}

func NewAnalyticsService(logger ports.LoggerPort, cache ports.CachePort) *AnalyticsService {
	return &AnalyticsService{logger: logger, cache: cache}
}

// BuildReport returns the cached report when one is fresh, otherwise
// computes it from the graph and caches the result.
func (a *AnalyticsService) BuildReport(fleet *FleetService) (*FleetReport, error) {
	if cached, err := a.cache.Get(reportCacheKey); err == nil {
		var report FleetReport
		if err := json.Unmarshal(cached, &report); err == nil {
			a.logger.Info("Analytics report served from cache", map[string]interface{}{
				"generated_at": report.GeneratedAt,
			})
			return &report, nil
		}
	}

	report := ComputeReport(fleet)

	data, err := json.Marshal(report)
	if err != nil {
		a.logger.Warn("Failed to marshal report for cache", map[string]interface{}{
			"error": err.Error(),
		})
	} else if err := a.cache.Set(reportCacheKey, data, reportCacheTTL); err != nil {
		a.logger.Warn("Failed to cache report", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return report, nil
}

// InvalidateReport drops the cached report; called after a reload so
// the next read reflects the new graph.
func (a *AnalyticsService) InvalidateReport() {
	if err := a.cache.Delete(reportCacheKey); err != nil {
		a.logger.Warn("Failed to invalidate report cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// ComputeReport derives every report section in one pass over the
// graph collections.
func ComputeReport(fleet *FleetService) *FleetReport {
	trips := fleet.Trips()
	maintenance := fleet.Maintenance()

	report := &FleetReport{
		GeneratedAt:  time.Now(),
		TotalTrips:   len(trips),
		StationCount: len(fleet.Stations()),
	}

	startCounts := make(map[string]int)
	endCounts := make(map[string]int)
	hourCounts := make(map[int]int)
	weekdayCounts := make(map[string]int)
	userCounts := make(map[string]int)
	routeCounts := make(map[string]int)
	monthCounts := make(map[string]int)
	distanceByType := make(map[string][]float64)
	tripsPerUserByType := make(map[string]map[string]int)
	bikeIDs := make(map[string]bool)

	var totalDuration float64
	var minStart, maxEnd time.Time

	for _, trip := range trips {
		report.TotalDistanceKM += trip.DistanceKM
		totalDuration += trip.DurationMinutes()

		startCounts[trip.StartStation.StationID]++
		endCounts[trip.EndStation.StationID]++
		hourCounts[trip.StartTime.Hour()]++
		weekdayCounts[trip.StartTime.Weekday().String()]++
		userCounts[trip.User.UserID()]++
		routeCounts[trip.StartStation.StationID+" -> "+trip.EndStation.StationID]++
		monthCounts[trip.StartTime.Format("2006-01")]++
		bikeIDs[trip.Bike.BikeID()] = true

		userType := string(trip.User.UserType())
		distanceByType[userType] = append(distanceByType[userType], trip.DistanceKM)
		if tripsPerUserByType[userType] == nil {
			tripsPerUserByType[userType] = make(map[string]int)
		}
		tripsPerUserByType[userType][trip.User.UserID()]++

		if minStart.IsZero() || trip.StartTime.Before(minStart) {
			minStart = trip.StartTime
		}
		if trip.EndTime.After(maxEnd) {
			maxEnd = trip.EndTime
		}

		switch trip.Status {
		case domain.TripCompleted:
			report.CompletedTrips++
		case domain.TripCancelled:
			report.CancelledTrips++
		}
	}

	if len(trips) > 0 {
		report.AvgDurationMinutes = totalDuration / float64(len(trips))
	}

	report.TopStartStations = topCounts(startCounts, 10)
	report.TopEndStations = topCounts(endCounts, 10)
	report.PeakHours = topHours(hourCounts, 10)
	report.TopUsers = topCounts(userCounts, 15)
	report.TopRoutes = topCounts(routeCounts, 10)

	report.WeekdayVolumes = weekdayVolumes(weekdayCounts)
	for _, wd := range report.WeekdayVolumes {
		if wd.Count > report.BusiestWeekdayTrips {
			report.BusiestWeekday = wd.Key
			report.BusiestWeekdayTrips = wd.Count
		}
	}

	report.AvgDistanceByUserType = make(map[string]float64, len(distanceByType))
	for userType, distances := range distanceByType {
		report.AvgDistanceByUserType[userType] = meanOf(distances)
	}

	// Utilization approximates the share of the observation window the
	// fleet spent riding: total ride minutes over bikes times window.
	periodMinutes := maxEnd.Sub(minStart).Minutes()
	if len(bikeIDs) > 0 && periodMinutes > 0 {
		report.UtilizationPercent = totalDuration / (float64(len(bikeIDs)) * periodMinutes) * 100
	}

	report.MonthlyTrend = monthlyTrend(monthCounts)
	if n := len(report.MonthlyTrend); n >= 2 {
		counts := make([]float64, n)
		for i, m := range report.MonthlyTrend {
			counts[i] = float64(m.Count)
		}
		report.TrendSlope = leastSquaresSlope(counts)
		report.TrendGrowing = report.MonthlyTrend[n-1].Count > report.MonthlyTrend[0].Count
	}

	if finished := report.CompletedTrips + report.CancelledTrips; finished > 0 {
		report.CompletionPercent = float64(report.CompletedTrips) / float64(finished) * 100
	}

	report.AvgTripsPerUserByType = make(map[string]float64, len(tripsPerUserByType))
	for userType, perUser := range tripsPerUserByType {
		var total int
		for _, n := range perUser {
			total += n
		}
		report.AvgTripsPerUserByType[userType] = float64(total) / float64(len(perUser))
	}

	costByType := make(map[string]float64)
	recordsByType := make(map[string]int)
	bikesByType := make(map[string]map[string]bool)
	maintenanceFreq := make(map[string]int)
	for _, record := range maintenance {
		bikeType := string(record.Bike.BikeType())
		costByType[bikeType] += record.Cost
		recordsByType[bikeType]++
		if bikesByType[bikeType] == nil {
			bikesByType[bikeType] = make(map[string]bool)
		}
		bikesByType[bikeType][record.Bike.BikeID()] = true
		maintenanceFreq[record.Bike.BikeID()]++
	}
	report.MaintenanceCostByBikeType = costByType
	report.MaintenanceFrequency = topCounts(maintenanceFreq, 15)

	summaries := make([]MaintenanceTypeSummary, 0, len(costByType))
	for bikeType, total := range costByType {
		summaries = append(summaries, MaintenanceTypeSummary{
			BikeType:    bikeType,
			TotalCost:   total,
			Records:     recordsByType[bikeType],
			UniqueBikes: len(bikesByType[bikeType]),
			AvgCost:     total / float64(recordsByType[bikeType]),
		})
	}
	report.MaintenanceSummary = algo.MergeSortFunc(summaries,
		func(s MaintenanceTypeSummary) string { return s.BikeType }, false)

	report.OutlierTrips = outlierTrips(trips, outlierZThreshold)

	return report
}

// topCounts ranks a frequency table by count, ties broken by key. The
// two stable sorts make the ranking deterministic.
func topCounts(counts map[string]int, limit int) []KeyCount {
	entries := make([]KeyCount, 0, len(counts))
	for key, count := range counts {
		entries = append(entries, KeyCount{Key: key, Count: count})
	}
	entries = algo.MergeSortFunc(entries, func(e KeyCount) string { return e.Key }, false)
	entries = algo.MergeSortFunc(entries, func(e KeyCount) int { return e.Count }, true)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func topHours(counts map[int]int, limit int) []HourCount {
	entries := make([]HourCount, 0, len(counts))
	for hour, count := range counts {
		entries = append(entries, HourCount{Hour: hour, Count: count})
	}
	entries = algo.MergeSortFunc(entries, func(e HourCount) int { return e.Hour }, false)
	entries = algo.MergeSortFunc(entries, func(e HourCount) int { return e.Count }, true)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// weekdayVolumes renders the counts in calendar order, Monday first.
func weekdayVolumes(counts map[string]int) []KeyCount {
	order := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	out := make([]KeyCount, 0, len(order))
	for _, day := range order {
		out = append(out, KeyCount{Key: day, Count: counts[day]})
	}
	return out
}

// monthlyTrend returns one bucket per calendar month between the first
// and last trip, zero-filled for months without rides.
func monthlyTrend(counts map[string]int) []KeyCount {
	if len(counts) == 0 {
		return nil
	}
	var first, last time.Time
	for month := range counts {
		ts, err := time.Parse("2006-01", month)
		if err != nil {
			continue
		}
		if first.IsZero() || ts.Before(first) {
			first = ts
		}
		if ts.After(last) {
			last = ts
		}
	}

	var out []KeyCount
	for ts := first; !ts.After(last); ts = ts.AddDate(0, 1, 0) {
		month := ts.Format("2006-01")
		out = append(out, KeyCount{Key: month, Count: counts[month]})
	}
	return out
}

// leastSquaresSlope fits counts against their index positions.
func leastSquaresSlope(values []float64) float64 {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// outlierTrips flags trips whose duration or distance z-score exceeds
// the threshold, worst first.
func outlierTrips(trips []*domain.Trip, threshold float64) []OutlierTrip {
	if len(trips) == 0 {
		return nil
	}

	durations := make([]float64, len(trips))
	distances := make([]float64, len(trips))
	for i, trip := range trips {
		durations[i] = trip.DurationMinutes()
		distances[i] = trip.DistanceKM
	}

	durationMean := meanOf(durations)
	durationStd := stdOf(durations, durationMean)
	distanceMean := meanOf(distances)
	distanceStd := stdOf(distances, distanceMean)

	var out []OutlierTrip
	for i, trip := range trips {
		var zDuration, zDistance float64
		if durationStd > 0 {
			zDuration = math.Abs((durations[i] - durationMean) / durationStd)
		}
		if distanceStd > 0 {
			zDistance = math.Abs((distances[i] - distanceMean) / distanceStd)
		}
		maxZ := math.Max(zDuration, zDistance)
		if maxZ > threshold {
			out = append(out, OutlierTrip{
				TripID:          trip.TripID,
				DurationMinutes: durations[i],
				DistanceKM:      distances[i],
				MaxAbsZ:         maxZ,
			})
		}
	}
	return algo.MergeSortFunc(out, func(o OutlierTrip) float64 { return o.MaxAbsZ }, true)
}
