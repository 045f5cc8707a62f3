package csvdata

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"
)

var ErrEmptyFile = errors.New("csvdata: file has no header row")

// Column orders of the cleaned exports.
var (
	TripColumns = []string{
		"trip_id", "user_id", "bike_id", "start_station_id", "end_station_id",
		"user_type", "bike_type", "start_time", "end_time",
		"duration_minutes", "distance_km", "status",
	}
	StationColumns = []string{
		"station_id", "station_name", "capacity", "latitude", "longitude",
	}
	MaintenanceColumns = []string{
		"record_id", "bike_id", "bike_type", "date",
		"maintenance_type", "cost", "description",
	}
)

// Cleaner normalizes raw export rows into the cleaned shape the fleet
// loaders consume. Every transform is row-local; rows that fail the
// shape checks are dropped, never repaired beyond the documented
// defaults.
type Cleaner struct {
	validate *validator.Validate
}

func NewCleaner(validate *validator.Validate) *Cleaner {
	return &Cleaner{validate: validate}
}

type tripShape struct {
	StartTime  time.Time `validate:"required"`
	EndTime    time.Time `validate:"required,gtefield=StartTime"`
	Duration   float64   `validate:"gte=0"`
	DistanceKM float64   `validate:"gte=0"`
	UserType   string    `validate:"oneof=member casual unknown"`
	BikeType   string    `validate:"oneof=classic electric unknown"`
	Status     string    `validate:"oneof=completed cancelled unknown"`
}

// CleanTrips normalizes raw trip rows: timestamps must parse, a
// missing or malformed duration is recomputed from the time span,
// categorical values are lower-cased and clamped to the known
// vocabularies, and a missing status defaults to completed only for
// trips with positive duration. Rows violating the shape invariants
// and exact duplicates are dropped.
func (c *Cleaner) CleanTrips(rows []domain.Row) []domain.Row {
	out := make([]domain.Row, 0, len(rows))
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		start, err := domain.ParseTime(row["start_time"])
		if err != nil {
			continue
		}
		end, err := domain.ParseTime(row["end_time"])
		if err != nil {
			continue
		}

		duration := floatOrNaN(row, "duration_minutes")
		if math.IsNaN(duration) {
			duration = end.Sub(start).Minutes()
		}
		distance := floatOrNaN(row, "distance_km")

		userType := clampVocabulary(row.Get("user_type"), "member", "casual")
		bikeType := clampVocabulary(row.Get("bike_type"), "classic", "electric")

		status := strings.ToLower(row.Get("status"))
		if status == "" {
			if duration > 0 {
				status = "completed"
			} else {
				status = "unknown"
			}
		}
		status = clampVocabulary(status, "completed", "cancelled")

		shape := tripShape{
			StartTime:  start,
			EndTime:    end,
			Duration:   duration,
			DistanceKM: distance,
			UserType:   userType,
			BikeType:   bikeType,
			Status:     status,
		}
		if err := c.validate.Struct(shape); err != nil {
			continue
		}

		cleaned := domain.Row{
			"trip_id":          row.Get("trip_id"),
			"user_id":          row.Get("user_id"),
			"bike_id":          row.Get("bike_id"),
			"start_station_id": row.Get("start_station_id"),
			"end_station_id":   row.Get("end_station_id"),
			"user_type":        userType,
			"bike_type":        bikeType,
			"start_time":       start.Format(time.DateTime),
			"end_time":         end.Format(time.DateTime),
			"duration_minutes": formatFloat(duration),
			"distance_km":      formatFloat(distance),
			"status":           status,
		}
		sig := signature(cleaned, TripColumns)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		out = append(out, cleaned)
	}
	return out
}

type stationShape struct {
	StationID string  `validate:"required"`
	Name      string  `validate:"required"`
	Capacity  int     `validate:"gt=0"`
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
}

// CleanStations upper-cases station ids, trims names, coerces capacity
// and coordinates, and drops rows with missing fields, non-positive
// capacity, out-of-range coordinates or exact duplicates.
func (c *Cleaner) CleanStations(rows []domain.Row) []domain.Row {
	out := make([]domain.Row, 0, len(rows))
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		capacityRaw := floatOrNaN(row, "capacity")
		if math.IsNaN(capacityRaw) {
			continue
		}

		shape := stationShape{
			StationID: domain.NormalizeStationID(row.Get("station_id")),
			Name:      row.Get("station_name"),
			Capacity:  int(capacityRaw),
			Latitude:  floatOrNaN(row, "latitude"),
			Longitude: floatOrNaN(row, "longitude"),
		}
		if err := c.validate.Struct(shape); err != nil {
			continue
		}

		cleaned := domain.Row{
			"station_id":   shape.StationID,
			"station_name": shape.Name,
			"capacity":     strconv.Itoa(shape.Capacity),
			"latitude":     formatFloat(shape.Latitude),
			"longitude":    formatFloat(shape.Longitude),
		}
		sig := signature(cleaned, StationColumns)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		out = append(out, cleaned)
	}
	return out
}

type maintenanceShape struct {
	RecordID string    `validate:"required"`
	BikeID   string    `validate:"required"`
	BikeType string    `validate:"oneof=classic electric unknown"`
	Date     time.Time `validate:"required"`
	Type     string    `validate:"required"`
	Cost     float64   `validate:"gte=0"`
}

// CleanMaintenance lower-cases the type fields, coerces date and cost,
// clamps bike_type to the known vocabulary and drops incomplete rows,
// negative costs and exact duplicates.
func (c *Cleaner) CleanMaintenance(rows []domain.Row) []domain.Row {
	out := make([]domain.Row, 0, len(rows))
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		date, err := domain.ParseTime(row["date"])
		if err != nil {
			continue
		}

		shape := maintenanceShape{
			RecordID: row.Get("record_id"),
			BikeID:   row.Get("bike_id"),
			BikeType: clampVocabulary(row.Get("bike_type"), "classic", "electric"),
			Date:     date,
			Type:     strings.ToLower(row.Get("maintenance_type")),
			Cost:     floatOrNaN(row, "cost"),
		}
		if err := c.validate.Struct(shape); err != nil {
			continue
		}

		cleaned := domain.Row{
			"record_id":        shape.RecordID,
			"bike_id":          shape.BikeID,
			"bike_type":        shape.BikeType,
			"date":             date.Format(time.DateTime),
			"maintenance_type": shape.Type,
			"cost":             formatFloat(shape.Cost),
			"description":      row.Get("description"),
		}
		sig := signature(cleaned, MaintenanceColumns)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		out = append(out, cleaned)
	}
	return out
}

// floatOrNaN coerces a field like the upstream numeric cleaning does:
// anything unparseable becomes NaN, which the shape checks reject.
func floatOrNaN(row domain.Row, key string) float64 {
	v, err := strconv.ParseFloat(row.Get(key), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// clampVocabulary lower-cases the value and collapses anything outside
// the known set to unknown.
func clampVocabulary(value string, known ...string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, k := range known {
		if v == k {
			return v
		}
	}
	return "unknown"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// signature renders the row in column order for exact-duplicate
// detection.
func signature(row domain.Row, columns []string) string {
	parts := make([]string, len(columns))
	for i, name := range columns {
		parts[i] = row[name]
	}
	return strings.Join(parts, "\x1f")
}
