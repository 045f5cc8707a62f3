package domain

import (
	"fmt"
	"strings"
	"time"
)

// Station is a dock location. The id is the natural key and is stored
// upper-cased so that lookups are case-insensitive.
type Station struct {
	StationID string    `json:"station_id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeStationID maps any spelling of a station id onto its
// canonical key form.
func NormalizeStationID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func NewStation(id, name string, capacity int, latitude, longitude float64) (*Station, error) {
	id = NormalizeStationID(id)
	if id == "" {
		return nil, fmt.Errorf("%w: station_id", ErrMissingID)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	if latitude < -90 || latitude > 90 {
		return nil, fmt.Errorf("%w: latitude %.4f", ErrInvalidCoordinates, latitude)
	}
	if longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("%w: longitude %.4f", ErrInvalidCoordinates, longitude)
	}
	return &Station{
		StationID: id,
		Name:      name,
		Capacity:  capacity,
		Latitude:  latitude,
		Longitude: longitude,
		CreatedAt: time.Now(),
	}, nil
}
