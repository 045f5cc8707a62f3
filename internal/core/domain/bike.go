package domain

import (
	"fmt"
	"strings"
	"time"
)

type BikeType string

const (
	BikeClassic  BikeType = "classic"
	BikeElectric BikeType = "electric"
	BikeUnknown  BikeType = "unknown"
)

type BikeStatus string

const (
	BikeAvailable   BikeStatus = "available"
	BikeInUse       BikeStatus = "in_use"
	BikeMaintenance BikeStatus = "maintenance"
)

// Bike is implemented by every bike variant. Trips and maintenance
// records hold Bike values, so one physical bike is shared by every
// record that references it.
type Bike interface {
	BikeID() string
	BikeType() BikeType
	BikeStatus() BikeStatus
}

// BaseBike is the generic variant. It also backs placeholder bikes
// created while linking trips, where only the id and a raw type string
// are known.
type BaseBike struct {
	ID        string     `json:"bike_id"`
	Type      BikeType   `json:"type"`
	Status    BikeStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewBike builds a generic bike. The type string is kept as-is, so
// unrecognized fleet types survive the import; the status must be one
// of the three known states and defaults to available.
func NewBike(id string, bikeType BikeType, status BikeStatus) (*BaseBike, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: bike_id", ErrMissingID)
	}
	if bikeType == "" {
		bikeType = BikeUnknown
	}
	if status == "" {
		status = BikeAvailable
	}
	switch status {
	case BikeAvailable, BikeInUse, BikeMaintenance:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidBikeStatus, status)
	}
	return &BaseBike{
		ID:        id,
		Type:      bikeType,
		Status:    status,
		CreatedAt: time.Now(),
	}, nil
}

func (b *BaseBike) BikeID() string         { return b.ID }
func (b *BaseBike) BikeType() BikeType     { return b.Type }
func (b *BaseBike) BikeStatus() BikeStatus { return b.Status }

type ClassicBike struct {
	BaseBike
	GearCount int `json:"gear_count"`
}

func NewClassicBike(id string, gearCount int) (*ClassicBike, error) {
	if gearCount <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGearCount, gearCount)
	}
	base, err := NewBike(id, BikeClassic, BikeAvailable)
	if err != nil {
		return nil, err
	}
	return &ClassicBike{BaseBike: *base, GearCount: gearCount}, nil
}

type ElectricBike struct {
	BaseBike
	BatteryLevel float64 `json:"battery_level"`
	MaxRangeKM   float64 `json:"max_range_km"`
}

func NewElectricBike(id string, batteryLevel, maxRangeKM float64) (*ElectricBike, error) {
	if batteryLevel < 0 {
		return nil, fmt.Errorf("%w: %.1f", ErrInvalidBatteryLevel, batteryLevel)
	}
	if maxRangeKM <= 0 {
		return nil, fmt.Errorf("%w: %.1f", ErrInvalidMaxRange, maxRangeKM)
	}
	base, err := NewBike(id, BikeElectric, BikeAvailable)
	if err != nil {
		return nil, err
	}
	return &ElectricBike{BaseBike: *base, BatteryLevel: batteryLevel, MaxRangeKM: maxRangeKM}, nil
}
