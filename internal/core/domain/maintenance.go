package domain

import (
	"fmt"
	"strings"
	"time"
)

// MaintenanceRecord is one workshop visit for a bike. The bike
// reference points at the same instance the trips reference.
type MaintenanceRecord struct {
	RecordID        string    `json:"record_id"`
	Bike            Bike      `json:"bike"`
	Date            time.Time `json:"date"`
	MaintenanceType string    `json:"maintenance_type"`
	Cost            float64   `json:"cost"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewMaintenanceRecord(id string, bike Bike, date time.Time,
	maintenanceType string, cost float64, description string) (*MaintenanceRecord, error) {

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: record_id", ErrMissingID)
	}
	if bike == nil {
		return nil, fmt.Errorf("%w: maintenance record %s", ErrMissingReference, id)
	}
	if cost < 0 {
		return nil, fmt.Errorf("%w: %.2f", ErrInvalidCost, cost)
	}
	if maintenanceType == "" {
		maintenanceType = "general"
	}
	return &MaintenanceRecord{
		RecordID:        id,
		Bike:            bike,
		Date:            date,
		MaintenanceType: maintenanceType,
		Cost:            cost,
		Description:     description,
		CreatedAt:       time.Now(),
	}, nil
}
