package services

import (
	"fmt"
	"sync/atomic"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/ports"
)

// LoadSummary reports the outcome of a full graph build.
type LoadSummary struct {
	Stations    LoadResult `json:"stations"`
	Trips       LoadResult `json:"trips"`
	Maintenance LoadResult `json:"maintenance"`
}

// BuildFleet assembles a fresh graph from the three feeds, in the only
// order that avoids placeholder stations for known ids: stations
// first, then trips, then maintenance.
func BuildFleet(src ports.RowSource, logger ports.LoggerPort) (*FleetService, LoadSummary, error) {
	fleet := NewFleetService(logger)
	var summary LoadSummary

	stationRows, err := src.StationRows()
	if err != nil {
		return nil, summary, fmt.Errorf("reading stations: %w", err)
	}
	summary.Stations, err = fleet.LoadStations(stationRows)
	if err != nil {
		return nil, summary, err
	}

	tripRows, err := src.TripRows()
	if err != nil {
		return nil, summary, fmt.Errorf("reading trips: %w", err)
	}
	summary.Trips = fleet.LoadTrips(tripRows)

	maintenanceRows, err := src.MaintenanceRows()
	if err != nil {
		return nil, summary, fmt.Errorf("reading maintenance: %w", err)
	}
	summary.Maintenance = fleet.LoadMaintenance(maintenanceRows)

	return fleet, summary, nil
}

// FleetRef publishes the current graph to concurrent readers. A reload
// builds a complete new FleetService and swaps it in; readers holding
// the previous snapshot keep a stale but internally consistent view.
type FleetRef struct {
	current atomic.Pointer[FleetService]
}

func NewFleetRef(fleet *FleetService) *FleetRef {
	ref := &FleetRef{}
	ref.current.Store(fleet)
	return ref
}

func (r *FleetRef) Current() *FleetService { return r.current.Load() }

func (r *FleetRef) Replace(fleet *FleetService) { r.current.Store(fleet) }
