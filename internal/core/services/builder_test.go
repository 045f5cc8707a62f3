package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/services"
)

type fakeSource struct {
	stations    []domain.Row
	trips       []domain.Row
	maintenance []domain.Row

	stationErr error
	tripErr    error
}

func (f fakeSource) StationRows() ([]domain.Row, error)     { return f.stations, f.stationErr }
func (f fakeSource) TripRows() ([]domain.Row, error)        { return f.trips, f.tripErr }
func (f fakeSource) MaintenanceRows() ([]domain.Row, error) { return f.maintenance, nil }

func TestBuildFleetLoadsFeedsInOrder(t *testing.T) {
	src := fakeSource{
		stations: stationRows(),
		trips: []domain.Row{
			tripRow("T1", "U1", "B1", "ST100", "ST200", "3.7"),
			tripRow("T2", "U2", "B2", "ST200", "ST300", "1.4"),
		},
		maintenance: []domain.Row{
			{"record_id": "M1", "bike_id": "B1", "bike_type": "classic", "maintenance_type": "repair", "date": "2024-03-10", "cost": "20"},
		},
	}

	fleet, summary, err := services.BuildFleet(src, noopLogger{})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Stations.Loaded)
	assert.Equal(t, 2, summary.Trips.Loaded)
	assert.Equal(t, 1, summary.Maintenance.Loaded)

	// Stations came first, so only the riders and bikes had to be
	// fabricated; the station collection is untouched.
	assert.Equal(t, 4, summary.Trips.Created)
	assert.Len(t, fleet.Stations(), 3)
	st, err := fleet.SearchStations("ST100", "station_id")
	require.NoError(t, err)
	assert.Equal(t, "Central Park", st.Name)
}

func TestBuildFleetPropagatesFeedErrors(t *testing.T) {
	readErr := errors.New("read failed")

	_, _, err := services.BuildFleet(fakeSource{stationErr: readErr}, noopLogger{})
	assert.ErrorIs(t, err, readErr)

	_, _, err = services.BuildFleet(fakeSource{stations: stationRows(), tripErr: readErr}, noopLogger{})
	assert.ErrorIs(t, err, readErr)
}

func TestFleetRefSwapsSnapshots(t *testing.T) {
	first := builtFleet(t)
	ref := services.NewFleetRef(first)
	assert.Same(t, first, ref.Current())

	second := services.NewFleetService(noopLogger{})
	ref.Replace(second)
	assert.Same(t, second, ref.Current())

	// The old snapshot stays intact for readers still holding it.
	assert.Len(t, first.Trips(), 3)
}
