package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"
)

func tripFixtures(t *testing.T) (domain.User, domain.Bike, *domain.Station, *domain.Station) {
	t.Helper()
	user, err := domain.NewUser("U1", "Rider", "rider@example.com", domain.UserMember)
	require.NoError(t, err)
	bike, err := domain.NewClassicBike("B1", 3)
	require.NoError(t, err)
	from, err := domain.NewStation("ST1", "North Gate", 10, 53.14, 8.21)
	require.NoError(t, err)
	to, err := domain.NewStation("ST2", "Harbor", 12, 53.11, 8.19)
	require.NoError(t, err)
	return user, bike, from, to
}

func TestNewTrip(t *testing.T) {
	user, bike, from, to := tripFixtures(t)
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(25 * time.Minute)

	trip, err := domain.NewTrip("T1", user, bike, from, to, start, end, 4.2, "")
	require.NoError(t, err)
	assert.Equal(t, domain.TripUnknown, trip.Status)
	assert.InDelta(t, 25.0, trip.DurationMinutes(), 1e-9)

	_, err = domain.NewTrip("", user, bike, from, to, start, end, 4.2, domain.TripCompleted)
	assert.ErrorIs(t, err, domain.ErrMissingID)

	_, err = domain.NewTrip("T2", nil, bike, from, to, start, end, 4.2, domain.TripCompleted)
	assert.ErrorIs(t, err, domain.ErrMissingReference)

	_, err = domain.NewTrip("T3", user, bike, from, to, end, start, 4.2, domain.TripCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeOrder)

	// Zero-length trips are valid; only end before start is rejected.
	zero, err := domain.NewTrip("T4", user, bike, from, to, start, start, 0, domain.TripCompleted)
	require.NoError(t, err)
	assert.Zero(t, zero.DurationMinutes())

	_, err = domain.NewTrip("T5", user, bike, from, to, start, end, -0.1, domain.TripCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidDistance)

	_, err = domain.NewTrip("T6", user, bike, from, to, start, end, 4.2, "ongoing")
	assert.ErrorIs(t, err, domain.ErrInvalidTripStatus)
}

func TestNewStation_Validation(t *testing.T) {
	s, err := domain.NewStation(" st9 ", "Plaza", 8, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "ST9", s.StationID)

	_, err = domain.NewStation("", "Plaza", 8, 0, 0)
	assert.ErrorIs(t, err, domain.ErrMissingID)

	_, err = domain.NewStation("ST10", "Plaza", 0, 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidCapacity)

	_, err = domain.NewStation("ST11", "Plaza", 8, 91, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)

	_, err = domain.NewStation("ST12", "Plaza", 8, 0, -181)
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
}

func TestNewMaintenanceRecord(t *testing.T) {
	bike, err := domain.NewElectricBike("B9", 90, 60)
	require.NoError(t, err)
	date := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	rec, err := domain.NewMaintenanceRecord("M1", bike, date, "", 12.5, "brake pads")
	require.NoError(t, err)
	assert.Equal(t, "general", rec.MaintenanceType)
	assert.Same(t, bike, rec.Bike)

	_, err = domain.NewMaintenanceRecord("", bike, date, "repair", 12.5, "")
	assert.ErrorIs(t, err, domain.ErrMissingID)

	_, err = domain.NewMaintenanceRecord("M2", nil, date, "repair", 12.5, "")
	assert.ErrorIs(t, err, domain.ErrMissingReference)

	_, err = domain.NewMaintenanceRecord("M3", bike, date, "repair", -1, "")
	assert.ErrorIs(t, err, domain.ErrInvalidCost)
}
