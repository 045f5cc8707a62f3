package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/services"
)

type noopLogger struct{}

func (noopLogger) Debug(string, map[string]interface{}) {}
func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}

func stationRows() []domain.Row {
	return []domain.Row{
		{"station_id": "ST100", "station_name": "Central Park", "capacity": "20", "latitude": "53.14", "longitude": "8.21"},
		{"station_id": "ST200", "station_name": "Harbor Square", "capacity": "15", "latitude": "53.11", "longitude": "8.19"},
		{"station_id": "ST300", "station_name": "University", "capacity": "30", "latitude": "53.10", "longitude": "8.25"},
	}
}

func tripRow(tripID, userID, bikeID, startID, endID, distance string) domain.Row {
	return domain.Row{
		"trip_id":          tripID,
		"user_id":          userID,
		"bike_id":          bikeID,
		"start_station_id": startID,
		"end_station_id":   endID,
		"start_time":       "2024-03-04 08:05:00",
		"end_time":         "2024-03-04 08:35:00",
		"distance_km":      distance,
		"user_type":        "member",
		"bike_type":        "classic",
		"status":           "completed",
	}
}

func builtFleet(t *testing.T) *services.FleetService {
	t.Helper()
	fleet := services.NewFleetService(noopLogger{})

	_, err := fleet.LoadStations(stationRows())
	require.NoError(t, err)

	fleet.LoadTrips([]domain.Row{
		tripRow("T1", "U1", "B1", "ST100", "ST200", "3.7"),
		tripRow("T2", "U2", "B2", "ST200", "ST300", "1.4"),
		tripRow("T3", "U1", "B1", "ST100", "ST300", "2.1"),
	})
	return fleet
}

func TestGetOrCreateReturnsSharedInstances(t *testing.T) {
	fleet := services.NewFleetService(noopLogger{})

	bike, created := fleet.GetOrCreateBike("B1", domain.BikeClassic)
	require.True(t, created)
	again, created := fleet.GetOrCreateBike("B1", domain.BikeElectric)
	assert.False(t, created)
	assert.Same(t, bike, again)
	assert.Len(t, fleet.Bikes(), 1)

	user, created := fleet.GetOrCreateUser("U1", domain.UserCasual)
	require.True(t, created)
	sameUser, created := fleet.GetOrCreateUser("U1", domain.UserMember)
	assert.False(t, created)
	assert.Same(t, user, sameUser)

	station, created := fleet.GetOrCreateStation("ST9")
	require.True(t, created)
	sameStation, created := fleet.GetOrCreateStation(" st9 ")
	assert.False(t, created)
	assert.Same(t, station, sameStation)
}

func TestGetOrCreatePlaceholderDefaults(t *testing.T) {
	fleet := services.NewFleetService(noopLogger{})

	bike, _ := fleet.GetOrCreateBike("B7", "cargo")
	assert.Equal(t, domain.BikeUnknown, bike.BikeType())
	assert.Equal(t, domain.BikeAvailable, bike.BikeStatus())

	user, _ := fleet.GetOrCreateUser("U7", "visitor")
	assert.Equal(t, domain.UserMember, user.UserType())
	assert.Equal(t, "u7@example.com", user.UserEmail())
	base, ok := user.(*domain.BaseUser)
	require.True(t, ok)
	assert.Equal(t, "User U7", base.Name)

	station, _ := fleet.GetOrCreateStation("st7")
	assert.Equal(t, "ST7", station.StationID)
	assert.Equal(t, "Station ST7", station.Name)
	assert.Equal(t, 1, station.Capacity)
	assert.Zero(t, station.Latitude)
	assert.Zero(t, station.Longitude)
}

func TestGetOrCreateBlankIDs(t *testing.T) {
	fleet := services.NewFleetService(noopLogger{})

	bike, created := fleet.GetOrCreateBike("  ", domain.BikeClassic)
	assert.Nil(t, bike)
	assert.False(t, created)

	user, created := fleet.GetOrCreateUser("", domain.UserMember)
	assert.Nil(t, user)
	assert.False(t, created)

	station, created := fleet.GetOrCreateStation(" ")
	assert.Nil(t, station)
	assert.False(t, created)
	assert.Empty(t, fleet.Stations())
}

func TestLoadStations(t *testing.T) {
	fleet := services.NewFleetService(noopLogger{})

	rows := append(stationRows(),
		domain.Row{"station_id": "ST400", "station_name": "", "capacity": "10", "latitude": "0", "longitude": "0"},
		domain.Row{"station_id": "ST500", "station_name": "Airport", "capacity": "oops", "latitude": "0", "longitude": "0"},
		domain.Row{"station_id": "ST100", "station_name": "Duplicate", "capacity": "99", "latitude": "0", "longitude": "0"},
	)
	res, err := fleet.LoadStations(rows)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Loaded)
	assert.Equal(t, 3, res.Skipped)
	require.Len(t, fleet.Stations(), 3)

	// First occurrence wins on duplicate ids.
	st, err := fleet.SearchStations("ST100", "station_id")
	require.NoError(t, err)
	assert.Equal(t, "Central Park", st.Name)
	assert.Equal(t, 20, st.Capacity)
}

func TestLoadStationsReplacesCollection(t *testing.T) {
	fleet := services.NewFleetService(noopLogger{})

	_, err := fleet.LoadStations(stationRows())
	require.NoError(t, err)
	require.Len(t, fleet.Stations(), 3)

	_, err = fleet.LoadStations(stationRows()[:1])
	require.NoError(t, err)
	assert.Len(t, fleet.Stations(), 1)
}

func TestLoadStationsAfterTripsFails(t *testing.T) {
	fleet := builtFleet(t)

	_, err := fleet.LoadStations(stationRows())
	assert.ErrorIs(t, err, services.ErrStationsAfterTrips)
	// The existing collection is untouched.
	assert.Len(t, fleet.Stations(), 3)
}

func TestLoadTripsLinksSharedInstances(t *testing.T) {
	fleet := builtFleet(t)

	trips := fleet.Trips()
	require.Len(t, trips, 3)

	// T1 and T3 share rider and bike; the graph holds one instance of each.
	assert.Same(t, trips[0].User, trips[2].User)
	assert.Same(t, trips[0].Bike, trips[2].Bike)
	assert.Same(t, trips[0].StartStation, trips[2].StartStation)

	// Stations were pre-loaded, so no placeholders were needed.
	assert.Len(t, fleet.Stations(), 3)
	assert.Len(t, fleet.Bikes(), 2)
	assert.Len(t, fleet.Users(), 2)
}

func TestLoadTripsFabricatesPlaceholders(t *testing.T) {
	fleet := services.NewFleetService(noopLogger{})

	res := fleet.LoadTrips([]domain.Row{tripRow("T1", "U1", "B1", "ST100", "ST200", "3.0")})

	assert.Equal(t, 1, res.Loaded)
	assert.Equal(t, 4, res.Created)
	assert.Len(t, fleet.Stations(), 2)
	assert.Equal(t, "Station ST100", fleet.Stations()[0].Name)
}

func TestLoadTripsSkipsRowsMissingLinks(t *testing.T) {
	fleet := services.NewFleetService(noopLogger{})

	res := fleet.LoadTrips([]domain.Row{
		tripRow("T1", "U1", "", "ST100", "ST200", "3.0"),
		tripRow("T2", "U2", "B2", "ST200", "ST300", "1.4"),
	})

	// The bad row is dropped without touching the rest of the batch.
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.Loaded)
	require.Len(t, fleet.Trips(), 1)
	assert.Equal(t, "T2", fleet.Trips()[0].TripID)

	// Only T2's links were resolved; the rejected row created nothing.
	assert.Equal(t, 4, res.Created)
	assert.Len(t, fleet.Stations(), 2)
}

func TestLoadTripsKeepsPlaceholdersFromSkippedRows(t *testing.T) {
	fleet := services.NewFleetService(noopLogger{})

	bad := tripRow("T1", "U1", "B1", "ST100", "ST200", "3.0")
	bad["start_time"] = "not-a-timestamp"
	res := fleet.LoadTrips([]domain.Row{bad})

	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 4, res.Created)
	// Linking happens before parsing, so the placeholders survive the skip.
	assert.Len(t, fleet.Users(), 1)
	assert.Len(t, fleet.Bikes(), 1)
	assert.Len(t, fleet.Stations(), 2)
}

func TestLoadTripsAllowsZeroLengthTrips(t *testing.T) {
	fleet := services.NewFleetService(noopLogger{})

	row := tripRow("T1", "U1", "B1", "ST100", "ST200", "0")
	row["end_time"] = row["start_time"]
	res := fleet.LoadTrips([]domain.Row{row})

	assert.Equal(t, 1, res.Loaded)
	trip, ok := fleet.TripByID("T1")
	require.True(t, ok)
	assert.Zero(t, trip.DurationMinutes())
}

func maintenanceRow(recordID, bikeID, date, maintenanceType, cost string) domain.Row {
	return domain.Row{
		"record_id":        recordID,
		"bike_id":          bikeID,
		"bike_type":        "classic",
		"date":             date,
		"maintenance_type": maintenanceType,
		"cost":             cost,
	}
}

func TestLoadMaintenanceLinksAndSkips(t *testing.T) {
	fleet := builtFleet(t)

	res := fleet.LoadMaintenance([]domain.Row{
		maintenanceRow("M1", "B1", "2024-03-10", "brakes", "25.5"),
		maintenanceRow("M2", "B9", "2024-03-11", "tires", "40"),
		maintenanceRow("M3", "B1", "2024-03-12", "brakes", "not-a-number"),
		maintenanceRow("M4", "", "2024-03-13", "general", "10"),
	})

	// Bad rows skip individually; the rest of the batch loads.
	assert.Equal(t, 2, res.Loaded)
	assert.Equal(t, 2, res.Skipped)
	// Only B9 was unknown before this feed.
	assert.Equal(t, 1, res.Created)

	records := fleet.Maintenance()
	require.Len(t, records, 2)
	// M1 references the same B1 instance the trips do.
	assert.Same(t, fleet.Trips()[0].Bike, records[0].Bike)
}

func TestLoadStationsAfterMaintenanceFails(t *testing.T) {
	fleet := services.NewFleetService(noopLogger{})

	fleet.LoadMaintenance([]domain.Row{
		maintenanceRow("M1", "B1", "2024-03-10", "brakes", "25.5"),
	})

	_, err := fleet.LoadStations(stationRows())
	assert.ErrorIs(t, err, services.ErrStationsAfterTrips)
}

func TestLoadBikesAndUsers(t *testing.T) {
	fleet := services.NewFleetService(noopLogger{})

	bikeRes := fleet.LoadBikes([]domain.Row{
		{"bike_id": "B1", "bike_type": "classic", "gear_count": "7"},
		{"bike_id": "B2", "bike_type": "electric"},
		{"bike_id": "B1", "bike_type": "classic"},
		{"bike_id": "", "bike_type": "classic"},
	})
	assert.Equal(t, 2, bikeRes.Loaded)
	assert.Equal(t, 2, bikeRes.Skipped)

	userRes := fleet.LoadUsers([]domain.Row{
		{"user_id": "U1", "user_type": "casual", "day_pass_count": "2"},
		{"user_id": "U2", "user_type": "member", "membership_start": "2024-01-01", "tier": "premium"},
		{"user_id": "U3", "user_type": "vip"},
	})
	assert.Equal(t, 2, userRes.Loaded)
	assert.Equal(t, 1, userRes.Skipped)

	// Explicit entities win over later trip placeholders.
	bike, created := fleet.GetOrCreateBike("B1", domain.BikeClassic)
	assert.False(t, created)
	classic, ok := bike.(*domain.ClassicBike)
	require.True(t, ok)
	assert.Equal(t, 7, classic.GearCount)
}

func TestRemoveInactiveBikes(t *testing.T) {
	fleet := services.NewFleetService(noopLogger{})

	res := fleet.LoadBikes([]domain.Row{
		{"bike_id": "B1", "bike_type": "cargo", "status": "maintenance"},
		{"bike_id": "B2", "bike_type": "cargo", "status": "available"},
		{"bike_id": "B3", "bike_type": "cargo", "status": "maintenance"},
	})
	require.Equal(t, 3, res.Loaded)

	removed := fleet.RemoveInactiveBikes()
	assert.Equal(t, 2, removed)
	require.Len(t, fleet.Bikes(), 1)
	assert.Equal(t, "B2", fleet.Bikes()[0].BikeID())

	// A removed id resolves to a fresh placeholder afterwards.
	_, created := fleet.GetOrCreateBike("B1", domain.BikeClassic)
	assert.True(t, created)
}

func TestSortTripsByDistance(t *testing.T) {
	fleet := builtFleet(t)

	sorted := fleet.SortTripsByDistance(false)
	require.Len(t, sorted, 3)
	assert.Equal(t, []float64{1.4, 2.1, 3.7}, distances(sorted))
	// Each trip rides along with its distance.
	assert.Equal(t, []string{"T2", "T3", "T1"}, tripIDs(sorted))

	// The load-order collection is untouched.
	assert.Equal(t, []float64{3.7, 1.4, 2.1}, distances(fleet.Trips()))

	reversed := fleet.SortTripsByDistance(true)
	assert.Equal(t, []float64{3.7, 2.1, 1.4}, distances(reversed))
	assert.Equal(t, []string{"T1", "T3", "T2"}, tripIDs(reversed))
}

func TestSortTripsByDistanceTiesKeepLoadOrder(t *testing.T) {
	fleet := services.NewFleetService(noopLogger{})
	fleet.LoadTrips([]domain.Row{
		tripRow("T1", "U1", "B1", "ST100", "ST200", "2.1"),
		tripRow("T2", "U2", "B2", "ST200", "ST300", "2.1"),
		tripRow("T3", "U3", "B3", "ST300", "ST100", "1.0"),
	})

	sorted := fleet.SortTripsByDistance(false)
	require.Len(t, sorted, 3)
	assert.Equal(t, "T3", sorted[0].TripID)
	assert.Equal(t, "T1", sorted[1].TripID)
	assert.Equal(t, "T2", sorted[2].TripID)
}

func TestSearchStations(t *testing.T) {
	fleet := builtFleet(t)

	st, err := fleet.SearchStations(" st100 ", "station_id")
	require.NoError(t, err)
	assert.Equal(t, "ST100", st.StationID)

	st, err = fleet.SearchStations("Harbor Square", "station_name")
	require.NoError(t, err)
	assert.Equal(t, "ST200", st.StationID)

	// Blank key defaults to the id lookup.
	st, err = fleet.SearchStations("ST300", "")
	require.NoError(t, err)
	assert.Equal(t, "University", st.Name)

	_, err = fleet.SearchStations("ST999", "station_id")
	assert.ErrorIs(t, err, services.ErrStationNotFound)

	_, err = fleet.SearchStations("ST100", "capacity")
	assert.ErrorIs(t, err, services.ErrInvalidSearchKey)
}

func TestSearchStationsEmptyGraph(t *testing.T) {
	fleet := services.NewFleetService(noopLogger{})

	_, err := fleet.SearchStations("ST100", "station_id")
	assert.ErrorIs(t, err, services.ErrStationNotFound)
}

func TestTotalDistanceAndTripByID(t *testing.T) {
	fleet := builtFleet(t)

	assert.InDelta(t, 7.2, fleet.TotalDistance(), 1e-9)

	trip, ok := fleet.TripByID("T2")
	require.True(t, ok)
	assert.InDelta(t, 1.4, trip.DistanceKM, 1e-9)

	_, ok = fleet.TripByID("T99")
	assert.False(t, ok)
}

func distances(trips []*domain.Trip) []float64 {
	out := make([]float64, len(trips))
	for i, trip := range trips {
		out[i] = trip.DistanceKM
	}
	return out
}

func tripIDs(trips []*domain.Trip) []string {
	out := make([]string, len(trips))
	for i, trip := range trips {
		out[i] = trip.TripID
	}
	return out
}
