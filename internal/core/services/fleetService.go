package services

import (
	"fmt"
	"strings"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/ports"
	"github.com/sm8ta/webike_fleet_analytics_nikita/pkg/algo"
)

// LoadResult sums up one ingest pass over a feed.
type LoadResult struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
	Created int `json:"created"`
}

// FleetService turns flat export rows into one linked object graph:
// every bike, rider and station exists exactly once, and trips and
// maintenance records point at those shared instances. The service is
// built for single-writer use; concurrent readers get a consistent
// view only through FleetRef snapshots.
type FleetService struct {
	logger ports.LoggerPort

	bikes        []domain.Bike
	bikeIndex    map[string]domain.Bike
	users        []domain.User
	userIndex    map[string]domain.User
	stations     []*domain.Station
	stationIndex map[string]*domain.Station
	trips        []*domain.Trip
	tripIndex    map[string]*domain.Trip
	maintenance  []*domain.MaintenanceRecord

	// set once trips or maintenance have linked entities; station loads
	// are rejected from then on
	linked bool
}

func NewFleetService(logger ports.LoggerPort) *FleetService {
	return &FleetService{
		logger:       logger,
		bikeIndex:    make(map[string]domain.Bike),
		userIndex:    make(map[string]domain.User),
		stationIndex: make(map[string]*domain.Station),
		tripIndex:    make(map[string]*domain.Trip),
	}
}

// Collections are returned in load order. Callers must treat them as
// read-only.

func (s *FleetService) Bikes() []domain.Bike                     { return s.bikes }
func (s *FleetService) Users() []domain.User                     { return s.users }
func (s *FleetService) Stations() []*domain.Station              { return s.stations }
func (s *FleetService) Trips() []*domain.Trip                    { return s.trips }
func (s *FleetService) Maintenance() []*domain.MaintenanceRecord { return s.maintenance }

func (s *FleetService) TripByID(tripID string) (*domain.Trip, bool) {
	trip, ok := s.tripIndex[strings.TrimSpace(tripID)]
	return trip, ok
}

// GetOrCreateBike returns the bike registered under bikeID, creating a
// generic placeholder when the id is new. The second result reports
// whether a placeholder was created. Unrecognized types collapse to
// unknown; blank ids yield (nil, false).
func (s *FleetService) GetOrCreateBike(bikeID string, bikeType domain.BikeType) (domain.Bike, bool) {
	id := strings.TrimSpace(bikeID)
	if bike, ok := s.bikeIndex[id]; ok {
		return bike, false
	}
	normalized := bikeType
	if normalized != domain.BikeClassic && normalized != domain.BikeElectric {
		normalized = domain.BikeUnknown
	}
	bike, err := domain.NewBike(id, normalized, domain.BikeAvailable)
	if err != nil {
		return nil, false
	}
	s.bikes = append(s.bikes, bike)
	s.bikeIndex[id] = bike
	return bike, true
}

// GetOrCreateUser returns the rider registered under userID, creating
// a placeholder with synthesized name and email when the id is new.
// Unrecognized types default to member.
func (s *FleetService) GetOrCreateUser(userID string, userType domain.UserType) (domain.User, bool) {
	id := strings.TrimSpace(userID)
	if user, ok := s.userIndex[id]; ok {
		return user, false
	}
	normalized := userType
	if normalized != domain.UserMember && normalized != domain.UserCasual {
		normalized = domain.UserMember
	}
	user, err := domain.NewUser(id, "User "+id, strings.ToLower(id)+"@example.com", normalized)
	if err != nil {
		return nil, false
	}
	s.users = append(s.users, user)
	s.userIndex[id] = user
	return user, true
}

// GetOrCreateStation returns the station registered under stationID,
// creating a placeholder with capacity 1 at the origin when the id is
// new. Lookups are case-insensitive.
func (s *FleetService) GetOrCreateStation(stationID string) (*domain.Station, bool) {
	key := domain.NormalizeStationID(stationID)
	if station, ok := s.stationIndex[key]; ok {
		return station, false
	}
	station, err := domain.NewStation(key, "Station "+key, 1, 0, 0)
	if err != nil {
		return nil, false
	}
	s.stations = append(s.stations, station)
	s.stationIndex[key] = station
	return station, true
}

// LoadStations replaces the station collection from cleaned rows.
// Invalid rows are skipped; the first row wins when an id repeats.
// Fails with ErrStationsAfterTrips once linking has happened.
func (s *FleetService) LoadStations(rows []domain.Row) (LoadResult, error) {
	if s.linked {
		return LoadResult{}, ErrStationsAfterTrips
	}

	var res LoadResult
	stations := make([]*domain.Station, 0, len(rows))
	index := make(map[string]*domain.Station, len(rows))

	for _, row := range rows {
		name := row.Get("station_name")
		if name == "" {
			res.Skipped++
			continue
		}
		capacity, err := row.Int("capacity")
		if err != nil {
			res.Skipped++
			continue
		}
		latitude, err := row.Float("latitude")
		if err != nil {
			res.Skipped++
			continue
		}
		longitude, err := row.Float("longitude")
		if err != nil {
			res.Skipped++
			continue
		}
		station, err := domain.NewStation(row.Get("station_id"), name, capacity, latitude, longitude)
		if err != nil {
			s.logger.Debug("Skipping station row", map[string]interface{}{
				"error":      err.Error(),
				"station_id": row.Get("station_id"),
			})
			res.Skipped++
			continue
		}
		if _, dup := index[station.StationID]; dup {
			res.Skipped++
			continue
		}
		stations = append(stations, station)
		index[station.StationID] = station
		res.Loaded++
	}

	s.stations = stations
	s.stationIndex = index

	s.logger.Info("Stations loaded", map[string]interface{}{
		"loaded":  res.Loaded,
		"skipped": res.Skipped,
	})
	return res, nil
}

// LoadTrips replaces the trip collection from cleaned rows and links
// each trip to its rider, bike and stations, fabricating placeholders
// for ids never seen before. Rows without the four linking ids or with
// unparseable values are skipped; placeholders created before the skip
// was detected stay in the graph.
func (s *FleetService) LoadTrips(rows []domain.Row) LoadResult {
	var res LoadResult
	trips := make([]*domain.Trip, 0, len(rows))
	index := make(map[string]*domain.Trip, len(rows))

	for _, row := range rows {
		userID := row.Get("user_id")
		bikeID := row.Get("bike_id")
		startID := row.Get("start_station_id")
		endID := row.Get("end_station_id")
		if userID == "" || bikeID == "" || startID == "" || endID == "" {
			res.Skipped++
			continue
		}

		bikeType := domain.BikeType(strings.ToLower(row.GetDefault("bike_type", string(domain.BikeClassic))))
		userType := domain.UserType(strings.ToLower(row.GetDefault("user_type", string(domain.UserMember))))

		user, createdUser := s.GetOrCreateUser(userID, userType)
		bike, createdBike := s.GetOrCreateBike(bikeID, bikeType)
		startStation, createdStart := s.GetOrCreateStation(startID)
		endStation, createdEnd := s.GetOrCreateStation(endID)
		res.Created += countCreated(createdUser, createdBike, createdStart, createdEnd)

		startTime, err := row.Time("start_time")
		if err != nil {
			res.Skipped++
			continue
		}
		endTime, err := row.Time("end_time")
		if err != nil {
			res.Skipped++
			continue
		}
		distance, err := row.Float("distance_km")
		if err != nil {
			res.Skipped++
			continue
		}
		status := domain.TripStatus(strings.ToLower(row.GetDefault("status", string(domain.TripUnknown))))

		trip, err := domain.NewTrip(row.Get("trip_id"), user, bike, startStation, endStation,
			startTime, endTime, distance, status)
		if err != nil {
			s.logger.Debug("Skipping trip row", map[string]interface{}{
				"error":   err.Error(),
				"trip_id": row.Get("trip_id"),
			})
			res.Skipped++
			continue
		}

		trips = append(trips, trip)
		if _, dup := index[trip.TripID]; !dup {
			index[trip.TripID] = trip
		}
		res.Loaded++
	}

	s.trips = trips
	s.tripIndex = index
	s.linked = true

	s.logger.Info("Trips loaded", map[string]interface{}{
		"loaded":               res.Loaded,
		"skipped":              res.Skipped,
		"placeholders_created": res.Created,
	})
	return res
}

// LoadMaintenance replaces the maintenance collection from cleaned
// rows, linking each record to the shared bike instance and creating
// placeholder bikes for ids never seen before. Bad rows are skipped.
func (s *FleetService) LoadMaintenance(rows []domain.Row) LoadResult {
	var res LoadResult
	records := make([]*domain.MaintenanceRecord, 0, len(rows))

	for _, row := range rows {
		bikeID := row.Get("bike_id")
		if bikeID == "" {
			res.Skipped++
			continue
		}
		bikeType := domain.BikeType(strings.ToLower(row.GetDefault("bike_type", string(domain.BikeClassic))))
		bike, created := s.GetOrCreateBike(bikeID, bikeType)
		if created {
			res.Created++
		}

		date, err := row.Time("date")
		if err != nil {
			res.Skipped++
			continue
		}
		cost, err := row.Float("cost")
		if err != nil {
			res.Skipped++
			continue
		}

		record, err := domain.NewMaintenanceRecord(row.Get("record_id"), bike, date,
			row.Get("maintenance_type"), cost, row.Get("description"))
		if err != nil {
			s.logger.Debug("Skipping maintenance row", map[string]interface{}{
				"error":     err.Error(),
				"record_id": row.Get("record_id"),
			})
			res.Skipped++
			continue
		}

		records = append(records, record)
		res.Loaded++
	}

	s.maintenance = records
	s.linked = true

	s.logger.Info("Maintenance records loaded", map[string]interface{}{
		"loaded":               res.Loaded,
		"skipped":              res.Skipped,
		"placeholders_created": res.Created,
	})
	return res
}

// LoadBikes appends explicit bike rows built through the row factory.
// Rows whose id is already registered are skipped, so explicit bikes
// should be loaded before trips fabricate placeholders for them.
func (s *FleetService) LoadBikes(rows []domain.Row) LoadResult {
	var res LoadResult
	for _, row := range rows {
		bike, err := domain.BikeFromRow(row)
		if err != nil {
			s.logger.Debug("Skipping bike row", map[string]interface{}{
				"error":   err.Error(),
				"bike_id": row.Get("bike_id"),
			})
			res.Skipped++
			continue
		}
		if _, exists := s.bikeIndex[bike.BikeID()]; exists {
			res.Skipped++
			continue
		}
		s.bikes = append(s.bikes, bike)
		s.bikeIndex[bike.BikeID()] = bike
		res.Loaded++
	}
	return res
}

// LoadUsers appends explicit rider rows built through the row factory.
func (s *FleetService) LoadUsers(rows []domain.Row) LoadResult {
	var res LoadResult
	for _, row := range rows {
		user, err := domain.UserFromRow(row)
		if err != nil {
			s.logger.Debug("Skipping user row", map[string]interface{}{
				"error":   err.Error(),
				"user_id": row.Get("user_id"),
			})
			res.Skipped++
			continue
		}
		if _, exists := s.userIndex[user.UserID()]; exists {
			res.Skipped++
			continue
		}
		s.users = append(s.users, user)
		s.userIndex[user.UserID()] = user
		res.Loaded++
	}
	return res
}

// RemoveInactiveBikes drops bikes whose status is maintenance from the
// active collection and returns how many were removed. Existing trips
// keep their references; a later load of the same id creates a fresh
// placeholder.
func (s *FleetService) RemoveInactiveBikes() int {
	kept := make([]domain.Bike, 0, len(s.bikes))
	removed := 0
	for _, bike := range s.bikes {
		if bike.BikeStatus() == domain.BikeMaintenance {
			delete(s.bikeIndex, bike.BikeID())
			removed++
			continue
		}
		kept = append(kept, bike)
	}
	s.bikes = kept
	return removed
}

// TotalDistance sums the distance of every loaded trip.
func (s *FleetService) TotalDistance() float64 {
	var total float64
	for _, trip := range s.trips {
		total += trip.DistanceKM
	}
	return total
}

// SortTripsByDistance returns the trips ordered by distance using the
// stable merge sort. The load-order collection itself is untouched;
// ties keep their load order.
func (s *FleetService) SortTripsByDistance(reverse bool) []*domain.Trip {
	return algo.MergeSortFunc(s.trips, func(t *domain.Trip) float64 { return t.DistanceKM }, reverse)
}

// SearchStations finds one station by id or name using binary search
// over normalized keys. The query is trimmed and lowercased first. A
// bad by value returns ErrInvalidSearchKey; a miss returns
// ErrStationNotFound.
func (s *FleetService) SearchStations(query, by string) (*domain.Station, error) {
	var keyOf func(*domain.Station) string
	switch by {
	case "", "station_id":
		keyOf = func(st *domain.Station) string { return strings.ToLower(strings.TrimSpace(st.StationID)) }
	case "station_name":
		keyOf = func(st *domain.Station) string { return strings.ToLower(strings.TrimSpace(st.Name)) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSearchKey, by)
	}

	if len(s.stations) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrStationNotFound, query)
	}

	sorted := algo.MergeSortFunc(s.stations, keyOf, false)
	keys := make([]string, len(sorted))
	for i, station := range sorted {
		keys[i] = keyOf(station)
	}

	idx := algo.BinarySearch(keys, strings.ToLower(strings.TrimSpace(query)))
	if idx == algo.NotFound {
		return nil, fmt.Errorf("%w: %q", ErrStationNotFound, query)
	}
	return sorted[idx], nil
}

// ComputeTripCost prices one trip with the given strategy.
func (s *FleetService) ComputeTripCost(trip *domain.Trip, strategy PricingStrategy) float64 {
	return strategy.ComputeCost(trip)
}

func countCreated(flags ...bool) int {
	n := 0
	for _, created := range flags {
		if created {
			n++
		}
	}
	return n
}
