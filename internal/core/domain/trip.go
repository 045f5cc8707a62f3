package domain

import (
	"fmt"
	"strings"
	"time"
)

type TripStatus string

const (
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
	TripUnknown   TripStatus = "unknown"
)

// Trip links one ride to its rider, bike and both stations. All five
// references are non-nil once the trip is constructed; duration is
// derived from the timestamps rather than stored.
type Trip struct {
	TripID       string     `json:"trip_id"`
	User         User       `json:"user"`
	Bike         Bike       `json:"bike"`
	StartStation *Station   `json:"start_station"`
	EndStation   *Station   `json:"end_station"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	DistanceKM   float64    `json:"distance_km"`
	Status       TripStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

func NewTrip(id string, user User, bike Bike, startStation, endStation *Station,
	startTime, endTime time.Time, distanceKM float64, status TripStatus) (*Trip, error) {

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: trip_id", ErrMissingID)
	}
	if user == nil || bike == nil || startStation == nil || endStation == nil {
		return nil, fmt.Errorf("%w: trip %s", ErrMissingReference, id)
	}
	if endTime.Before(startTime) {
		return nil, fmt.Errorf("%w: trip %s", ErrInvalidTimeOrder, id)
	}
	if distanceKM < 0 {
		return nil, fmt.Errorf("%w: %.2f", ErrInvalidDistance, distanceKM)
	}
	if status == "" {
		status = TripUnknown
	}
	switch status {
	case TripCompleted, TripCancelled, TripUnknown:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidTripStatus, status)
	}
	return &Trip{
		TripID:       id,
		User:         user,
		Bike:         bike,
		StartStation: startStation,
		EndStation:   endStation,
		StartTime:    startTime,
		EndTime:      endTime,
		DistanceKM:   distanceKM,
		Status:       status,
		CreatedAt:    time.Now(),
	}, nil
}

// DurationMinutes is the ride length derived from the timestamps.
func (t *Trip) DurationMinutes() float64 {
	return t.EndTime.Sub(t.StartTime).Minutes()
}
