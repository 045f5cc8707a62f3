package services

import "errors"

var (
	// ErrStationsAfterTrips rejects a station load once trips or
	// maintenance have been linked: the wholesale replace would orphan
	// every placeholder the linked records already reference.
	ErrStationsAfterTrips = errors.New("fleet: stations must be loaded before trips and maintenance")

	// ErrInvalidSearchKey marks a caller error, not a data miss.
	ErrInvalidSearchKey = errors.New("fleet: search key must be station_id or station_name")

	// ErrStationNotFound is the expected negative outcome of a lookup.
	ErrStationNotFound = errors.New("fleet: station not found")

	// ErrNoValues is returned by statistics over an empty sample.
	ErrNoValues = errors.New("fleet: no values to summarize")

	// ErrLengthMismatch is returned when paired coordinate slices
	// disagree in length.
	ErrLengthMismatch = errors.New("fleet: paired slices must have the same length")
)
