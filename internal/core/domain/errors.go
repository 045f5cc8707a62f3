package domain

import "errors"

// Construction errors. Every entity constructor reports the violated
// invariant through one of these sentinels so callers can match with
// errors.Is.
var (
	ErrMissingID               = errors.New("domain: identifier must be non-empty")
	ErrMissingReference        = errors.New("domain: linked entity must be non-nil")
	ErrInvalidBikeStatus       = errors.New("domain: invalid bike status")
	ErrInvalidGearCount        = errors.New("domain: gear count must be positive")
	ErrInvalidBatteryLevel     = errors.New("domain: battery level must be non-negative")
	ErrInvalidMaxRange         = errors.New("domain: max range must be positive")
	ErrInvalidEmail            = errors.New("domain: email must contain @")
	ErrInvalidUserType         = errors.New("domain: invalid user type")
	ErrUnknownUserType         = errors.New("domain: unknown user type")
	ErrInvalidDayPassCount     = errors.New("domain: day pass count must be non-negative")
	ErrInvalidTier             = errors.New("domain: invalid membership tier")
	ErrInvalidMembershipPeriod = errors.New("domain: membership end must be after start")
	ErrInvalidCapacity         = errors.New("domain: station capacity must be positive")
	ErrInvalidCoordinates      = errors.New("domain: coordinates out of range")
	ErrInvalidDistance         = errors.New("domain: distance must be non-negative")
	ErrInvalidTimeOrder        = errors.New("domain: end time must not be before start time")
	ErrInvalidTripStatus       = errors.New("domain: invalid trip status")
	ErrInvalidCost             = errors.New("domain: cost must be non-negative")
	ErrBadTimestamp            = errors.New("domain: unparseable timestamp")
)
