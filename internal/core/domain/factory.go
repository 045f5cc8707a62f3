package domain

import (
	"fmt"
	"strings"
	"time"
)

// BikeFromRow builds the bike variant described by a flat record.
// Recognized bike_type values map onto ClassicBike and ElectricBike
// with the usual fleet defaults; anything else becomes a generic
// BaseBike carrying the raw type string.
func BikeFromRow(row Row) (Bike, error) {
	id := row.Get("bike_id")
	switch BikeType(strings.ToLower(row.Get("bike_type"))) {
	case BikeClassic:
		gears, err := intField(row, "gear_count", 3)
		if err != nil {
			return nil, err
		}
		return NewClassicBike(id, gears)
	case BikeElectric:
		battery, err := floatField(row, "battery_level", 100)
		if err != nil {
			return nil, err
		}
		rangeKM, err := floatField(row, "max_range_km", 60)
		if err != nil {
			return nil, err
		}
		return NewElectricBike(id, battery, rangeKM)
	default:
		bikeType := BikeType(strings.ToLower(row.Get("bike_type")))
		status := BikeStatus(strings.ToLower(row.GetDefault("status", string(BikeAvailable))))
		return NewBike(id, bikeType, status)
	}
}

// UserFromRow builds the rider variant described by a flat record.
// Unlike bikes there is no generic fallback: an unrecognized user_type
// is a data error and returns ErrUnknownUserType.
func UserFromRow(row Row) (User, error) {
	id := row.Get("user_id")
	name := row.GetDefault("name", "User "+id)
	email := row.GetDefault("email", strings.ToLower(id)+"@example.com")

	switch UserType(strings.ToLower(row.Get("user_type"))) {
	case UserCasual:
		passes, err := intField(row, "day_pass_count", 1)
		if err != nil {
			return nil, err
		}
		return NewCasualUser(id, name, email, passes)
	case UserMember:
		start := time.Now()
		if v := row.Get("membership_start"); v != "" {
			ts, err := ParseTime(v)
			if err != nil {
				return nil, err
			}
			start = ts
		}
		end := start.AddDate(0, 0, 365)
		if v := row.Get("membership_end"); v != "" {
			ts, err := ParseTime(v)
			if err != nil {
				return nil, err
			}
			end = ts
		}
		tier := MembershipTier(strings.ToLower(row.GetDefault("tier", string(TierBasic))))
		return NewMemberUser(id, name, email, tier, start, end)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownUserType, row.Get("user_type"))
	}
}

func intField(row Row, key string, fallback int) (int, error) {
	if row.Get(key) == "" {
		return fallback, nil
	}
	return row.Int(key)
}

func floatField(row Row, key string, fallback float64) (float64, error) {
	if row.Get(key) == "" {
		return fallback, nil
	}
	return row.Float(key)
}
