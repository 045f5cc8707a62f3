package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row is one flat record from an upstream export. Values arrive as raw
// strings; the accessors below do the trimming and coercion.
type Row map[string]string

// Layouts accepted for timestamp fields, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a timestamp in any of the accepted layouts. Returns
// ErrBadTimestamp when none match.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, value)
}

// Get returns the trimmed value for key, empty when absent.
func (r Row) Get(key string) string {
	return strings.TrimSpace(r[key])
}

// GetDefault returns the trimmed value for key, or fallback when the
// field is absent or blank.
func (r Row) GetDefault(key, fallback string) string {
	if v := r.Get(key); v != "" {
		return v
	}
	return fallback
}

// Float coerces the field to a float64.
func (r Row) Float(key string) (float64, error) {
	v, err := strconv.ParseFloat(r.Get(key), 64)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return v, nil
}

// Int coerces the field to an int.
func (r Row) Int(key string) (int, error) {
	v, err := strconv.Atoi(r.Get(key))
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return v, nil
}

// Time parses the field as a timestamp.
func (r Row) Time(key string) (time.Time, error) {
	return ParseTime(r[key])
}
