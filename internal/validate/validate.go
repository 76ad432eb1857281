// Package validate contains stateless helpers that coerce raw string fields
// into typed values. Each helper returns the typed value or an *Error naming
// the field and the violated constraint. None of them has side effects.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layouts of the raw record timestamps.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// Error reports a field value that violated a constraint.
type Error struct {
	Field  string
	Value  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func fail(field, value, reason string) *Error {
	return &Error{Field: field, Value: value, Reason: reason}
}

// ID returns the trimmed identifier, which must be non-empty.
func ID(field, raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fail(field, raw, "identifier is empty")
	}
	return id, nil
}

// Timestamp parses a "2006-01-02 15:04:05" value.
func Timestamp(field, raw string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fail(field, raw, "malformed timestamp")
	}
	return t, nil
}

// Date parses a "2006-01-02" value.
func Date(field, raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fail(field, raw, "malformed date")
	}
	return t, nil
}

// Float parses a decimal number.
func Float(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fail(field, raw, "not a number")
	}
	return v, nil
}

// NonNegativeFloat parses a decimal number that must be >= 0.
func NonNegativeFloat(field, raw string) (float64, error) {
	v, err := Float(field, raw)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fail(field, raw, "must not be negative")
	}
	return v, nil
}

// PositiveInt parses an integer that must be > 0.
func PositiveInt(field, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fail(field, raw, "not an integer")
	}
	if v <= 0 {
		return 0, fail(field, raw, "must be greater than 0")
	}
	return v, nil
}

// Latitude parses a coordinate in [-90, 90].
func Latitude(field, raw string) (float64, error) {
	v, err := Float(field, raw)
	if err != nil {
		return 0, err
	}
	if v < -90 || v > 90 {
		return 0, fail(field, raw, "latitude out of range [-90, 90]")
	}
	return v, nil
}

// Longitude parses a coordinate in [-180, 180].
func Longitude(field, raw string) (float64, error) {
	v, err := Float(field, raw)
	if err != nil {
		return 0, err
	}
	if v < -180 || v > 180 {
		return 0, fail(field, raw, "longitude out of range [-180, 180]")
	}
	return v, nil
}

// OneOf returns the lower-cased trimmed value, which must be one of the
// allowed values.
func OneOf(field, raw string, allowed ...string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", fail(field, raw, "must be one of "+strings.Join(allowed, ", "))
}
