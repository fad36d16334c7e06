package snowflake

import (
	"errors"
	"fmt"
)

// Identity fields reported by ConfigError.
const (
	FieldDatacenterID = "datacenter_id"
	FieldMachineID    = "machine_id"
)

var (
	// ErrOutOfRange - node identity field does not fit its bit width.
	ErrOutOfRange = errors.New("out of range")

	// ErrClockRegression - wall clock reports a time earlier than the last issued ID.
	ErrClockRegression = errors.New("clock moved backwards")

	// ErrClockOutOfRange - wall clock reading cannot be represented in the timestamp field.
	ErrClockOutOfRange = errors.New("clock reading outside of the id timestamp range")

	// ErrInvalidID - string is not a decimal 64-bit id.
	ErrInvalidID = errors.New("invalid id")
)

// ConfigError is returned by New when a node identity field is rejected.
type ConfigError struct {
	Field string
	Value int64
	Max   int64
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s %d %s [0, %d]", e.Field, e.Value, ErrOutOfRange, e.Max)
}

func (e *ConfigError) Unwrap() error {
	return ErrOutOfRange
}

// ClockRegressionError carries the timestamps involved in a clock regression.
// Both values are milliseconds relative to Epoch.
type ClockRegressionError struct {
	Previous int64
	Current  int64
}

func (e *ClockRegressionError) Error() string {
	return fmt.Sprintf("%s: refusing to generate id for %d ms (last issued at %d ms)",
		ErrClockRegression, e.Current, e.Previous)
}

func (e *ClockRegressionError) Unwrap() error {
	return ErrClockRegression
}
