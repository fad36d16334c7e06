package snowflake

import "time"

// Clock - source of wall clock time in milliseconds since the Unix epoch.
type Clock interface {
	NowMilli() int64
}

// ClockFunc adapts an ordinary function to the Clock interface.
type ClockFunc func() int64

// NowMilli calls f().
func (f ClockFunc) NowMilli() int64 {
	return f()
}

type systemClock struct{}

func (systemClock) NowMilli() int64 {
	return time.Now().UnixMilli()
}

// SystemClock reads the host wall clock.
var SystemClock Clock = systemClock{}
