package timeutil

import (
	"fmt"
	"time"
)

// Common time format strings
const (
	RFC3339Format     = time.RFC3339
	RFC3339NanoFormat = time.RFC3339Nano
	DateFormat        = "2006-01-02"
	DateTimeFormat    = "2006-01-02 15:04:05"
)

// Now returns the current time. This can be overridden for testing.
var Now = func() time.Time {
	return time.Now()
}

// ParseTimestamp attempts to parse a timestamp string using common formats.
// Results are in UTC unless the string carries an offset.
func ParseTimestamp(s string) (time.Time, error) {
	formats := []string{
		RFC3339NanoFormat,
		RFC3339Format,
		DateTimeFormat,
		DateFormat,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", s)
}

// DurationToMillis converts a duration to whole milliseconds, truncating.
func DurationToMillis(d time.Duration) int64 {
	return d.Nanoseconds() / 1e6
}

// MillisToDuration converts milliseconds to a duration
func MillisToDuration(millis int64) time.Duration {
	return time.Duration(millis) * time.Millisecond
}
