package domain

import "time"

// DateFormat is the unambiguous calendar form used everywhere a date crosses
// a boundary: input parsing, persistence, and JSON payloads.
const DateFormat = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateFormat, value)
}
