package datasets

import (
	"strconv"
	"strings"
	"time"
)

// Timestamp layouts tried in priority order. Public dataset exports disagree
// on date formats, sometimes within a single archive.
var timestampLayouts = []string{
	"02-01-2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
}

var dateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	"01-02-2006",
}

// ParseTimestamp tries each known layout until one parses.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDate parses a date-only value, accepting a trailing time component
// (e.g. "4/12/2016 12:00:00 AM") by taking the first whitespace field.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if fields := strings.Fields(value); len(fields) > 0 {
		value = fields[0]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return DateOf(t), true
		}
	}
	return time.Time{}, false
}

// DateOf truncates a timestamp to its calendar date at UTC midnight. All
// day-bucketed maps key on this form.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SafeFloat converts a raw cell to a float, returning nil for blank or
// unparseable values. Dirty rows degrade to missing fields, never errors.
func SafeFloat(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

// SafeInt converts a raw cell to an int, accepting float-formatted input
// ("12.0" parses as 12).
func SafeInt(value string) *int {
	f := SafeFloat(value)
	if f == nil {
		return nil
	}
	i := int(*f)
	return &i
}
