package timeutil

import (
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Display layouts for schedule labels, e.g. "Feb 5" and "3:04 PM".
const (
	DayLabelLayout   = "Jan 2"
	ClockLabelLayout = "3:04 PM"
)

// upstreamOffset is the fixed UTC+1 offset the schedule API reports local times in.
var upstreamOffset = time.FixedZone("UTC+1", 60*60)

var upstreamLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseUpstream interprets an upstream "YYYY-MM-DD HH:MM[:SS]" string as UTC+1.
func ParseUpstream(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range upstreamLayouts {
		if t, err := time.ParseInLocation(layout, value, upstreamOffset); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DayLabel formats t as a short month and day, e.g. "Feb 5".
func DayLabel(t time.Time) string {
	return t.Format(DayLabelLayout)
}

// ClockLabel formats t as an hour and two-digit minute, e.g. "3:04 PM".
func ClockLabel(t time.Time) string {
	return t.Format(ClockLabelLayout)
}

// ResolveLocation returns the named location, falling back to the process local zone.
func ResolveLocation(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.Local
}
