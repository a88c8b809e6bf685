package classify

import (
	"strings"
	"time"

	"matchday/internal/constants"
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// FormatTime renders a UTC timestamp from the API in loc, e.g.
// "February 01, 2025, 11:00 AM PST". Empty or unreadable input yields
// constants.TimeUnavailable.
func FormatTime(raw string, loc *time.Location) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return constants.TimeUnavailable
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, raw, time.UTC)
		if err == nil {
			return t.In(loc).Format(constants.TimeLayout)
		}
	}
	return constants.TimeUnavailable
}
