package utils

import (
	"fmt"
	"strings"
	"time"
)

// ISOLayout is the millisecond UTC form timestamps are written in.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// layouts accepted for ISO 8601 input, zone less forms are read as UTC
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseISO8601 parses the common ISO 8601 calendar date and date time
// forms.
func ParseISO8601(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO 8601 date: %q", s)
}

// FormatISO8601 formats t in UTC with millisecond precision.
func FormatISO8601(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}
