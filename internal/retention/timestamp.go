package retention

import (
	"strings"
	"time"
)

// Accepted timestamp forms. Values without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp. A trailing "Z" is accepted
// as UTC. It reports false for empty or malformed input instead of failing.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// sortTime returns the zero time for unparseable values so that they rank
// before every real timestamp.
func sortTime(s string) time.Time {
	t, _ := ParseTimestamp(s)
	return t
}
