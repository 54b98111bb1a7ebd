package parse

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical wire and storage form of a calendar date.
const DateLayout = "2006-01-02"

// layouts accepted for a move-in date, most specific first. Browsers' date
// inputs send DateLayout; some clients send a full timestamp.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DateLayout,
}

// Date parses raw as a calendar date in loc and returns midnight of that day.
// Timestamps carrying an offset are converted to loc before truncation.
func Date(raw string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		t = t.In(loc)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %q", raw)
}

// Today returns midnight of now's calendar day in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	n := now.In(loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
}
