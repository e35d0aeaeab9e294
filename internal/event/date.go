package event

import (
	"strings"
	"time"
)

// dateFormats are the EventDate layouts the Web API has been seen to emit.
var dateFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// timeFormats are the EventTime layouts. EventTime is free text in
// Legistar and occasionally empty or junk.
var timeFormats = []string{
	"3:04 PM",
	"3:04PM",
	"15:04",
}

// ParseStart combines the Web API's EventDate and EventTime fields into a
// localized start time. An empty or unparseable time component falls back
// to midnight of the event date; an unparseable date yields the zero time.
func ParseStart(dateStr, timeStr string, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}

	var day time.Time
	var ok bool
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, strings.TrimSpace(dateStr)); err == nil {
			day, ok = t, true
			break
		}
	}
	if !ok {
		return time.Time{}
	}

	hour, minute := 0, 0
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, strings.ToUpper(strings.TrimSpace(timeStr))); err == nil {
			hour, minute = t.Hour(), t.Minute()
			break
		}
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
}

// IsUpcoming reports whether the event starts in the future. Events with
// an unknown start time are treated as upcoming (safer default).
func (e *Event) IsUpcoming() bool {
	if e.StartTime.IsZero() {
		return true
	}
	return e.StartTime.After(time.Now())
}
