package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/civicstream/olympia-events/internal/event"
)

// DefaultDuration is used for DTEND since Legistar does not publish
// meeting end times.
const DefaultDuration = 2 * time.Hour

// GenerateCalendar generates an iCalendar document containing one VEVENT
// per meeting event.
func GenerateCalendar(events []*event.Event) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Civicstream//olympia-events//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	now := time.Now().UTC()
	for _, evt := range events {
		writeVEvent(&ics, evt, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeVEvent(ics *strings.Builder, evt *event.Event, stamp time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	fmt.Fprintf(ics, "UID:%s@%s.legistar.com\r\n", evt.ID, evt.Client)
	fmt.Fprintf(ics, "DTSTAMP:%s\r\n", formatICSTime(stamp))

	start := evt.StartTime
	if start.IsZero() {
		start = stamp
	}
	fmt.Fprintf(ics, "DTSTART:%s\r\n", formatICSTime(start))
	fmt.Fprintf(ics, "DTEND:%s\r\n", formatICSTime(start.Add(DefaultDuration)))

	fmt.Fprintf(ics, "SUMMARY:%s\r\n", escapeICS(evt.Body))

	var details []string
	if evt.Comment != "" {
		details = append(details, evt.Comment)
	}
	if evt.AgendaURI != "" {
		details = append(details, "Agenda: "+evt.AgendaURI)
	}
	for _, s := range evt.Sessions {
		if s.VideoURI != "" {
			details = append(details, "Video: "+s.VideoURI)
		}
	}
	if len(details) > 0 {
		fmt.Fprintf(ics, "DESCRIPTION:%s\r\n", escapeICS(strings.Join(details, "\n")))
	}

	if evt.Location != "" {
		fmt.Fprintf(ics, "LOCATION:%s\r\n", escapeICS(evt.Location))
	}
	if evt.SourceURL != "" {
		fmt.Fprintf(ics, "URL:%s\r\n", evt.SourceURL)
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string.
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters according to RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
