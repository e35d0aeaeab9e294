package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/civicstream/olympia-events/internal/calendar"
	"github.com/civicstream/olympia-events/internal/event"
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatICS  OutputFormat = "ics"
)

// OutputResult contains data to be output.
type OutputResult struct {
	CheckedAt  time.Time                 `json:"checked_at"`
	Client     string                    `json:"client"`
	From       time.Time                 `json:"from"`
	To         time.Time                 `json:"to"`
	NewEvents  []*event.Event            `json:"new_events"`
	EventCount int                       `json:"event_count"`
	ByBody     map[string][]*event.Event `json:"by_body,omitempty"`
}

// WriteOutput writes the result in the specified format.
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatICS:
		return writeICS(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeICS(w io.Writer, result *OutputResult) error {
	_, err := io.WriteString(w, calendar.GenerateCalendar(result.NewEvents))
	return err
}

// writeText outputs results as human-readable text, grouped by meeting body.
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.EventCount == 0 {
		fmt.Fprintln(w, "No new events found.")
		return nil
	}

	bodies := make([]string, 0, len(result.ByBody))
	for body := range result.ByBody {
		bodies = append(bodies, body)
	}
	sort.Strings(bodies)

	for _, body := range bodies {
		events := result.ByBody[body]
		if len(events) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s (%d new):\n", body, len(events))
		for _, evt := range events {
			when := "date unknown"
			if !evt.StartTime.IsZero() {
				when = evt.StartTime.Format("Mon Jan 2 2006 3:04 PM")
			}
			fmt.Fprintf(w, "  NEW: %s\n", when)
			if evt.HasVideo() {
				fmt.Fprintf(w, "       Video: %s\n", evt.Sessions[0].VideoURI)
			}
			if verbose {
				fmt.Fprintf(w, "       ID: %s\n", evt.ID)
				if evt.Location != "" {
					fmt.Fprintf(w, "       Location: %s\n", evt.Location)
				}
				if evt.AgendaURI != "" {
					fmt.Fprintf(w, "       Agenda: %s\n", evt.AgendaURI)
				}
			}
		}
	}
	fmt.Fprintf(w, "\nTotal: %d new events across %d bodies\n", result.EventCount, len(result.ByBody))

	return nil
}
