package event

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"

	"github.com/civicstream/olympia-events/internal/legistar"
)

// Session is one recorded sitting of a meeting: a playable video and its
// optional caption file.
type Session struct {
	VideoURI   string `json:"video_uri"`
	CaptionURI string `json:"caption_uri,omitempty"`
}

// Event is one municipal meeting event, ready for ingestion.
type Event struct {
	ID         string    `json:"id"`
	Client     string    `json:"client"`
	Body       string    `json:"body"`
	StartTime  time.Time `json:"start_time"`
	Location   string    `json:"location,omitempty"`
	Comment    string    `json:"comment,omitempty"`
	AgendaURI  string    `json:"agenda_uri,omitempty"`
	MinutesURI string    `json:"minutes_uri,omitempty"`
	Sessions   []Session `json:"sessions,omitempty"`
	SourceURL  string    `json:"source_url,omitempty"`
	FirstSeen  time.Time `json:"first_seen"`
}

// GenerateID creates a deterministic ID for an event.
func GenerateID(client string, legistarID int, start time.Time) string {
	h := sha1.New()
	fmt.Fprintf(h, "%s|%d|%s", client, legistarID, start.UTC().Format(time.RFC3339))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// FromLegistar converts a Legistar API event row plus its resolved content
// URIs into an ingestion event, localizing the start time to loc.
func FromLegistar(client string, le *legistar.Event, uris []legistar.ContentURI, loc *time.Location) *Event {
	start := ParseStart(le.Date, le.Time, loc)

	evt := &Event{
		ID:         GenerateID(client, le.ID, start),
		Client:     client,
		Body:       strings.TrimSpace(le.BodyName),
		StartTime:  start,
		Location:   strings.TrimSpace(le.Location),
		Comment:    strings.TrimSpace(le.Comment),
		AgendaURI:  strings.TrimSpace(le.AgendaFile),
		MinutesURI: strings.TrimSpace(le.MinutesFile),
		SourceURL:  strings.TrimSpace(le.InSiteURL),
		FirstSeen:  time.Now().UTC(),
	}

	for _, uri := range uris {
		evt.Sessions = append(evt.Sessions, Session{
			VideoURI:   uri.VideoURI,
			CaptionURI: uri.CaptionURI,
		})
	}

	return evt
}

// HasVideo reports whether any session carries a video URI.
func (e *Event) HasVideo() bool {
	for _, s := range e.Sessions {
		if s.VideoURI != "" {
			return true
		}
	}
	return false
}
