package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/civicstream/olympia-events/internal/legistar"
)

func TestGetEvents(t *testing.T) {
	// One event with a direct video path, one with nothing to resolve.
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `[
			{"EventId": 1, "EventBodyName": "City Council", "EventDate": "2024-03-19T00:00:00",
			 "EventTime": "5:30 PM", "EventVideoPath": "https://archive.example.com/meeting.mp4"},
			{"EventId": 2, "EventBodyName": "Planning Commission", "EventDate": "2024-03-20T00:00:00",
			 "EventTime": "6:00 PM"}
		]`)
	}))
	defer apiServer.Close()

	lc := legistar.NewClient("olympia",
		legistar.WithAPIBase(apiServer.URL),
		legistar.WithHTTPClient(apiServer.Client()),
	)

	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("loading location: %v", err)
	}

	g := New(lc, loc)
	events, err := g.GetEvents(context.Background(), time.Now(), time.Now().AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	if !events[0].HasVideo() {
		t.Error("expected first event to carry its direct video URI")
	}
	if events[0].Sessions[0].VideoURI != "https://archive.example.com/meeting.mp4" {
		t.Errorf("unexpected video URI: %q", events[0].Sessions[0].VideoURI)
	}

	// No video path and no detail page: kept, without sessions.
	if events[1].HasVideo() {
		t.Error("expected second event to have no video")
	}
	if events[1].Body != "Planning Commission" {
		t.Errorf("unexpected body: %q", events[1].Body)
	}

	want := time.Date(2024, 3, 19, 17, 30, 0, 0, loc)
	if !events[0].StartTime.Equal(want) {
		t.Errorf("expected localized start %v, got %v", want, events[0].StartTime)
	}
}

func TestGetEventsSkipContent(t *testing.T) {
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `[{"EventId": 1, "EventBodyName": "City Council", "EventDate": "2024-03-19T00:00:00",
			"EventVideoPath": "https://archive.example.com/meeting.mp4"}]`)
	}))
	defer apiServer.Close()

	lc := legistar.NewClient("olympia",
		legistar.WithAPIBase(apiServer.URL),
		legistar.WithHTTPClient(apiServer.Client()),
	)

	g := New(lc, time.UTC)
	g.SkipContent(true)

	events, err := g.GetEvents(context.Background(), time.Now(), time.Now().AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].HasVideo() {
		t.Error("expected no sessions when content resolution is skipped")
	}
}
