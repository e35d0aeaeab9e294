package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/civicstream/olympia-events/internal/event"
)

func sampleResult() *OutputResult {
	start := time.Date(2024, 3, 19, 17, 30, 0, 0, time.UTC)
	evt := &event.Event{
		ID:        "abc123",
		Client:    "olympia",
		Body:      "City Council",
		StartTime: start,
		Location:  "Council Chambers",
		Sessions:  []event.Session{{VideoURI: "https://archive.example.com/meeting.mp4"}},
	}
	return &OutputResult{
		CheckedAt:  time.Now().UTC(),
		Client:     "olympia",
		NewEvents:  []*event.Event{evt},
		EventCount: 1,
		ByBody:     map[string][]*event.Event{"City Council": {evt}},
	}
}

func TestWriteOutputText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, false); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"City Council (1 new):", "NEW:", "Video: https://archive.example.com/meeting.mp4", "Total: 1 new events"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected text output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteOutputTextVerbose(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, true); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "ID: abc123") || !strings.Contains(out, "Location: Council Chambers") {
		t.Errorf("expected verbose details in output, got:\n%s", out)
	}
}

func TestWriteOutputTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	result := &OutputResult{CheckedAt: time.Now().UTC(), Client: "olympia"}
	if err := WriteOutput(&buf, result, FormatText, false); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No new events found.") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestWriteOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatJSON, false); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	var decoded OutputResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.EventCount != 1 || len(decoded.NewEvents) != 1 {
		t.Errorf("unexpected decoded result: %+v", decoded)
	}
	if decoded.NewEvents[0].Sessions[0].VideoURI != "https://archive.example.com/meeting.mp4" {
		t.Errorf("unexpected video URI: %q", decoded.NewEvents[0].Sessions[0].VideoURI)
	}
}

func TestWriteOutputICS(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatICS, false); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "SUMMARY:City Council") {
		t.Errorf("expected ICS output, got:\n%s", out)
	}
}

func TestWriteOutputUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), OutputFormat("xml"), false); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestDateRange(t *testing.T) {
	t.Run("explicit range", func(t *testing.T) {
		from, to, err := dateRange("2024-03-01", "2024-04-01")
		if err != nil {
			t.Fatalf("dateRange failed: %v", err)
		}
		if from.Format("2006-01-02") != "2024-03-01" || to.Format("2006-01-02") != "2024-04-01" {
			t.Errorf("unexpected range: %v .. %v", from, to)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		from, to, err := dateRange("", "")
		if err != nil {
			t.Fatalf("dateRange failed: %v", err)
		}
		if !to.After(from) {
			t.Errorf("expected default window to be forward, got %v .. %v", from, to)
		}
	})

	t.Run("invalid from", func(t *testing.T) {
		if _, _, err := dateRange("03/01/2024", ""); err == nil {
			t.Fatal("expected error for invalid --from")
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		if _, _, err := dateRange("2024-04-01", "2024-03-01"); err == nil {
			t.Fatal("expected error for inverted range")
		}
	})
}
