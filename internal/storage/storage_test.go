package storage

import (
	"testing"
	"time"

	"github.com/civicstream/olympia-events/internal/event"
)

func TestSnapshotRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	events := []*event.Event{
		{ID: "a", Client: "olympia", Body: "City Council", StartTime: time.Date(2024, 3, 19, 17, 30, 0, 0, time.UTC)},
		{ID: "b", Client: "olympia", Body: "Planning Commission", StartTime: time.Date(2024, 3, 20, 18, 0, 0, 0, time.UTC)},
	}

	if err := store.CreateSnapshotFromEvents(events, "olympia"); err != nil {
		t.Fatalf("CreateSnapshotFromEvents failed: %v", err)
	}

	loaded, err := store.LoadSnapshot("olympia")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if len(loaded.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(loaded.Events))
	}
	if loaded.Events["a"].Body != "City Council" {
		t.Errorf("unexpected body: %q", loaded.Events["a"].Body)
	}
	if loaded.UpdatedAt == "" {
		t.Error("expected UpdatedAt to be set on save")
	}
}

func TestLoadMissingSnapshot(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	snap, err := store.LoadSnapshot("olympia")
	if err != nil {
		t.Fatalf("expected empty snapshot for missing file, got error: %v", err)
	}
	if len(snap.Events) != 0 {
		t.Errorf("expected empty snapshot, got %d events", len(snap.Events))
	}
}

func TestSnapshotsAreSeparatedByClient(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := store.CreateSnapshotFromEvents([]*event.Event{{ID: "a", Client: "olympia"}}, "olympia"); err != nil {
		t.Fatalf("saving olympia snapshot: %v", err)
	}

	other, err := store.LoadSnapshot("seattle")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(other.Events) != 0 {
		t.Errorf("expected seattle snapshot to be empty, got %d events", len(other.Events))
	}
}
