package event

import (
	"sort"
	"strings"
)

// Snapshot is the set of known events at a point in time, keyed by ID.
type Snapshot struct {
	Events    map[string]*Event `json:"events"`
	UpdatedAt string            `json:"updated_at"` // RFC3339
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Events: make(map[string]*Event),
	}
}

// CreateSnapshot builds a snapshot from a list of events.
func CreateSnapshot(events []*Event, updatedAt string) *Snapshot {
	snap := NewSnapshot()
	snap.UpdatedAt = updatedAt
	for _, evt := range events {
		snap.Events[evt.ID] = evt
	}
	return snap
}

// DiffResult contains the events not present in the previous snapshot.
type DiffResult struct {
	NewEvents []*Event
	ByBody    map[string][]*Event // new events grouped by meeting body
}

// Diff compares current events against a previous snapshot and returns the
// new ones. bodyFilter, when non-empty, keeps only events whose body name
// contains the filter (case-insensitive).
func Diff(previous *Snapshot, current []*Event, bodyFilter string) *DiffResult {
	result := &DiffResult{
		NewEvents: make([]*Event, 0),
		ByBody:    make(map[string][]*Event),
	}

	if previous == nil {
		previous = NewSnapshot()
	}

	filter := strings.ToLower(strings.TrimSpace(bodyFilter))

	for _, evt := range current {
		if filter != "" && !strings.Contains(strings.ToLower(evt.Body), filter) {
			continue
		}
		if _, exists := previous.Events[evt.ID]; exists {
			continue
		}
		result.NewEvents = append(result.NewEvents, evt)
		result.ByBody[evt.Body] = append(result.ByBody[evt.Body], evt)
	}

	sort.Slice(result.NewEvents, func(i, j int) bool {
		a, b := result.NewEvents[i], result.NewEvents[j]
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		return a.Body < b.Body
	})

	for body := range result.ByBody {
		events := result.ByBody[body]
		sort.Slice(events, func(i, j int) bool {
			return events[i].StartTime.Before(events[j].StartTime)
		})
	}

	return result
}
