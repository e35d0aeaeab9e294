package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/civicstream/olympia-events/internal/event"
	"github.com/civicstream/olympia-events/internal/legistar"
	"github.com/civicstream/olympia-events/internal/logger"
	"github.com/civicstream/olympia-events/internal/resolver"
)

// Gatherer fetches and assembles ingestion events for one deployment.
type Gatherer struct {
	client      *legistar.Client
	resolver    *resolver.Resolver
	loc         *time.Location
	skipContent bool
}

// New creates a Gatherer around a Legistar client. Start times are
// localized to loc.
func New(lc *legistar.Client, loc *time.Location) *Gatherer {
	return &Gatherer{
		client:   lc,
		resolver: resolver.New(lc),
		loc:      loc,
	}
}

// SkipContent disables per-event content URI resolution. Listing-only runs
// are useful when the legacy site is flaky and only the schedule matters.
func (g *Gatherer) SkipContent(skip bool) {
	g.skipContent = skip
}

// GetEvents returns all ingestion events in [from, to), ordered by date.
//
// The two expected per-event resolution failures are logged and the event
// is kept without sessions; an escalated resolver failure (site outage,
// template drift) aborts the run.
func (g *Gatherer) GetEvents(ctx context.Context, from, to time.Time) ([]*event.Event, error) {
	start := time.Now()
	rows, err := g.client.ListEvents(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	logger.RecordTiming("legistar.list", time.Since(start))
	logger.Info("fetched event rows", logger.Fields{
		"client": g.client.Name(),
		"count":  len(rows),
		"from":   from.Format("2006-01-02"),
		"to":     to.Format("2006-01-02"),
	})

	events := make([]*event.Event, 0, len(rows))
	for _, row := range rows {
		uris, err := g.resolveRow(row)
		if err != nil {
			return nil, err
		}
		events = append(events, event.FromLegistar(g.client.Name(), row, uris, g.loc))
	}

	return events, nil
}

func (g *Gatherer) resolveRow(row *legistar.Event) ([]legistar.ContentURI, error) {
	if g.skipContent {
		return nil, nil
	}

	res, err := g.resolver.Resolve(g.client.Name(), row)
	if err != nil {
		return nil, fmt.Errorf("resolving content URIs for event %d: %w", row.ID, err)
	}

	switch res.Status {
	case resolver.StatusOK:
		logger.IncrCounter("resolve.ok")
		return res.URIs, nil
	case resolver.StatusResourceAccess:
		logger.IncrCounter("resolve.resource_access")
		logger.Warn("content fetch failed, keeping event without video", logger.Fields{
			"event_id": row.ID,
			"body":     row.BodyName,
		})
	case resolver.StatusUnrecognizedPattern:
		logger.IncrCounter("resolve.unrecognized")
		logger.Debug("no recognizable video reference", logger.Fields{
			"event_id": row.ID,
			"body":     row.BodyName,
		})
	}
	return nil, nil
}
