// Package event defines the ingestion model for scraped municipal meeting
// events and snapshot-based change detection across scraper runs.
//
// Each event is assigned a deterministic SHA1-based ID from its client,
// Legistar event id and start time, so the same meeting maps to the same
// ID on every run.
package event
