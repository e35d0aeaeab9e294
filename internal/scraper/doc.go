// Package scraper gathers municipal meeting events for one Legistar
// deployment over a date range: it lists events from the Web API, resolves
// video/caption content URIs per event, and converts the rows into the
// ingestion model.
package scraper
