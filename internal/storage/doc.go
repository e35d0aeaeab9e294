// Package storage persists event snapshots as JSON files in a data
// directory, one snapshot per Legistar client.
package storage
