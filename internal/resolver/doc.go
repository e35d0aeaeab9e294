// Package resolver determines the video and caption URLs for a single
// Legistar event.
//
// Most events carry a direct video URL in the API payload and resolve
// without network access. Older events only link a legacy meeting detail
// page; for those the resolver scrapes the detail page for the player
// link hidden in an anchor's onclick handler, then extracts URIs from the
// player page it points to. The scrape is a best-effort match against one
// legacy page template and is expected to need human attention when the
// template changes; the error taxonomy below keeps that case loud.
package resolver
