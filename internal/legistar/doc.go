// Package legistar talks to the Legistar platform for a single deployment
// (a "client" in Legistar terms, e.g. "olympia").
//
// Two surfaces are exposed: the Legistar Web API for paginated, date-filtered
// event listings, and a best-effort scrape of the legacy Video.aspx player
// page that extracts playable video and caption URLs.
package legistar
