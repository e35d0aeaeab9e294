package resolver

import "fmt"

// SiteDownError reports that the deployment's legacy site answered with an
// error page instead of meeting content. This is an infrastructure outage
// on the remote end, not a scraping mismatch, so it is raised rather than
// returned as a status: callers should alert, not retry-and-skip.
type SiteDownError struct {
	Host    string
	Snippet string
}

func (e *SiteDownError) Error() string {
	return fmt.Sprintf("legistar site %s appears to be down: %q", e.Host, e.Snippet)
}

// DriftError reports that the player page was fetched successfully but
// yielded no URIs. The page template has drifted from what the extraction
// heuristic expects, which only a code change can fix; swallowing it would
// hide the breakage, so it is raised.
type DriftError struct {
	URL string
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("no content URIs recognized on video page %s: extraction heuristic needs review", e.URL)
}
