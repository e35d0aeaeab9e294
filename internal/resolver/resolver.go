package resolver

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/civicstream/olympia-events/internal/legistar"
)

// Status classifies a resolution outcome.
type Status int

const (
	// StatusOK means one or more URI pairs were found.
	StatusOK Status = iota
	// StatusUnrecognizedPattern means the event record or detail page did
	// not match the expected shape. Recoverable only by a human updating
	// the heuristic; callers skip the event.
	StatusUnrecognizedPattern
	// StatusResourceAccess means a fetch failed at the transport layer.
	// Transient; callers may retry the event later.
	StatusResourceAccess
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnrecognizedPattern:
		return "unrecognized_pattern"
	case StatusResourceAccess:
		return "resource_access"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of resolving one event. URIs is populated only
// when Status is StatusOK.
type Result struct {
	Status Status
	URIs   []legistar.ContentURI
}

// videoAnchorID matches the ASP.NET auto-generated id of the video anchor
// on the legacy meeting detail page, e.g. "ctl00_ContentPlaceHolder1_hypVideo".
var videoAnchorID = regexp.MustCompile(`ct.*_ContentPlaceHolder.*_hypVideo`)

// ContentURIsFunc extracts URI pairs from a player page. Matches the
// signature of (*legistar.Client).ContentURIs.
type ContentURIsFunc func(videoPageURL, client string) ([]legistar.ContentURI, error)

// Resolver resolves content URIs for events of one Legistar deployment.
// It holds no mutable state; a single Resolver is safe for concurrent use.
type Resolver struct {
	httpClient *http.Client
	delegate   ContentURIsFunc
}

// New creates a Resolver that shares the Legistar client's HTTP client and
// delegates player-page extraction to it.
func New(lc *legistar.Client) *Resolver {
	return &Resolver{
		httpClient: lc.HTTPClient(),
		delegate:   lc.ContentURIs,
	}
}

// NewWithDelegate creates a Resolver with an explicit HTTP client and
// player-page extraction function.
func NewWithDelegate(hc *http.Client, delegate ContentURIsFunc) *Resolver {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Resolver{httpClient: hc, delegate: delegate}
}

// Resolve determines the content URIs for one event.
//
// The two expected failure modes (unrecognized structure, transport
// failure) come back as Result statuses with a nil error so batch callers
// can continue past individual events. A *SiteDownError or *DriftError is
// returned as the error instead when the condition needs human attention.
func (r *Resolver) Resolve(client string, ev *legistar.Event) (Result, error) {
	// A direct video URL in the API payload wins; no network access.
	if direct := normalizeWhitespace(ev.VideoPath); direct != "" {
		return Result{
			Status: StatusOK,
			URIs:   []legistar.ContentURI{{VideoURI: direct}},
		}, nil
	}

	detailURL := strings.TrimSpace(ev.InSiteURL)
	if detailURL == "" {
		return Result{Status: StatusUnrecognizedPattern}, nil
	}

	doc, err := r.fetchDetailPage(detailURL)
	if err != nil {
		if _, ok := err.(*SiteDownError); ok {
			return Result{}, err
		}
		return Result{Status: StatusResourceAccess}, nil
	}

	videoPageURL, ok := videoPageURLFromDetail(doc, client)
	if !ok {
		return Result{Status: StatusUnrecognizedPattern}, nil
	}

	uris, err := r.delegate(videoPageURL, client)
	if err != nil {
		return Result{Status: StatusResourceAccess}, nil
	}
	if len(uris) == 0 {
		return Result{}, &DriftError{URL: videoPageURL}
	}

	return Result{Status: StatusOK, URIs: uris}, nil
}

// fetchDetailPage fetches and parses the legacy meeting detail page,
// checking the page text for the remote site's own error banner.
func (r *Resolver) fetchDetailPage(detailURL string) (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, detailURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching detail page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detail page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing detail page: %w", err)
	}

	if snippet, down := siteDownSnippet(doc); down {
		return nil, &SiteDownError{Host: hostOf(detailURL), Snippet: snippet}
	}

	return doc, nil
}

// videoPageURLFromDetail locates the video anchor on the detail page and
// builds the fully-qualified player page URL from its onclick handler.
func videoPageURLFromDetail(doc *goquery.Document, client string) (string, bool) {
	var token string
	var found bool

	doc.Find("a[onclick]").EachWithBreak(func(i int, a *goquery.Selection) bool {
		id, ok := a.Attr("id")
		if !ok || !videoAnchorID.MatchString(id) {
			return true
		}
		onclick, _ := a.Attr("onclick")
		token, found = onclickPath(onclick)
		return !found
	})

	if !found {
		return "", false
	}
	return fmt.Sprintf("https://%s.legistar.com/%s", client, token), true
}

// onclickPath extracts the first single-quoted string literal from a
// window.open-style onclick handler: the text between the first ' and the
// following ',. This is the one fragile string match in the pipeline;
// detail-page template changes land here.
func onclickPath(onclick string) (string, bool) {
	start := strings.Index(onclick, "'")
	if start < 0 {
		return "", false
	}
	end := strings.Index(onclick, "',")
	if end <= start+1 {
		return "", false
	}
	return onclick[start+1 : end], true
}

// siteDownSnippet reports whether the page text carries the remote site's
// error banner, returning a normalized snippet for diagnostics.
func siteDownSnippet(doc *goquery.Document) (string, bool) {
	text := normalizeWhitespace(doc.Text())
	if !strings.Contains(strings.ToLower(text), "server error") {
		return "", false
	}
	const maxSnippet = 160
	if len(text) > maxSnippet {
		text = text[:maxSnippet]
	}
	return text, true
}

// normalizeWhitespace trims and collapses runs of whitespace to single spaces.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Host
}
