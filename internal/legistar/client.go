package legistar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// WebAPIBase is the shared Legistar Web API host for all clients.
	WebAPIBase = "https://webapi.legistar.com/v1"

	// PageSize is the maximum number of rows the Web API returns per page.
	PageSize = 1000

	DefaultUserAgent = "olympia-events/1.0 (github.com/civicstream/olympia-events)"
	DefaultTimeout   = 30 * time.Second
)

// Event is one event row as returned by the Legistar Web API. Only the
// fields this pipeline reads are modeled; the API returns more.
type Event struct {
	ID           int    `json:"EventId"`
	GUID         string `json:"EventGuid"`
	BodyID       int    `json:"EventBodyId"`
	BodyName     string `json:"EventBodyName"`
	Date         string `json:"EventDate"`      // "2024-03-19T00:00:00"
	Time         string `json:"EventTime"`      // "5:30 PM", may be empty
	VideoPath    string `json:"EventVideoPath"` // direct video URL, often empty
	InSiteURL    string `json:"EventInSiteURL"` // legacy meeting detail page
	AgendaFile   string `json:"EventAgendaFile"`
	MinutesFile  string `json:"EventMinutesFile"`
	Location     string `json:"EventLocation"`
	Comment      string `json:"EventComment"`
	LastModified string `json:"EventLastModifiedUtc"`
}

// ContentURI pairs a playable video URL with its optional caption file URL.
type ContentURI struct {
	VideoURI   string `json:"video_uri"`
	CaptionURI string `json:"caption_uri,omitempty"`
}

// Client fetches events for one Legistar deployment.
type Client struct {
	client     string
	apiBase    string
	httpClient *http.Client
	userAgent  string
	maxRetries uint64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAPIBase overrides the Web API base URL.
func WithAPIBase(base string) Option {
	return func(c *Client) { c.apiBase = strings.TrimRight(base, "/") }
}

// WithUserAgent overrides the User-Agent header sent on API requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client for the given Legistar deployment name.
func NewClient(client string, opts ...Option) *Client {
	c := &Client{
		client:  client,
		apiBase: WebAPIBase,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent:  DefaultUserAgent,
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the deployment name this client targets.
func (c *Client) Name() string {
	return c.client
}

// HTTPClient returns the underlying HTTP client, shared with collaborators
// that fetch pages from the same deployment.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// ListEvents returns all events whose EventDate falls in [begin, end),
// ordered by date. Pagination is followed until a short page.
func (c *Client) ListEvents(ctx context.Context, begin, end time.Time) ([]*Event, error) {
	var all []*Event

	for skip := 0; ; skip += PageSize {
		page, err := c.listPage(ctx, begin, end, skip)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < PageSize {
			break
		}
	}

	return all, nil
}

// listPage fetches a single page of events, retrying transient failures
// with exponential backoff.
func (c *Client) listPage(ctx context.Context, begin, end time.Time, skip int) ([]*Event, error) {
	reqURL := c.eventsURL(begin, end, skip)

	var page []*Event
	op := func() error {
		events, err := c.fetchEvents(ctx, reqURL)
		if err != nil {
			return err
		}
		page = events
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries),
		ctx,
	)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return page, nil
}

// eventsURL builds the OData query for one page of the events endpoint.
func (c *Client) eventsURL(begin, end time.Time, skip int) string {
	filter := fmt.Sprintf(
		"EventDate ge datetime'%s' and EventDate lt datetime'%s'",
		begin.Format("2006-01-02T15:04:05"),
		end.Format("2006-01-02T15:04:05"),
	)

	params := url.Values{}
	params.Set("$filter", filter)
	params.Set("$orderby", "EventDate asc")
	params.Set("$top", fmt.Sprintf("%d", PageSize))
	if skip > 0 {
		params.Set("$skip", fmt.Sprintf("%d", skip))
	}

	return fmt.Sprintf("%s/%s/events?%s", c.apiBase, c.client, params.Encode())
}

func (c *Client) fetchEvents(ctx context.Context, reqURL string) ([]*Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("events API returned status %d", resp.StatusCode)
	default:
		// 4xx will not improve with retries
		return nil, backoff.Permanent(fmt.Errorf("events API returned status %d", resp.StatusCode))
	}

	var events []*Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("parsing events response: %w", err))
	}
	return events, nil
}
