package legistar

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Patterns for the jwplayer-style setup block embedded in the legacy
// Video.aspx page script. The player config lists playable sources and,
// separately, caption tracks.
var (
	sourceFilePattern  = regexp.MustCompile(`(?s)sources\s*:\s*\[(.*?)\]`)
	trackFilePattern   = regexp.MustCompile(`(?s)tracks\s*:\s*\[(.*?)\]`)
	fileEntryPattern   = regexp.MustCompile(`file\s*:\s*['"]([^'"]+)['"]`)
	captionKindPattern = regexp.MustCompile(`kind\s*:\s*['"]captions['"]`)
)

// ContentURIs fetches a Video.aspx-style player page and extracts the
// video/caption URL pairs it hosts.
//
// A transport failure (unreachable host, non-200 response) is returned as
// an error. A page whose structure is not recognized yields (nil, nil):
// the distinction matters to callers, which escalate an empty result on a
// page that was fetched successfully.
func (c *Client) ContentURIs(videoPageURL, client string) ([]ContentURI, error) {
	req, err := http.NewRequest(http.MethodGet, videoPageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching video page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing video page: %w", err)
	}

	return parseContentURIs(doc, videoPageURL), nil
}

// parseContentURIs extracts URI pairs from a parsed video page. Returns nil
// when neither a <video> element nor a player setup script is recognized.
func parseContentURIs(doc *goquery.Document, pageURL string) []ContentURI {
	if uris := videoElementURIs(doc, pageURL); len(uris) > 0 {
		return uris
	}
	return playerScriptURIs(doc, pageURL)
}

// videoElementURIs handles the modern template where the page carries a
// plain HTML5 <video> element.
func videoElementURIs(doc *goquery.Document, pageURL string) []ContentURI {
	var uris []ContentURI

	doc.Find("video").Each(func(i int, video *goquery.Selection) {
		src, ok := video.Find("source").First().Attr("src")
		if !ok || strings.TrimSpace(src) == "" {
			return
		}

		uri := ContentURI{VideoURI: absoluteURL(pageURL, src)}
		if track, ok := video.Find(`track[kind="captions"]`).First().Attr("src"); ok {
			uri.CaptionURI = absoluteURL(pageURL, track)
		}
		uris = append(uris, uri)
	})

	return uris
}

// playerScriptURIs handles the legacy template where the video is loaded by
// an inline jwplayer setup call.
func playerScriptURIs(doc *goquery.Document, pageURL string) []ContentURI {
	var videos, captions []string

	doc.Find("script").Each(func(i int, script *goquery.Selection) {
		text := script.Text()

		if m := sourceFilePattern.FindStringSubmatch(text); m != nil {
			for _, entry := range fileEntryPattern.FindAllStringSubmatch(m[1], -1) {
				videos = append(videos, absoluteURL(pageURL, entry[1]))
			}
		}
		if m := trackFilePattern.FindStringSubmatch(text); m != nil {
			if captionKindPattern.MatchString(m[1]) {
				for _, entry := range fileEntryPattern.FindAllStringSubmatch(m[1], -1) {
					captions = append(captions, absoluteURL(pageURL, entry[1]))
				}
			}
		}
	})

	if len(videos) == 0 {
		return nil
	}

	uris := make([]ContentURI, 0, len(videos))
	for i, v := range videos {
		uri := ContentURI{VideoURI: v}
		if i < len(captions) {
			uri.CaptionURI = captions[i]
		}
		uris = append(uris, uri)
	}
	return uris
}

// absoluteURL resolves a possibly relative href against the page it came from.
func absoluteURL(pageURL, href string) string {
	href = strings.TrimSpace(href)
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
