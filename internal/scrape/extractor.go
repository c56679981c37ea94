package scrape

// Package scrape fetches the course page and pulls out the embedded JSON
// payload the platform ships inside a script tag.

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// Selector for the embedded payload element
const (
	jsonScriptSelector = `[type="application/json"]`
)

// Extractor retrieves HTML pages and extracts their embedded JSON block
type Extractor struct {
	client    *http.Client
	userAgent string
	logger    *logrus.Logger
}

// NewExtractor creates a new page extractor
func NewExtractor(client *http.Client, userAgent string, logger *logrus.Logger) *Extractor {
	return &Extractor{
		client:    client,
		userAgent: userAgent,
		logger:    logger,
	}
}

// ExtractJSON fetches the page at url and returns the contents of the
// first element whose type attribute is application/json. The content
// is validated as JSON but returned undecoded.
func (e *Extractor) ExtractJSON(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Errorf("Network error while retrieving JSON from %s: %v", url, err)
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e.logger.Errorf("Unexpected status %d while retrieving JSON from %s", resp.StatusCode, url)
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		e.logger.Errorf("Failed to parse HTML from %s: %v", url, err)
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}

	sel := doc.Find(jsonScriptSelector).First()
	if sel.Length() == 0 {
		e.logger.Errorf("No JSON data found at URL: %s", url)
		return nil, fmt.Errorf("no embedded JSON found at %s", url)
	}

	raw := []byte(sel.Text())
	if !json.Valid(raw) {
		e.logger.Errorf("Malformed embedded JSON at URL: %s", url)
		return nil, fmt.Errorf("malformed embedded JSON at %s", url)
	}

	e.logger.Infof("Extracted embedded JSON from %s (%d bytes)", url, len(raw))
	return json.RawMessage(raw), nil
}
