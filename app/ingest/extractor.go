package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-shiori/go-readability"

	"aipulse/app/feed"
)

// minContentLength is the stripped-content size below which the article page
// is fetched for a readability pass.
const minContentLength = 500

// Extractor fetches article pages and swaps in readability-extracted content
// when the feed entry only carried a stub. Strictly best-effort: on any
// failure the feed-provided content stands.
type Extractor struct {
	client    HTTPClient
	userAgent string
	timeout   time.Duration
}

func NewExtractor(client HTTPClient, userAgent string, timeout time.Duration) *Extractor {
	return &Extractor{
		client:    client,
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// Enrich replaces the article content with the extracted page content and
// recomputes the read time. Articles with enough feed-provided content are
// left untouched.
func (e *Extractor) Enrich(ctx context.Context, article *feed.Article) {
	if article.URL == "" {
		return
	}
	if len(article.Content) >= minContentLength {
		return
	}

	content, err := e.extract(ctx, article.URL)
	if err != nil {
		slog.Debug("Content extraction failed", "url", article.URL, "error", err)
		return
	}
	if content == "" {
		return
	}

	article.Content = content
	article.ReadTime = feed.EstimateReadTime(content)
}

func (e *Extractor) extract(ctx context.Context, pageURL string) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse page URL: %w", err)
	}

	page, err := readability.FromReader(resp.Body, parsedURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}
	if page.Content == "" {
		return "", fmt.Errorf("no content extracted from page")
	}

	return page.Content, nil
}
