package research

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

// Fetcher retrieves a web page and extracts its main content as clean
// text, for enriching research material beyond search snippets.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxChars  int
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		maxChars:  20000,
	}
}

// Extract fetches the URL and returns the readable article text, stripped
// of any markup.
func (f *Fetcher) Extract(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status code %d", resp.StatusCode)
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}

	article, err := readability.FromReader(resp.Body, parsedURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse article: %w", err)
	}

	sanitized := bluemonday.StrictPolicy().Sanitize(article.TextContent)
	if len(sanitized) > f.maxChars {
		sanitized = sanitized[:f.maxChars] + "\n... (content truncated) ..."
	}

	out := fmt.Sprintf("TITLE: %s\n", article.Title)
	if article.Excerpt != "" {
		out += fmt.Sprintf("EXCERPT: %s\n", article.Excerpt)
	}
	out += "\n" + sanitized
	return out, nil
}
