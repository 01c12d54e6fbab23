package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const serperEndpoint = "https://google.serper.dev/search"

// SerperSource queries Google through the serper.dev API. Without an API
// key the source reports ErrUnavailable and the searcher skips it.
type SerperSource struct {
	apiKey string
	client *http.Client
}

func NewSerperSource(apiKey string, timeout time.Duration) *SerperSource {
	return &SerperSource{
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *SerperSource) Name() string { return "google" }

func (s *SerperSource) Search(ctx context.Context, query string, limit int) ([]Item, error) {
	if s.apiKey == "" {
		return nil, ErrUnavailable
	}

	payload, err := json.Marshal(map[string]any{
		"q":   query,
		"num": limit,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper returned status %d", resp.StatusCode)
	}

	var body struct {
		Organic []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode serper response: %w", err)
	}

	items := make([]Item, 0, len(body.Organic))
	for _, o := range body.Organic {
		items = append(items, Item{
			Title:   o.Title,
			URL:     o.Link,
			Snippet: o.Snippet,
			Source:  "google",
		})
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}
