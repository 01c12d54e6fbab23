package research

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tmc/langchaingo/tools/duckduckgo"
)

// DuckDuckGoSource searches the web without an API key. The underlying
// tool returns a flat text blob, so hits come back as one aggregate item
// whose snippet carries the result text for the summarization step.
type DuckDuckGoSource struct {
	tool *duckduckgo.Tool
}

func NewDuckDuckGoSource(maxResults int) (*DuckDuckGoSource, error) {
	ddg, err := duckduckgo.New(maxResults, duckduckgo.DefaultUserAgent)
	if err != nil {
		return nil, err
	}
	return &DuckDuckGoSource{tool: ddg}, nil
}

func (d *DuckDuckGoSource) Name() string { return "duckduckgo" }

func (d *DuckDuckGoSource) Search(ctx context.Context, query string, limit int) ([]Item, error) {
	res, err := d.tool.Call(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search failed: %w", err)
	}
	res = strings.TrimSpace(res)
	if res == "" {
		return nil, nil
	}
	if len(res) > 4000 {
		res = res[:4000]
	}
	return []Item{{
		Title:   fmt.Sprintf("Web results for %q", query),
		URL:     "https://duckduckgo.com/?q=" + url.QueryEscape(query),
		Snippet: res,
		Source:  "duckduckgo",
	}}, nil
}
