package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable is the typed "this source cannot run" result. A source
// returns it when its API key or backing service is not configured; the
// searcher skips such sources instead of counting them as failures.
var ErrUnavailable = errors.New("research: source unavailable")

// Item is one search hit, normalized across sources.
type Item struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Snippet   string `json:"snippet"`
	Source    string `json:"source"`
	Published string `json:"published,omitempty"`
}

// Source is a single search backend. Implementations must be safe for
// concurrent use; the searcher queries all sources at once.
type Source interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Item, error)
}

// FixtureSource serves canned results without touching the network. It
// backs offline mode and is injected in place of the real sources, so the
// pipeline code itself never branches on an offline flag.
type FixtureSource struct{}

func NewFixtureSource() *FixtureSource {
	return &FixtureSource{}
}

func (f *FixtureSource) Name() string { return "fixture" }

func (f *FixtureSource) Search(_ context.Context, query string, limit int) ([]Item, error) {
	canned := map[string][]Item{
		"python": {
			{Title: "Python official documentation", URL: "https://docs.python.org/3/", Snippet: "Complete language reference and standard library documentation.", Source: "fixture"},
			{Title: "Python Tutorial - W3Schools", URL: "https://www.w3schools.com/python/", Snippet: "Beginner-friendly Python basics with runnable examples.", Source: "fixture"},
			{Title: "Real Python", URL: "https://realpython.com/", Snippet: "In-depth Python tutorials and practical project guides.", Source: "fixture"},
		},
		"javascript": {
			{Title: "JavaScript - MDN Web Docs", URL: "https://developer.mozilla.org/en-US/docs/Web/JavaScript", Snippet: "Mozilla's complete JavaScript documentation.", Source: "fixture"},
			{Title: "The Modern JavaScript Tutorial", URL: "https://javascript.info/", Snippet: "From the basics to advanced topics with simple explanations.", Source: "fixture"},
		},
		"react": {
			{Title: "React documentation", URL: "https://react.dev/", Snippet: "Official React docs: quick start, hooks, and thinking in React.", Source: "fixture"},
			{Title: "React Tutorial", URL: "https://react.dev/learn", Snippet: "Hands-on introduction building a small game step by step.", Source: "fixture"},
		},
		"go": {
			{Title: "A Tour of Go", URL: "https://go.dev/tour/", Snippet: "Interactive introduction to the Go programming language.", Source: "fixture"},
			{Title: "Effective Go", URL: "https://go.dev/doc/effective_go", Snippet: "Tips for writing clear, idiomatic Go code.", Source: "fixture"},
		},
	}

	q := strings.ToLower(query)
	for key, items := range canned {
		if strings.Contains(q, key) {
			if len(items) > limit {
				items = items[:limit]
			}
			return items, nil
		}
	}

	// Unknown technologies still get a generic placeholder so the pipeline
	// can run end to end offline.
	return []Item{
		{
			Title:   fmt.Sprintf("%s learning resources", query),
			URL:     "https://example.com/learning/" + strings.ReplaceAll(strings.ToLower(query), " ", "-"),
			Snippet: fmt.Sprintf("Curated tutorials and guides about %s.", query),
			Source:  "fixture",
		},
	}, nil
}
