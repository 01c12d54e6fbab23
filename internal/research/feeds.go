package research

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
)

const arxivEndpoint = "http://export.arxiv.org/api/query"

// ArxivSource searches academic papers via the arXiv Atom API.
type ArxivSource struct {
	parser  *gofeed.Parser
	timeout time.Duration
}

func NewArxivSource(timeout time.Duration) *ArxivSource {
	return &ArxivSource{parser: gofeed.NewParser(), timeout: timeout}
}

func (a *ArxivSource) Name() string { return "arxiv" }

func (a *ArxivSource) Search(ctx context.Context, query string, limit int) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("search_query", fmt.Sprintf("all:%q", query))
	q.Set("start", "0")
	q.Set("max_results", fmt.Sprintf("%d", limit))
	q.Set("sortBy", "submittedDate")
	q.Set("sortOrder", "descending")

	feed, err := a.parser.ParseURLWithContext(arxivEndpoint+"?"+q.Encode(), ctx)
	if err != nil {
		return nil, fmt.Errorf("arxiv search failed: %w", err)
	}

	items := make([]Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		item := Item{
			Title:   strings.TrimSpace(entry.Title),
			URL:     entry.Link,
			Snippet: truncate(strings.TrimSpace(entry.Description), 200),
			Source:  "arxiv",
		}
		if entry.PublishedParsed != nil {
			item.Published = entry.PublishedParsed.Format("2006-01-02")
		}
		items = append(items, item)
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}

// BlogSource scans a fixed set of engineering RSS/Atom feeds for entries
// mentioning the query. Feeds are fetched concurrently; a feed that times
// out or fails to parse is dropped, never fatal.
type BlogSource struct {
	parser  *gofeed.Parser
	feeds   []string
	timeout time.Duration
}

var defaultBlogFeeds = []string{
	"https://martinfowler.com/feed.atom",
	"https://realpython.com/atom.xml",
	"https://go.dev/blog/feed.atom",
	"https://blog.rust-lang.org/feed.xml",
	"https://www.infoq.com/feed/",
}

func NewBlogSource(timeout time.Duration) *BlogSource {
	return &BlogSource{
		parser:  gofeed.NewParser(),
		feeds:   defaultBlogFeeds,
		timeout: timeout,
	}
}

func (b *BlogSource) Name() string { return "blog" }

func (b *BlogSource) Search(ctx context.Context, query string, limit int) ([]Item, error) {
	var (
		mu  sync.Mutex
		out []Item
		wg  sync.WaitGroup
	)

	needle := strings.ToLower(query)
	for _, feedURL := range b.feeds {
		wg.Add(1)
		go func(feedURL string) {
			defer wg.Done()

			fctx, cancel := context.WithTimeout(ctx, b.timeout)
			defer cancel()

			feed, err := b.parser.ParseURLWithContext(feedURL, fctx)
			if err != nil {
				return
			}
			for _, entry := range feed.Items {
				title := strings.ToLower(entry.Title)
				desc := strings.ToLower(entry.Description)
				if !strings.Contains(title, needle) && !strings.Contains(desc, needle) {
					continue
				}
				item := Item{
					Title:     strings.TrimSpace(entry.Title),
					URL:       entry.Link,
					Snippet:   truncate(strings.TrimSpace(entry.Description), 200),
					Source:    "blog",
					Published: entry.Published,
				}
				mu.Lock()
				out = append(out, item)
				mu.Unlock()
			}
		}(feedURL)
	}
	wg.Wait()

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
