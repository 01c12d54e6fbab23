package research

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rahul/gurukul/internal/observability"
	"github.com/rahul/gurukul/pkg/config"
)

// Searcher fans one query out to every configured source at once and
// merges whatever comes back. A failing or unavailable source only costs
// its own results; the merge succeeds as long as any source answers.
type Searcher struct {
	sources    []Source
	timeout    time.Duration
	maxResults int
	logger     *observability.Logger
}

func NewSearcher(cfg config.SearchConfig, logger *observability.Logger, sources ...Source) *Searcher {
	if logger == nil {
		logger = observability.NewQuietLogger()
	}
	return &Searcher{
		sources:    sources,
		timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
		maxResults: cfg.MaxResults,
		logger:     logger,
	}
}

// DefaultSources builds the live source set from config. Sources whose
// credentials are missing still appear here; they report ErrUnavailable
// at query time and get skipped.
func DefaultSources(cfg config.SearchConfig) []Source {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	sources := []Source{
		NewSerperSource(cfg.SerperAPIKey, timeout),
		NewArxivSource(timeout),
		NewBlogSource(5 * time.Second),
	}
	if ddg, err := NewDuckDuckGoSource(10); err == nil {
		sources = append(sources, ddg)
	}
	return sources
}

// Search runs the fan-out. Per-source results land in a fixed slot so the
// merge order is deterministic regardless of which source finishes first.
func (s *Searcher) Search(ctx context.Context, runID, query string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		results = make([][]Item, len(s.sources))
	)

	var g errgroup.Group
	for i, src := range s.sources {
		i, src := i, src
		g.Go(func() error {
			items, err := src.Search(ctx, query, s.maxResults)
			if err != nil {
				if !errors.Is(err, ErrUnavailable) {
					s.logger.LogSearch(runID, src.Name(), query, 0, err)
				}
				// Source failures are contained here; the other
				// sources still contribute.
				return nil
			}
			s.logger.LogSearch(runID, src.Name(), query, len(items), nil)
			mu.Lock()
			results[i] = items
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return s.merge(results), nil
}

func (s *Searcher) merge(perSource [][]Item) []Item {
	seen := make(map[string]bool)
	var merged []Item
	for _, items := range perSource {
		for _, item := range items {
			if item.URL == "" || seen[item.URL] {
				continue
			}
			seen[item.URL] = true
			merged = append(merged, item)
			if len(merged) >= s.maxResults {
				return merged
			}
		}
	}
	return merged
}
