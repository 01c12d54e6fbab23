package research

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rahul/gurukul/pkg/config"
)

type fakeSource struct {
	name  string
	items []Item
	err   error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Search(_ context.Context, _ string, _ int) ([]Item, error) {
	return f.items, f.err
}

func testConfig() config.SearchConfig {
	return config.SearchConfig{TimeoutSeconds: 5, MaxResults: 20}
}

func TestSearcher_MergesAllSources(t *testing.T) {
	a := &fakeSource{name: "a", items: []Item{
		{Title: "A1", URL: "https://a.example/1", Source: "a"},
	}}
	b := &fakeSource{name: "b", items: []Item{
		{Title: "B1", URL: "https://b.example/1", Source: "b"},
		{Title: "B2", URL: "https://b.example/2", Source: "b"},
	}}

	s := NewSearcher(testConfig(), nil, a, b)
	items, err := s.Search(context.Background(), "run", "go")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 merged items, got %d", len(items))
	}
	// Merge order follows source registration order, not finish order.
	if items[0].Source != "a" || items[1].Source != "b" {
		t.Errorf("Unexpected merge order: %+v", items)
	}
}

func TestSearcher_OneFailingSourceIsNotFatal(t *testing.T) {
	ok := &fakeSource{name: "ok", items: []Item{
		{Title: "hit", URL: "https://ok.example/1", Source: "ok"},
	}}
	broken := &fakeSource{name: "broken", err: errors.New("rate limited")}

	s := NewSearcher(testConfig(), nil, broken, ok)
	items, err := s.Search(context.Background(), "run", "go")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) != 1 || items[0].Source != "ok" {
		t.Errorf("Expected surviving source's results, got %+v", items)
	}
}

func TestSearcher_UnavailableSourceSkipped(t *testing.T) {
	unavailable := &fakeSource{name: "keyed", err: ErrUnavailable}
	ok := &fakeSource{name: "ok", items: []Item{
		{Title: "hit", URL: "https://ok.example/1", Source: "ok"},
	}}

	s := NewSearcher(testConfig(), nil, unavailable, ok)
	items, err := s.Search(context.Background(), "run", "go")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("Expected 1 item, got %d", len(items))
	}
}

func TestSearcher_DeduplicatesByURL(t *testing.T) {
	a := &fakeSource{name: "a", items: []Item{
		{Title: "same", URL: "https://dup.example/x", Source: "a"},
	}}
	b := &fakeSource{name: "b", items: []Item{
		{Title: "same again", URL: "https://dup.example/x", Source: "b"},
		{Title: "other", URL: "https://b.example/y", Source: "b"},
	}}

	s := NewSearcher(testConfig(), nil, a, b)
	items, _ := s.Search(context.Background(), "run", "go")
	if len(items) != 2 {
		t.Errorf("Expected duplicates removed, got %d items", len(items))
	}
}

func TestSearcher_CapsResults(t *testing.T) {
	var many []Item
	for i := 0; i < 50; i++ {
		many = append(many, Item{
			Title: "hit",
			URL:   fmt.Sprintf("https://many.example/%d", i),
		})
	}
	src := &fakeSource{name: "many", items: many}

	cfg := testConfig()
	cfg.MaxResults = 20
	s := NewSearcher(cfg, nil, src)
	items, _ := s.Search(context.Background(), "run", "go")
	if len(items) != 20 {
		t.Errorf("Expected cap at 20 results, got %d", len(items))
	}
}

func TestSearcher_AllSourcesEmpty(t *testing.T) {
	s := NewSearcher(testConfig(), nil, &fakeSource{name: "empty"})
	items, err := s.Search(context.Background(), "run", "go")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected no items, got %d", len(items))
	}
}

func TestFixtureSource_KnownTechnology(t *testing.T) {
	f := NewFixtureSource()
	items, err := f.Search(context.Background(), "Python tutorial guide", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("Expected fixture items for python")
	}
	for _, item := range items {
		if item.Source != "fixture" {
			t.Errorf("Fixture items must be labeled fixture, got %q", item.Source)
		}
	}
}

func TestFixtureSource_UnknownTechnologyStillAnswers(t *testing.T) {
	f := NewFixtureSource()
	items, err := f.Search(context.Background(), "COBOL", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) == 0 {
		t.Error("Expected a generic placeholder for unknown technology")
	}
}

func TestSerperSource_UnavailableWithoutKey(t *testing.T) {
	s := NewSerperSource("", 0)
	_, err := s.Search(context.Background(), "go", 5)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable without api key, got %v", err)
	}
}
