package rag

import (
	"context"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"

	"github.com/rahul/gurukul/internal/llm"
	"github.com/rahul/gurukul/pkg/config"
)

// wordEmbedder maps text onto a fixed vocabulary axis per word, which
// makes cosine similarity behave like word overlap. Deterministic and
// offline.
type wordEmbedder struct {
	vocab []string
}

func newWordEmbedder() *wordEmbedder {
	return &wordEmbedder{vocab: []string{
		"go", "goroutine", "channel", "python", "list", "comprehension",
		"repetition", "project", "learning",
	}}
}

func (w *wordEmbedder) embed(text string) []float32 {
	text = strings.ToLower(text)
	v := make([]float32, len(w.vocab))
	for i, word := range w.vocab {
		if strings.Contains(text, word) {
			v[i] = 1
		}
	}
	return v
}

func (w *wordEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = w.embed(t)
	}
	return out, nil
}

func (w *wordEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return w.embed(text), nil
}

func seedStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore(newWordEmbedder())
	_, err := store.AddDocuments(context.Background(), []schema.Document{
		{PageContent: "Goroutines and channels are how Go does concurrency.", Metadata: map[string]any{"source": "go.md"}},
		{PageContent: "Python list comprehensions build lists concisely.", Metadata: map[string]any{"source": "python.md"}},
		{PageContent: "Spaced repetition helps learning stick.", Metadata: map[string]any{"source": "tips.md"}},
	})
	if err != nil {
		t.Fatalf("AddDocuments failed: %v", err)
	}
	return store
}

func TestMemoryStore_SimilarityOrdering(t *testing.T) {
	store := seedStore(t)

	docs, err := store.SimilaritySearch(context.Background(), "goroutine channel concurrency in go", 3)
	if err != nil {
		t.Fatalf("SimilaritySearch failed: %v", err)
	}
	if len(docs) == 0 {
		t.Fatal("Expected results")
	}
	if docs[0].Metadata["source"] != "go.md" {
		t.Errorf("Expected go.md ranked first, got %v", docs[0].Metadata["source"])
	}
	for i := 1; i < len(docs); i++ {
		if docs[i].Score > docs[i-1].Score {
			t.Error("Results must be ordered by descending score")
		}
	}
}

func TestMemoryStore_ScoreThreshold(t *testing.T) {
	store := seedStore(t)

	docs, err := store.SimilaritySearch(context.Background(), "goroutine channel go", 3,
		vectorstores.WithScoreThreshold(0.9))
	if err != nil {
		t.Fatalf("SimilaritySearch failed: %v", err)
	}
	for _, d := range docs {
		if d.Score < 0.9 {
			t.Errorf("Document below threshold returned: %f", d.Score)
		}
	}

	// An unrelated query clears nothing above the threshold.
	docs, err = store.SimilaritySearch(context.Background(), "quantum entanglement", 3,
		vectorstores.WithScoreThreshold(0.5))
	if err != nil {
		t.Fatalf("SimilaritySearch failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("Expected no results above threshold, got %d", len(docs))
	}
}

func TestCosineSimilarity(t *testing.T) {
	a := []float32{1, 0, 0}
	if got := cosineSimilarity(a, a); got < 0.999 {
		t.Errorf("Identical vectors should score ~1, got %f", got)
	}
	if got := cosineSimilarity(a, []float32{0, 1, 0}); got != 0 {
		t.Errorf("Orthogonal vectors should score 0, got %f", got)
	}
	if got := cosineSimilarity(a, []float32{0, 0}); got != 0 {
		t.Errorf("Mismatched lengths should score 0, got %f", got)
	}
}

func testEngineConfig() config.RAGConfig {
	return config.RAGConfig{RetrievalK: 2, ScoreThreshold: 0.3, ChunkSize: 500, ChunkOverlap: 0}
}

func TestEngine_QueryWithContext(t *testing.T) {
	store := seedStore(t)
	model := &llm.StubModel{
		Respond: func(prompt string) (string, error) {
			if !strings.Contains(prompt, "Goroutines") {
				return "answer without context", nil
			}
			return "answer grounded in context", nil
		},
	}
	e := NewEngine(testEngineConfig(), store, model, nil)

	res, err := e.Query(context.Background(), "how does go handle concurrency with goroutines and channels")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if !res.UsedContext {
		t.Error("Expected context to be used")
	}
	if res.Answer != "answer grounded in context" {
		t.Errorf("Expected grounded answer, got %q", res.Answer)
	}
	if len(res.Sources) == 0 || res.Sources[0].Source != "go.md" {
		t.Errorf("Expected go.md as top source, got %+v", res.Sources)
	}
}

func TestEngine_QueryWithoutMatches(t *testing.T) {
	store := seedStore(t)
	model := &llm.StubModel{}
	e := NewEngine(testEngineConfig(), store, model, nil)

	res, err := e.Query(context.Background(), "medieval heraldry")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if res.UsedContext {
		t.Error("Expected no context for unrelated query")
	}
	if len(res.Sources) != 0 {
		t.Errorf("Expected no sources, got %d", len(res.Sources))
	}
	if res.Answer == "" {
		t.Error("Expected an answer even without context")
	}
}

func TestEngine_RetrievalOnlyMode(t *testing.T) {
	store := seedStore(t)
	e := NewEngine(testEngineConfig(), store, nil, nil)

	res, err := e.Query(context.Background(), "python list comprehension")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if !res.UsedContext {
		t.Error("Expected retrieval to find the python passage")
	}
	if !strings.Contains(res.Answer, "comprehensions") {
		t.Errorf("Retrieval-only answer should quote the passage, got %q", res.Answer)
	}
}

func TestEngine_IndexText(t *testing.T) {
	store := NewMemoryStore(newWordEmbedder())
	e := NewEngine(testEngineConfig(), store, nil, nil)

	n, err := e.IndexText(context.Background(), "https://example.com/go-article",
		"Goroutines multiplex onto OS threads. Channels pass values between goroutines.")
	if err != nil {
		t.Fatalf("IndexText failed: %v", err)
	}
	if n == 0 || store.Len() != n {
		t.Fatalf("Expected chunks in the store, got n=%d len=%d", n, store.Len())
	}

	res, err := e.Query(context.Background(), "goroutine channel")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(res.Sources) == 0 || res.Sources[0].Source != "https://example.com/go-article" {
		t.Errorf("Expected the indexed page as source, got %+v", res.Sources)
	}

	if _, err := e.IndexText(context.Background(), "empty", "   "); err == nil {
		t.Error("Expected error for empty content")
	}
}

func TestLoadDirectory_FallsBackToSamples(t *testing.T) {
	docs, err := LoadDirectory(t.TempDir(), 500, 0)
	if err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}
	if len(docs) == 0 {
		t.Fatal("Expected sample documents for empty directory")
	}
	for _, d := range docs {
		if d.Metadata["source"] == nil {
			t.Error("Expected source metadata on every chunk")
		}
	}
}
