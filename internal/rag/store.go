package rag

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"
)

// MemoryStore is an in-process vectorstores.VectorStore backed by a plain
// slice and cosine similarity. The document sets this demo handles are
// tiny, so brute-force scoring beats carrying a vector-database server.
type MemoryStore struct {
	embedder embeddings.Embedder

	mu   sync.RWMutex
	docs []storedDoc
}

type storedDoc struct {
	id     string
	doc    schema.Document
	vector []float32
}

var _ vectorstores.VectorStore = (*MemoryStore)(nil)

func NewMemoryStore(embedder embeddings.Embedder) *MemoryStore {
	return &MemoryStore{embedder: embedder}
}

func (s *MemoryStore) AddDocuments(ctx context.Context, docs []schema.Document, _ ...vectorstores.Option) ([]string, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.PageContent
	}

	vectors, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed documents: %w", err)
	}
	if len(vectors) != len(docs) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(docs))
	}

	ids := make([]string, len(docs))
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range docs {
		id := uuid.New().String()
		ids[i] = id
		s.docs = append(s.docs, storedDoc{id: id, doc: d, vector: vectors[i]})
	}
	return ids, nil
}

func (s *MemoryStore) SimilaritySearch(ctx context.Context, query string, numDocuments int, options ...vectorstores.Option) ([]schema.Document, error) {
	opts := vectorstores.Options{}
	for _, opt := range options {
		opt(&opts)
	}

	qv, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	s.mu.RLock()
	scored := make([]schema.Document, 0, len(s.docs))
	for _, sd := range s.docs {
		d := sd.doc
		d.Score = cosineSimilarity(qv, sd.vector)
		scored = append(scored, d)
	}
	s.mu.RUnlock()

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	out := make([]schema.Document, 0, numDocuments)
	for _, d := range scored {
		if d.Score < opts.ScoreThreshold {
			continue
		}
		out = append(out, d)
		if len(out) >= numDocuments {
			break
		}
	}
	return out, nil
}

// Len reports how many chunks the store holds.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
