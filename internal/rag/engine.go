package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"

	"github.com/rahul/gurukul/internal/observability"
	"github.com/rahul/gurukul/pkg/config"
)

// SourceRef is one retrieved passage in a query result.
type SourceRef struct {
	Content string         `json:"content"`
	Source  string         `json:"source,omitempty"`
	Score   float32        `json:"score"`
	Meta    map[string]any `json:"metadata,omitempty"`
}

// QueryResult is the outcome of one retrieve-then-generate cycle.
type QueryResult struct {
	Query          string      `json:"query"`
	Answer         string      `json:"answer"`
	Sources        []SourceRef `json:"sources"`
	RetrievalTime  float64     `json:"retrieval_time_seconds"`
	GenerationTime float64     `json:"generation_time_seconds"`
	TotalTime      float64     `json:"total_time_seconds"`
	UsedContext    bool        `json:"used_context"`
}

// Engine is the embed-store-retrieve-generate pipeline. A nil model puts
// the engine in retrieval-only mode: answers are the retrieved passages
// themselves.
type Engine struct {
	cfg    config.RAGConfig
	store  vectorstores.VectorStore
	model  llms.Model
	logger *observability.Logger
}

func NewEngine(cfg config.RAGConfig, store vectorstores.VectorStore, model llms.Model, logger *observability.Logger) *Engine {
	if logger == nil {
		logger = observability.NewQuietLogger()
	}
	return &Engine{cfg: cfg, store: store, model: model, logger: logger}
}

// New wires the engine from config: an OpenAI-compatible embedder, the
// in-memory store, and the chat model. Embeddings need the API key, so a
// missing key fails construction outright; generation alone failing is
// handled by passing a nil model to NewEngine.
func New(ragCfg config.RAGConfig, llmCfg config.LLMConfig, logger *observability.Logger) (*Engine, error) {
	if llmCfg.APIKey == "" {
		return nil, fmt.Errorf("rag engine needs an api key for embeddings")
	}

	opts := []openai.Option{
		openai.WithToken(llmCfg.APIKey),
		openai.WithModel(llmCfg.Model),
		openai.WithEmbeddingModel(ragCfg.EmbeddingModel),
	}
	if llmCfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(llmCfg.BaseURL))
	}
	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedding client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client)
	if err != nil {
		return nil, fmt.Errorf("failed to build embedder: %w", err)
	}

	return NewEngine(ragCfg, NewMemoryStore(embedder), client, logger), nil
}

// Index loads and embeds the configured documents directory.
func (e *Engine) Index(ctx context.Context, dir string) (int, error) {
	docs, err := LoadDirectory(dir, e.cfg.ChunkSize, e.cfg.ChunkOverlap)
	if err != nil {
		return 0, err
	}
	if _, err := e.store.AddDocuments(ctx, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}

// IndexText chunks and embeds a single text under the given source name.
func (e *Engine) IndexText(ctx context.Context, source, text string) (int, error) {
	docs, err := ChunkText(source, text, e.cfg.ChunkSize, e.cfg.ChunkOverlap)
	if err != nil {
		return 0, err
	}
	if _, err := e.store.AddDocuments(ctx, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}

// Query retrieves the top passages for the question and synthesizes an
// answer from them. Retrieval coming back empty is not an error: the
// model answers without context and the result says so.
func (e *Engine) Query(ctx context.Context, question string) (QueryResult, error) {
	k := e.cfg.RetrievalK
	start := time.Now()

	docs, err := e.store.SimilaritySearch(ctx, question, k,
		vectorstores.WithScoreThreshold(e.cfg.ScoreThreshold))
	if err != nil {
		return QueryResult{}, fmt.Errorf("retrieval failed: %w", err)
	}
	retrievalTime := time.Since(start)

	res := QueryResult{
		Query:       question,
		UsedContext: len(docs) > 0,
	}
	for _, d := range docs {
		ref := SourceRef{Content: d.PageContent, Score: d.Score, Meta: d.Metadata}
		if src, ok := d.Metadata["source"].(string); ok {
			ref.Source = src
		}
		res.Sources = append(res.Sources, ref)
	}

	genStart := time.Now()
	answer, err := e.generate(ctx, question, docs)
	if err != nil {
		return QueryResult{}, err
	}
	res.Answer = answer
	res.RetrievalTime = retrievalTime.Seconds()
	res.GenerationTime = time.Since(genStart).Seconds()
	res.TotalTime = time.Since(start).Seconds()

	e.logger.Log(observability.Event{
		Type: observability.EventTypeRAGQuery,
		Data: map[string]any{
			"query":        question,
			"sources":      len(res.Sources),
			"used_context": res.UsedContext,
		},
	})
	return res, nil
}

func (e *Engine) generate(ctx context.Context, question string, docs []schema.Document) (string, error) {
	if e.model == nil {
		// Retrieval-only mode.
		if len(docs) == 0 {
			return "No matching passages found.", nil
		}
		var b strings.Builder
		for i, d := range docs {
			fmt.Fprintf(&b, "[%d] %s\n", i+1, d.PageContent)
		}
		return b.String(), nil
	}

	var prompt string
	if len(docs) > 0 {
		var contextText strings.Builder
		for _, d := range docs {
			contextText.WriteString(d.PageContent)
			contextText.WriteString("\n---\n")
		}
		prompt = fmt.Sprintf(`Answer the question using the context below. If the context does not contain the answer, say so.

Context:
%s
Question: %s`, contextText.String(), question)
	} else {
		prompt = fmt.Sprintf("Answer the question briefly. No reference material was found for it.\n\nQuestion: %s", question)
	}

	answer, err := llms.GenerateFromSinglePrompt(ctx, e.model, prompt)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	return answer, nil
}
