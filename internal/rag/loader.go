package rag

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
)

// LoadDirectory reads every .txt and .md file under dir and splits the
// contents into chunks. When dir holds no usable files the built-in sample
// documents are returned instead, so the demo always has something to
// retrieve from.
func LoadDirectory(dir string, chunkSize, chunkOverlap int) ([]schema.Document, error) {
	var texts []string
	var metadatas []map[string]any

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read documents directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if len(strings.TrimSpace(string(data))) == 0 {
			continue
		}
		texts = append(texts, string(data))
		metadatas = append(metadatas, map[string]any{"source": entry.Name()})
	}

	if len(texts) == 0 {
		for _, s := range sampleDocuments {
			texts = append(texts, s.text)
			metadatas = append(metadatas, map[string]any{"source": s.source})
		}
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)
	return textsplitter.CreateDocuments(splitter, texts, metadatas)
}

// ChunkText splits a single text into chunks tagged with the given source
// name, for indexing content that was not read from a file.
func ChunkText(source, text string, chunkSize, chunkOverlap int) ([]schema.Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no content to index from %s", source)
	}
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)
	return textsplitter.CreateDocuments(splitter, []string{text}, []map[string]any{{"source": source}})
}

var sampleDocuments = []struct {
	source string
	text   string
}{
	{
		source: "go-basics.md",
		text: "Go is a statically typed, compiled language designed at Google. " +
			"Goroutines are lightweight threads managed by the Go runtime, " +
			"started with the go keyword. Channels carry values between " +
			"goroutines and are the idiomatic way to share data.",
	},
	{
		source: "python-basics.md",
		text: "Python is a dynamically typed interpreted language. List " +
			"comprehensions build lists from iterables in a single expression. " +
			"Virtual environments isolate per-project dependencies from the " +
			"system installation.",
	},
	{
		source: "learning-tips.md",
		text: "Spaced repetition improves retention of new material. Working " +
			"through small projects beats passive reading: pick a project " +
			"slightly above your current level and finish it before starting " +
			"the next one.",
	},
}
