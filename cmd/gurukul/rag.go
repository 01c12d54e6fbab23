package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rahul/gurukul/internal/observability"
	"github.com/rahul/gurukul/internal/rag"
	"github.com/rahul/gurukul/internal/research"
)

func newRAGCmd() *cobra.Command {
	var (
		docsDir string
		urls    []string
	)

	cmd := &cobra.Command{
		Use:   "rag [question]",
		Short: "Answer a question over a local document collection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := observability.NewLogger()

			if docsDir == "" {
				docsDir = cfg.RAG.DocsDir
			}
			engine, err := rag.New(cfg.RAG, cfg.LLM, logger)
			if err != nil {
				return err
			}

			count, err := engine.Index(cmd.Context(), docsDir)
			if err != nil {
				return fmt.Errorf("index documents: %w", err)
			}

			if len(urls) > 0 {
				fetcher := research.NewFetcher(30 * time.Second)
				for _, pageURL := range urls {
					content, err := fetcher.Extract(cmd.Context(), pageURL)
					if err != nil {
						return fmt.Errorf("fetch %s: %w", pageURL, err)
					}
					n, err := engine.IndexText(cmd.Context(), pageURL, content)
					if err != nil {
						return fmt.Errorf("index %s: %w", pageURL, err)
					}
					count += n
				}
			}
			fmt.Printf("Indexed %d chunks.\n\n", count)

			result, err := engine.Query(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Println(result.Answer)
			if len(result.Sources) > 0 {
				fmt.Println("\nSources:")
				for _, src := range result.Sources {
					name := src.Source
					if name == "" {
						name = "(inline)"
					}
					fmt.Printf("  - %s (score %.2f)\n", name, src.Score)
				}
			}
			fmt.Printf("\nretrieval %.2fs, generation %.2fs, total %.2fs\n",
				result.RetrievalTime, result.GenerationTime, result.TotalTime)
			return nil
		},
	}

	cmd.Flags().StringVar(&docsDir, "docs", "", "directory of .txt/.md documents (bundled samples when empty)")
	cmd.Flags().StringSliceVar(&urls, "url", nil, "web page to fetch and index (repeatable)")
	return cmd
}
