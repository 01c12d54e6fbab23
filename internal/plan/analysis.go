package plan

import (
	"fmt"
	"strings"

	"github.com/rahul/gurukul/internal/research"
	"github.com/rahul/gurukul/internal/workflow"
)

var categoryKeywords = map[string][]string{
	"fundamentals":   {"tutorial", "guide", "introduction", "basics", "getting started", "learn"},
	"best_practices": {"best practice", "pattern", "architecture", "idiomatic", "clean"},
	"reference":      {"documentation", "reference", "api", "spec"},
	"advanced":       {"advanced", "internals", "deep dive", "performance", "optimization"},
}

var advancedMarkers = []string{"advanced", "internals", "optimization", "distributed", "concurrency"}
var beginnerMarkers = []string{"beginner", "basics", "introduction", "getting started", "tutorial"}

// analyze builds a structured digest of the search results without any
// LLM involvement; the report step feeds this digest to the model.
func analyze(technology string, items []research.Item) Analysis {
	categories := make(map[string]int)
	var trends []string
	advanced, beginner := 0, 0

	for _, item := range items {
		text := strings.ToLower(item.Title + " " + item.Snippet)

		matched := false
		for cat, words := range categoryKeywords {
			for _, w := range words {
				if strings.Contains(text, w) {
					categories[cat]++
					matched = true
					break
				}
			}
		}
		if !matched {
			categories["general"]++
		}

		for _, w := range advancedMarkers {
			if strings.Contains(text, w) {
				advanced++
				break
			}
		}
		for _, w := range beginnerMarkers {
			if strings.Contains(text, w) {
				beginner++
				break
			}
		}

		if len(trends) < 5 && item.Title != "" {
			trends = append(trends, item.Title)
		}
	}

	difficulty := "intermediate"
	switch {
	case beginner > advanced*2:
		difficulty = "beginner"
	case advanced > beginner*2:
		difficulty = "advanced"
	}

	sources := make(map[string]bool)
	for _, item := range items {
		sources[item.Source] = true
	}

	return Analysis{
		Summary: fmt.Sprintf("Collected %d resources about %s from %d sources; assessed difficulty: %s.",
			len(items), technology, len(sources), difficulty),
		Trends:     trends,
		Categories: categories,
		Difficulty: difficulty,
	}
}

// buildResources groups result URLs by the kind of material they point at.
func buildResources(items []research.Item) map[string][]string {
	resources := make(map[string][]string)
	for _, item := range items {
		var key string
		switch item.Source {
		case "arxiv":
			key = "papers"
		case "blog":
			key = "articles"
		default:
			key = "documentation"
		}
		if len(resources[key]) < 10 {
			resources[key] = append(resources[key], item.URL)
		}
	}
	return resources
}

// buildTimeline splits the total hours across the four stages of the
// learning path. The mastery stage absorbs rounding leftovers so the
// stages always sum to the requested total.
func buildTimeline(totalHours int) map[string]int {
	foundation := totalHours * 20 / 100
	core := totalHours * 30 / 100
	advanced := totalHours * 30 / 100
	mastery := totalHours - foundation - core - advanced
	return map[string]int{
		"foundation_hours": foundation,
		"core_hours":       core,
		"advanced_hours":   advanced,
		"mastery_hours":    mastery,
	}
}

func buildSuccessMetrics(technology string, level workflow.Level) []string {
	metrics := []string{
		fmt.Sprintf("Explain the core concepts of %s without notes", technology),
		fmt.Sprintf("Complete a small working project using %s", technology),
	}
	switch level {
	case workflow.LevelIntermediate:
		metrics = append(metrics,
			fmt.Sprintf("Apply recognized best practices in a mid-sized %s codebase", technology))
	case workflow.LevelAdvanced:
		metrics = append(metrics,
			fmt.Sprintf("Review and improve someone else's %s code", technology),
			fmt.Sprintf("Debug a performance problem in a %s system", technology))
	default:
		metrics = append(metrics,
			fmt.Sprintf("Follow an intermediate %s tutorial without getting stuck", technology))
	}
	return metrics
}
