package plan

import (
	"fmt"
	"strings"

	"github.com/rahul/gurukul/internal/research"
)

func reportPrompt(technology string, items []research.Item, a Analysis) string {
	var material strings.Builder
	for i, item := range items {
		if i >= 12 {
			break
		}
		fmt.Fprintf(&material, "- [%s] %s: %s\n", item.Source, item.Title, item.Snippet)
	}

	return fmt.Sprintf(`Based on the following research material, write a research report for the technology %q.

Research material:
%s
Trend topics: %s
Content categories: %v
Assessed difficulty: %s

Structure the report as:
1. Technology overview
2. Current trends
3. Learning resource categories
4. Difficulty assessment
5. Key insights
6. Recommended next actions

Keep it professional and practical.`, technology, material.String(), strings.Join(a.Trends, "; "), a.Categories, a.Difficulty)
}

func planPrompt(st *State) string {
	a := st.Research.Analysis
	trends := a.Trends
	if len(trends) > 5 {
		trends = trends[:5]
	}

	return fmt.Sprintf(`Generate a detailed learning plan for the technology %q.

Learner:
- Experience level: %s
- Planned study time: %d hours
- Assessed difficulty: %s

Research data:
- Content categories: %v
- Trend topics: %s

Requirements:
1. Learning goals (3-5 concrete goals)
2. Four stages sized to the total hours
3. For each stage: focus, concrete content, a practice project, estimated hours, recommended resources
4. Study advice (methods, tooling, pitfalls)
5. Milestone checkpoints
6. Further directions

Make the plan actionable, hands-on, and progressive, matched to the learner's experience level. Use a structured format.`,
		st.Technology, st.Level, st.DurationHours, a.Difficulty, a.Categories, strings.Join(trends, "; "))
}

func customizePrompt(st *State) string {
	var prefs strings.Builder
	for k, v := range st.Preferences {
		fmt.Fprintf(&prefs, "- %s: %v\n", k, v)
	}

	return fmt.Sprintf(`Personalize the following learning plan for %q according to the learner's preferences. Keep the structure and total hours, adjust emphasis, resource types, and scheduling to fit the preferences.

Preferences:
%s
Plan:
%s`, st.Technology, prefs.String(), st.Plan.Content)
}
