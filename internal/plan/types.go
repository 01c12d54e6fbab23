package plan

import (
	"time"

	"github.com/rahul/gurukul/internal/research"
	"github.com/rahul/gurukul/internal/workflow"
)

// Request carries the user-supplied parameters for one pipeline run.
// Values are sanitized by the validate_input step, not by the caller.
type Request struct {
	Technology    string         `json:"technology"`
	Level         string         `json:"experience_level"`
	DurationHours int            `json:"duration_hours"`
	Preferences   map[string]any `json:"preferences,omitempty"`
}

// Recognized preference keys. Anything else in the preference map is
// dropped during validation.
var recognizedPreferences = map[string]bool{
	"learning_style": true,
	"preferred_time": true,
	"focus":          true,
	"language":       true,
	"project_based":  true,
}

// Analysis is the structured digest of the research material.
type Analysis struct {
	Summary    string         `json:"summary"`
	Trends     []string       `json:"trends"`
	Categories map[string]int `json:"categories"`
	Difficulty string         `json:"difficulty"`
}

// Report holds everything the research step produced.
type Report struct {
	Technology string          `json:"technology"`
	Items      []research.Item `json:"items"`
	Analysis   Analysis        `json:"analysis"`
	Text       string          `json:"report"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Document is the generated learning plan.
type Document struct {
	Content        string              `json:"content"`
	Resources      map[string][]string `json:"resources"`
	Timeline       map[string]int      `json:"timeline"`
	SuccessMetrics []string            `json:"success_metrics"`
}

// State is the shared record threaded through every pipeline step. It is
// created fresh per run and discarded once the Result is assembled.
type State struct {
	RunID         string
	Technology    string
	Level         workflow.Level
	DurationHours int
	Preferences   map[string]any

	Research *Report   // non-nil only after the research step succeeds
	Plan     *Document // non-nil only after the generation step succeeds

	PersonalizationApplied bool

	result *Result
}

// Result is the final output handed to the caller. It serializes to JSON
// and round-trips exactly.
type Result struct {
	Technology             string              `json:"technology"`
	ExperienceLevel        string              `json:"experience_level"`
	DurationHours          int                 `json:"duration_hours"`
	ResearchSummary        string              `json:"research_summary,omitempty"`
	ResearchReport         string              `json:"research_report,omitempty"`
	LearningPlan           string              `json:"learning_plan,omitempty"`
	Resources              map[string][]string `json:"resources,omitempty"`
	Timeline               map[string]int      `json:"timeline,omitempty"`
	SuccessMetrics         []string            `json:"success_metrics,omitempty"`
	PersonalizationApplied bool                `json:"personalization_applied"`
	Timestamp              string              `json:"timestamp,omitempty"`
	Status                 string              `json:"status"`
	Error                  string              `json:"error,omitempty"`
}
