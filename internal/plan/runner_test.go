package plan

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rahul/gurukul/internal/llm"
	"github.com/rahul/gurukul/internal/research"
	"github.com/rahul/gurukul/pkg/config"
)

func testRunner(t *testing.T, model *llm.StubModel) *Runner {
	t.Helper()

	searchCfg := config.SearchConfig{TimeoutSeconds: 5, MaxResults: 20}
	searcher := research.NewSearcher(searchCfg, nil, research.NewFixtureSource())

	var client *llm.Client
	if model != nil {
		client = llm.FromModel(model, 0.7, 2000)
	}

	r, err := NewRunner(config.PlanConfig{MinHours: 5, MaxHours: 200, DefaultHours: 30}, client, searcher, nil)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	return r
}

func TestRun_CompletesWithoutPreferences(t *testing.T) {
	model := &llm.StubModel{}
	r := testRunner(t, model)

	res := r.Run(context.Background(), Request{
		Technology:    "Python",
		Level:         "beginner",
		DurationHours: 30,
	})

	if res.Status != "completed" {
		t.Fatalf("Expected completed, got %s (error=%q)", res.Status, res.Error)
	}
	if res.Error != "" {
		t.Errorf("Completed result must carry no error, got %q", res.Error)
	}
	if res.PersonalizationApplied {
		t.Error("personalization_applied must be false without preferences")
	}
	// research report + plan generation, but no customize call
	if model.CallCount() != 2 {
		t.Errorf("Expected 2 llm calls, got %d", model.CallCount())
	}
	if res.LearningPlan == "" || res.ResearchReport == "" {
		t.Error("Expected plan and report populated")
	}
}

func TestRun_MissingTechnologyIsError(t *testing.T) {
	r := testRunner(t, &llm.StubModel{})

	res := r.Run(context.Background(), Request{Technology: "   "})
	if res.Status != "error" {
		t.Fatalf("Expected error status, got %s", res.Status)
	}
	if !strings.Contains(res.Error, "technology name is required") {
		t.Errorf("Expected missing-technology message, got %q", res.Error)
	}
}

func TestRun_InvalidLevelCoercedAndCustomized(t *testing.T) {
	model := &llm.StubModel{}
	r := testRunner(t, model)

	res := r.Run(context.Background(), Request{
		Technology:    "React",
		Level:         "expert",
		DurationHours: 40,
		Preferences:   map[string]any{"learning_style": "visual"},
	})

	if res.Status != "completed" {
		t.Fatalf("Expected completed, got %s (error=%q)", res.Status, res.Error)
	}
	if res.ExperienceLevel != "beginner" {
		t.Errorf("Expected level coerced to beginner, got %s", res.ExperienceLevel)
	}
	if !res.PersonalizationApplied {
		t.Error("Expected personalization_applied true with preferences")
	}
	// research + generate + customize
	if model.CallCount() != 3 {
		t.Errorf("Expected 3 llm calls, got %d", model.CallCount())
	}
}

func TestRun_DurationClamped(t *testing.T) {
	r := testRunner(t, &llm.StubModel{})

	res := r.Run(context.Background(), Request{Technology: "Go", DurationHours: 100000})
	if res.DurationHours != 200 {
		t.Errorf("Expected duration clamped to 200, got %d", res.DurationHours)
	}

	res = r.Run(context.Background(), Request{Technology: "Go", DurationHours: 1})
	if res.DurationHours != 5 {
		t.Errorf("Expected duration raised to 5, got %d", res.DurationHours)
	}

	res = r.Run(context.Background(), Request{Technology: "Go"})
	if res.DurationHours != 30 {
		t.Errorf("Expected default duration 30, got %d", res.DurationHours)
	}
}

func TestRun_UnknownPreferenceKeysIgnored(t *testing.T) {
	model := &llm.StubModel{}
	r := testRunner(t, model)

	res := r.Run(context.Background(), Request{
		Technology:  "Go",
		Preferences: map[string]any{"favorite_color": "green", "shoe_size": 42},
	})

	if res.Status != "completed" {
		t.Fatalf("Expected completed, got %s (error=%q)", res.Status, res.Error)
	}
	// Only unrecognized keys: customize must be skipped entirely.
	if res.PersonalizationApplied {
		t.Error("Unknown keys alone must not trigger customization")
	}
	if model.CallCount() != 2 {
		t.Errorf("Expected 2 llm calls, got %d", model.CallCount())
	}
}

func TestRun_LLMFailureBecomesErrorResult(t *testing.T) {
	model := &llm.StubModel{
		Respond: func(string) (string, error) {
			return "", errors.New("rate limited")
		},
	}
	r := testRunner(t, model)

	res := r.Run(context.Background(), Request{Technology: "Go"})
	if res.Status != "error" {
		t.Fatalf("Expected error status, got %s", res.Status)
	}
	if !strings.Contains(res.Error, "rate limited") {
		t.Errorf("Expected upstream error in message, got %q", res.Error)
	}
}

func TestRun_NoLLMConfigured(t *testing.T) {
	r := testRunner(t, nil)

	res := r.Run(context.Background(), Request{Technology: "Go"})
	if res.Status != "error" {
		t.Fatalf("Expected error status without llm, got %s", res.Status)
	}
}

func TestRun_EmptyLLMOutputIsGenerationError(t *testing.T) {
	model := &llm.StubModel{
		Respond: func(string) (string, error) { return "   ", nil },
	}
	r := testRunner(t, model)

	res := r.Run(context.Background(), Request{Technology: "Go"})
	if res.Status != "error" {
		t.Fatalf("Expected error status for empty llm output, got %s", res.Status)
	}
	if !strings.Contains(res.Error, "empty output") {
		t.Errorf("Expected empty-output message, got %q", res.Error)
	}
}

func TestResult_JSONRoundTrip(t *testing.T) {
	r := testRunner(t, &llm.StubModel{})

	res := r.Run(context.Background(), Request{
		Technology:    "Python",
		Level:         "intermediate",
		DurationHours: 50,
		Preferences:   map[string]any{"learning_style": "visual"},
	})
	if res.Status != "completed" {
		t.Fatalf("Expected completed, got %s (error=%q)", res.Status, res.Error)
	}

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var back Result
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(res, back) {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", back, res)
	}
}

func TestBuildTimeline_SumsToTotal(t *testing.T) {
	for _, hours := range []int{5, 30, 33, 100, 199} {
		tl := buildTimeline(hours)
		sum := 0
		for _, v := range tl {
			sum += v
		}
		if sum != hours {
			t.Errorf("Timeline for %d hours sums to %d", hours, sum)
		}
	}
}

func TestAnalyze_Difficulty(t *testing.T) {
	beginnerItems := []research.Item{
		{Title: "Intro tutorial", Snippet: "getting started basics", Source: "google"},
		{Title: "Beginner guide", Snippet: "introduction for beginners", Source: "blog"},
	}
	a := analyze("Go", beginnerItems)
	if a.Difficulty != "beginner" {
		t.Errorf("Expected beginner difficulty, got %s", a.Difficulty)
	}
	if len(a.Trends) == 0 {
		t.Error("Expected trends populated")
	}
	if a.Summary == "" {
		t.Error("Expected summary populated")
	}
}
