package plan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rahul/gurukul/internal/llm"
	"github.com/rahul/gurukul/internal/observability"
	"github.com/rahul/gurukul/internal/research"
	"github.com/rahul/gurukul/internal/workflow"
	"github.com/rahul/gurukul/pkg/config"
)

// Step names, also the vocabulary of the workflow_step log events.
const (
	stepValidate  = "validate_input"
	stepResearch  = "research"
	stepGenerate  = "generate_plan"
	stepCustomize = "customize"
	stepFinalize  = "finalize"
)

// Runner executes the learning-plan pipeline:
//
//	validate_input -> research -> generate_plan -> (customize | finalize)
//
// customize runs iff the preference map is non-empty. Any step failure
// lands in the error terminal; Run never returns a Go error.
type Runner struct {
	cfg      config.PlanConfig
	llm      *llm.Client
	searcher *research.Searcher
	logger   *observability.Logger
	pipeline *workflow.Pipeline[State]
}

func NewRunner(cfg config.PlanConfig, client *llm.Client, searcher *research.Searcher, logger *observability.Logger) (*Runner, error) {
	if searcher == nil {
		return nil, fmt.Errorf("plan runner needs a searcher")
	}
	if logger == nil {
		logger = observability.NewQuietLogger()
	}
	r := &Runner{cfg: cfg, llm: client, searcher: searcher, logger: logger}

	pipeline, err := workflow.New(logger,
		workflow.Step[State]{Name: stepValidate, Run: r.validateInput},
		workflow.Step[State]{Name: stepResearch, Run: r.research},
		workflow.Step[State]{
			Name: stepGenerate,
			Run:  r.generatePlan,
			Next: func(st *State) string {
				if len(st.Preferences) > 0 {
					return stepCustomize
				}
				return stepFinalize
			},
		},
		workflow.Step[State]{Name: stepCustomize, Run: r.customize},
		workflow.Step[State]{Name: stepFinalize, Run: r.finalize},
	)
	if err != nil {
		return nil, err
	}
	r.pipeline = pipeline
	return r, nil
}

// Run executes the pipeline for one request. All failures are reported in
// the Result, never raised.
func (r *Runner) Run(ctx context.Context, req Request) Result {
	runID := uuid.New().String()

	st := &State{
		RunID:         runID,
		Technology:    req.Technology,
		Level:         workflow.NormalizeLevel(req.Level),
		DurationHours: req.DurationHours,
		Preferences:   req.Preferences,
	}

	out := r.pipeline.Run(ctx, runID, st)
	if out.Status == workflow.StatusCompleted && st.result != nil {
		return *st.result
	}

	errMsg := out.Err
	if errMsg == "" {
		errMsg = "pipeline produced no result"
	}
	return Result{
		Technology:      st.Technology,
		ExperienceLevel: string(st.Level),
		DurationHours:   st.DurationHours,
		Status:          string(workflow.StatusError),
		Error:           errMsg,
	}
}

func (r *Runner) validateInput(_ context.Context, st *State) error {
	st.Technology = strings.TrimSpace(st.Technology)
	if st.Technology == "" {
		return fmt.Errorf("technology name is required")
	}

	// Level was normalized on entry; re-normalize in case a caller built
	// the State directly.
	st.Level = workflow.NormalizeLevel(string(st.Level))

	if st.DurationHours <= 0 {
		st.DurationHours = r.cfg.DefaultHours
	}
	if st.DurationHours < r.cfg.MinHours {
		st.DurationHours = r.cfg.MinHours
	}
	if st.DurationHours > r.cfg.MaxHours {
		st.DurationHours = r.cfg.MaxHours
	}

	cleaned := make(map[string]any)
	for k, v := range st.Preferences {
		if recognizedPreferences[k] {
			cleaned[k] = v
		}
	}
	st.Preferences = cleaned
	return nil
}

func (r *Runner) research(ctx context.Context, st *State) error {
	query := fmt.Sprintf("%s tutorial guide best practices", st.Technology)
	items, err := r.searcher.Search(ctx, st.RunID, query)
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("no research material found for %s", st.Technology)
	}

	analysis := analyze(st.Technology, items)

	text, err := r.complete(ctx, st, stepResearch, reportPrompt(st.Technology, items, analysis))
	if err != nil {
		return err
	}

	st.Research = &Report{
		Technology: st.Technology,
		Items:      items,
		Analysis:   analysis,
		Text:       text,
		Timestamp:  time.Now(),
	}
	return nil
}

func (r *Runner) generatePlan(ctx context.Context, st *State) error {
	if st.Research == nil {
		return fmt.Errorf("missing research results")
	}

	content, err := r.complete(ctx, st, stepGenerate, planPrompt(st))
	if err != nil {
		return err
	}

	st.Plan = &Document{
		Content:        content,
		Resources:      buildResources(st.Research.Items),
		Timeline:       buildTimeline(st.DurationHours),
		SuccessMetrics: buildSuccessMetrics(st.Technology, st.Level),
	}
	return nil
}

func (r *Runner) customize(ctx context.Context, st *State) error {
	if st.Plan == nil {
		return fmt.Errorf("missing learning plan")
	}

	content, err := r.complete(ctx, st, stepCustomize, customizePrompt(st))
	if err != nil {
		return err
	}
	st.Plan.Content = content
	st.PersonalizationApplied = true
	return nil
}

func (r *Runner) finalize(_ context.Context, st *State) error {
	if st.Research == nil {
		return fmt.Errorf("missing research results")
	}
	if st.Plan == nil {
		return fmt.Errorf("missing learning plan")
	}

	st.result = &Result{
		Technology:             st.Technology,
		ExperienceLevel:        string(st.Level),
		DurationHours:          st.DurationHours,
		ResearchSummary:        st.Research.Analysis.Summary,
		ResearchReport:         st.Research.Text,
		LearningPlan:           st.Plan.Content,
		Resources:              st.Plan.Resources,
		Timeline:               st.Plan.Timeline,
		SuccessMetrics:         st.Plan.SuccessMetrics,
		PersonalizationApplied: st.PersonalizationApplied,
		Timestamp:              time.Now().Format(time.RFC3339),
		Status:                 string(workflow.StatusCompleted),
	}
	return nil
}

func (r *Runner) complete(ctx context.Context, st *State, step, prompt string) (string, error) {
	if r.llm == nil {
		return "", fmt.Errorf("%s: %w", step, llm.ErrUnavailable)
	}
	resp, err := r.llm.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", step, err)
	}
	if strings.TrimSpace(resp) == "" {
		return "", fmt.Errorf("%s: llm returned empty output", step)
	}
	r.logger.LogLLM(st.RunID, step, len(prompt), len(resp))
	return resp, nil
}
