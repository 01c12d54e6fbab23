package workflow

import (
	"context"
	"fmt"

	"github.com/rahul/gurukul/internal/observability"
)

// Status is the lifecycle state of a pipeline run.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Level is a user's experience level. Anything outside the three known
// values is coerced to beginner, silently.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func NormalizeLevel(s string) Level {
	switch Level(s) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return Level(s)
	default:
		return LevelBeginner
	}
}

// Step is one named unit of a pipeline. Run mutates the shared state and
// returns an error to abort the run. Next, when set, names the step to
// execute afterwards; when nil the pipeline falls through to the next step
// in registration order.
type Step[S any] struct {
	Name string
	Run  func(ctx context.Context, state *S) error
	Next func(state *S) string
}

// Outcome is the terminal result of a pipeline run. Exactly one of
// {Err non-empty, Status == StatusCompleted} holds.
type Outcome struct {
	Status Status
	Err    string
	Steps  []string // names of the steps that ran, in order
}

// Pipeline executes a fixed ordered sequence of steps against a shared
// state. There is no retry and no resumption: the first failing step ends
// the run in the error terminal.
type Pipeline[S any] struct {
	steps  []Step[S]
	index  map[string]int
	logger *observability.Logger
}

func New[S any](logger *observability.Logger, steps ...Step[S]) (*Pipeline[S], error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("pipeline needs at least one step")
	}
	index := make(map[string]int, len(steps))
	for i, s := range steps {
		if s.Name == "" {
			return nil, fmt.Errorf("step %d has no name", i)
		}
		if s.Run == nil {
			return nil, fmt.Errorf("step %q has no run function", s.Name)
		}
		if _, dup := index[s.Name]; dup {
			return nil, fmt.Errorf("duplicate step name %q", s.Name)
		}
		index[s.Name] = i
	}
	if logger == nil {
		logger = observability.NewQuietLogger()
	}
	return &Pipeline[S]{steps: steps, index: index, logger: logger}, nil
}

// Run executes the pipeline from the first step. Failures are converted
// into the error terminal; nothing escapes past this boundary, panics
// included.
func (p *Pipeline[S]) Run(ctx context.Context, runID string, state *S) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{
				Status: StatusError,
				Err:    fmt.Sprintf("internal error: %v", r),
				Steps:  out.Steps,
			}
			p.logger.LogError(runID, "", fmt.Errorf("panic: %v", r))
		}
	}()

	i := 0
	for i >= 0 && i < len(p.steps) {
		step := p.steps[i]
		out.Steps = append(out.Steps, step.Name)
		p.logger.LogStep(runID, step.Name, string(StatusRunning))

		if err := ctx.Err(); err != nil {
			p.logger.LogError(runID, step.Name, err)
			out.Status = StatusError
			out.Err = err.Error()
			return out
		}

		if err := step.Run(ctx, state); err != nil {
			p.logger.LogError(runID, step.Name, err)
			out.Status = StatusError
			out.Err = err.Error()
			return out
		}
		p.logger.LogStep(runID, step.Name, string(StatusCompleted))

		if step.Next != nil {
			name := step.Next(state)
			if name == "" {
				break
			}
			next, ok := p.index[name]
			if !ok {
				out.Status = StatusError
				out.Err = fmt.Sprintf("step %q routed to unknown step %q", step.Name, name)
				return out
			}
			i = next
			continue
		}
		i++
	}

	out.Status = StatusCompleted
	return out
}
