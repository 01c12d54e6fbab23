package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type testState struct {
	visited []string
	branch  bool
}

func visit(name string) Step[testState] {
	return Step[testState]{
		Name: name,
		Run: func(_ context.Context, st *testState) error {
			st.visited = append(st.visited, name)
			return nil
		},
	}
}

func TestPipeline_LinearRun(t *testing.T) {
	p, err := New(nil, visit("a"), visit("b"), visit("c"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	st := &testState{}
	out := p.Run(context.Background(), "run-1", st)

	if out.Status != StatusCompleted {
		t.Fatalf("Expected completed, got %s (err=%q)", out.Status, out.Err)
	}
	if out.Err != "" {
		t.Errorf("Completed run must have empty Err, got %q", out.Err)
	}
	if strings.Join(st.visited, ",") != "a,b,c" {
		t.Errorf("Expected a,b,c, got %v", st.visited)
	}
}

func TestPipeline_ErrorTerminal(t *testing.T) {
	failing := Step[testState]{
		Name: "boom",
		Run: func(_ context.Context, _ *testState) error {
			return errors.New("upstream failed")
		},
	}
	p, err := New(nil, visit("a"), failing, visit("never"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	st := &testState{}
	out := p.Run(context.Background(), "run-2", st)

	if out.Status != StatusError {
		t.Fatalf("Expected error status, got %s", out.Status)
	}
	if out.Err != "upstream failed" {
		t.Errorf("Expected error message propagated, got %q", out.Err)
	}
	for _, v := range st.visited {
		if v == "never" {
			t.Error("Steps after a failure must not run")
		}
	}
}

func TestPipeline_ConditionalBranch(t *testing.T) {
	fork := Step[testState]{
		Name: "fork",
		Run: func(_ context.Context, st *testState) error {
			st.visited = append(st.visited, "fork")
			return nil
		},
		Next: func(st *testState) string {
			if st.branch {
				return "customize"
			}
			return "finalize"
		},
	}
	customize := Step[testState]{
		Name: "customize",
		Run: func(_ context.Context, st *testState) error {
			st.visited = append(st.visited, "customize")
			return nil
		},
	}
	finalize := visit("finalize")

	p, err := New(nil, fork, customize, finalize)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Branch not taken: fork routes straight to finalize.
	st := &testState{branch: false}
	out := p.Run(context.Background(), "run-3", st)
	if out.Status != StatusCompleted {
		t.Fatalf("Expected completed, got %s", out.Status)
	}
	for _, v := range st.visited {
		if v == "customize" {
			t.Error("customize must be skipped when branch is false")
		}
	}

	// Branch taken: fork -> customize -> finalize.
	st = &testState{branch: true}
	out = p.Run(context.Background(), "run-4", st)
	if out.Status != StatusCompleted {
		t.Fatalf("Expected completed, got %s", out.Status)
	}
	if strings.Join(st.visited, ",") != "fork,customize,finalize" {
		t.Errorf("Expected fork,customize,finalize, got %v", st.visited)
	}
}

func TestPipeline_PanicConvertedToError(t *testing.T) {
	panicky := Step[testState]{
		Name: "panicky",
		Run: func(_ context.Context, _ *testState) error {
			panic("nil map write")
		},
	}
	p, err := New(nil, panicky)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	out := p.Run(context.Background(), "run-5", &testState{})
	if out.Status != StatusError {
		t.Fatalf("Expected error status after panic, got %s", out.Status)
	}
	if !strings.Contains(out.Err, "nil map write") {
		t.Errorf("Expected panic message in Err, got %q", out.Err)
	}
}

func TestPipeline_ContextCancellation(t *testing.T) {
	p, err := New(nil, visit("a"), visit("b"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := p.Run(ctx, "run-6", &testState{})
	if out.Status != StatusError {
		t.Fatalf("Expected error status for canceled context, got %s", out.Status)
	}
}

func TestPipeline_UnknownRoute(t *testing.T) {
	bad := Step[testState]{
		Name: "bad",
		Run:  func(_ context.Context, _ *testState) error { return nil },
		Next: func(_ *testState) string { return "nowhere" },
	}
	p, err := New(nil, bad)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	out := p.Run(context.Background(), "run-7", &testState{})
	if out.Status != StatusError {
		t.Fatalf("Expected error status for unknown route, got %s", out.Status)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New[testState](nil); err == nil {
		t.Error("Expected error for empty pipeline")
	}
	if _, err := New(nil, visit("a"), visit("a")); err == nil {
		t.Error("Expected error for duplicate step name")
	}
	if _, err := New(nil, Step[testState]{Name: "noop"}); err == nil {
		t.Error("Expected error for step without run function")
	}
}

func TestNormalizeLevel(t *testing.T) {
	cases := map[string]Level{
		"beginner":     LevelBeginner,
		"intermediate": LevelIntermediate,
		"advanced":     LevelAdvanced,
		"expert":       LevelBeginner,
		"":             LevelBeginner,
		"BEGINNER":     LevelBeginner,
	}
	for in, want := range cases {
		if got := NormalizeLevel(in); got != want {
			t.Errorf("NormalizeLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
