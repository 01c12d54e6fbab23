package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rahul/gurukul/internal/llm"
	"github.com/rahul/gurukul/internal/observability"
	"github.com/rahul/gurukul/internal/plan"
	"github.com/rahul/gurukul/internal/research"
	"github.com/rahul/gurukul/internal/store"
	"github.com/rahul/gurukul/internal/workflow"
)

func newPlanCmd() *cobra.Command {
	var (
		level       string
		hours       int
		prefsJSON   string
		output      string
		offline     bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "plan [technology]",
		Short: "Generate a personalized learning plan for a technology",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			req := plan.Request{
				Level:         level,
				DurationHours: hours,
			}
			if len(args) > 0 {
				req.Technology = args[0]
			}
			if prefsJSON != "" {
				if err := json.Unmarshal([]byte(prefsJSON), &req.Preferences); err != nil {
					return fmt.Errorf("parse preferences: %w", err)
				}
			}

			if interactive {
				if !term.IsTerminal(int(os.Stdin.Fd())) {
					return errors.New("interactive mode needs a terminal")
				}
				if err := promptRequest(&req); err != nil {
					return err
				}
			}

			logger := observability.NewLogger()
			if interactive {
				logger = observability.NewQuietLogger()
			}

			client, err := llm.New(cfg.LLM)
			if err != nil && !errors.Is(err, llm.ErrUnavailable) {
				return err
			}

			var sources []research.Source
			if offline {
				sources = []research.Source{research.NewFixtureSource()}
			} else {
				sources = research.DefaultSources(cfg.Search)
			}
			searcher := research.NewSearcher(cfg.Search, logger, sources...)

			runner, err := plan.NewRunner(cfg.Plan, client, searcher, logger)
			if err != nil {
				return err
			}
			result := runner.Run(cmd.Context(), req)

			if err := saveResult(cfg.Memory.Path, result); err != nil {
				fmt.Fprintln(os.Stderr, "Warning: could not save run:", err)
			}
			if output != "" {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return err
				}
			}

			printResult(result)
			if result.Status == string(workflow.StatusError) {
				return fmt.Errorf("plan generation failed: %s", result.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&level, "level", "beginner", "experience level (beginner, intermediate, advanced)")
	cmd.Flags().IntVar(&hours, "hours", 0, "available study hours (0 uses the configured default)")
	cmd.Flags().StringVar(&prefsJSON, "preferences", "", "learning preferences as a JSON object")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the full result JSON to a file")
	cmd.Flags().BoolVar(&offline, "offline", false, "use bundled fixture data instead of live search")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for inputs on the terminal")

	return cmd
}

func promptRequest(req *plan.Request) error {
	r := bufio.NewReader(os.Stdin)

	ask := func(label, current string) (string, error) {
		if current != "" {
			fmt.Printf("%s [%s]: ", label, current)
		} else {
			fmt.Printf("%s: ", label)
		}
		line, err := r.ReadString('\n')
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return current, nil
		}
		return line, nil
	}

	var err error
	if req.Technology, err = ask("Technology to learn", req.Technology); err != nil {
		return err
	}
	if req.Level, err = ask("Experience level (beginner/intermediate/advanced)", req.Level); err != nil {
		return err
	}
	hoursStr, err := ask("Available hours", strconv.Itoa(req.DurationHours))
	if err != nil {
		return err
	}
	if hoursStr != "" {
		if req.DurationHours, err = strconv.Atoi(hoursStr); err != nil {
			return fmt.Errorf("hours must be a number: %w", err)
		}
	}
	style, err := ask("Learning style (visual/reading/hands-on, empty to skip)", "")
	if err != nil {
		return err
	}
	if style != "" {
		if req.Preferences == nil {
			req.Preferences = map[string]any{}
		}
		req.Preferences["learning_style"] = style
	}
	return nil
}

func saveResult(dbPath string, result plan.Result) error {
	runs, err := store.NewRunStore(dbPath)
	if err != nil {
		return err
	}
	defer runs.Close()
	_, err = runs.SaveRun(result.Technology, result.ExperienceLevel, result.DurationHours, result.Status, result)
	return err
}

func printResult(result plan.Result) {
	if result.Status == string(workflow.StatusError) {
		fmt.Printf("Status: %s\n%s\n", result.Status, result.Error)
		return
	}
	fmt.Printf("Learning plan for %s (%s, %d hours)\n\n", result.Technology, result.ExperienceLevel, result.DurationHours)
	fmt.Println(result.LearningPlan)
	if len(result.Timeline) > 0 {
		fmt.Println("\nTimeline:")
		for _, phase := range []string{"foundation_hours", "core_hours", "advanced_hours", "mastery_hours"} {
			if v, ok := result.Timeline[phase]; ok {
				fmt.Printf("  %-16s %d\n", strings.TrimSuffix(phase, "_hours")+":", v)
			}
		}
	}
	if len(result.Resources) > 0 {
		fmt.Println("\nResources:")
		for category, entries := range result.Resources {
			fmt.Printf("  %s:\n", category)
			for _, res := range entries {
				fmt.Printf("    - %s\n", res)
			}
		}
	}
	if result.PersonalizationApplied {
		fmt.Println("\nPlan customized to your preferences.")
	}
}
