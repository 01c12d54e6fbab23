package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rahul/gurukul/internal/english"
	"github.com/rahul/gurukul/internal/llm"
	"github.com/rahul/gurukul/internal/observability"
)

func newEnglishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "english",
		Short: "English learning assistant: plans, level assessment, vocabulary, and chat",
	}

	cmd.AddCommand(newEnglishPlanCmd())
	cmd.AddCommand(newEnglishAssessCmd())
	cmd.AddCommand(newEnglishVocabCmd())
	cmd.AddCommand(newEnglishChatCmd())

	return cmd
}

func buildAssistant(quiet bool) (*english.Assistant, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := observability.NewLogger()
	if quiet {
		logger = observability.NewQuietLogger()
	}
	client, err := llm.New(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("english assistant needs an LLM: %w", err)
	}
	return english.NewAssistant(client, logger), nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func newEnglishPlanCmd() *cobra.Command {
	var (
		level    string
		goals    []string
		scenario string
		weeks    int
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Create a weekly English learning plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			assistant, err := buildAssistant(false)
			if err != nil {
				return err
			}
			plan, err := assistant.CreateLearningPlan(cmd.Context(), "cli", level, goals, scenario, weeks)
			if err != nil {
				return err
			}
			return printJSON(plan)
		},
	}
	cmd.Flags().StringVar(&level, "level", "beginner", "current English level")
	cmd.Flags().StringSliceVar(&goals, "goal", nil, "learning goal (repeatable)")
	cmd.Flags().StringVar(&scenario, "scenario", "", "usage scenario, e.g. business meetings")
	cmd.Flags().IntVar(&weeks, "weeks", 12, "plan duration in weeks")
	return cmd
}

func newEnglishAssessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess [self-description]",
		Short: "Estimate your English level from a short self-description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := buildAssistant(false)
			if err != nil {
				return err
			}
			result, err := assistant.AssessLevel(cmd.Context(), "cli", strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	return cmd
}

func newEnglishVocabCmd() *cobra.Command {
	var (
		level string
		count int
	)
	cmd := &cobra.Command{
		Use:   "vocab [topic]",
		Short: "Generate a themed vocabulary session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := buildAssistant(false)
			if err != nil {
				return err
			}
			session, err := assistant.StartVocabularySession(cmd.Context(), "cli", strings.Join(args, " "), level, count)
			if err != nil {
				return err
			}
			return printJSON(session)
		},
	}
	cmd.Flags().StringVar(&level, "level", "beginner", "learner level")
	cmd.Flags().IntVar(&count, "count", 10, "number of words")
	return cmd
}

func newEnglishChatCmd() *cobra.Command {
	var (
		level    string
		scenario string
	)
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Practice English in a role-play conversation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			assistant, err := buildAssistant(true)
			if err != nil {
				return err
			}
			if scenario != "" {
				session, err := assistant.StartConversation(cmd.Context(), "cli", scenario, level)
				if err != nil {
					return err
				}
				fmt.Printf("Scenario: %s\n%s\n\n", session.Scenario, session.Background)
				for _, turn := range session.Dialogue {
					fmt.Printf("%s: %s\n", turn.Speaker, turn.Text)
				}
				fmt.Println()
			}
			fmt.Println("Type your messages. Ctrl-D to quit.")

			r := bufio.NewReader(os.Stdin)
			for {
				fmt.Print("> ")
				line, err := r.ReadString('\n')
				if err != nil {
					fmt.Println()
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				reply, err := assistant.Reply(cmd.Context(), "cli", line)
				if err != nil {
					return err
				}
				fmt.Println(reply)
			}
		},
	}
	cmd.Flags().StringVar(&level, "level", "beginner", "learner level")
	cmd.Flags().StringVar(&scenario, "scenario", "", "open with a role-play scenario")
	return cmd
}
