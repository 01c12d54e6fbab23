package english

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rahul/gurukul/internal/llm"
	"github.com/rahul/gurukul/internal/observability"
	"github.com/rahul/gurukul/internal/workflow"
)

// Assistant generates English study material: plans, assessments,
// vocabulary sessions, and conversation practice. Each operation is one
// prompt, one LLM call, one JSON decode. Sessions live in memory only.
type Assistant struct {
	llm    *llm.Client
	logger *observability.Logger

	mu       sync.Mutex
	sessions map[string][]string // user id -> session ids, most recent last
}

func NewAssistant(client *llm.Client, logger *observability.Logger) *Assistant {
	if logger == nil {
		logger = observability.NewQuietLogger()
	}
	return &Assistant{
		llm:      client,
		logger:   logger,
		sessions: make(map[string][]string),
	}
}

// CreateLearningPlan builds a multi-week plan for the user's goals.
func (a *Assistant) CreateLearningPlan(ctx context.Context, userID, level string, goals []string, scenario string, weeks int) (*LearningPlan, error) {
	if len(goals) == 0 {
		return nil, fmt.Errorf("at least one learning goal is required")
	}
	if scenario == "" {
		scenario = "general English"
	}
	if weeks < 1 {
		weeks = 12
	}
	normalized := workflow.NormalizeLevel(level)

	prompt := fmt.Sprintf(`Create an English learning plan as a single JSON object with keys:
"overall_goals" (array of strings), "milestones" (array of {"week": int, "goals": [string], "vocabulary_focus": string, "grammar_focus": string, "practice_activities": [string], "estimated_hours": int}), "daily_schedule" (object of weekday to activity), "resources" ({"textbooks": [string], "websites": [string], "apps": [string], "podcasts": [string]}).

Learner level: %s
Goals: %s
Target scenario: %s
Duration: %d weeks

Respond with JSON only, no commentary.`, normalized, strings.Join(goals, ", "), scenario, weeks)

	plan := &LearningPlan{
		PlanID:         uuid.New().String(),
		UserID:         userID,
		CurrentLevel:   string(normalized),
		LearningGoals:  goals,
		TargetScenario: scenario,
		CreatedAt:      time.Now(),
	}
	if err := a.completeJSON(ctx, "learning_plan", prompt, plan); err != nil {
		return nil, err
	}

	a.recordSession(userID, plan.PlanID)
	return plan, nil
}

// AssessLevel estimates the learner's level from their self-description.
func (a *Assistant) AssessLevel(ctx context.Context, userID, selfDescription string) (*AssessmentResult, error) {
	if strings.TrimSpace(selfDescription) == "" {
		return nil, fmt.Errorf("a self description is required for assessment")
	}

	prompt := fmt.Sprintf(`Assess this learner's English level from their self-description. Respond with a single JSON object:
{"assessed_level": "beginner"|"intermediate"|"advanced", "strengths": [string], "weaknesses": [string], "recommendations": [string]}

Self-description: %s

Respond with JSON only.`, selfDescription)

	res := &AssessmentResult{UserID: userID, CreatedAt: time.Now()}
	if err := a.completeJSON(ctx, "level_assessment", prompt, res); err != nil {
		return nil, err
	}
	res.AssessedLevel = string(workflow.NormalizeLevel(res.AssessedLevel))
	return res, nil
}

// StartVocabularySession produces a themed word list with exercises.
func (a *Assistant) StartVocabularySession(ctx context.Context, userID, topic, level string, wordCount int) (*VocabularySession, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("a topic is required")
	}
	if wordCount < 1 || wordCount > 50 {
		wordCount = 10
	}
	normalized := workflow.NormalizeLevel(level)

	prompt := fmt.Sprintf(`Create a vocabulary session of %d English words on the topic %q for a %s learner. Respond with a single JSON object:
{"words": [{"word": string, "phonetic": string, "part_of_speech": string, "definition": string, "example_sentence": string, "synonyms": [string], "memory_tips": string, "difficulty_level": 1-5}], "learning_strategies": [string]}

Respond with JSON only.`, wordCount, topic, normalized)

	session := &VocabularySession{
		SessionID: uuid.New().String(),
		Topic:     topic,
		CreatedAt: time.Now(),
	}
	if err := a.completeJSON(ctx, "vocabulary_session", prompt, session); err != nil {
		return nil, err
	}
	if len(session.Words) == 0 {
		return nil, fmt.Errorf("vocabulary generation returned no words")
	}

	a.recordSession(userID, session.SessionID)
	return session, nil
}

// StartConversation generates a scenario dialogue for practice.
func (a *Assistant) StartConversation(ctx context.Context, userID, scenario, level string) (*ConversationSession, error) {
	if strings.TrimSpace(scenario) == "" {
		return nil, fmt.Errorf("a scenario is required")
	}
	normalized := workflow.NormalizeLevel(level)

	prompt := fmt.Sprintf(`Create an English conversation practice for the scenario %q at %s level. Respond with a single JSON object:
{"background": string, "dialogue": [{"speaker": string, "text": string, "key_expressions": [string]}], "key_vocabulary": [string], "useful_phrases": [string], "practice_tips": [string]}

Respond with JSON only.`, scenario, normalized)

	session := &ConversationSession{
		SessionID:  uuid.New().String(),
		Scenario:   scenario,
		Difficulty: string(normalized),
		CreatedAt:  time.Now(),
	}
	if err := a.completeJSON(ctx, "conversation", prompt, session); err != nil {
		return nil, err
	}

	a.recordSession(userID, session.SessionID)
	return session, nil
}

// Reply answers a free-form chat message, used by the gateway. Unlike the
// structured operations it returns plain text.
func (a *Assistant) Reply(ctx context.Context, userID, message string) (string, error) {
	if a.llm == nil {
		return "", llm.ErrUnavailable
	}
	prompt := fmt.Sprintf(`You are a friendly English tutor. Reply to the learner's message in simple English, correct any mistakes gently, and keep the conversation going.

Learner: %s`, message)

	resp, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	a.logger.LogLLM(userID, "chat", len(prompt), len(resp))
	return resp, nil
}

// Sessions lists the session ids recorded for a user.
func (a *Assistant) Sessions(userID string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.sessions[userID]))
	copy(out, a.sessions[userID])
	return out
}

func (a *Assistant) recordSession(userID, sessionID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions[userID] = append(a.sessions[userID], sessionID)
}

func (a *Assistant) completeJSON(ctx context.Context, op, prompt string, into any) error {
	if a.llm == nil {
		return fmt.Errorf("%s: %w", op, llm.ErrUnavailable)
	}

	resp, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	a.logger.LogLLM("", op, len(prompt), len(resp))

	cleaned := stripCodeFence(resp)
	if err := json.Unmarshal([]byte(cleaned), into); err != nil {
		return fmt.Errorf("%s: model returned unusable output: %w", op, err)
	}
	return nil
}

// stripCodeFence removes a surrounding ```json fence that models often
// wrap JSON payloads in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
