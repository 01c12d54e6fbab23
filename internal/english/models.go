package english

import "time"

// WeeklyMilestone is one week of a learning plan.
type WeeklyMilestone struct {
	Week               int      `json:"week"`
	Goals              []string `json:"goals"`
	VocabularyFocus    string   `json:"vocabulary_focus"`
	GrammarFocus       string   `json:"grammar_focus"`
	PracticeActivities []string `json:"practice_activities"`
	EstimatedHours     int      `json:"estimated_hours"`
}

// Resources lists recommended study material.
type Resources struct {
	Textbooks []string `json:"textbooks"`
	Websites  []string `json:"websites"`
	Apps      []string `json:"apps"`
	Podcasts  []string `json:"podcasts"`
}

// LearningPlan is a personalized multi-week study plan.
type LearningPlan struct {
	PlanID         string            `json:"plan_id"`
	UserID         string            `json:"user_id"`
	CurrentLevel   string            `json:"current_level"`
	LearningGoals  []string          `json:"learning_goals"`
	TargetScenario string            `json:"target_scenario"`
	OverallGoals   []string          `json:"overall_goals"`
	Milestones     []WeeklyMilestone `json:"milestones"`
	DailySchedule  map[string]string `json:"daily_schedule"`
	Resources      Resources         `json:"resources"`
	CreatedAt      time.Time         `json:"created_at"`
}

// AssessmentResult is the outcome of a level assessment.
type AssessmentResult struct {
	UserID          string   `json:"user_id"`
	AssessedLevel   string   `json:"assessed_level"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
	CreatedAt       time.Time `json:"created_at"`
}

// VocabularyWord is one entry in a vocabulary session.
type VocabularyWord struct {
	Word            string   `json:"word"`
	Phonetic        string   `json:"phonetic,omitempty"`
	PartOfSpeech    string   `json:"part_of_speech"`
	Definition      string   `json:"definition"`
	ExampleSentence string   `json:"example_sentence"`
	Synonyms        []string `json:"synonyms,omitempty"`
	MemoryTips      string   `json:"memory_tips,omitempty"`
	DifficultyLevel int      `json:"difficulty_level"`
}

// VocabularySession is a themed batch of words with practice material.
type VocabularySession struct {
	SessionID          string           `json:"session_id"`
	Topic              string           `json:"topic"`
	Words              []VocabularyWord `json:"words"`
	LearningStrategies []string         `json:"learning_strategies"`
	CreatedAt          time.Time        `json:"created_at"`
}

// DialogueTurn is one line of a practice conversation.
type DialogueTurn struct {
	Speaker        string   `json:"speaker"`
	Text           string   `json:"text"`
	KeyExpressions []string `json:"key_expressions,omitempty"`
}

// ConversationSession is a scenario-based dialogue practice.
type ConversationSession struct {
	SessionID     string         `json:"session_id"`
	Scenario      string         `json:"scenario"`
	Difficulty    string         `json:"difficulty_level"`
	Background    string         `json:"background"`
	Dialogue      []DialogueTurn `json:"dialogue"`
	KeyVocabulary []string       `json:"key_vocabulary"`
	UsefulPhrases []string       `json:"useful_phrases"`
	PracticeTips  []string       `json:"practice_tips"`
	CreatedAt     time.Time      `json:"created_at"`
}
