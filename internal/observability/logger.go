package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// EventType defines the category of the log event.
type EventType string

const (
	EventTypeWorkflowStep EventType = "workflow_step"
	EventTypeSearch       EventType = "search"
	EventTypeLLM          EventType = "llm"
	EventTypeRAGQuery     EventType = "rag_query"
	EventTypeGateway      EventType = "gateway"
	EventTypeError        EventType = "error"
)

// Event represents a structured log entry.
type Event struct {
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
	Step      string    `json:"step,omitempty"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// Logger emits structured JSON events. LLM events are additionally
// appended to a size-rotated file so prompts survive process exits.
type Logger struct {
	out        io.Writer
	llmLogPath string
	maxSize    int64
}

func NewLogger() *Logger {
	return &Logger{
		out:        os.Stdout,
		llmLogPath: filepath.Join("logs", "llm.jsonl"),
		maxSize:    10 * 1024 * 1024, // 10MB
	}
}

// NewQuietLogger discards event output. Used by the interactive CLI so the
// event stream never interleaves with prompts.
func NewQuietLogger() *Logger {
	return &Logger{
		out:        io.Discard,
		llmLogPath: filepath.Join("logs", "llm.jsonl"),
		maxSize:    10 * 1024 * 1024,
	}
}

// Log emits a structured JSON event.
func (l *Logger) Log(evt Event) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	data, err := json.Marshal(evt)
	if err != nil {
		fmt.Fprintf(l.out, "{\"error\": \"failed to marshal event: %v\"}\n", err)
		return
	}
	fmt.Fprintln(l.out, string(data))

	if evt.Type == EventTypeLLM {
		l.writeToFile(data)
	}
}

func (l *Logger) writeToFile(data []byte) {
	if err := os.MkdirAll(filepath.Dir(l.llmLogPath), 0755); err != nil {
		log.Printf("failed to create log directory: %v", err)
		return
	}

	// Check size before writing
	info, err := os.Stat(l.llmLogPath)
	if err == nil && info.Size() > l.maxSize {
		l.rotateLogs()
	}

	f, err := os.OpenFile(l.llmLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("failed to open log file: %v", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		log.Printf("failed to write to log file: %v", err)
	}
}

func (l *Logger) rotateLogs() {
	// Simple rotation: keep one .old file
	oldPath := l.llmLogPath + ".old"
	_ = os.Remove(oldPath)
	_ = os.Rename(l.llmLogPath, oldPath)
}

// Helper methods for common events

func (l *Logger) LogStep(runID, step, status string) {
	l.Log(Event{
		Type:  EventTypeWorkflowStep,
		RunID: runID,
		Step:  step,
		Data:  map[string]string{"status": status},
	})
}

func (l *Logger) LogSearch(runID, source, query string, results int, err error) {
	data := map[string]any{
		"source":  source,
		"query":   query,
		"results": results,
	}
	if err != nil {
		data["error"] = err.Error()
	}
	l.Log(Event{
		Type:  EventTypeSearch,
		RunID: runID,
		Data:  data,
	})
}

func (l *Logger) LogLLM(runID, step string, promptChars, responseChars int) {
	l.Log(Event{
		Type:  EventTypeLLM,
		RunID: runID,
		Step:  step,
		Data: map[string]int{
			"prompt_chars":   promptChars,
			"response_chars": responseChars,
		},
	})
}

func (l *Logger) LogError(runID, step string, err error) {
	l.Log(Event{
		Type:  EventTypeError,
		RunID: runID,
		Step:  step,
		Data:  map[string]string{"message": err.Error()},
	})
}
