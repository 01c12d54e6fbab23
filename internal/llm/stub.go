package llm

import (
	"context"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// StubModel is a deterministic llms.Model for tests. It records every
// prompt it sees and answers via Respond, or with a canned echo when
// Respond is nil.
type StubModel struct {
	mu      sync.Mutex
	Respond func(prompt string) (string, error)
	Prompts []string
}

var _ llms.Model = (*StubModel)(nil)

func (s *StubModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	prompt := flatten(messages)

	s.mu.Lock()
	s.Prompts = append(s.Prompts, prompt)
	respond := s.Respond
	s.mu.Unlock()

	var text string
	var err error
	if respond != nil {
		text, err = respond(prompt)
	} else {
		text = "stub response"
	}
	if err != nil {
		return nil, err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: text}},
	}, nil
}

func (s *StubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	resp, err := s.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}, options...)
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Content, nil
}

// CallCount reports how many prompts the stub has answered.
func (s *StubModel) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Prompts)
}

func flatten(messages []llms.MessageContent) string {
	var b strings.Builder
	for _, m := range messages {
		for _, p := range m.Parts {
			if t, ok := p.(llms.TextContent); ok {
				b.WriteString(t.Text)
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
