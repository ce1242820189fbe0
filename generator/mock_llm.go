package generator

import (
	"context"
	"errors"
	"strings"
)

// ErrMockFailure is what a MockEngine returns for a failing prompt when no
// FailErr is configured.
var ErrMockFailure = errors.New("mock engine failure")

// MockEngine continues every prompt with a fixed, deterministic sentence so
// runs can be exercised offline without a model server.
type MockEngine struct {
	Name string
	// Fail makes Generate error on any prompt containing it. The error is
	// FailErr, or ErrMockFailure when FailErr is nil.
	Fail    string
	FailErr error

	closed bool
	calls  []string
}

func (m *MockEngine) Model() string { return m.Name }

func (m *MockEngine) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *MockEngine) Closed() bool { return m.closed }

// Calls returns the prompts seen so far, in order.
func (m *MockEngine) Calls() []string { return append([]string(nil), m.calls...) }

func (m *MockEngine) Generate(ctx context.Context, prompt string, opts Options) (Completion, error) {
	if err := ctx.Err(); err != nil {
		return Completion{}, err
	}
	m.calls = append(m.calls, prompt)
	if m.Fail != "" && strings.Contains(prompt, m.Fail) {
		if m.FailErr != nil {
			return Completion{}, m.FailErr
		}
		return Completion{}, ErrMockFailure
	}

	var sb strings.Builder
	if opts.Echo {
		sb.WriteString(prompt)
		sb.WriteString(" ")
	}
	sb.WriteString("[mock continuation of ")
	sb.WriteString(strings.TrimSpace(prompt))
	sb.WriteString("]")
	text := sb.String()

	words := strings.Fields(text)
	finish := "stop"
	if opts.MaxNewTokens > 0 && len(words) > opts.MaxNewTokens {
		words = words[:opts.MaxNewTokens]
		text = strings.Join(words, " ")
		finish = "length"
	}
	return Completion{
		Text:             text,
		FinishReason:     finish,
		PromptTokens:     int64(len(strings.Fields(prompt))),
		CompletionTokens: int64(len(words)),
	}, nil
}
