package generator

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUnknownProvider = errors.New("unknown engine provider")
	ErrEmptyCompletion = errors.New("engine returned no completion")
	ErrNoPrompts       = errors.New("no prompts to run")
	ErrModelNotServed  = errors.New("model not served by engine")
)

// Engine is a loaded model that can continue text. Tokenisation, device
// placement and decoding all happen behind it.
type Engine interface {
	Generate(ctx context.Context, prompt string, opts Options) (Completion, error)
	Model() string
	Close() error
}

// Settings selects and configures the engine backend.
type Settings struct {
	Provider    string
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	MaxRetries  int
	VerifyModel bool
}

const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderMock     = "mock"
)
