package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"model_output_report/logger"
)

// Observer receives per-prompt measurements.
type Observer interface {
	ObserveGeneration(d time.Duration, promptTokens, completionTokens int64)
	ObserveFailure()
}

// Runner feeds prompts through an engine one at a time.
type Runner struct {
	engine   Engine
	opts     Options
	observer Observer
}

func NewRunner(engine Engine, opts Options, observer Observer) (*Runner, error) {
	if engine == nil {
		return nil, errors.New("engine is required")
	}
	if opts.MaxNewTokens <= 0 {
		return nil, fmt.Errorf("max new tokens must be positive, got %d", opts.MaxNewTokens)
	}
	return &Runner{engine: engine, opts: opts, observer: observer}, nil
}

// Run generates a response for every prompt in order. Each prompt completes
// before the next starts. The first failure aborts the run and no results
// are returned.
func (r *Runner) Run(ctx context.Context, prompts []string) ([]Result, error) {
	if len(prompts) == 0 {
		return nil, ErrNoPrompts
	}
	log := logger.FromContext(ctx)

	results := make([]Result, 0, len(prompts))
	for i, prompt := range prompts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Debug("generating", "index", i+1, "of", len(prompts), "max_new_tokens", r.opts.MaxNewTokens)

		start := time.Now()
		c, err := r.engine.Generate(ctx, prompt, r.opts)
		elapsed := time.Since(start)
		if err != nil {
			if r.observer != nil {
				r.observer.ObserveFailure()
			}
			return nil, fmt.Errorf("prompt %d: %w", i+1, err)
		}
		if r.observer != nil {
			r.observer.ObserveGeneration(elapsed, c.PromptTokens, c.CompletionTokens)
		}

		res := Result{
			Index:            i + 1,
			Prompt:           prompt,
			Response:         Clean(c.Text),
			FinishReason:     c.FinishReason,
			PromptTokens:     c.PromptTokens,
			CompletionTokens: c.CompletionTokens,
			Duration:         elapsed,
		}
		log.Info("prompt done", "index", res.Index, "finish_reason", res.FinishReason,
			"completion_tokens", res.CompletionTokens, "elapsed", elapsed.Round(time.Millisecond).String())
		results = append(results, res)
	}
	return results, nil
}
