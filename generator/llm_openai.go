package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIEngine implements Engine against an OpenAI-compatible completions
// endpoint (vLLM, llama.cpp server, TGI and friends) using the openai-go SDK.
// Plain completions are used rather than chat: the checkpoint is a causal LM
// and the prompt is continued as-is.
type OpenAIEngine struct {
	client openai.Client
	spec   ModelSpec
	// extra body fields sent with every request
	extra []option.RequestOption
}

func NewOpenAIEngine(cfg *Settings, spec ModelSpec, httpClient *http.Client) (*OpenAIEngine, error) {
	if cfg == nil {
		return nil, errors.New("engine settings are nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("engine api key missing; set engine.api_key or the env var named by engine.api_key_env")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.MaxRetries >= 0 {
		opts = append(opts, option.WithMaxRetries(cfg.MaxRetries))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	var extra []option.RequestOption
	if spec.Device != "" && spec.Device != DeviceAuto {
		extra = append(extra, option.WithJSONSet("device", string(spec.Device)))
	}
	if spec.DType != "" && spec.DType != DTypeAuto {
		extra = append(extra, option.WithJSONSet("dtype", string(spec.DType)))
	}

	return &OpenAIEngine{
		client: openai.NewClient(opts...),
		spec:   spec,
		extra:  extra,
	}, nil
}

func (o *OpenAIEngine) Model() string { return o.spec.Name }

// Close is a no-op; the SDK client holds no per-model resources.
func (o *OpenAIEngine) Close() error { return nil }

// Verify checks that the engine lists the model.
func (o *OpenAIEngine) Verify(ctx context.Context) error {
	page, err := o.client.Models.List(ctx)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	for _, m := range page.Data {
		if m.ID == o.spec.Name {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrModelNotServed, o.spec.Name)
}

func (o *OpenAIEngine) Generate(ctx context.Context, prompt string, opts Options) (Completion, error) {
	if opts.MaxNewTokens <= 0 {
		return Completion{}, fmt.Errorf("max new tokens must be positive, got %d", opts.MaxNewTokens)
	}
	params := openai.CompletionNewParams{
		Model:     openai.CompletionNewParamsModel(o.spec.Name),
		Prompt:    openai.CompletionNewParamsPromptUnion{OfString: openai.String(prompt)},
		MaxTokens: openai.Int(int64(opts.MaxNewTokens)),
	}
	if opts.Temperature != nil {
		params.Temperature = openai.Float(*opts.Temperature)
	}
	if opts.Seed != nil {
		params.Seed = openai.Int(*opts.Seed)
	}
	if len(opts.Stop) > 0 {
		params.Stop = openai.CompletionNewParamsStopUnion{OfStringArray: opts.Stop}
	}
	if opts.Echo {
		params.Echo = openai.Bool(true)
	}

	resp, err := o.client.Completions.New(ctx, params, o.extra...)
	if err != nil {
		return Completion{}, err
	}
	if len(resp.Choices) == 0 {
		return Completion{}, ErrEmptyCompletion
	}
	choice := resp.Choices[0]
	return Completion{
		Text:             choice.Text,
		FinishReason:     string(choice.FinishReason),
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}
