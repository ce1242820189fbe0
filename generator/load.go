package generator

import (
	"context"
	"fmt"
	"net/http"

	"model_output_report/logger"
)

// Load resolves the model against the configured provider and returns an
// engine ready to generate. The caller owns the engine and must Close it.
func Load(ctx context.Context, cfg Settings, spec ModelSpec, httpClient *http.Client) (Engine, error) {
	log := logger.FromContext(ctx)
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case ProviderMock:
		log.Debug("using mock engine", "model", spec.Name)
		return &MockEngine{Name: spec.Name}, nil
	case ProviderOpenAI, ProviderDeepSeek, "":
		// DeepSeek and self-hosted servers speak the OpenAI protocol but need an explicit base_url.
		if cfg.Provider == ProviderDeepSeek && cfg.BaseURL == "" {
			return nil, fmt.Errorf("engine provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		eng, err := NewOpenAIEngine(&cfg, spec, httpClient)
		if err != nil {
			return nil, err
		}
		if cfg.VerifyModel {
			if err := eng.Verify(ctx); err != nil {
				return nil, err
			}
			log.Debug("model verified", "model", spec.Name, "base_url", cfg.BaseURL)
		}
		log.Info("model loaded", "model", spec.Name, "device", spec.Device, "dtype", spec.DType)
		return eng, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}
