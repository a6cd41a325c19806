package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/truthlens/internal/core"
	"github.com/sandevgo/truthlens/pkg/log"
)

var constructors = map[string]func(baseURL, apiKey, model string, timeout time.Duration, maxRetries int) *OpenAICompatible{
	"gemini":     NewGemini,
	"openai":     NewOpenAI,
	"openrouter": NewOpenRouter,
	"custom":     NewCustomOpenAI,
}

// NewProvider creates the inference client for the configured provider.
// The endpoint always comes from cfg.GetBaseURL(). A missing credential is not
// an error here: calls fail later with core.ErrMissingAPIKey.
func NewProvider(ctx context.Context, cfg core.ProviderConfig) (*OpenAICompatible, error) {
	logger := log.FromCtx(ctx)
	logger.Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Msg("starting llm provider")

	if cfg.GetAPIKey() == "" {
		logger.Warn().Str("provider", cfg.GetProvider()).Msg("no api key configured, inference calls will fail")
	}

	newClient, ok := constructors[cfg.GetProvider()]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.GetProvider())
	}

	baseURL := cfg.GetBaseURL()
	if baseURL == "" {
		return nil, fmt.Errorf("%s provider has no base URL (set CUSTOM_OPENAI_BASE_URL for custom)", cfg.GetProvider())
	}
	return newClient(baseURL, cfg.GetAPIKey(), cfg.GetModel(), cfg.GetTimeout(), cfg.GetMaxRetries()), nil
}
