package config

import (
	"context"
	"time"

	"github.com/sandevgo/truthlens/pkg/log"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderCustom     = "custom"
)

const (
	GeminiBaseURL     = "https://generativelanguage.googleapis.com/v1beta/openai/"
	OpenAIBaseURL     = "https://api.openai.com/v1/"
	OpenRouterBaseURL = "https://openrouter.ai/api/v1/"
)

type InferenceConfig struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"gemini"`
	Model    string `env:"LLM_MODEL" envDefault:"gemini-2.5-flash"`

	GoogleAPIKey        string `env:"GOOGLE_API_KEY"`
	GeminiAPIKey        string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey        string `env:"OPENAI_API_KEY"`
	OpenRouterAPIKey    string `env:"OPENROUTER_API_KEY"`
	CustomOpenAIAPIKey  string `env:"CUSTOM_OPENAI_API_KEY"`
	CustomOpenAIBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`

	Timeout    time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
	MaxRetries int           `env:"LLM_MAX_RETRIES" envDefault:"1"`
}

func NewInferenceConfig(ctx context.Context) *InferenceConfig {
	c, err := load[InferenceConfig](nil)
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Inference config")
	}
	return c
}

func (c InferenceConfig) GetProvider() string       { return c.Provider }
func (c InferenceConfig) GetModel() string          { return c.Model }
func (c InferenceConfig) GetTimeout() time.Duration { return c.Timeout }
func (c InferenceConfig) GetMaxRetries() int        { return c.MaxRetries }

// GetAPIKey returns the credential of the selected provider. For Gemini the
// GOOGLE_API_KEY wins over GEMINI_API_KEY.
func (c InferenceConfig) GetAPIKey() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderOpenRouter:
		return c.OpenRouterAPIKey
	case ProviderCustom:
		return c.CustomOpenAIAPIKey
	default:
		if c.GoogleAPIKey != "" {
			return c.GoogleAPIKey
		}
		return c.GeminiAPIKey
	}
}

func (c InferenceConfig) GetBaseURL() string {
	switch c.Provider {
	case ProviderOpenAI:
		return OpenAIBaseURL
	case ProviderOpenRouter:
		return OpenRouterBaseURL
	case ProviderCustom:
		return c.CustomOpenAIBaseURL
	default:
		return GeminiBaseURL
	}
}
