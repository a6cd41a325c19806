package installer

import "github.com/sandevgo/truthlens/internal/config"

// Settings is what the wizard writes to the runtime .env.
// Empty fields and values equal to envDefault are omitted.
type Settings struct {
	Provider         string `env:"LLM_PROVIDER"`
	Model            string `env:"LLM_MODEL"`
	GoogleAPIKey     string `env:"GOOGLE_API_KEY"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`
	CustomAPIKey     string `env:"CUSTOM_OPENAI_API_KEY"`
	CustomBaseURL    string `env:"CUSTOM_OPENAI_BASE_URL"`
	TavilyAPIKey     string `env:"TAVILY_API_KEY"`
	AllowedOrigin    string `env:"TRUTHLENS_ALLOWED_ORIGIN" envDefault:"http://localhost:5173"`
	Port             int    `env:"GEMINI_PORT" envDefault:"5500"`
	Debug            string `env:"TRUTHLENS_DEBUG"`
}

type InstallState struct {
	Settings Settings
}

func NewInstallState() *InstallState {
	return &InstallState{}
}

// SetAPIKey stores key in the variable read by the selected provider.
func (s *InstallState) SetAPIKey(key string) {
	switch s.Settings.Provider {
	case config.ProviderOpenAI:
		s.Settings.OpenAIAPIKey = key
	case config.ProviderOpenRouter:
		s.Settings.OpenRouterAPIKey = key
	case config.ProviderCustom:
		s.Settings.CustomAPIKey = key
	default:
		s.Settings.GoogleAPIKey = key
	}
}

// APIKey returns the key stored for the selected provider.
func (s *InstallState) APIKey() string {
	return s.Inference().GetAPIKey()
}

// Inference mirrors the collected answers as an inference config, for model listing.
func (s *InstallState) Inference() *config.InferenceConfig {
	return &config.InferenceConfig{
		Provider:            s.Settings.Provider,
		Model:               s.Settings.Model,
		GoogleAPIKey:        s.Settings.GoogleAPIKey,
		OpenAIAPIKey:        s.Settings.OpenAIAPIKey,
		OpenRouterAPIKey:    s.Settings.OpenRouterAPIKey,
		CustomOpenAIAPIKey:  s.Settings.CustomAPIKey,
		CustomOpenAIBaseURL: s.Settings.CustomBaseURL,
		Timeout:             defaultListTimeout,
	}
}

// DefaultModel is offered when the provider cannot list its models.
func DefaultModel(provider string) string {
	switch provider {
	case config.ProviderOpenAI:
		return "gpt-4o-mini"
	case config.ProviderOpenRouter:
		return "google/gemini-2.5-flash"
	case config.ProviderCustom:
		return ""
	default:
		return "gemini-2.5-flash"
	}
}
