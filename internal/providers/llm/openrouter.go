package llm

import (
	"time"

	"github.com/sandevgo/truthlens/internal/core"
)

func NewOpenRouter(baseURL, apiKey, model string, timeout time.Duration, maxRetries int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		Timeout:    timeout,
		MaxRetries: maxRetries,
		ExtraHeaders: map[string]string{
			"HTTP-Referer": core.RepositoryURL,
			"X-Title":      core.AppName,
		},
	})
}
