package llm

import "time"

// NewGemini targets Google's OpenAI-compatible surface of the Generative Language API.
func NewGemini(baseURL, apiKey, model string, timeout time.Duration, maxRetries int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		Timeout:    timeout,
		MaxRetries: maxRetries,
	})
}
