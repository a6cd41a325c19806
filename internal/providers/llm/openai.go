package llm

import "time"

func NewOpenAI(baseURL, apiKey, model string, timeout time.Duration, maxRetries int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		Timeout:    timeout,
		MaxRetries: maxRetries,
	})
}
