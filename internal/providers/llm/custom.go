package llm

import "time"

func NewCustomOpenAI(baseURL, apiKey, model string, timeout time.Duration, maxRetries int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		Model:       model,
		Timeout:     timeout,
		MaxRetries:  maxRetries,
		KeyOptional: true,
	})
}
