package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"github.com/sandevgo/truthlens/internal/core"
	"github.com/sandevgo/truthlens/pkg/retry"
)

var ErrEmptyChoices = errors.New("empty choices")

// OpenAICompatible talks to any chat-completions endpoint. Gemini, OpenAI,
// OpenRouter and self-hosted servers only differ in base URL and headers.
type OpenAICompatible struct {
	client      openai.Client
	retrier     *retry.Retrier
	apiKey      string
	model       string
	keyOptional bool
}

type OpenAICompatibleConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	ExtraHeaders map[string]string
	Timeout      time.Duration
	MaxRetries   int
	// Self-hosted servers often run without auth
	KeyOptional bool
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	opts := []option.RequestOption{
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHeader("User-Agent", core.UserAgent),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	for k, v := range cfg.ExtraHeaders {
		opts = append(opts, option.WithHeader(k, v))
	}

	retryCfg := retry.NewDefaultConfig()
	retryCfg.MaxRetries = cfg.MaxRetries
	retryCfg.Retryable = isRetryable

	return &OpenAICompatible{
		client:      openai.NewClient(opts...),
		retrier:     retry.NewRetrier(retryCfg),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		keyOptional: cfg.KeyOptional,
	}
}

func (o *OpenAICompatible) Model() string {
	return o.model
}

// Generate sends the prompt as a single user turn and returns the first choice.
func (o *OpenAICompatible) Generate(ctx context.Context, prompt core.Prompt) (string, error) {
	if o.apiKey == "" && !o.keyOptional {
		return "", core.ErrMissingAPIKey
	}

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(o.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{userMessage(prompt)},
		Temperature: openai.Float(prompt.Temperature),
	}

	var content string
	err := o.retrier.Do(ctx, func() error {
		resp, err := o.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return retry.Permanent(ErrEmptyChoices)
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return content, nil
}

func (o *OpenAICompatible) Models(ctx context.Context) ([]core.Model, error) {
	if o.apiKey == "" && !o.keyOptional {
		return nil, core.ErrMissingAPIKey
	}

	page, err := o.client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch models: %w", err)
	}

	models := make([]core.Model, 0, len(page.Data))
	for _, m := range page.Data {
		models = append(models, core.Model{
			ID:   m.ID,
			Name: strings.TrimPrefix(m.ID, "models/"),
		})
	}
	return models, nil
}

func userMessage(prompt core.Prompt) openai.ChatCompletionMessageParamUnion {
	if len(prompt.Attachments) == 0 {
		return openai.UserMessage(prompt.Text)
	}

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(prompt.Text),
	}
	for _, a := range prompt.Attachments {
		encoded := base64.StdEncoding.EncodeToString(a.Data)
		switch a.Kind {
		case core.AttachmentAudio:
			parts = append(parts, openai.InputAudioContentPart(openai.ChatCompletionContentPartInputAudioInputAudioParam{
				Data:   encoded,
				Format: audioFormat(a.MIME),
			}))
		default:
			parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: "data:" + a.MIME + ";base64," + encoded,
			}))
		}
	}
	return openai.UserMessage(parts)
}

// audioFormat maps a MIME type to the input_audio format name.
func audioFormat(mime string) string {
	sub := strings.TrimPrefix(strings.ToLower(mime), "audio/")
	if i := strings.IndexAny(sub, ";+"); i >= 0 {
		sub = sub[:i]
	}
	switch sub {
	case "mpeg", "mp3":
		return "mp3"
	case "wav", "x-wav", "wave", "vnd.wave":
		return "wav"
	case "ogg", "flac", "aac", "aiff", "webm":
		return sub
	default:
		return "webm"
	}
}

// isRetryable treats transport failures, 429 and 5xx as transient.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}
