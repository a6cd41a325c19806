package media

import (
	"context"
	"errors"

	"github.com/sandevgo/truthlens/internal/core"
	"github.com/sandevgo/truthlens/pkg/log"
)

const MissingKeyMessage = "Error: Missing API Key."

// ImageInterpreter describes an image for the reasoning loop.
type ImageInterpreter struct {
	provider core.InferenceProvider
}

func NewImageInterpreter(provider core.InferenceProvider) *ImageInterpreter {
	return &ImageInterpreter{provider: provider}
}

// Interpret never fails: errors are returned as diagnostic text.
func (i *ImageInterpreter) Interpret(ctx context.Context, raw string) string {
	logger := log.FromCtx(ctx)
	logger.Debug().Str("model", i.provider.Model()).Msg("processing image")

	payload, err := DecodePayload(raw)
	if err != nil {
		logger.Warn().Err(err).Msg("image payload rejected")
		return "Error reading image: " + err.Error()
	}

	text, err := i.provider.Generate(ctx, core.Prompt{
		Text: imagePrompt,
		Attachments: []core.Attachment{{
			Kind: core.AttachmentImage,
			MIME: payload.mimeWithPrefix("image/", "image/jpeg"),
			Data: payload.Data,
		}},
	})
	if err != nil {
		logger.Warn().Err(err).Msg("image interpretation failed")
		if errors.Is(err, core.ErrMissingAPIKey) {
			return MissingKeyMessage
		}
		return "Error reading image: " + err.Error()
	}
	return text
}
