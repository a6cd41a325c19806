package media

import (
	"context"
	"errors"

	"github.com/sandevgo/truthlens/internal/core"
	"github.com/sandevgo/truthlens/pkg/log"
)

// AudioInterpreter transcribes, fact-checks and answers a voice note in one call.
type AudioInterpreter struct {
	provider core.InferenceProvider
}

func NewAudioInterpreter(provider core.InferenceProvider) *AudioInterpreter {
	return &AudioInterpreter{provider: provider}
}

func (a *AudioInterpreter) Model() string {
	return a.provider.Model()
}

// Interpret returns the model's four-line report, or a diagnostic string.
func (a *AudioInterpreter) Interpret(ctx context.Context, raw string) string {
	logger := log.FromCtx(ctx)
	logger.Debug().Str("model", a.provider.Model()).Msg("processing audio")

	payload, err := DecodePayload(raw)
	if err != nil {
		logger.Warn().Err(err).Msg("audio payload rejected")
		return "Error analyzing audio: " + err.Error()
	}

	text, err := a.provider.Generate(ctx, core.Prompt{
		Text: audioPrompt,
		Attachments: []core.Attachment{{
			Kind: core.AttachmentAudio,
			MIME: payload.mimeWithPrefix("audio/", "audio/webm"),
			Data: payload.Data,
		}},
	})
	if err != nil {
		logger.Warn().Err(err).Msg("audio interpretation failed")
		if errors.Is(err, core.ErrMissingAPIKey) {
			return MissingKeyMessage
		}
		return "Error analyzing audio: " + err.Error()
	}
	return text
}
