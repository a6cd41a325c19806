package dispatch

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPayload = errors.New("invalid or empty JSON payload")
	ErrNoInput        = errors.New("no input provided")
)

type Stage string

const (
	StageAudio     Stage = "audio"
	StageImage     Stage = "image"
	StageReasoning Stage = "reasoning"
)

// StageError marks a fatal failure inside one processing stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	switch e.Stage {
	case StageAudio:
		return "Audio processing failed: " + e.Err.Error()
	case StageReasoning:
		return "Generative Agent Failed: " + e.Err.Error()
	default:
		return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
	}
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether err was caused by the request itself.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPayload) || errors.Is(err, ErrNoInput)
}
