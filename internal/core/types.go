package core

import (
	"context"
	"errors"
)

const (
	AppName       = "TruthLens"
	UserAgent     = "TruthLens-Backend/0.1"
	RepositoryURL = "https://github.com/sandevgo/truthlens"
	Version       = "0.1.0"
)

// ErrMissingAPIKey is returned by collaborators constructed without a credential.
var ErrMissingAPIKey = errors.New("missing API key")

// ToolFunc performs one capability call on a short keyword input.
type ToolFunc func(ctx context.Context, input string) (string, error)

// Tool is a named capability the reasoning loop can select.
type Tool struct {
	Name        string
	Description string
	Invoke      ToolFunc
}

type AttachmentKind string

const (
	AttachmentImage AttachmentKind = "image"
	AttachmentAudio AttachmentKind = "audio"
)

// Attachment is a decoded binary payload sent along with an instruction.
type Attachment struct {
	Kind AttachmentKind
	MIME string
	Data []byte
}

// Prompt is a single-turn request to the inference service.
type Prompt struct {
	Text        string
	Attachments []Attachment
	Temperature float64
}

type SearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score,omitempty"`
}

type Model struct {
	ID   string
	Name string
}
