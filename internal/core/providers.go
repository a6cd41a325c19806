package core

import "context"

// InferenceProvider turns an instruction (plus optional media) into free text.
type InferenceProvider interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
	Model() string
}

type ModelLister interface {
	Models(ctx context.Context) ([]Model, error)
}

type SearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}
