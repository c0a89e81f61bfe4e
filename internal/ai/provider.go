package ai

import "context"

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Request carries one prompt for the model plus the repo it belongs to, so
// wrappers can key rate limits and spend by repository.
type Request struct {
	Repo   string
	Prompt string
}

type Response struct {
	Content  string
	Provider string
	Model    string
	Usage    Usage
}

// Provider is a single text-in text-out call against a model backend.
type Provider interface {
	Generate(ctx context.Context, r Request) (Response, error)
}
