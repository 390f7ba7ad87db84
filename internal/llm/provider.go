package llm

import "context"

// Provider is a hosted text-generation backend. Implementations return either
// non-empty text or an error; they never retry on their own.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}
