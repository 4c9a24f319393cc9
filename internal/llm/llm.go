package llm

import (
	"context"
	"errors"
)

// Client abstracts the generative-AI provider used for bill processing.
type Client interface {
	// GenerateText submits a plain text prompt and returns the raw model text.
	GenerateText(ctx context.Context, prompt string) (string, error)
	// TranscribeImage submits image bytes and returns the transcribed text.
	// An empty transcript is not an error.
	TranscribeImage(ctx context.Context, mimeType string, data []byte) (string, error)
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// GenerateText returns ErrNotImplemented.
func (PlaceholderClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotImplemented
}

// TranscribeImage returns ErrNotImplemented.
func (PlaceholderClient) TranscribeImage(ctx context.Context, mimeType string, data []byte) (string, error) {
	_ = ctx
	_ = mimeType
	_ = data
	return "", ErrNotImplemented
}
