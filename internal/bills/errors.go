package bills

import "errors"

var (
	// ErrEmptyAIResponse signals a blank or whitespace-only model response.
	ErrEmptyAIResponse = errors.New("AI returned no JSON text")
	// ErrInvalidAIJSON signals a model response that did not parse as JSON.
	ErrInvalidAIJSON = errors.New("AI returned invalid JSON")
	// ErrNotFound signals a missing bill record.
	ErrNotFound = errors.New("not found")
)
