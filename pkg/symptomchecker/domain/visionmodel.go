package domain

import "context"

// VisionModel a generic interface for a hosted multimodal (image + text) model.
type VisionModel interface {
	// Name the name of the model. Useful for debugging.
	Name() string
	// Infer submits the chat document and returns the text of the first candidate.
	Infer(ctx context.Context, messages []ChatMessage) (string, error)
}
