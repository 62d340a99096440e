package ports

import (
	"context"

	"github.com/thomas-vilte/gitai/internal/models"
)

// ChatBackend sends one chat turn to a language model provider.
type ChatBackend interface {
	// Complete issues a single request carrying the full history. It returns
	// errors.ErrBackendUnavailable when the provider could not be reached or
	// rejected the request.
	Complete(ctx context.Context, req models.ChatRequest) (models.Completion, error)

	// Name returns the provider name (e.g.: "openai", "gemini", "anthropic")
	Name() string

	// Model returns the model identifier sent with every request
	Model() string
}
