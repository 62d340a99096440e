package openai

import (
	"context"

	"github.com/thomas-vilte/gitai/internal/config"
	"github.com/thomas-vilte/gitai/internal/ports"
)

// Factory creates OpenAI backends for the provider registry.
type Factory struct {
	// BaseURL overrides the API endpoint, for OpenAI compatible servers.
	BaseURL string
}

func (f Factory) Name() config.AI { return config.AIOpenAI }

func (f Factory) CreateBackend(_ context.Context, apiKey, model string) (ports.ChatBackend, error) {
	return NewBackend(apiKey, model, f.BaseURL)
}
