package gemini

import (
	"context"

	"github.com/thomas-vilte/gitai/internal/config"
	"github.com/thomas-vilte/gitai/internal/ports"
	"google.golang.org/api/option"
)

// Factory creates Gemini backends for the provider registry.
type Factory struct {
	Options []option.ClientOption
}

func (f Factory) Name() config.AI { return config.AIGemini }

func (f Factory) CreateBackend(ctx context.Context, apiKey, model string) (ports.ChatBackend, error) {
	return NewBackend(ctx, apiKey, model, f.Options...)
}
