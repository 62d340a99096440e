package anthropic

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/thomas-vilte/gitai/internal/config"
	"github.com/thomas-vilte/gitai/internal/ports"
)

// Factory creates Anthropic backends for the provider registry.
type Factory struct {
	Options []option.RequestOption
}

func (f Factory) Name() config.AI { return config.AIAnthropic }

func (f Factory) CreateBackend(_ context.Context, apiKey, model string) (ports.ChatBackend, error) {
	return NewBackend(apiKey, model, f.Options...)
}
