package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/thomas-vilte/gitai/internal/config"
	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/logger"
	"github.com/thomas-vilte/gitai/internal/ports"
)

// BackendFactory creates the chat backend of one provider.
type BackendFactory interface {
	// CreateBackend builds a backend for the given key and model
	CreateBackend(ctx context.Context, apiKey, model string) (ports.ChatBackend, error)

	// Name returns the provider name
	Name() config.AI
}

// AIProviderRegistry holds the backend factory of every supported provider.
type AIProviderRegistry struct {
	mu        sync.RWMutex
	factories map[config.AI]BackendFactory
}

func NewAIProviderRegistry() *AIProviderRegistry {
	return &AIProviderRegistry{
		factories: make(map[config.AI]BackendFactory),
	}
}

// Register adds factory under its own name.
func (r *AIProviderRegistry) Register(factory BackendFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := factory.Name()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("AI provider '%s' is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

func (r *AIProviderRegistry) Get(name config.AI) (BackendFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[name]
	if !exists {
		return nil, domainErrors.ErrUnknownProvider.WithContext("provider", string(name))
	}

	return factory, nil
}

// List returns the registered provider names, sorted.
func (r *AIProviderRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]string, 0, len(r.factories))
	for name := range r.factories {
		providers = append(providers, string(name))
	}
	sort.Strings(providers)
	return providers
}

func (r *AIProviderRegistry) IsRegistered(name config.AI) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}

// CreateBackend resolves the API key of provider from creds and builds its
// backend for model. The key is asked for when it is not stored yet.
func (r *AIProviderRegistry) CreateBackend(ctx context.Context, provider config.AI, model string, creds ports.CredentialStore) (ports.ChatBackend, error) {
	factory, err := r.Get(provider)
	if err != nil {
		return nil, err
	}

	apiKey, err := creds.Get(ctx, config.CredentialKeyForAI(provider))
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "creating chat backend", "provider", provider, "model", model)
	return factory.CreateBackend(ctx, apiKey, model)
}
