package ai

import (
	"context"
	"sync"
	"time"

	"github.com/thomas-vilte/gitai/internal/logger"
	"github.com/thomas-vilte/gitai/internal/models"
	"github.com/thomas-vilte/gitai/internal/ports"
)

var _ ports.ChatBackend = (*UsageTracker)(nil)

// UsageTracker wraps a backend and adds up the tokens reported by every turn.
type UsageTracker struct {
	backend ports.ChatBackend

	mu    sync.Mutex
	total models.TokenUsage
	turns int
}

func NewUsageTracker(backend ports.ChatBackend) *UsageTracker {
	return &UsageTracker{backend: backend}
}

func (u *UsageTracker) Name() string  { return u.backend.Name() }
func (u *UsageTracker) Model() string { return u.backend.Model() }

func (u *UsageTracker) Complete(ctx context.Context, req models.ChatRequest) (models.Completion, error) {
	start := time.Now()
	completion, err := u.backend.Complete(ctx, req)
	if err != nil {
		return completion, err
	}

	u.mu.Lock()
	u.turns++
	if completion.Usage != nil {
		u.total.InputTokens += completion.Usage.InputTokens
		u.total.OutputTokens += completion.Usage.OutputTokens
		u.total.TotalTokens += completion.Usage.TotalTokens
	}
	turns, total := u.turns, u.total
	u.mu.Unlock()

	logger.Debug(ctx, "usage updated",
		"turn", turns,
		"session_total_tokens", total.TotalTokens,
		"duration_ms", time.Since(start).Milliseconds())

	return completion, nil
}

// Total returns the usage of every successful turn so far, or nil when no
// turn reported any.
func (u *UsageTracker) Total() *models.TokenUsage {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.total == (models.TokenUsage{}) {
		return nil
	}
	total := u.total
	return &total
}

// Turns returns the number of successful turns.
func (u *UsageTracker) Turns() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.turns
}
