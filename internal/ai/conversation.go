package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/logger"
	"github.com/thomas-vilte/gitai/internal/models"
	"github.com/thomas-vilte/gitai/internal/ports"
)

// Outcome is what one turn produced. It is either a *TextOutcome or an
// *ImprovementsOutcome; callers switch on the concrete type.
type Outcome interface {
	outcome()
}

// TextOutcome is a free text reply, returned verbatim.
type TextOutcome struct {
	Text  string
	Usage *models.TokenUsage
}

// ImprovementsOutcome is a call to suggest_code_improvements, already
// validated and sorted High first.
type ImprovementsOutcome struct {
	Improvements models.ImprovementSet
	Usage        *models.TokenUsage
}

func (*TextOutcome) outcome()         {}
func (*ImprovementsOutcome) outcome() {}

// Conversation keeps the history of one command invocation and sends it
// whole to the backend on every turn. It is not safe for concurrent use.
type Conversation struct {
	backend   ports.ChatBackend
	messages  []models.Message
	functions []models.FunctionSpec
}

type Option func(*Conversation)

// WithSystemPrompt makes prompt the first message of the history.
func WithSystemPrompt(prompt string) Option {
	return func(c *Conversation) {
		if prompt == "" {
			return
		}
		c.messages = append([]models.Message{{Role: models.RoleSystem, Content: prompt}}, c.messages...)
	}
}

// WithImprovementSuggestions advertises suggest_code_improvements on every turn.
func WithImprovementSuggestions() Option {
	return func(c *Conversation) {
		c.functions = append(c.functions, ImprovementsFunction())
	}
}

func NewConversation(backend ports.ChatBackend, opts ...Option) *Conversation {
	c := &Conversation{backend: backend}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// History returns a copy of the messages sent or received so far.
func (c *Conversation) History() []models.Message {
	history := make([]models.Message, len(c.messages))
	copy(history, c.messages)
	return history
}

// Generate appends prompt as a user message and runs one turn. A text reply
// is appended to the history; a function call is not. The user message stays
// in the history even when the turn fails.
func (c *Conversation) Generate(ctx context.Context, prompt string) (Outcome, error) {
	c.messages = append(c.messages, models.Message{Role: models.RoleUser, Content: prompt})

	log := logger.FromContext(ctx).With(
		"provider", c.backend.Name(),
		"model", c.backend.Model(),
	)
	log.Debug("sending chat request",
		"messages", len(c.messages),
		"functions", len(c.functions),
		"prompt_length", len(prompt))

	start := time.Now()
	completion, err := c.backend.Complete(ctx, models.ChatRequest{
		Messages:  c.History(),
		Functions: c.functions,
	})
	duration := time.Since(start)
	if err != nil {
		log.Error("chat request failed", "error", err, "duration_ms", duration.Milliseconds())
		if errors.Is(err, domainErrors.ErrBackendUnavailable) {
			return nil, err
		}
		return nil, domainErrors.ErrBackendUnavailable.
			WithError(err).
			WithContext("provider", c.backend.Name())
	}

	args := []any{"duration_ms", duration.Milliseconds()}
	if u := completion.Usage; u != nil {
		args = append(args,
			"input_tokens", u.InputTokens,
			"output_tokens", u.OutputTokens,
			"total_tokens", u.TotalTokens)
	}
	log.Info("chat request completed", args...)

	if completion.Call != nil {
		set, err := parseImprovementsCall(*completion.Call)
		if err != nil {
			log.Warn("malformed function call", "function", completion.Call.Name, "error", err)
			return nil, err
		}
		log.Debug("model suggested improvements", "count", len(set))
		return &ImprovementsOutcome{Improvements: set, Usage: completion.Usage}, nil
	}

	if strings.TrimSpace(completion.Text) == "" {
		return nil, domainErrors.ErrEmptyResponse.WithContext("provider", c.backend.Name())
	}

	c.messages = append(c.messages, models.Message{Role: models.RoleAssistant, Content: completion.Text})
	return &TextOutcome{Text: completion.Text, Usage: completion.Usage}, nil
}

func parseImprovementsCall(call models.FunctionCall) (models.ImprovementSet, error) {
	if call.Name != ImprovementsFunctionName {
		return nil, domainErrors.ErrMalformedStructuredResponse.
			WithError(fmt.Errorf("unexpected function %q", call.Name)).
			WithContext("function", call.Name)
	}

	var args struct {
		Improvements json.RawMessage `json:"improvements"`
	}
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		return nil, domainErrors.ErrMalformedStructuredResponse.WithError(err)
	}
	if len(args.Improvements) == 0 {
		return nil, domainErrors.ErrMalformedStructuredResponse.
			WithError(errors.New(`missing "improvements" argument`))
	}

	set, err := models.ParseImprovements(args.Improvements)
	if err != nil {
		return nil, domainErrors.ErrMalformedStructuredResponse.WithError(err)
	}
	set.SortDescending()
	return set, nil
}
