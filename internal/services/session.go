package services

import (
	"context"
	"io"

	"github.com/thomas-vilte/gitai/internal/ai"
	"github.com/thomas-vilte/gitai/internal/config"
	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/i18n"
	"github.com/thomas-vilte/gitai/internal/logger"
	"github.com/thomas-vilte/gitai/internal/ports"
	"github.com/thomas-vilte/gitai/internal/ui"
)

// BackendFactory creates the chat backend used by one command invocation.
type BackendFactory interface {
	CreateBackend(ctx context.Context, provider config.AI, model string, creds ports.CredentialStore) (ports.ChatBackend, error)
}

// GenerationOptions are the settings shared by every flow that talks to a
// backend.
type GenerationOptions struct {
	Context             string
	Provider            config.AI
	Model               string
	Language            string
	WrapWidth           int
	SuggestImprovements bool
}

// session is one conversation together with the usage it accumulated.
type session struct {
	conv    *ai.Conversation
	tracker *ai.UsageTracker
	backend ports.ChatBackend
	out     io.Writer
	trans   *i18n.Translations
	width   int
}

func openSession(ctx context.Context, backends BackendFactory, creds ports.CredentialStore, opts GenerationOptions, out io.Writer, trans *i18n.Translations) (*session, error) {
	backend, err := backends.CreateBackend(ctx, opts.Provider, opts.Model, creds)
	if err != nil {
		return nil, err
	}

	tracker := ai.NewUsageTracker(backend)
	convOpts := []ai.Option{ai.WithSystemPrompt(ai.GetSystemPrompt(opts.Language))}
	if opts.SuggestImprovements {
		convOpts = append(convOpts, ai.WithImprovementSuggestions())
	}

	logger.Debug(ctx, "session opened",
		"provider", backend.Name(),
		"model", backend.Model(),
		"suggest_improvements", opts.SuggestImprovements)

	return &session{
		conv:    ai.NewConversation(tracker, convOpts...),
		tracker: tracker,
		backend: backend,
		out:     out,
		trans:   trans,
		width:   opts.WrapWidth,
	}, nil
}

// turn sends prompt under a spinner and renders whatever came back.
func (s *session) turn(ctx context.Context, prompt string) (ai.Outcome, error) {
	var outcome ai.Outcome
	err := ui.WithSpinner(s.out, s.trans.GetMessage("ui.thinking", 0, nil), func() error {
		var err error
		outcome, err = s.conv.Generate(ctx, prompt)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.render(outcome); err != nil {
		return nil, err
	}
	return outcome, nil
}

func (s *session) render(outcome ai.Outcome) error {
	switch o := outcome.(type) {
	case *ai.TextOutcome:
		_, _ = io.WriteString(s.out, ui.WrapText(o.Text, s.width)+"\n")
	case *ai.ImprovementsOutcome:
		ui.PrintWarning(s.out, s.trans.GetMessage("improvements.header", len(o.Improvements), struct{ Count int }{len(o.Improvements)}))
		ui.PrintImprovements(s.out, o.Improvements, s.trans)
	default:
		return domainErrors.NewAppError(domainErrors.TypeInternal, "unknown outcome", nil)
	}
	return nil
}

// close prints the accumulated token usage and releases the backend when it
// holds resources.
func (s *session) close(ctx context.Context) {
	ui.PrintTokenUsage(s.out, s.tracker.Total(), s.trans)

	if c, ok := s.backend.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Warn(ctx, "failed to close backend", "error", err)
		}
	}
}
