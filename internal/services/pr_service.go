package services

import (
	"context"
	"io"

	"github.com/thomas-vilte/gitai/internal/ai"
	"github.com/thomas-vilte/gitai/internal/config"
	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/i18n"
	"github.com/thomas-vilte/gitai/internal/logger"
	"github.com/thomas-vilte/gitai/internal/models"
	"github.com/thomas-vilte/gitai/internal/ports"
	"github.com/thomas-vilte/gitai/internal/ui"
)

const providerGitHub = "github"

type PROptions struct {
	GenerationOptions
	Branch  string
	Publish bool
}

// PublisherFactory builds a pull request publisher for a repository.
type PublisherFactory func(owner, repo, token string) ports.PullRequestPublisher

// PRService drafts a pull request description against a target branch and
// optionally opens the pull request.
type PRService struct {
	git        ports.DiffSource
	repo       ports.RepoInspector
	backends   BackendFactory
	creds      ports.CredentialStore
	publishers PublisherFactory
	trans      *i18n.Translations
	out        io.Writer
}

func NewPRService(git ports.DiffSource, repo ports.RepoInspector, backends BackendFactory, creds ports.CredentialStore, publishers PublisherFactory, trans *i18n.Translations, out io.Writer) *PRService {
	return &PRService{
		git:        git,
		repo:       repo,
		backends:   backends,
		creds:      creds,
		publishers: publishers,
		trans:      trans,
		out:        out,
	}
}

// Run makes exactly one generation turn.
func (s *PRService) Run(ctx context.Context, opts PROptions) error {
	log := logger.FromContext(ctx).With("branch", opts.Branch)

	commits, err := s.git.Log(ctx, opts.Branch)
	if err != nil {
		return err
	}
	diff, err := s.git.DiffRef(ctx, opts.Branch)
	if err != nil {
		return err
	}
	log.Debug("collected pull request context", "log_length", len(commits), "diff_length", len(diff))

	prompt, err := ai.BuildPRPrompt(opts.Context, commits, diff)
	if err != nil {
		return domainErrors.NewAppError(domainErrors.TypeInternal, "error building pull request prompt", err)
	}

	sess, err := openSession(ctx, s.backends, s.creds, opts.GenerationOptions, s.out, s.trans)
	if err != nil {
		return err
	}
	defer sess.close(ctx)

	ui.PrintInfo(s.out, s.trans.GetMessage("pr.generating", 0, struct{ Branch string }{opts.Branch}))

	outcome, err := sess.turn(ctx, prompt)
	if err != nil {
		return err
	}

	if !opts.Publish {
		return nil
	}

	text, ok := outcome.(*ai.TextOutcome)
	if !ok {
		log.Info("model returned improvements, skipping publish")
		ui.PrintWarning(s.out, s.trans.GetMessage("pr.cannot_publish_improvements", 0, nil))
		return nil
	}
	return s.publish(ctx, opts.Branch, text.Text)
}

func (s *PRService) publish(ctx context.Context, base, description string) error {
	owner, repo, provider, err := s.repo.GetRepoInfo(ctx)
	if err != nil {
		return err
	}
	if provider != providerGitHub {
		return domainErrors.ErrVCSNotSupported.WithContext("provider", provider)
	}

	head, err := s.repo.GetCurrentBranch(ctx)
	if err != nil {
		return err
	}

	token, err := s.creds.Get(ctx, config.KeyGitHubToken)
	if err != nil {
		return err
	}

	draft := models.NewPRDraft(description, base, head)
	ui.PrintSectionBanner(s.out, s.trans.GetMessage("pr.publishing", 0, struct {
		Head string
		Base string
	}{head, base}))
	ui.PrintKeyValue(s.out, "Title", draft.Title)
	ui.PrintKeyValue(s.out, "Repository", owner+"/"+repo)

	pr, err := s.publishers(owner, repo, token).CreatePullRequest(ctx, draft)
	if err != nil {
		return err
	}

	logger.Info(ctx, "pull request created", "number", pr.Number, "url", pr.URL)
	ui.PrintSuccess(s.out, s.trans.GetMessage("pr.published", 0, struct {
		Number int
		URL    string
	}{pr.Number, pr.URL}))
	return nil
}
