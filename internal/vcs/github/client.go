package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/github"
	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/logger"
	"github.com/thomas-vilte/gitai/internal/models"
	"github.com/thomas-vilte/gitai/internal/ports"
	"golang.org/x/oauth2"
)

var _ ports.PullRequestPublisher = (*GitHubClient)(nil)

type PullRequestsService interface {
	Create(ctx context.Context, owner, repo string, pull *github.NewPullRequest) (*github.PullRequest, *github.Response, error)
}

type GitHubClient struct {
	prService PullRequestsService
	owner     string
	repo      string
}

func NewGitHubClient(owner, repo, token string) *GitHubClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	return NewGitHubClientWithServices(github.NewClient(httpClient).PullRequests, owner, repo)
}

func NewGitHubClientWithServices(prService PullRequestsService, owner, repo string) *GitHubClient {
	return &GitHubClient{
		prService: prService,
		owner:     owner,
		repo:      repo,
	}
}

// CreatePullRequest opens a pull request from draft.Head into draft.Base.
func (ghc *GitHubClient) CreatePullRequest(ctx context.Context, draft models.PRDraft) (models.PullRequest, error) {
	log := logger.FromContext(ctx)

	if draft.Title == "" {
		return models.PullRequest{}, domainErrors.ErrPublishPR.
			WithError(errors.New("the generated description has no title")).
			WithSuggestion("Run the command again to generate a new description")
	}

	log.Info("creating pull request",
		"owner", ghc.owner,
		"repo", ghc.repo,
		"head", draft.Head,
		"base", draft.Base)

	pr, _, err := ghc.prService.Create(ctx, ghc.owner, ghc.repo, &github.NewPullRequest{
		Title: github.String(draft.Title),
		Head:  github.String(draft.Head),
		Base:  github.String(draft.Base),
		Body:  github.String(draft.Body),
	})
	if err != nil {
		log.Error("failed to create pull request", "error", err)
		return models.PullRequest{}, wrapError(err, draft)
	}

	if pr == nil {
		return models.PullRequest{}, domainErrors.ErrPublishPR.WithError(errors.New("empty response from GitHub"))
	}

	log.Debug("pull request created", "number", pr.GetNumber(), "url", pr.GetHTMLURL())

	return models.PullRequest{
		Number: pr.GetNumber(),
		URL:    pr.GetHTMLURL(),
	}, nil
}

func wrapError(err error, draft models.PRDraft) error {
	appErr := domainErrors.ErrPublishPR.
		WithError(err).
		WithContext("head", draft.Head).
		WithContext("base", draft.Base)

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return appErr.WithSuggestion("Check the GITHUB_TOKEN in your git_ai.ini file has 'repo' permissions")
		case http.StatusUnprocessableEntity:
			return appErr.WithSuggestion(fmt.Sprintf(
				"Push the branch first (git push -u origin %s) and check there is no open pull request for it", draft.Head))
		}
	}
	return appErr
}
