package ports

import (
	"context"

	"github.com/thomas-vilte/gitai/internal/models"
)

// PullRequestPublisher opens pull requests on a VCS host.
type PullRequestPublisher interface {
	CreatePullRequest(ctx context.Context, draft models.PRDraft) (models.PullRequest, error)
}
