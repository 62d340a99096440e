package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/models"
)

func testDraft() models.PRDraft {
	return models.PRDraft{
		Title: "Feature: add login",
		Body:  "Adds a login form.",
		Base:  "main",
		Head:  "feature/login",
	}
}

func TestGitHubClient_CreatePullRequest(t *testing.T) {
	t.Run("should create the pull request", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := NewGitHubClientWithServices(mockPR, "test-owner", "test-repo")

		mockPR.On("Create", mock.Anything, "test-owner", "test-repo", mock.MatchedBy(func(pull *github.NewPullRequest) bool {
			return pull.GetTitle() == "Feature: add login" &&
				pull.GetHead() == "feature/login" &&
				pull.GetBase() == "main" &&
				pull.GetBody() == "Adds a login form."
		})).Return(&github.PullRequest{
			Number:  github.Int(42),
			HTMLURL: github.String("https://github.com/test-owner/test-repo/pull/42"),
		}, &github.Response{}, nil).Once()

		pr, err := client.CreatePullRequest(context.Background(), testDraft())

		require.NoError(t, err)
		assert.Equal(t, models.PullRequest{Number: 42, URL: "https://github.com/test-owner/test-repo/pull/42"}, pr)
		mockPR.AssertExpectations(t)
	})

	t.Run("should fail without a title", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := NewGitHubClientWithServices(mockPR, "test-owner", "test-repo")
		draft := testDraft()
		draft.Title = ""

		_, err := client.CreatePullRequest(context.Background(), draft)

		assert.True(t, errors.Is(err, domainErrors.ErrPublishPR))
		mockPR.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should wrap API errors", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := NewGitHubClientWithServices(mockPR, "test-owner", "test-repo")
		mockPR.On("Create", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return(nil, nil, errors.New("connection reset")).Once()

		_, err := client.CreatePullRequest(context.Background(), testDraft())

		assert.True(t, errors.Is(err, domainErrors.ErrPublishPR))
		var appErr *domainErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "feature/login", appErr.Context["head"])
	})
}

func TestGitHubClient_CreatePullRequest_HTTP(t *testing.T) {
	newClient := func(t *testing.T, status int, body string) *GitHubClient {
		t.Helper()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/repos/test-owner/test-repo/pulls", r.URL.Path)

			var pull github.NewPullRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&pull))
			assert.Equal(t, "feature/login", pull.GetHead())

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
		t.Cleanup(srv.Close)

		gc := github.NewClient(nil)
		baseURL, err := url.Parse(srv.URL + "/")
		require.NoError(t, err)
		gc.BaseURL = baseURL
		return NewGitHubClientWithServices(gc.PullRequests, "test-owner", "test-repo")
	}

	t.Run("should decode the created pull request", func(t *testing.T) {
		client := newClient(t, http.StatusCreated,
			`{"number": 7, "html_url": "https://github.com/test-owner/test-repo/pull/7"}`)

		pr, err := client.CreatePullRequest(context.Background(), testDraft())

		require.NoError(t, err)
		assert.Equal(t, 7, pr.Number)
		assert.Equal(t, "https://github.com/test-owner/test-repo/pull/7", pr.URL)
	})

	t.Run("should suggest pushing the branch on validation errors", func(t *testing.T) {
		client := newClient(t, http.StatusUnprocessableEntity,
			`{"message": "Validation Failed", "errors": [{"resource": "PullRequest", "field": "head", "code": "invalid"}]}`)

		_, err := client.CreatePullRequest(context.Background(), testDraft())

		var appErr *domainErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.True(t, errors.Is(err, domainErrors.ErrPublishPR))
		assert.Contains(t, appErr.Suggestion, "git push -u origin feature/login")
	})

	t.Run("should suggest checking the token on auth errors", func(t *testing.T) {
		client := newClient(t, http.StatusUnauthorized, `{"message": "Bad credentials"}`)

		_, err := client.CreatePullRequest(context.Background(), testDraft())

		var appErr *domainErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Contains(t, appErr.Suggestion, "GITHUB_TOKEN")
	})
}

func TestNewGitHubClient(t *testing.T) {
	client := NewGitHubClient("test-owner", "test-repo", "ghp_token")

	require.NotNil(t, client)
	assert.Equal(t, "test-owner", client.owner)
	assert.Equal(t, "test-repo", client.repo)
	assert.NotNil(t, client.prService)
}
