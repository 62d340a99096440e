package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/gitai/internal/config"
	"github.com/thomas-vilte/gitai/internal/models"
	"github.com/thomas-vilte/gitai/internal/ports"
)

type (
	MockDiffSource struct {
		mock.Mock
	}

	MockRepoInspector struct {
		mock.Mock
	}

	MockBackendFactory struct {
		mock.Mock
	}

	MockChatBackend struct {
		mock.Mock
		Requests []models.ChatRequest
	}

	MockCredentialStore struct {
		mock.Mock
	}

	MockPublisher struct {
		mock.Mock
	}
)

func (m *MockDiffSource) Diff(ctx context.Context, staged, nameOnly bool) (string, error) {
	args := m.Called(ctx, staged, nameOnly)
	return args.String(0), args.Error(1)
}

func (m *MockDiffSource) DiffRef(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

func (m *MockDiffSource) Log(ctx context.Context, sinceRef string) (string, error) {
	args := m.Called(ctx, sinceRef)
	return args.String(0), args.Error(1)
}

func (m *MockRepoInspector) GetCurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockRepoInspector) GetRepoInfo(ctx context.Context) (string, string, string, error) {
	args := m.Called(ctx)
	return args.String(0), args.String(1), args.String(2), args.Error(3)
}

func (m *MockBackendFactory) CreateBackend(ctx context.Context, provider config.AI, model string, creds ports.CredentialStore) (ports.ChatBackend, error) {
	args := m.Called(ctx, provider, model, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.ChatBackend), args.Error(1)
}

func (m *MockChatBackend) Complete(ctx context.Context, req models.ChatRequest) (models.Completion, error) {
	m.Requests = append(m.Requests, req)
	args := m.Called(ctx, req)
	return args.Get(0).(models.Completion), args.Error(1)
}

func (m *MockChatBackend) Name() string  { return "fake" }
func (m *MockChatBackend) Model() string { return "fake-1" }

func (m *MockCredentialStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockPublisher) CreatePullRequest(ctx context.Context, draft models.PRDraft) (models.PullRequest, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(models.PullRequest), args.Error(1)
}
