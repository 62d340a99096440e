package pr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/gitai/internal/config"
	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/i18n"
	"github.com/thomas-vilte/gitai/internal/services"
	"github.com/urfave/cli/v3"
)

type MockPRService struct {
	mock.Mock
}

func (m *MockPRService) Run(ctx context.Context, opts services.PROptions) error {
	args := m.Called(ctx, opts)
	return args.Error(0)
}

func newCommand(t *testing.T, svc *MockPRService) *cli.Command {
	t.Helper()
	cfg := &config.Config{
		Provider:            config.AIGemini,
		Model:               config.ModelGeminiV15Pro,
		WrapWidth:           80,
		SuggestImprovements: true,
		Language:            "es",
	}
	translations, err := i18n.NewTranslations("en")
	require.NoError(t, err)
	return NewPRCommandFactory(svc).CreateCommand(translations, cfg)
}

func TestPRCommand(t *testing.T) {
	t.Run("should target main by default", func(t *testing.T) {
		svc := new(MockPRService)
		svc.On("Run", mock.Anything, services.PROptions{
			GenerationOptions: services.GenerationOptions{
				Provider:            config.AIGemini,
				Model:               "gemini-1.5-pro",
				Language:            "es",
				WrapWidth:           80,
				SuggestImprovements: true,
			},
			Branch: "main",
		}).Return(nil).Once()

		err := newCommand(t, svc).Run(context.Background(), []string{"pr"})

		assert.NoError(t, err)
		svc.AssertExpectations(t)
	})

	t.Run("should read the branch argument and flags", func(t *testing.T) {
		svc := new(MockPRService)
		svc.On("Run", mock.Anything, services.PROptions{
			GenerationOptions: services.GenerationOptions{
				Context:             "new auth flow",
				Provider:            config.AIOpenAI,
				Model:               "gpt-4",
				Language:            "es",
				WrapWidth:           80,
				SuggestImprovements: false,
			},
			Branch:  "develop",
			Publish: true,
		}).Return(nil).Once()

		err := newCommand(t, svc).Run(context.Background(), []string{
			"pr", "--message", "new auth flow", "--publish", "--no-improvements", "--provider", "openai", "develop",
		})

		assert.NoError(t, err)
		svc.AssertExpectations(t)
	})

	t.Run("should return service errors", func(t *testing.T) {
		svc := new(MockPRService)
		svc.On("Run", mock.Anything, mock.Anything).Return(domainErrors.ErrVCSNotSupported).Once()

		err := newCommand(t, svc).Run(context.Background(), []string{"pr", "--publish"})

		assert.ErrorIs(t, err, domainErrors.ErrVCSNotSupported)
	})
}
