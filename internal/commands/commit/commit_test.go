package commit

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/gitai/internal/config"
	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/i18n"
	"github.com/thomas-vilte/gitai/internal/services"
	"github.com/urfave/cli/v3"
)

func init() {
	color.NoColor = true
}

type MockCommitService struct {
	mock.Mock
}

func (m *MockCommitService) Run(ctx context.Context, opts services.CommitOptions) error {
	args := m.Called(ctx, opts)
	return args.Error(0)
}

func setupTestEnv(t *testing.T) (*config.Config, *i18n.Translations) {
	t.Helper()
	cfg := &config.Config{
		Provider:            config.AIOpenAI,
		WrapWidth:           72,
		SuggestImprovements: true,
		Language:            "en",
	}
	translations, err := i18n.NewTranslations("en")
	require.NoError(t, err)
	return cfg, translations
}

func newCommand(t *testing.T, svc *MockCommitService) (*cli.Command, *bytes.Buffer, *i18n.Translations) {
	cfg, translations := setupTestEnv(t)
	cmd := NewCommitCommandFactory(svc).CreateCommand(translations, cfg)
	var out bytes.Buffer
	cmd.Writer = &out
	return cmd, &out, translations
}

func TestCommitCommand(t *testing.T) {
	t.Run("should use the configured defaults", func(t *testing.T) {
		svc := new(MockCommitService)
		svc.On("Run", mock.Anything, services.CommitOptions{
			GenerationOptions: services.GenerationOptions{
				Provider:            config.AIOpenAI,
				Model:               "gpt-4",
				Language:            "en",
				WrapWidth:           72,
				SuggestImprovements: true,
			},
		}).Return(nil).Once()
		cmd, _, _ := newCommand(t, svc)

		err := cmd.Run(context.Background(), []string{"commit"})

		assert.NoError(t, err)
		svc.AssertExpectations(t)
	})

	t.Run("should pass the flags to the service", func(t *testing.T) {
		svc := new(MockCommitService)
		svc.On("Run", mock.Anything, services.CommitOptions{
			GenerationOptions: services.GenerationOptions{
				Context:             "fix login",
				Provider:            config.AIAnthropic,
				Model:               "claude-sonnet-4-5",
				Language:            "en",
				WrapWidth:           72,
				SuggestImprovements: false,
			},
			NameOnly:    true,
			ExitOnEmpty: true,
		}).Return(nil).Once()
		cmd, _, _ := newCommand(t, svc)

		err := cmd.Run(context.Background(), []string{
			"commit", "-m", "fix login", "--name-only", "--exit-on-empty", "--no-improvements", "--provider", "anthropic",
		})

		assert.NoError(t, err)
		svc.AssertExpectations(t)
	})

	t.Run("should prefer an explicit model", func(t *testing.T) {
		svc := new(MockCommitService)
		svc.On("Run", mock.Anything, mock.MatchedBy(func(opts services.CommitOptions) bool {
			return opts.Model == "gpt-4o-mini"
		})).Return(nil).Once()
		cmd, _, _ := newCommand(t, svc)

		err := cmd.Run(context.Background(), []string{"commit", "--model", "gpt-4o-mini"})

		assert.NoError(t, err)
		svc.AssertExpectations(t)
	})

	t.Run("should report nothing to commit without failing", func(t *testing.T) {
		svc := new(MockCommitService)
		svc.On("Run", mock.Anything, mock.Anything).Return(domainErrors.ErrNothingToCommit).Once()
		cmd, out, translations := newCommand(t, svc)

		err := cmd.Run(context.Background(), []string{"commit"})

		assert.NoError(t, err)
		assert.Contains(t, out.String(), translations.GetMessage("commit.nothing_to_commit", 0, nil))
	})

	t.Run("should return service errors", func(t *testing.T) {
		svc := new(MockCommitService)
		svc.On("Run", mock.Anything, mock.Anything).
			Return(domainErrors.ErrBackendUnavailable.WithError(errors.New("timeout"))).Once()
		cmd, _, _ := newCommand(t, svc)

		err := cmd.Run(context.Background(), []string{"commit"})

		assert.ErrorIs(t, err, domainErrors.ErrBackendUnavailable)
	})
}
