package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/i18n"
)

func writeINI(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/dev", "git_ai.ini"), DefaultPath("/home/dev"))
}

func TestLoadConfig(t *testing.T) {
	t.Run("should return defaults when the file does not exist", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, AIOpenAI, cfg.Provider)
		assert.Equal(t, 72, cfg.WrapWidth)
		assert.False(t, cfg.ExitOnEmpty)
		assert.True(t, cfg.SuggestImprovements)
		assert.Equal(t, "en", cfg.Language)
		assert.Equal(t, path, cfg.PathFile)
		assert.Equal(t, "gpt-4", cfg.ModelName())

		_, statErr := os.Stat(path)
		assert.True(t, errors.Is(statErr, os.ErrNotExist), "loading must not create the file")
	})

	t.Run("should keep defaults for a file holding only the API key", func(t *testing.T) {
		path := writeINI(t, "OPENAI_API_KEY = sk-test\n")

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, AIOpenAI, cfg.Provider)
		assert.Equal(t, 72, cfg.WrapWidth)
	})

	t.Run("should read every setting", func(t *testing.T) {
		path := writeINI(t, strings.Join([]string{
			"OPENAI_API_KEY = sk-test",
			"PROVIDER = gemini",
			"MODEL = gemini-1.5-pro",
			"WRAP_WIDTH = 100",
			"EXIT_ON_EMPTY = true",
			"SUGGEST_IMPROVEMENTS = false",
			"LANGUAGE = es",
		}, "\n"))

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, AIGemini, cfg.Provider)
		assert.Equal(t, "gemini-1.5-pro", cfg.ModelName())
		assert.Equal(t, 100, cfg.WrapWidth)
		assert.True(t, cfg.ExitOnEmpty)
		assert.False(t, cfg.SuggestImprovements)
		assert.Equal(t, "es", cfg.Language)
	})

	t.Run("should reject a non numeric wrap width", func(t *testing.T) {
		path := writeINI(t, "WRAP_WIDTH = wide\n")

		_, err := LoadConfig(path)

		assert.True(t, errors.Is(err, domainErrors.ErrInvalidConfig))
	})

	t.Run("should reject a non positive wrap width", func(t *testing.T) {
		path := writeINI(t, "WRAP_WIDTH = 0\n")

		_, err := LoadConfig(path)

		assert.True(t, errors.Is(err, domainErrors.ErrInvalidConfig))
	})

	t.Run("should reject an unknown provider", func(t *testing.T) {
		path := writeINI(t, "PROVIDER = llama\n")

		_, err := LoadConfig(path)

		assert.True(t, errors.Is(err, domainErrors.ErrUnknownProvider))
	})

	t.Run("should reject an unsupported language", func(t *testing.T) {
		path := writeINI(t, "LANGUAGE = fr\n")

		_, err := LoadConfig(path)

		assert.True(t, errors.Is(err, domainErrors.ErrInvalidConfig))
	})
}

func TestSaveConfig(t *testing.T) {
	t.Run("should keep the API keys already in the file", func(t *testing.T) {
		path := writeINI(t, "OPENAI_API_KEY = sk-keep\n")
		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		cfg.Provider = AIAnthropic
		cfg.ExitOnEmpty = true
		require.NoError(t, SaveConfig(cfg))

		reloaded, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, AIAnthropic, reloaded.Provider)
		assert.True(t, reloaded.ExitOnEmpty)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "sk-keep")
	})

	t.Run("should fail with an invalid configuration", func(t *testing.T) {
		cfg := defaultConfig(filepath.Join(t.TempDir(), FileName))
		cfg.WrapWidth = -1

		assert.Error(t, SaveConfig(cfg))
	})

	t.Run("should fail without a path", func(t *testing.T) {
		cfg := defaultConfig("")

		assert.Error(t, SaveConfig(cfg))
	})
}

func TestCredentialKeyForAI(t *testing.T) {
	assert.Equal(t, "OPENAI_API_KEY", CredentialKeyForAI(AIOpenAI))
	assert.Equal(t, "GEMINI_API_KEY", CredentialKeyForAI(AIGemini))
	assert.Equal(t, "ANTHROPIC_API_KEY", CredentialKeyForAI(AIAnthropic))
}

func TestConfig_ModelFor(t *testing.T) {
	cfg := &Config{Provider: AIGemini, Model: ModelGeminiV15Pro}

	assert.Equal(t, "gemini-1.5-pro", cfg.ModelFor(AIGemini))
	assert.Equal(t, "claude-sonnet-4-5", cfg.ModelFor(AIAnthropic))
	assert.Equal(t, "gpt-4", (&Config{Provider: AIOpenAI}).ModelFor(AIOpenAI))
}

func newProvider(t *testing.T, path, input string) (*CredentialProvider, *bytes.Buffer) {
	t.Helper()
	trans, err := i18n.NewTranslations("en")
	require.NoError(t, err)
	var out bytes.Buffer
	return NewCredentialProvider(path, strings.NewReader(input), &out, trans), &out
}

func TestCredentialProvider_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("should read an existing key without prompting", func(t *testing.T) {
		path := writeINI(t, "OPENAI_API_KEY = sk-existing\n")
		provider, out := newProvider(t, path, "")

		key, err := provider.Get(ctx, KeyOpenAIAPIKey)

		require.NoError(t, err)
		assert.Equal(t, "sk-existing", key)
		assert.Empty(t, out.String())
	})

	t.Run("should prompt and persist when the file is missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		provider, out := newProvider(t, path, "sk-typed\n")

		key, err := provider.Get(ctx, KeyOpenAIAPIKey)

		require.NoError(t, err)
		assert.Equal(t, "sk-typed", key)
		assert.Contains(t, out.String(), "Please enter your OPENAI_API_KEY")
		assert.Contains(t, out.String(), path+" has been updated")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "OPENAI_API_KEY")
		assert.Contains(t, string(data), "sk-typed")
	})

	t.Run("should prompt for a missing key and keep the others", func(t *testing.T) {
		path := writeINI(t, "OPENAI_API_KEY = sk-openai\n")
		provider, _ := newProvider(t, path, "ghp_token")

		token, err := provider.Get(ctx, KeyGitHubToken)
		require.NoError(t, err)
		assert.Equal(t, "ghp_token", token)

		key, err := provider.Get(ctx, KeyOpenAIAPIKey)
		require.NoError(t, err)
		assert.Equal(t, "sk-openai", key)
	})

	t.Run("should fail when the user enters nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		provider, _ := newProvider(t, path, "\n")

		_, err := provider.Get(ctx, KeyOpenAIAPIKey)

		assert.True(t, errors.Is(err, domainErrors.ErrCredentialMissing))
	})

	t.Run("should fail when input is closed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		provider, _ := newProvider(t, path, "")

		_, err := provider.Get(ctx, KeyOpenAIAPIKey)

		assert.True(t, errors.Is(err, domainErrors.ErrCredentialMissing))
	})
}
