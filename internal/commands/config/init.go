package config

import (
	"context"

	"github.com/thomas-vilte/gitai/internal/commands/completion_helper"
	"github.com/thomas-vilte/gitai/internal/config"
	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/i18n"
	"github.com/thomas-vilte/gitai/internal/logger"
	"github.com/urfave/cli/v3"
)

// credentialPrompter is a minimal interface for testing purposes
type credentialPrompter interface {
	Prompt(ctx context.Context, key string) error
}

type InitCommandFactory struct {
	creds credentialPrompter
}

func NewInitCommandFactory(creds credentialPrompter) *InitCommandFactory {
	return &InitCommandFactory{creds: creds}
}

func (f *InitCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: t.GetMessage("init.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Value:   string(cfg.Provider),
				Usage:   t.GetMessage("init.provider_flag", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "github",
				Usage: t.GetMessage("init.github_flag", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.initAction(cfg),
	}
}

// initAction always asks for the key, even when one is already stored. An
// explicit --provider also becomes the configured provider.
func (f *InitCommandFactory) initAction(cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		provider := config.AI(command.String("provider"))
		if !config.IsSupportedAI(provider) {
			return domainErrors.ErrUnknownProvider.
				WithContext("provider", string(provider)).
				WithSuggestion("Use one of: openai, gemini, anthropic")
		}

		keys := []string{config.CredentialKeyForAI(provider)}
		if command.Bool("github") {
			keys = append(keys, config.KeyGitHubToken)
		}

		logger.Info(ctx, "executing init command", "provider", provider, "keys", len(keys))

		for _, key := range keys {
			if err := f.creds.Prompt(ctx, key); err != nil {
				return err
			}
		}

		if !command.IsSet("provider") || provider == cfg.Provider {
			return nil
		}
		cfg.Provider = provider
		cfg.Model = config.DefaultModelForAI(provider)
		if err := config.SaveConfig(cfg); err != nil {
			return domainErrors.ErrInvalidConfig.WithError(err).WithContext("path", cfg.PathFile)
		}
		logger.Info(ctx, "default provider updated", "provider", provider, "model", cfg.Model)
		return nil
	}
}
