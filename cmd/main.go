package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/thomas-vilte/gitai/internal/ai/anthropic"
	"github.com/thomas-vilte/gitai/internal/ai/gemini"
	"github.com/thomas-vilte/gitai/internal/ai/openai"
	aiRegistry "github.com/thomas-vilte/gitai/internal/ai/registry"
	"github.com/thomas-vilte/gitai/internal/commands/commit"
	configCmd "github.com/thomas-vilte/gitai/internal/commands/config"
	"github.com/thomas-vilte/gitai/internal/commands/pr"
	"github.com/thomas-vilte/gitai/internal/commands/registry"
	cfg "github.com/thomas-vilte/gitai/internal/config"
	"github.com/thomas-vilte/gitai/internal/git"
	"github.com/thomas-vilte/gitai/internal/i18n"
	"github.com/thomas-vilte/gitai/internal/logger"
	"github.com/thomas-vilte/gitai/internal/ports"
	"github.com/thomas-vilte/gitai/internal/services"
	"github.com/thomas-vilte/gitai/internal/ui"
	"github.com/thomas-vilte/gitai/internal/vcs/github"
	"github.com/thomas-vilte/gitai/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	os.Exit(run())
}

func run() int {
	app, translations, err := initializeApp()
	if err != nil {
		ui.HandleAppError(os.Stderr, err, nil)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		return 1
	}
	return 0
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("could not resolve the home directory: %w", err)
	}

	path := cfg.DefaultPath(homeDir)
	cfgApp, err := cfg.LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading translations: %w", err)
	}

	// The credential prompt and the edit loop share one buffered stdin.
	stdin := bufio.NewReader(os.Stdin)
	creds := cfg.NewCredentialProvider(path, stdin, os.Stdout, translations)

	providers := aiRegistry.NewAIProviderRegistry()
	for _, factory := range []aiRegistry.BackendFactory{openai.Factory{}, gemini.Factory{}, anthropic.Factory{}} {
		if err := providers.Register(factory); err != nil {
			return nil, nil, err
		}
	}

	gitService := git.NewGitService("")
	publishers := func(owner, repo, token string) ports.PullRequestPublisher {
		return github.NewGitHubClient(owner, repo, token)
	}

	commitService := services.NewCommitService(gitService, providers, creds, translations, stdin, os.Stdout)
	prService := services.NewPRService(gitService, gitService, providers, creds, publishers, translations, os.Stdout)

	registerCommand := registry.NewRegistry(cfgApp, translations)
	if err := registerCommand.Register("commit", commit.NewCommitCommandFactory(commitService)); err != nil {
		return nil, nil, err
	}
	if err := registerCommand.Register("pr", pr.NewPRCommandFactory(prService)); err != nil {
		return nil, nil, err
	}
	if err := registerCommand.Register("init", configCmd.NewInitCommandFactory(creds)); err != nil {
		return nil, nil, err
	}

	return &cli.Command{
		Name:    "git-ai",
		Usage:   translations.GetMessage("app.usage", 0, nil),
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("app.debug_flag", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: translations.GetMessage("app.verbose_flag", 0, nil),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return logger.Setup(ctx, cmd.ErrWriter, cmd.Bool("debug"), cmd.Bool("verbose")), nil
		},
		Commands:              registerCommand.CreateCommands(),
		EnableShellCompletion: true,
	}, translations, nil
}
