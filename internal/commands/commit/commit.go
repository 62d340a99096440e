package commit

import (
	"context"
	"errors"

	"github.com/thomas-vilte/gitai/internal/commands/completion_helper"
	"github.com/thomas-vilte/gitai/internal/config"
	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/i18n"
	"github.com/thomas-vilte/gitai/internal/logger"
	"github.com/thomas-vilte/gitai/internal/services"
	"github.com/thomas-vilte/gitai/internal/ui"
	"github.com/urfave/cli/v3"
)

// commitService is a minimal interface for testing purposes
type commitService interface {
	Run(ctx context.Context, opts services.CommitOptions) error
}

type CommitCommandFactory struct {
	commitService commitService
}

func NewCommitCommandFactory(commitSvc commitService) *CommitCommandFactory {
	return &CommitCommandFactory{commitService: commitSvc}
}

func (f *CommitCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "commit",
		Aliases:       []string{"c"},
		Usage:         t.GetMessage("commit.usage", 0, nil),
		Flags:         f.createFlags(cfg, t),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.createAction(cfg, t),
	}
}

func (f *CommitCommandFactory) createFlags(cfg *config.Config, t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "message",
			Aliases: []string{"m"},
			Usage:   t.GetMessage("flags.message", 0, nil),
		},
		&cli.BoolFlag{
			Name:    "name-only",
			Aliases: []string{"n"},
			Usage:   t.GetMessage("commit.name_only_flag", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "exit-on-empty",
			Value: cfg.ExitOnEmpty,
			Usage: t.GetMessage("commit.exit_on_empty_flag", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "no-improvements",
			Usage: t.GetMessage("commit.no_improvements_flag", 0, nil),
		},
		&cli.StringFlag{
			Name:    "provider",
			Aliases: []string{"p"},
			Value:   string(cfg.Provider),
			Usage:   t.GetMessage("flags.provider", 0, nil),
		},
		&cli.StringFlag{
			Name:  "model",
			Usage: t.GetMessage("flags.model", 0, nil),
		},
	}
}

func (f *CommitCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		log := logger.FromContext(ctx)

		provider := config.AI(command.String("provider"))
		model := command.String("model")
		if model == "" {
			model = cfg.ModelFor(provider)
		}

		opts := services.CommitOptions{
			GenerationOptions: services.GenerationOptions{
				Context:             command.String("message"),
				Provider:            provider,
				Model:               model,
				Language:            cfg.Language,
				WrapWidth:           cfg.WrapWidth,
				SuggestImprovements: cfg.SuggestImprovements && !command.Bool("no-improvements"),
			},
			NameOnly:    command.Bool("name-only"),
			ExitOnEmpty: command.Bool("exit-on-empty"),
		}

		log.Info("executing commit command",
			"provider", provider,
			"model", model,
			"name_only", opts.NameOnly,
			"exit_on_empty", opts.ExitOnEmpty,
			"suggest_improvements", opts.SuggestImprovements,
			"has_context", opts.Context != "")

		err := f.commitService.Run(ctx, opts)
		if errors.Is(err, domainErrors.ErrNothingToCommit) {
			ui.PrintWarning(command.Root().Writer, t.GetMessage("commit.nothing_to_commit", 0, nil))
			return nil
		}
		if err != nil {
			log.Error("commit command failed", "error", err)
			return err
		}
		return nil
	}
}
