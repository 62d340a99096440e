package pr

import (
	"context"

	"github.com/thomas-vilte/gitai/internal/commands/completion_helper"
	"github.com/thomas-vilte/gitai/internal/config"
	"github.com/thomas-vilte/gitai/internal/i18n"
	"github.com/thomas-vilte/gitai/internal/logger"
	"github.com/thomas-vilte/gitai/internal/services"
	"github.com/urfave/cli/v3"
)

const defaultBranch = "main"

// prService is a minimal interface for testing purposes
type prService interface {
	Run(ctx context.Context, opts services.PROptions) error
}

type PRCommandFactory struct {
	prService prService
}

func NewPRCommandFactory(prSvc prService) *PRCommandFactory {
	return &PRCommandFactory{prService: prSvc}
}

func (f *PRCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:        "pr",
		Usage:       t.GetMessage("pr.usage", 0, nil),
		ArgsUsage:   "[BRANCH]",
		Description: t.GetMessage("pr.branch_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   t.GetMessage("flags.message", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "publish",
				Usage: t.GetMessage("pr.publish_flag", 0, nil),
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
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, command *cli.Command) error {
			log := logger.FromContext(ctx)

			branch := command.Args().First()
			if branch == "" {
				branch = defaultBranch
			}

			provider := config.AI(command.String("provider"))
			model := command.String("model")
			if model == "" {
				model = cfg.ModelFor(provider)
			}

			opts := services.PROptions{
				GenerationOptions: services.GenerationOptions{
					Context:             command.String("message"),
					Provider:            provider,
					Model:               model,
					Language:            cfg.Language,
					WrapWidth:           cfg.WrapWidth,
					SuggestImprovements: cfg.SuggestImprovements && !command.Bool("no-improvements"),
				},
				Branch:  branch,
				Publish: command.Bool("publish"),
			}

			log.Info("executing pr command",
				"branch", branch,
				"provider", provider,
				"model", model,
				"publish", opts.Publish)

			if err := f.prService.Run(ctx, opts); err != nil {
				log.Error("pr command failed", "error", err)
				return err
			}
			return nil
		},
	}
}
