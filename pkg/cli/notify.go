package cli

import (
	"context"
	"os"

	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/cli/config"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/model"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/infra/gitcmd"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/infra/webhook"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/usecase"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/utils/errs"
	"github.com/urfave/cli/v3"
)

func cmdNotify() *cli.Command {
	var (
		publisherCfg config.Publisher
		status       string
	)

	flags := append(publisherCfg.Flags(),
		&cli.StringFlag{
			Name:        "status",
			Usage:       "Build result (SUCCESS, UNSTABLE, FAILURE, NOT_BUILT, ABORTED)",
			Value:       string(model.StatusSuccess),
			Destination: &status,
			Sources:     cli.EnvVars("OPSLEVEL_STATUS", "BUILD_RESULT"),
		},
	)

	return &cli.Command{
		Name:    "notify",
		Aliases: []string{"n"},
		Usage:   "Publish a deploy event for the current build",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			completion := model.JobCompletion{
				Env:    model.NewEnvContext(os.Environ()),
				Status: model.ParseStatus(status),
			}

			// The notification is a side channel of the build. Whatever
			// goes wrong here is reported but never surfaces as a nonzero
			// exit that would change the build's own result.
			cfg, err := publisherCfg.Configure()
			if err != nil {
				errs.Handle(ctx, err)
				return nil
			}

			notifier := usecase.NewNotify(webhook.New(), gitcmd.New())
			if _, err := notifier.Notify(ctx, cfg, completion); err != nil {
				errs.Handle(ctx, err)
			}

			return nil
		},
	}
}
