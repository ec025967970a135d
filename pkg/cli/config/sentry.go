package config

import (
	"github.com/getsentry/sentry-go"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Sentry holds error reporting configuration
type Sentry struct {
	DSN string
	Env string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN (error reporting is disabled when empty)",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("OPSLEVEL_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment tag",
			Destination: &c.Env,
			Sources:     cli.EnvVars("OPSLEVEL_SENTRY_ENV"),
		},
	}
}

// Configure initializes the global Sentry client. Without a DSN it is a
// no-op and error reporting stays disabled.
func (c *Sentry) Configure() error {
	if c.DSN == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Env,
		Release:     "opslevel-jenkins@" + types.Version,
	}); err != nil {
		return goerr.Wrap(err, "failed to initialize Sentry")
	}

	return nil
}
