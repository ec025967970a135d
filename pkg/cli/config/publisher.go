package config

import (
	"os"

	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/model"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Publisher holds deploy publisher configuration. Values come from an
// optional TOML file plus flags; a flag with a non-empty value overrides
// the file. Empty flags count as unset, so an explicit empty override
// (send the field as "") can only be expressed in the file.
type Publisher struct {
	File          string
	WebhookURL    string
	Service       string
	Environment   string
	Description   string
	DeployURL     string
	DeployerID    string
	DeployerName  string
	DeployerEmail string
}

// Flags returns CLI flags for publisher configuration
func (c *Publisher) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to publisher configuration TOML file",
			Destination: &c.File,
			Sources:     cli.EnvVars("OPSLEVEL_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "webhook-url",
			Usage:       "OpsLevel deploy webhook URL (delivery is disabled when empty)",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("OPSLEVEL_WEBHOOK_URL"),
		},
		&cli.StringFlag{
			Name:        "service",
			Usage:       "Service identifier template, e.g. '${JOB_NAME}'",
			Destination: &c.Service,
			Sources:     cli.EnvVars("OPSLEVEL_SERVICE"),
		},
		&cli.StringFlag{
			Name:        "environment",
			Usage:       "Deploy environment template",
			Destination: &c.Environment,
			Sources:     cli.EnvVars("OPSLEVEL_ENVIRONMENT"),
		},
		&cli.StringFlag{
			Name:        "description",
			Usage:       "Deploy description template",
			Destination: &c.Description,
			Sources:     cli.EnvVars("OPSLEVEL_DESCRIPTION"),
		},
		&cli.StringFlag{
			Name:        "deploy-url",
			Usage:       "Deploy URL template",
			Destination: &c.DeployURL,
			Sources:     cli.EnvVars("OPSLEVEL_DEPLOY_URL"),
		},
		&cli.StringFlag{
			Name:        "deployer-id",
			Usage:       "Deployer ID template",
			Destination: &c.DeployerID,
			Sources:     cli.EnvVars("OPSLEVEL_DEPLOYER_ID"),
		},
		&cli.StringFlag{
			Name:        "deployer-name",
			Usage:       "Deployer name template",
			Destination: &c.DeployerName,
			Sources:     cli.EnvVars("OPSLEVEL_DEPLOYER_NAME"),
		},
		&cli.StringFlag{
			Name:        "deployer-email",
			Usage:       "Deployer email template",
			Destination: &c.DeployerEmail,
			Sources:     cli.EnvVars("OPSLEVEL_DEPLOYER_EMAIL"),
		},
	}
}

// Configure builds the publisher configuration from the file and flags
func (c *Publisher) Configure() (*model.PublisherConfig, error) {
	cfg := &model.PublisherConfig{}

	if c.File != "" {
		loaded, err := LoadPublisherFile(c.File)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.WebhookURL != "" {
		cfg.WebhookURL = types.WebhookURL(c.WebhookURL)
	}
	applyOverride(&cfg.Service, c.Service)
	applyOverride(&cfg.Environment, c.Environment)
	applyOverride(&cfg.Description, c.Description)
	applyOverride(&cfg.DeployURL, c.DeployURL)
	applyOverride(&cfg.Deployer.ID, c.DeployerID)
	applyOverride(&cfg.Deployer.Name, c.DeployerName)
	applyOverride(&cfg.Deployer.Email, c.DeployerEmail)

	return cfg, nil
}

func applyOverride(target **string, value string) {
	if value != "" {
		v := value
		*target = &v
	}
}

// LoadPublisherFile reads a publisher configuration TOML file. Absent keys
// load as nil while keys set to an empty string load as configured-empty,
// which the event builder sends as-is instead of falling back.
func LoadPublisherFile(path string) (*model.PublisherConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read publisher config file", goerr.V("path", path))
	}

	var cfg model.PublisherConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse publisher config file", goerr.V("path", path))
	}

	return &cfg, nil
}
