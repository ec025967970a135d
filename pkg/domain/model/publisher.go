package model

import "github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/types"

// PublisherConfig holds the deploy notification settings for a job: the
// webhook target plus optional override templates. A nil override means
// "not configured" and the event field falls back to its computed default;
// a set-but-empty override is expanded and sent as-is. Overrides may
// reference build environment variables as ${VAR}.
type PublisherConfig struct {
	WebhookURL  types.WebhookURL `toml:"webhook_url"`
	Service     *string          `toml:"service"`
	Environment *string          `toml:"environment"`
	Description *string          `toml:"description"`
	DeployURL   *string          `toml:"deploy_url"`
	Deployer    DeployerConfig   `toml:"deployer"`
}

// DeployerConfig carries the optional deployer identity overrides.
type DeployerConfig struct {
	ID    *string `toml:"id"`
	Name  *string `toml:"name"`
	Email *string `toml:"email"`
}

// Enabled reports whether a webhook target is configured. A completion
// without one produces no notification and no error.
func (x *PublisherConfig) Enabled() bool {
	return x != nil && x.WebhookURL != ""
}
