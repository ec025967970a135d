package types

// Version is the notifier version reported to OpsLevel via the `agent`
// query parameter. It is overridden at build time with
// -ldflags "-X github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/types.Version=vX.Y.Z".
var Version = "dev"

// AgentName is the integration name prefixed to Version in the `agent`
// query parameter and to the job name in the default service identifier.
const AgentName = "jenkins"

// WebhookURL is the OpsLevel deploy webhook endpoint. The URL embeds the
// integration secret, so it carries its own type to let the logging layer
// redact it wherever it appears in a log record.
type WebhookURL string

// String returns the raw URL. Use only where the value is meant to leave
// the process (requests, build console).
func (x WebhookURL) String() string {
	return string(x)
}
