package interfaces

import (
	"context"

	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/model"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/types"
)

// DeployPublisher defines operations for delivering deploy events to an
// OpsLevel webhook endpoint.
type DeployPublisher interface {
	// Publish serializes event and POSTs it to url in a single attempt.
	// Any HTTP response counts as delivered and its raw body is returned;
	// only transport-level failures return an error.
	Publish(ctx context.Context, url types.WebhookURL, event *model.DeployEvent) (string, error)
}

// CommitResolver defines operations for recovering commit metadata from a
// build's workspace.
type CommitResolver interface {
	// Subject returns the one-line subject of the commit checked out in dir.
	Subject(ctx context.Context, dir string) (string, error)
}
