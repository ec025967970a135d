package interfaces

import (
	"context"

	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/model"
)

// DeployNotifier defines the interface for turning finished builds into
// deploy events.
type DeployNotifier interface {
	// Notify decides whether the completion warrants a deploy event,
	// assembles it, and delivers it to the configured webhook. It returns
	// (nil, nil) when the completion is skipped: no webhook configured or
	// a non-qualifying build result.
	Notify(ctx context.Context, config *model.PublisherConfig, completion model.JobCompletion) (*model.PublishResult, error)
}
