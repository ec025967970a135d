package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/interfaces"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type notifyUseCase struct {
	publisher interfaces.DeployPublisher
	commits   interfaces.CommitResolver
	console   io.Writer
	clock     func() time.Time
	newID     func() string
}

// Option is a functional option for notifier configuration
type Option func(*notifyUseCase)

// WithConsole redirects build console output. The default is os.Stdout,
// which is the build console when running as a Jenkins build step.
func WithConsole(w io.Writer) Option {
	return func(uc *notifyUseCase) {
		uc.console = w
	}
}

// WithClock replaces the deployed_at time source.
func WithClock(clock func() time.Time) Option {
	return func(uc *notifyUseCase) {
		uc.clock = clock
	}
}

// WithNewID replaces the dedup_id generator.
func WithNewID(newID func() string) Option {
	return func(uc *notifyUseCase) {
		uc.newID = newID
	}
}

// NewNotify creates a new instance of DeployNotifier
func NewNotify(publisher interfaces.DeployPublisher, commits interfaces.CommitResolver, opts ...Option) interfaces.DeployNotifier {
	uc := &notifyUseCase{
		publisher: publisher,
		commits:   commits,
		console:   os.Stdout,
		clock:     time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Notify decides whether the completion warrants a deploy event, assembles
// it, and delivers it. Skips are silent: no webhook configured or a
// non-qualifying build result returns (nil, nil). Failures are written to
// the build console as well as returned; delivery is a single POST with
// no retry.
func (uc *notifyUseCase) Notify(ctx context.Context, config *model.PublisherConfig, completion model.JobCompletion) (*model.PublishResult, error) {
	logger := ctxlog.From(ctx)

	if !config.Enabled() {
		logger.Debug("No webhook configured, skipping deploy notification")
		return nil, nil
	}

	if !completion.Status.Qualifies() {
		logger.Debug("Build result does not qualify for a deploy event",
			"status", completion.Status,
		)
		return nil, nil
	}

	event, err := uc.buildDeployEvent(ctx, config, completion.Env)
	if err != nil {
		uc.consoleError(err)
		return nil, goerr.Wrap(err, "failed to build deploy event")
	}

	fmt.Fprintf(uc.console, "Publishing deploy to OpsLevel via: %s\n", config.WebhookURL)
	logger.Info("Publishing deploy event",
		"url", config.WebhookURL,
		"service", event.Service,
		"environment", event.Environment,
		"deploy_number", event.DeployNumber,
		"dedup_id", event.DedupID,
	)

	respBody, err := uc.publisher.Publish(ctx, config.WebhookURL, event)
	if err != nil {
		uc.consoleError(err)
		return nil, goerr.Wrap(err, "failed to publish deploy event", goerr.V("url", config.WebhookURL))
	}

	fmt.Fprintf(uc.console, "Response: %s\n", respBody)

	return &model.PublishResult{
		Event:    event,
		Response: respBody,
	}, nil
}

func (uc *notifyUseCase) consoleError(err error) {
	fmt.Fprintf(uc.console, "Error: %v. Could not publish deploy to OpsLevel.\n", err)
}
