package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/interfaces"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/model"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/utils/errs"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// HookHandler handles build notifications POSTed by the Jenkins
// notification plugin and relays qualifying completions to OpsLevel.
type HookHandler struct {
	config   func() *model.PublisherConfig
	notifier interfaces.DeployNotifier
	metrics  *Metrics
}

// NewHookHandler creates a new HookHandler. config is consulted on every
// request so configuration reloads take effect without a restart.
func NewHookHandler(config func() *model.PublisherConfig, notifier interfaces.DeployNotifier, metrics *Metrics) *HookHandler {
	return &HookHandler{
		config:   config,
		notifier: notifier,
		metrics:  metrics,
	}
}

// Handle processes one build notification
func (h *HookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	// Read payload
	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var notification model.BuildNotification
	if err := json.Unmarshal(body, &notification); err != nil {
		logger.Error("Failed to parse build notification", "error", err)
		writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}

	// Jenkins reports QUEUED, STARTED, COMPLETED and FINALIZED; only the
	// final phase carries a result worth relaying.
	if !notification.Finalized() {
		logger.Debug("Ignoring non-final build phase",
			"job", notification.Name,
			"phase", notification.Build.Phase,
		)
		h.respond(ctx, w, "ignored")
		return
	}

	completion := notification.Completion()

	result, err := h.notifier.Notify(ctx, h.config(), completion)
	if err != nil {
		h.metrics.CountNotification(OutcomeFailed)
		errs.Handle(ctx, goerr.Wrap(err, "failed to relay deploy event",
			goerr.V("job", notification.Name),
			goerr.V("build", notification.Build.Number),
		))
		writeError(w, goerr.Wrap(err, "failed to relay deploy event"), http.StatusBadGateway)
		return
	}

	if result == nil {
		h.metrics.CountNotification(OutcomeSkipped)
		logger.Info("Build completion skipped",
			"job", notification.Name,
			"build", notification.Build.Number,
			"status", completion.Status,
		)
		h.respond(ctx, w, "skipped")
		return
	}

	h.metrics.CountNotification(OutcomeSent)
	logger.Info("Deploy event relayed",
		"job", notification.Name,
		"build", notification.Build.Number,
		"dedup_id", result.Event.DedupID,
	)
	h.respond(ctx, w, "sent")
}

func (h *HookHandler) respond(ctx context.Context, w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": status,
	}); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}
