// Package webhook delivers deploy events to OpsLevel over HTTP.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/interfaces"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/model"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
)

type client struct {
	httpClient *http.Client
	agent      string
}

// Option is a functional option for client configuration
type Option func(*client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// New creates a deploy event publisher. It identifies itself to the
// receiving endpoint as "<agent>-<version>" via the agent query parameter.
// A single client is safe for concurrent use; delivery is one POST per
// event with no retry.
func New(opts ...Option) interfaces.DeployPublisher {
	c := &client{
		httpClient: &http.Client{},
		agent:      types.AgentName + "-" + types.Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Publish serializes event and POSTs it to webhookURL. Any HTTP response,
// success or not, counts as delivered and its body is returned for the
// build console. Transport failures and unparsable URLs return an error.
func (x *client) Publish(ctx context.Context, webhookURL types.WebhookURL, event *model.DeployEvent) (string, error) {
	u, err := url.Parse(webhookURL.String())
	if err != nil {
		return "", fmt.Errorf("invalid webhook URL: %w", err)
	}
	q := u.Query()
	q.Set("agent", x.agent)
	u.RawQuery = q.Encode()

	body, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to serialize deploy event: %w", err)
	}

	logger := ctxlog.From(ctx)
	logger.Info("Sending OpsLevel integration payload", "payload", string(body))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to deliver deploy event: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read webhook response: %w", err)
	}

	logger.Info("Deploy event delivered",
		"url", webhookURL,
		"status", resp.StatusCode,
		"dedup_id", event.DedupID,
	)

	return string(respBody), nil
}
