package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Notification outcomes recorded for each finalized build notification.
const (
	OutcomeSent    = "sent"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Metrics holds the relay's prometheus collectors.
type Metrics struct {
	notifications *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with the default
// registry. A collector that is already registered, as happens when tests
// build several servers, is reused.
func NewMetrics() *Metrics {
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "opslevel",
		Subsystem: "relay",
		Name:      "notifications_total",
		Help:      "Count of processed build notifications by outcome",
	}, []string{"outcome"})

	if err := prometheus.Register(notifications); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			notifications = already.ExistingCollector.(*prometheus.CounterVec)
		}
	}

	return &Metrics{
		notifications: notifications,
	}
}

// CountNotification records one processed notification by outcome.
func (x *Metrics) CountNotification(outcome string) {
	if x == nil {
		return
	}
	x.notifications.With(prometheus.Labels{"outcome": outcome}).Inc()
}

// Handler exposes the prometheus scrape endpoint.
func (x *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
