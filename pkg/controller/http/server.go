package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/interfaces"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/model"
)

// config holds internal HTTP server configuration
type config struct {
	addr string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server. publisherConfig is called on every
// incoming notification, so a hot-reloaded configuration is picked up
// without restarting the server.
func NewServer(
	ctx context.Context,
	publisherConfig func() *model.PublisherConfig,
	notifier interfaces.DeployNotifier,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:8080",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	// Prometheus metrics
	metrics := NewMetrics()
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Build notification endpoint
	hookHandler := NewHookHandler(publisherConfig, notifier, metrics)
	router.Post("/hooks/jenkins", hookHandler.Handle)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
