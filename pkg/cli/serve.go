package cli

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/cli/config"
	controller "github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/controller/http"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/model"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/infra/gitcmd"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/infra/webhook"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/usecase"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		publisherCfg config.Publisher
	)

	flags := append(serverCfg.Flags(), publisherCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the build notification relay server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			initial, err := publisherCfg.Configure()
			if err != nil {
				return err
			}

			logger.Info("Starting opslevel-jenkins relay",
				slog.String("addr", serverCfg.Addr),
				slog.Bool("delivery_enabled", initial.Enabled()),
			)

			// Handlers read the publisher config per request; the watcher
			// swaps it on file changes.
			var current atomic.Pointer[model.PublisherConfig]
			current.Store(initial)

			watchCtx, cancelWatch := context.WithCancel(ctx)
			defer cancelWatch()

			if path := publisherCfg.File; path != "" {
				async.Go(watchCtx, func(ctx context.Context) error {
					return config.WatchPublisherFile(ctx, path, func(cfg *model.PublisherConfig) {
						current.Store(cfg)
					})
				})
			}

			// Console lines are a build-log concept; the relay's record is
			// its structured log.
			notifier := usecase.NewNotify(webhook.New(), gitcmd.New(),
				usecase.WithConsole(io.Discard),
			)

			server, err := controller.NewServer(
				ctx,
				current.Load,
				notifier,
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
