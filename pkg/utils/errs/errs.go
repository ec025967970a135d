// Package errs funnels operational errors into the log and Sentry.
package errs

import (
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle reports err through the context logger and, when configured,
// Sentry. It belongs at the boundaries where errors stop propagating: a
// failed notification must never change the build's own result, so the
// completion handlers land here instead of returning the error upward.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	ctxlog.From(ctx).Error("Operation failed", "error", err)

	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		if goErr := goerr.Unwrap(err); goErr != nil {
			for k, v := range goErr.Values() {
				scope.SetExtra(k, v)
			}
		}
		hub.CaptureException(err)
	})
}
