package errs_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/utils/errs"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestHandle(t *testing.T) {
	t.Run("nil error is ignored", func(t *testing.T) {
		errs.Handle(context.Background(), nil)
	})

	t.Run("error goes to the context logger", func(t *testing.T) {
		var logs bytes.Buffer
		ctx := ctxlog.With(context.Background(), slog.New(slog.NewJSONHandler(&logs, nil)))

		errs.Handle(ctx, goerr.New("delivery exploded", goerr.V("dedup_id", "d-1")))

		gt.String(t, logs.String()).Contains("Operation failed")
		gt.String(t, logs.String()).Contains("delivery exploded")
	})
}
