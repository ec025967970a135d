package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
)

// Go runs handler in its own goroutine with panic recovery. Unlike a bare
// go statement, a panic inside handler is caught and logged instead of
// crashing the process. The handler keeps the caller's context and is
// expected to return when ctx is cancelled.
func Go(ctx context.Context, handler func(ctx context.Context) error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				logger := ctxlog.From(ctx)
				logger.Error("panic in async handler",
					"recover", r,
					"stack", string(stack))
			}
		}()

		if err := handler(ctx); err != nil {
			logger := ctxlog.From(ctx)
			logger.Error("error in async handler", "error", err)
		}
	}()
}
