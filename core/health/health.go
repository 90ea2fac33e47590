package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/logger"
)

// Liveness indicates the service process is running. Always answers
// "ALIVE" with 200 OK, no dependency checks.
func Liveness[C handler.Context](ctx C) handler.Result {
	if err := ctx.Response().Text("ALIVE"); err != nil {
		return handler.Fail(err)
	}
	return handler.End()
}

// NoContent answers 204 without a body, for high-frequency probes.
func NoContent[C handler.Context](ctx C) handler.Result {
	if err := ctx.Response().NoContent(); err != nil {
		return handler.Fail(err)
	}
	return handler.End()
}

// Readiness verifies service dependencies. Answers "READY" when every
// check passes and 503 Service Unavailable on the first failure.
func Readiness[C handler.Context](log *slog.Logger, checks ...func(context.Context) error) handler.HandlerFunc[C] {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx C) handler.Result {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				if err := ctx.Response().SetStatus(http.StatusServiceUnavailable).
					Text(http.StatusText(http.StatusServiceUnavailable)); err != nil {
					return handler.Fail(err)
				}
				return handler.End()
			}
		}
		if err := ctx.Response().Text("READY"); err != nil {
			return handler.Fail(err)
		}
		return handler.End()
	}
}
