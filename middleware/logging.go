package middleware

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/logger"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for completed requests (default: slog.LevelInfo)
	LogLevel slog.Level

	// Skip defines a function to skip logging for specific requests
	Skip func(ctx handler.Context) bool
}

// Logging creates a request logging handler with default configuration.
func Logging[C handler.Context]() handler.HandlerFunc[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithConfig creates a request logging handler. Completed exchanges
// are logged once on the terminal send with status and elapsed time;
// long-lived event streams, which have no terminal send, are logged when
// the stream opens instead.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.HandlerFunc[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return func(ctx C) handler.Result {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return handler.Next()
		}

		r := ctx.Request()
		start := time.Now()
		proto := "1.1"
		if r.ProtoMajor == 2 {
			proto = "2.0"
		}

		ctx.Response().OnFinish(func(status int) {
			cfg.Logger.LogAttrs(ctx, cfg.LogLevel, "request completed",
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.Proto(proto),
				logger.StatusCode(status),
				logger.Elapsed(start),
				logger.RequestID(RequestIDFromContext(ctx)),
			)
		})

		return handler.Next()
	}
}
