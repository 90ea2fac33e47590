package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/relay/core/handler"
)

// requestIDContextKey is used as a key for storing request ID in request context.
type requestIDContextKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Generator creates new request IDs (default: UUID v4)
	Generator func() string
	// HeaderName specifies the header name for the request ID (default: "X-Request-ID")
	HeaderName string
	// UseExisting determines whether to reuse a request ID supplied by the client
	UseExisting bool
}

// RequestID creates a request ID handler with default configuration.
// It generates a new UUID per request and exposes it in both the request
// context and the response headers.
func RequestID[C handler.Context]() handler.HandlerFunc[C] {
	return RequestIDWithConfig[C](RequestIDConfig{})
}

// RequestIDWithConfig creates a request ID handler with custom configuration.
func RequestIDWithConfig[C handler.Context](cfg RequestIDConfig) handler.HandlerFunc[C] {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}
	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}

	return func(ctx C) handler.Result {
		var requestID string

		if cfg.UseExisting {
			if existing := ctx.Request().Header.Get(cfg.HeaderName); existing != "" {
				requestID = existing
			}
		}
		if requestID == "" {
			requestID = cfg.Generator()
		}

		ctx.SetValue(requestIDContextKey{}, requestID)
		ctx.Response().Header().Set(cfg.HeaderName, requestID)

		return handler.Next()
	}
}

// RequestIDFromContext extracts the request ID, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}
