package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/router"
	"github.com/dmitrymomot/relay/middleware"
)

func TestLogging(t *testing.T) {
	t.Parallel()

	t.Run("logs completed exchange with status", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))

		r := router.New[*router.Context]()
		r.Use(middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{Logger: log}))
		r.Get("/ok", func(ctx *router.Context) handler.Result {
			require.NoError(t, ctx.Response().SetStatus(http.StatusAccepted).Text("done"))
			return handler.End()
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

		out := buf.String()
		assert.Contains(t, out, "request completed")
		assert.Contains(t, out, "method=GET")
		assert.Contains(t, out, "path=/ok")
		assert.Contains(t, out, "status_code=202")
		assert.Contains(t, out, "proto=1.1")
	})

	t.Run("skip suppresses logging", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))

		r := router.New[*router.Context]()
		r.Use(middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
			Logger: log,
			Skip: func(ctx handler.Context) bool {
				return ctx.Request().URL.Path == "/health"
			},
		}))
		r.Get("/health", func(ctx *router.Context) handler.Result {
			require.NoError(t, ctx.Response().Text("ok"))
			return handler.End()
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Empty(t, buf.String())
	})

	t.Run("includes request id when present", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))

		r := router.New[*router.Context]()
		r.Use(
			middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{
				Generator: func() string { return "req-123" },
			}),
			middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{Logger: log}),
		)
		r.Get("/", func(ctx *router.Context) handler.Result {
			require.NoError(t, ctx.Response().Text("ok"))
			return handler.End()
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Contains(t, buf.String(), "request_id=req-123")
	})
}
