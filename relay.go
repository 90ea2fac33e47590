package relay

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/response"
	"github.com/dmitrymomot/relay/core/router"
	"github.com/dmitrymomot/relay/core/server"
)

// App is an application root: a Router plus transport wiring. It embeds
// the router, so all registration methods are available directly on it.
type App[C handler.Context] struct {
	router.Router[C]

	cfg    server.Config
	logger *slog.Logger
	srv    *server.Server
}

// Option configures an App during creation.
type Option[C handler.Context] func(*App[C]) []router.Option[C]

// WithLogger sets the logger shared by the router and the server.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(a *App[C]) []router.Option[C] {
		if logger == nil {
			return nil
		}
		a.logger = logger
		return []router.Option[C]{router.WithLogger[C](logger)}
	}
}

// WithConfig sets the server configuration, overriding the defaults.
func WithConfig[C handler.Context](cfg server.Config) Option[C] {
	return func(a *App[C]) []router.Option[C] {
		a.cfg = cfg
		return nil
	}
}

// WithErrorHandler sets the terminal fallback for unrecovered errors.
func WithErrorHandler[C handler.Context](h router.ErrorHandler[C]) Option[C] {
	return func(a *App[C]) []router.Option[C] {
		return []router.Option[C]{router.WithErrorHandler(h)}
	}
}

// WithContextFactory sets the factory for custom context types.
func WithContextFactory[C handler.Context](f func(*response.Writer, *http.Request) C) Option[C] {
	return func(a *App[C]) []router.Option[C] {
		return []router.Option[C]{router.WithContextFactory(f)}
	}
}

// New creates an application. The zero configuration serves the default
// *router.Context over HTTP/1.1 with h2c available through server config.
func New[C handler.Context](opts ...Option[C]) *App[C] {
	app := &App[C]{
		cfg:    server.DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	var routerOpts []router.Option[C]
	for _, opt := range opts {
		routerOpts = append(routerOpts, opt(app)...)
	}
	app.Router = router.New(routerOpts...)

	return app
}

// Handler returns the application as a plain http.Handler, for embedding
// into existing servers or tests.
func (a *App[C]) Handler() http.Handler {
	return a.Router
}

// Listen serves the application on addr until ctx is canceled, then shuts
// down gracefully. The negotiated transport (HTTP/1.1, HTTP/2 via ALPN, or
// h2c) is invisible to handlers.
func (a *App[C]) Listen(ctx context.Context, addr string) error {
	cfg := a.cfg
	if addr != "" {
		cfg.Addr = addr
	}

	srv, err := server.NewFromConfig(cfg, server.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.srv = srv

	return srv.Run(ctx, a.Router)()
}

// Close gracefully stops a listening application.
func (a *App[C]) Close() error {
	if a.srv == nil {
		return nil
	}
	return a.srv.Stop()
}
