package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/response"
)

// mux is the private implementation of Router.
type mux[C handler.Context] struct {
	layers       []layer[C]
	errorHandler ErrorHandler[C]
	newContext   func(*response.Writer, *http.Request) C
	logger       *slog.Logger
}

// newMux creates a new router instance.
func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w *response.Writer, r *http.Request) C {
			// Only the default *Context type works without a factory;
			// custom contexts must provide one.
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(NewContext(w, r)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return m
}

// ServeHTTP implements http.Handler. One call is one exchange: it builds
// the normalized context, runs the dispatch state machine over the layer
// list, and finalizes the response when no handler sent one.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := response.NewWriter(w, r, response.WithLogger(m.logger))
	ctx := m.newContext(ww, r)

	// Match on the escaped path to keep encoded slashes intact; captured
	// parameters are decoded by the matcher.
	path := r.URL.EscapedPath()
	if path == "" {
		path = "/"
	}

	out, err := m.dispatch(ctx, path, nil)

	switch {
	case err != nil:
		if e, ok := err.(PanicError); ok {
			m.logger.Error("panic during dispatch",
				"value", e.Value(),
				"stack", string(e.Stack()),
				"path", r.URL.Path,
				"method", r.Method,
			)
		}
		if ww.Sent() || ww.Written() {
			m.logger.Error("unrecovered error after response started",
				"error", err, "path", r.URL.Path, "method", r.Method)
			return
		}
		m.errorHandler(ctx, err)
	case out == outcomeExhausted && !ww.Sent() && !ww.Written():
		m.errorHandler(ctx, ErrNotFound)
	}
}

// Get registers a handler chain for GET requests.
func (m *mux[C]) Get(pattern string, h ...handler.HandlerFunc[C]) {
	m.handle(mGET, pattern, h)
}

// Post registers a handler chain for POST requests.
func (m *mux[C]) Post(pattern string, h ...handler.HandlerFunc[C]) {
	m.handle(mPOST, pattern, h)
}

// Put registers a handler chain for PUT requests.
func (m *mux[C]) Put(pattern string, h ...handler.HandlerFunc[C]) {
	m.handle(mPUT, pattern, h)
}

// Patch registers a handler chain for PATCH requests.
func (m *mux[C]) Patch(pattern string, h ...handler.HandlerFunc[C]) {
	m.handle(mPATCH, pattern, h)
}

// Delete registers a handler chain for DELETE requests.
func (m *mux[C]) Delete(pattern string, h ...handler.HandlerFunc[C]) {
	m.handle(mDELETE, pattern, h)
}

// Options registers a handler chain for OPTIONS requests.
func (m *mux[C]) Options(pattern string, h ...handler.HandlerFunc[C]) {
	m.handle(mOPTIONS, pattern, h)
}

// Head registers a handler chain for HEAD requests.
func (m *mux[C]) Head(pattern string, h ...handler.HandlerFunc[C]) {
	m.handle(mHEAD, pattern, h)
}

// All registers a handler chain for every HTTP method.
func (m *mux[C]) All(pattern string, h ...handler.HandlerFunc[C]) {
	m.handle(mALL, pattern, h)
}

// Method registers a handler chain for one named HTTP method.
func (m *mux[C]) Method(method, pattern string, h ...handler.HandlerFunc[C]) {
	mt, ok := methodMap[strings.ToUpper(method)]
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
	}
	m.handle(mt, pattern, h)
}

// Use appends a chain that matches unconditionally for any path.
func (m *mux[C]) Use(h ...handler.HandlerFunc[C]) {
	m.layers = append(m.layers, layer[C]{
		method:  mUSE,
		pattern: "/",
		chain:   validateChain(h),
	})
}

// UseAt appends a chain scoped to a path prefix on a segment boundary.
func (m *mux[C]) UseAt(pattern string, h ...handler.HandlerFunc[C]) {
	ma, err := compilePattern(pattern)
	if err != nil {
		panic(err)
	}
	m.layers = append(m.layers, layer[C]{
		method:  mUSE,
		matcher: ma,
		pattern: pattern,
		chain:   validateChain(h),
	})
}

// Mount attaches a sub-router under the given prefix.
func (m *mux[C]) Mount(pattern string, sub Router[C]) {
	if sub == nil {
		panic(fmt.Errorf("%w: mount on '%s'", ErrNilRouter, pattern))
	}
	subMux, ok := sub.(*mux[C])
	if !ok {
		panic(fmt.Errorf("%w: mount on '%s'", ErrForeignRouter, pattern))
	}
	if subMux == m || subMux.contains(m) {
		panic(fmt.Errorf("%w: mount on '%s'", ErrCyclicMount, pattern))
	}

	ma, err := compilePattern(pattern)
	if err != nil {
		panic(err)
	}
	m.layers = append(m.layers, layer[C]{
		method:  mUSE,
		matcher: ma,
		pattern: pattern,
		sub:     subMux,
	})
}

// Catch appends a catch layer receiving errors raised before it.
func (m *mux[C]) Catch(h handler.ErrorHandlerFunc[C]) {
	if h == nil {
		panic(ErrNilHandler)
	}
	m.layers = append(m.layers, layer[C]{method: mCATCH, catch: h})
}

// Route returns a registration view bound to the pattern alternation.
func (m *mux[C]) Route(patterns ...string) *Route[C] {
	ma, err := compilePattern(patterns...)
	if err != nil {
		panic(err)
	}
	return &Route[C]{mux: m, matcher: ma, pattern: strings.Join(patterns, "|")}
}

// RouteRegexp returns a registration view bound to a regexp pattern.
func (m *mux[C]) RouteRegexp(re *regexp.Regexp) *Route[C] {
	ma, err := compileRegexp(re)
	if err != nil {
		panic(err)
	}
	return &Route[C]{mux: m, matcher: ma, pattern: re.String()}
}

// Routes returns all registered layers in registration order.
func (m *mux[C]) Routes() []RouteInfo {
	routes := make([]RouteInfo, 0, len(m.layers))
	for i := range m.layers {
		l := &m.layers[i]
		switch {
		case l.method == mCATCH:
			routes = append(routes, RouteInfo{Method: "CATCH"})
		case l.method == mUSE:
			routes = append(routes, RouteInfo{Method: "USE", Pattern: l.pattern})
		case l.method == mALL:
			routes = append(routes, RouteInfo{Method: "ALL", Pattern: l.pattern})
		default:
			for mt, name := range reverseMethodMap {
				if l.method&mt != 0 {
					routes = append(routes, RouteInfo{Method: name, Pattern: l.pattern})
				}
			}
		}
	}
	return routes
}

// handle compiles the pattern and appends one chain layer.
func (m *mux[C]) handle(method methodTyp, pattern string, h []handler.HandlerFunc[C]) {
	ma, err := compilePattern(pattern)
	if err != nil {
		panic(err)
	}
	m.layers = append(m.layers, layer[C]{
		method:  method,
		matcher: ma,
		pattern: pattern,
		chain:   validateChain(h),
	})
}

// appendRoute registers a chain against a pre-compiled matcher on behalf
// of a Route view.
func (m *mux[C]) appendRoute(method methodTyp, ma *matcher, pattern string, h []handler.HandlerFunc[C]) {
	m.layers = append(m.layers, layer[C]{
		method:  method,
		matcher: ma,
		pattern: pattern,
		chain:   validateChain(h),
	})
}

// contains reports whether target is reachable from m through mounts.
func (m *mux[C]) contains(target *mux[C]) bool {
	for i := range m.layers {
		sub := m.layers[i].sub
		if sub == nil {
			continue
		}
		if sub == target || sub.contains(target) {
			return true
		}
	}
	return false
}

func validateChain[C handler.Context](h []handler.HandlerFunc[C]) []handler.HandlerFunc[C] {
	if len(h) == 0 {
		panic(fmt.Errorf("%w: empty handler chain", ErrNilHandler))
	}
	for _, fn := range h {
		if fn == nil {
			panic(fmt.Errorf("%w: nil handler in chain", ErrNilHandler))
		}
	}
	return h
}
