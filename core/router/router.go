package router

import (
	"net/http"
	"regexp"

	"github.com/dmitrymomot/relay/core/handler"
)

// Router is the composition unit applications use to register behavior.
// It holds an ordered sequence of layers and dispatches requests through
// them, recursing into mounted sub-routers. All registration must happen
// during setup; afterwards the router is immutable and safe for
// concurrent use.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	// Per-method registration. Handlers given in one call form a single
	// chain: a SkipRoute from any of them abandons only that chain.
	Get(pattern string, h ...handler.HandlerFunc[C])
	Post(pattern string, h ...handler.HandlerFunc[C])
	Put(pattern string, h ...handler.HandlerFunc[C])
	Patch(pattern string, h ...handler.HandlerFunc[C])
	Delete(pattern string, h ...handler.HandlerFunc[C])
	Options(pattern string, h ...handler.HandlerFunc[C])
	Head(pattern string, h ...handler.HandlerFunc[C])

	// All registers a chain matching every method.
	All(pattern string, h ...handler.HandlerFunc[C])

	// Method registers a chain for one explicitly named method.
	Method(method, pattern string, h ...handler.HandlerFunc[C])

	// Use appends a chain that runs for every method and path.
	Use(h ...handler.HandlerFunc[C])

	// UseAt appends a chain scoped to a path prefix.
	UseAt(pattern string, h ...handler.HandlerFunc[C])

	// Mount embeds a sub-router under a path prefix. The matched prefix
	// is stripped before the sub-router matches; parameters captured in
	// the prefix remain in scope. Mounting a router within itself,
	// directly or transitively, panics at mount time.
	Mount(pattern string, sub Router[C])

	// Catch appends a catch layer. It receives errors raised by layers
	// registered before it in this router or in any mounted sub-router
	// already traversed, per forward search order.
	Catch(h handler.ErrorHandlerFunc[C])

	// Route returns a view bound to the given pattern alternation whose
	// per-method calls register on this router without re-specifying the
	// path.
	Route(patterns ...string) *Route[C]

	// RouteRegexp is Route for a native regexp pattern with named groups.
	RouteRegexp(re *regexp.Regexp) *Route[C]
}

// Routes provides route introspection for debugging and monitoring.
type Routes interface {
	Routes() []RouteInfo
}

// RouteInfo describes a single registered layer.
type RouteInfo struct {
	Method  string
	Pattern string
}

// New creates a router. The zero configuration serves the default
// *Context; custom context types need a factory option.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux(opts...)
}
