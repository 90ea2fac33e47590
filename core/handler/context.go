package handler

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/relay/core/response"
)

// Context defines the contract for request contexts in the framework.
// It is created once per incoming exchange, owned exclusively by that
// exchange, and discarded when the response completes.
// Use router.Context for the default implementation.
type Context interface {
	context.Context

	// Request returns the underlying HTTP request.
	Request() *http.Request

	// Response returns the dual-mode response writer for this exchange.
	Response() *response.Writer

	// Param returns the value of the URL parameter by key, or "" if absent.
	Param(key string) string

	// SetParam binds a URL parameter. The router calls this while walking
	// matching layers; parameters captured in a mount prefix stay in scope
	// for nested handlers.
	SetParam(key, value string)

	// SetValue stores an arbitrary value in the request context.
	SetValue(key, val any)
}
