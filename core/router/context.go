package router

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrymomot/relay/core/response"
)

// Context is the default request context implementation. It normalizes the
// transport-specific request into one field set regardless of whether the
// exchange arrived over a single-stream HTTP/1.1 connection or an HTTP/2
// stream, and carries the dual-mode response writer for the exchange.
type Context struct {
	w      *response.Writer
	r      *http.Request
	params map[string]string
	query  url.Values
}

// NewContext creates a Context for one exchange.
func NewContext(w *response.Writer, r *http.Request) *Context {
	return &Context{
		w: w,
		r: r,
		// params map is lazily initialized in SetParam when needed
	}
}

// Deadline returns the time when work done on behalf of this context should be canceled.
func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done returns a channel that's closed when work done on behalf of this context should be canceled.
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err returns a non-nil error value after Done is closed.
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value returns the value associated with this context for key, or nil if no value is associated with key.
func (c *Context) Value(key any) any {
	return c.r.Context().Value(key)
}

// Request returns the HTTP request associated with this context.
func (c *Context) Request() *http.Request {
	return c.r
}

// Response returns the response writer for this exchange.
func (c *Context) Response() *response.Writer {
	return c.w
}

// Method returns the request method.
func (c *Context) Method() string {
	return c.r.Method
}

// Path returns the request path component, without query string or fragment.
func (c *Context) Path() string {
	return c.r.URL.Path
}

// Header returns the request headers.
func (c *Context) Header() http.Header {
	return c.r.Header
}

// Body returns the lazily readable request payload. HTTP/1.1 delivers it
// as the connection's byte stream, HTTP/2 as the stream's data frames; the
// reader hides the difference.
func (c *Context) Body() io.ReadCloser {
	return c.r.Body
}

// ProtoVersion reports the negotiated protocol version tag: "2.0" for
// multiplexed-stream delivery, "1.1" otherwise.
func (c *Context) ProtoVersion() string {
	if c.r.ProtoMajor == 2 {
		return "2.0"
	}
	return "1.1"
}

// Param returns the value of the URL parameter for the given key.
func (c *Context) Param(key string) string {
	if c.params == nil {
		return ""
	}
	return c.params[key]
}

// Params returns all URL parameters captured so far.
func (c *Context) Params() map[string]string {
	return c.params
}

// SetParam binds a URL parameter value.
func (c *Context) SetParam(key, value string) {
	if c.params == nil {
		c.params = make(map[string]string)
	}
	c.params[key] = value
}

// Query returns the first query-string value for key. The query string is
// parsed once on first access.
func (c *Context) Query(key string) string {
	return c.QueryValues().Get(key)
}

// QueryValues returns the parsed query string.
func (c *Context) QueryValues() url.Values {
	if c.query == nil {
		c.query = c.r.URL.Query()
	}
	return c.query
}

// Hash returns the URL fragment. Clients rarely transmit it, but the field
// is part of the normalized request shape.
func (c *Context) Hash() string {
	return c.r.URL.Fragment
}

// SetValue stores an arbitrary value in the request context.
func (c *Context) SetValue(key, val any) {
	ctx := context.WithValue(c.r.Context(), key, val)
	c.r = c.r.WithContext(ctx)
}
