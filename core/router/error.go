package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/relay/core/handler"
)

var (
	// Configuration errors, raised as panics during setup.
	ErrInvalidPattern   = errors.New("invalid route path pattern")
	ErrInvalidRegexp    = errors.New("invalid route path regexp")
	ErrDuplicateParam   = errors.New("duplicate parameter name")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrNilHandler       = errors.New("nil handler")
	ErrNilRouter        = errors.New("nil router")
	ErrCyclicMount      = errors.New("cyclic router mount")
	ErrForeignRouter    = errors.New("can only mount routers created by this package")
	ErrNoContextFactory = errors.New("no context factory provided")

	// Dispatch outcomes surfaced to the error handler.
	ErrNotFound = errors.New("not found")
)

// statusCode is an unexported interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// ErrorHandler is the terminal fallback invoked when dispatch ends with an
// error no catch layer recovered, or with no matching layer at all.
type ErrorHandler[C handler.Context] func(ctx C, err error)

// defaultErrorHandler degrades failures to generic status-coded responses
// without leaking internal error detail.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.Response()
	if w.Sent() || w.Written() {
		return
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.Is(err, ErrNotFound) {
		status = http.StatusNotFound
	} else if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	_ = w.SetStatus(status).Text(http.StatusText(status))
}

// PanicError allows error handlers to detect recovered panics and access
// the original panic value and stack trace.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

// panicError is the private implementation of PanicError.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any { return e.value }

func (e *panicError) Stack() []byte { return e.stack }

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
