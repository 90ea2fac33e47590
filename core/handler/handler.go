package handler

// HandlerFunc is a type-safe request handler with custom context support.
// The returned Result tells the dispatcher how to proceed; handlers write
// their output through ctx.Response().
type HandlerFunc[C Context] func(ctx C) Result

// ErrorHandlerFunc receives errors raised during dispatch. Registered via
// a router's Catch, it may finish the exchange, resume normal traversal
// with Next, or re-fail with a new error.
type ErrorHandlerFunc[C Context] func(ctx C, err error) Result
