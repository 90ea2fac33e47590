package binder

import "github.com/dmitrymomot/relay/core/handler"

// Query creates a binder that maps query-string parameters onto struct
// fields by `query` tag (falling back to the lowercased field name).
//
// Supported field types: string, ints, uints, floats, bool, slices of
// those for multi-value parameters, and pointers for optional fields.
func Query() Func {
	return func(ctx handler.Context, v any) error {
		return bindValues(v, "query", ctx.Request().URL.Query(), ErrFailedToParseQuery)
	}
}
