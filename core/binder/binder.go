package binder

import "github.com/dmitrymomot/relay/core/handler"

// Func extracts one slice of request data into v, which must be a non-nil
// pointer to struct. Missing values leave fields at their zero value.
type Func func(ctx handler.Context, v any) error

// Bind applies binders in order, stopping at the first failure.
func Bind(ctx handler.Context, v any, binders ...Func) error {
	for _, bind := range binders {
		if err := bind(ctx, v); err != nil {
			return err
		}
	}
	return nil
}
