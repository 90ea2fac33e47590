package binder

import (
	"fmt"
	"reflect"

	"github.com/dmitrymomot/relay/core/handler"
)

// Path creates a binder that maps URL parameters captured during routing
// onto struct fields by `path` tag (falling back to the lowercased field
// name). Missing parameters leave fields at their zero value.
func Path() Func {
	return func(ctx handler.Context, v any) error {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return fmt.Errorf("%w: target must be a non-nil pointer", ErrFailedToParsePath)
		}
		rv = rv.Elem()
		if rv.Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrFailedToParsePath)
		}

		rt := rv.Type()
		for i := range rv.NumField() {
			field := rv.Field(i)
			fieldType := rt.Field(i)
			if !field.CanSet() {
				continue
			}

			name, skip := parseFieldTag(fieldType, "path")
			if skip {
				continue
			}

			value := ctx.Param(name)
			if value == "" {
				continue
			}

			if err := setFieldValue(field, fieldType.Type, []string{value}); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrFailedToParsePath, fieldType.Name, err)
			}
		}

		return nil
	}
}
