package binder

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/dmitrymomot/relay/core/handler"
)

// DefaultMaxJSONSize caps JSON request bodies at 1MB.
const DefaultMaxJSONSize = 1 << 20

// JSON creates a binder that decodes an application/json body into v.
// Unknown fields and trailing data after the JSON value are rejected.
func JSON() Func {
	return func(ctx handler.Context, v any) error {
		r := ctx.Request()

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		}
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, contentType)
		}

		// Read one byte past the cap to distinguish a full-size body
		// from an oversized one.
		body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
		if err != nil {
			return fmt.Errorf("%w: read body: %v", ErrFailedToParseJSON, err)
		}
		if len(body) > DefaultMaxJSONSize {
			return fmt.Errorf("%w: body exceeds %d bytes", ErrFailedToParseJSON, DefaultMaxJSONSize)
		}
		if len(body) == 0 {
			return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
		}

		dec := json.NewDecoder(strings.NewReader(string(body)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}

		var extra json.RawMessage
		if err := dec.Decode(&extra); err != io.EOF {
			return fmt.Errorf("%w: unexpected data after json value", ErrFailedToParseJSON)
		}

		return nil
	}
}
