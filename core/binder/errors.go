package binder

import "net/http"

// bindError is a sentinel binding failure carrying the HTTP status the
// default error handler should respond with.
type bindError struct {
	msg    string
	status int
}

func (e bindError) Error() string   { return e.msg }
func (e bindError) StatusCode() int { return e.status }

var (
	// ErrUnsupportedMediaType indicates a Content-Type the binder does not
	// handle (e.g. text/plain sent to the JSON binder).
	ErrUnsupportedMediaType = bindError{"unsupported media type", http.StatusUnsupportedMediaType}

	// ErrMissingContentType indicates the request lacks a Content-Type
	// header when one is required for parsing.
	ErrMissingContentType = bindError{"missing content type", http.StatusUnsupportedMediaType}

	// ErrFailedToParseJSON indicates the body is not valid JSON or does not
	// match the target struct schema.
	ErrFailedToParseJSON = bindError{"failed to parse json request body", http.StatusBadRequest}

	// ErrFailedToParseForm indicates malformed urlencoded or multipart data.
	ErrFailedToParseForm = bindError{"failed to parse form data", http.StatusBadRequest}

	// ErrFailedToParseQuery indicates a query parameter failed conversion.
	ErrFailedToParseQuery = bindError{"failed to parse query parameters", http.StatusBadRequest}

	// ErrFailedToParsePath indicates a captured URL parameter failed conversion.
	ErrFailedToParsePath = bindError{"failed to parse path parameters", http.StatusBadRequest}
)
