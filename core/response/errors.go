package response

import "errors"

var (
	// ErrAlreadySent is returned by a second terminal send on one Writer.
	ErrAlreadySent = errors.New("response already sent")

	// ErrAlreadyClosed is returned when the peer disconnected before the
	// attempted write. The exchange is over; the data is discarded.
	ErrAlreadyClosed = errors.New("connection already closed")

	// ErrModeSwitch is returned when AsEventSource is called after the
	// first byte went out. The mode is fixed once headers are flushed.
	ErrModeSwitch = errors.New("cannot switch response mode after headers were flushed")

	// ErrNotEventStream is returned by SendEvent on a Writer that is not
	// in event-stream mode.
	ErrNotEventStream = errors.New("response is not in event-stream mode")

	// ErrEventStreamMode is returned by terminal sends on a Writer in
	// event-stream mode; use SendEvent instead.
	ErrEventStreamMode = errors.New("terminal send is not allowed in event-stream mode")

	// ErrInvalidJSONValue is returned by JSON when given a raw string or
	// byte slice; use Send or Write for preserialized payloads.
	ErrInvalidJSONValue = errors.New("json response requires a structured value")
)
