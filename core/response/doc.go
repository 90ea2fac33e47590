// Package response provides the dual-mode response writer shared by both
// transports. A Writer starts in Default mode, which permits exactly one
// terminal send (Send, JSON, Text, NoContent or End), optionally preceded
// by raw chunked writes. Switching to EventStream mode with AsEventSource
// turns the response into a long-lived server-sent event stream: the first
// SendEvent flushes status and headers once, every call writes one framed
// event, and the connection stays open until the peer disconnects or the
// handler finishes.
//
// Status code and headers are mutable until the first byte is written;
// afterwards mutations are rejected (mode switches) or logged and dropped
// (status changes). The sent flag is monotonic and writes after the peer
// closed the connection degrade to ErrAlreadyClosed instead of panicking.
package response
