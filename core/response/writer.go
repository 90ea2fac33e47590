package response

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

// Mode selects the behavior profile of a Writer.
type Mode uint8

const (
	// ModeDefault permits exactly one terminal send.
	ModeDefault Mode = iota

	// ModeEventStream permits zero or more framed event sends after an
	// implicit header flush on the first one.
	ModeEventStream
)

// Writer is the normalized response side of one exchange. It wraps the
// transport's response writer and tracks status, headers, mode and the
// monotonic sent flag. A Writer is owned by a single request and must not
// be shared.
type Writer struct {
	w       http.ResponseWriter
	flusher http.Flusher
	reqCtx  context.Context
	logger  *slog.Logger

	status  int
	mode    Mode
	flushed bool // status line and headers written
	sent    bool // terminal send happened
	closed  bool // peer gone or transport write failed

	onFinish []func(status int)
}

// Option configures a Writer during creation.
type Option func(*Writer)

// WithLogger sets the logger used for warning-class usage conditions.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWriter wraps the transport response writer for one request.
func NewWriter(w http.ResponseWriter, r *http.Request, opts ...Option) *Writer {
	ww := &Writer{
		w:      w,
		reqCtx: r.Context(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		status: http.StatusOK,
	}
	if f, ok := w.(http.Flusher); ok {
		ww.flusher = f
	}
	for _, opt := range opts {
		opt(ww)
	}
	return ww
}

// Header returns the response headers, mutable until the first byte is sent.
func (w *Writer) Header() http.Header { return w.w.Header() }

// Status returns the current status code.
func (w *Writer) Status() int { return w.status }

// SetStatus sets the status code. After the headers were flushed this is a
// no-op reported at warning level, not a failure.
func (w *Writer) SetStatus(code int) *Writer {
	if w.flushed {
		w.logger.Warn("status change ignored, headers already flushed",
			"current", w.status, "requested", code)
		return w
	}
	w.status = code
	return w
}

// Mode reports the current behavior profile.
func (w *Writer) Mode() Mode { return w.mode }

// Sent reports whether a terminal send completed. An event stream counts
// as sent once its first event opened the stream.
func (w *Writer) Sent() bool { return w.sent }

// Written reports whether the status line and headers went out.
func (w *Writer) Written() bool { return w.flushed }

// OnFinish registers a callback invoked once with the final status code
// when the terminal send completes.
func (w *Writer) OnFinish(fn func(status int)) {
	if fn != nil {
		w.onFinish = append(w.onFinish, fn)
	}
}

// checkOpen reports ErrAlreadyClosed once the peer disconnected or a
// transport write failed. Later send attempts are discarded, never fatal.
func (w *Writer) checkOpen() error {
	if w.closed {
		return ErrAlreadyClosed
	}
	if w.reqCtx.Err() != nil {
		w.closed = true
		return ErrAlreadyClosed
	}
	return nil
}

func (w *Writer) flushHeaders() {
	if w.flushed {
		return
	}
	w.flushed = true
	w.w.WriteHeader(w.status)
}

func (w *Writer) markSent() {
	if w.sent {
		return
	}
	w.sent = true
	for _, fn := range w.onFinish {
		fn(w.status)
	}
}

// Write is a raw pass-through to the transport output. Headers are flushed
// with the current status on the first call. Chunked writes before a
// terminal End are legal in Default mode.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.checkOpen(); err != nil {
		return 0, err
	}
	w.flushHeaders()
	n, err := w.w.Write(p)
	if err != nil {
		w.closed = true
	}
	return n, err
}

// End terminates the response without further body bytes.
func (w *Writer) End() error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if w.sent {
		return ErrAlreadySent
	}
	w.flushHeaders()
	w.markSent()
	return nil
}

// Send writes status, headers and body in one terminal operation. Raw
// strings and byte slices pass through verbatim; any other value is
// serialized to JSON with the content type defaulted accordingly. A second
// terminal send fails with ErrAlreadySent.
func (w *Writer) Send(data any) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if w.mode == ModeEventStream {
		return ErrEventStreamMode
	}
	if w.sent {
		return ErrAlreadySent
	}

	var body []byte
	switch v := data.(type) {
	case nil:
	case []byte:
		body = v
	case string:
		body = []byte(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return err
		}
		body = encoded
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
		}
	}

	w.flushHeaders()
	if len(body) > 0 {
		if _, err := w.w.Write(body); err != nil {
			w.closed = true
			w.markSent()
			return err
		}
	}
	w.markSent()
	return nil
}

// JSON is Send for structured values only; raw strings and byte slices are
// rejected so preserialized payloads cannot slip through double-encoded.
func (w *Writer) JSON(v any) error {
	switch v.(type) {
	case string, []byte:
		return ErrInvalidJSONValue
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return w.Send(v)
}

// Text sends a plain-text body as the terminal operation.
func (w *Writer) Text(s string) error {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	return w.Send(s)
}

// NoContent sends a terminal 204 with no body.
func (w *Writer) NoContent() error {
	w.SetStatus(http.StatusNoContent)
	return w.Send(nil)
}

// Stream pipes r to the transport output verbatim, flushing when the
// transport supports it. No re-framing is performed in either mode; in
// event-stream mode the caller must supply correctly framed bytes. Stream
// does not mark the response as sent, mirroring raw writes.
func (w *Writer) Stream(r io.Reader) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	w.flushHeaders()
	if _, err := io.Copy(w.w, r); err != nil {
		w.closed = true
		return err
	}
	if w.flusher != nil {
		w.flusher.Flush()
	}
	return nil
}
