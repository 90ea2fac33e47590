package response

import (
	"encoding/json"
	"fmt"
)

// event carries the per-call framing fields of one server-sent event.
type event struct {
	name string
	id   string
}

// EventOption configures a single SendEvent call.
type EventOption func(*event)

// WithEventName sets the event field of the frame.
func WithEventName(name string) EventOption {
	return func(e *event) {
		e.name = name
	}
}

// WithEventID sets the id field of the frame.
func WithEventID(id string) EventOption {
	return func(e *event) {
		e.id = id
	}
}

// AsEventSource switches the Writer between Default and EventStream mode.
// The switch is only legal before any bytes were written; afterwards it
// fails with ErrModeSwitch.
func (w *Writer) AsEventSource(on bool) error {
	target := ModeDefault
	if on {
		target = ModeEventStream
	}
	if w.mode == target {
		return nil
	}
	if w.flushed {
		return ErrModeSwitch
	}
	w.mode = target
	return nil
}

// SendEvent writes one framed event. The first call flushes status and
// headers, defaulting the content type to text/event-stream and disabling
// intermediary buffering; subsequent calls only append frames. The
// connection stays open until the peer disconnects or the handler chain
// ends without closing it.
func (w *Writer) SendEvent(data any, opts ...EventOption) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if w.mode != ModeEventStream {
		return ErrNotEventStream
	}

	if !w.flushed {
		h := w.Header()
		if h.Get("Content-Type") == "" {
			h.Set("Content-Type", "text/event-stream")
		}
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		w.flushHeaders()
		// The stream has no terminal send; opening it is the finish
		// event for observers.
		w.markSent()
		if w.flusher != nil {
			w.flusher.Flush()
		}
	}

	var ev event
	for _, opt := range opts {
		opt(&ev)
	}

	if err := w.writeEventFrame(ev, data); err != nil {
		w.closed = true
		return err
	}
	if w.flusher != nil {
		w.flusher.Flush()
	}
	return nil
}

// writeEventFrame emits one event in text/event-stream framing. Strings and
// byte slices pass through as the data field; other values are JSON-encoded.
func (w *Writer) writeEventFrame(ev event, data any) error {
	if ev.name != "" {
		if _, err := fmt.Fprintf(w.w, "event: %s\n", ev.name); err != nil {
			return err
		}
	}
	if ev.id != "" {
		if _, err := fmt.Fprintf(w.w, "id: %s\n", ev.id); err != nil {
			return err
		}
	}

	var payload string
	switch v := data.(type) {
	case string:
		payload = v
	case []byte:
		payload = string(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return err
		}
		payload = string(encoded)
	}

	_, err := fmt.Fprintf(w.w, "data: %s\n\n", payload)
	return err
}
