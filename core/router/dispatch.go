package router

import (
	"runtime/debug"

	"github.com/dmitrymomot/relay/core/handler"
)

// outcome is the terminal state of one traversal of a router's layers.
type outcome uint8

const (
	// outcomeExhausted means the layer list ended without a handler
	// finishing the exchange. The caller resumes its own traversal, or
	// the top level resolves the default response.
	outcomeExhausted outcome = iota

	// outcomeDone means a handler finished the exchange. Sending a
	// response is not required for this; ending without one is legal.
	outcomeDone
)

// dispatch walks the layers of this router for one request. path is the
// request path with any enclosing mount prefixes already stripped. A
// non-nil pending error puts the walk in error mode: normal layers are
// skipped and only catch layers are considered, searching forward for the
// nearest one. When the list is exhausted the unresolved error (if any)
// bubbles to the enclosing router so its remaining catch layers get a
// chance, all the way up to the application root.
func (m *mux[C]) dispatch(ctx C, path string, pending error) (outcome, error) {
	mt := methodMap[ctx.Request().Method]

	for i := range m.layers {
		l := &m.layers[i]

		if pending != nil {
			if l.method != mCATCH {
				continue
			}
			res := m.invokeCatch(l.catch, ctx, pending)
			switch res.Kind() {
			case handler.KindFail:
				pending = res.Err()
			case handler.KindNext, handler.KindSkipRoute:
				// Error handled; resume normal traversal after this layer.
				pending = nil
			default:
				return outcomeDone, nil
			}
			continue
		}

		if l.method == mCATCH || !l.matchesMethod(mt) {
			continue
		}

		// Mounted sub-router: strip the matched prefix and delegate; the
		// prefix parameters stay in scope for nested handlers.
		if l.sub != nil {
			params, rest, ok := l.matcher.matchPrefix(path)
			if !ok {
				continue
			}
			bindParams(ctx, params)
			out, err := l.sub.dispatch(ctx, rest, nil)
			if out == outcomeDone {
				return outcomeDone, nil
			}
			if err != nil {
				pending = err
			}
			continue
		}

		// Handler chain layer: use layers match prefixes (or everything
		// when no matcher was given), routed layers match the full path.
		var params map[string]string
		if l.matcher != nil {
			var ok bool
			if l.method == mUSE {
				params, _, ok = l.matcher.matchPrefix(path)
			} else {
				params, ok = l.matcher.match(path)
			}
			if !ok {
				continue
			}
		}
		bindParams(ctx, params)

		out, err := m.runChain(l.chain, ctx)
		if out == outcomeDone {
			return outcomeDone, nil
		}
		if err != nil {
			pending = err
		}
	}

	return outcomeExhausted, pending
}

// runChain executes the handlers registered together at one call site, in
// registration order. A SkipRoute aborts the rest of this chain only; the
// outer cursor then advances to the next matching layer.
func (m *mux[C]) runChain(chain []handler.HandlerFunc[C], ctx C) (outcome, error) {
	for _, h := range chain {
		res := m.invoke(h, ctx)
		switch res.Kind() {
		case handler.KindNext:
			continue
		case handler.KindSkipRoute:
			return outcomeExhausted, nil
		case handler.KindFail:
			return outcomeExhausted, res.Err()
		default:
			return outcomeDone, nil
		}
	}
	// Chain ran out of handlers; advance to the next matching layer.
	return outcomeExhausted, nil
}

// invoke runs one handler, converting panics into Fail results so a
// misbehaving handler degrades into catch resolution instead of killing
// the process.
func (m *mux[C]) invoke(h handler.HandlerFunc[C], ctx C) (res handler.Result) {
	defer func() {
		if p := recover(); p != nil {
			res = handler.Fail(&panicError{value: p, stack: debug.Stack()})
		}
	}()
	return h(ctx)
}

// invokeCatch runs a catch handler with the same panic safety; a panicking
// catch handler re-fails with the wrapped panic.
func (m *mux[C]) invokeCatch(h handler.ErrorHandlerFunc[C], ctx C, err error) (res handler.Result) {
	defer func() {
		if p := recover(); p != nil {
			res = handler.Fail(&panicError{value: p, stack: debug.Stack()})
		}
	}()
	return h(ctx, err)
}

func bindParams[C handler.Context](ctx C, params map[string]string) {
	for k, v := range params {
		ctx.SetParam(k, v)
	}
}
