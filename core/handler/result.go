package handler

// ResultKind enumerates the control-flow outcomes a handler can produce.
type ResultKind uint8

const (
	// KindEnd finishes dispatch for this request. Sending a response is
	// not required; ending without one simply stops processing.
	KindEnd ResultKind = iota

	// KindNext advances to the next handler in the current chain, or to
	// the next matching layer when the chain is exhausted.
	KindNext

	// KindSkipRoute abandons the rest of the current chain only and
	// advances to the next matching layer.
	KindSkipRoute

	// KindFail stops normal advancement and starts catch-handler
	// resolution with the carried error.
	KindFail
)

// Result is the closed control-flow value returned by every handler
// invocation. The zero value is End.
type Result struct {
	kind ResultKind
	err  error
}

// Kind reports the variant of the result.
func (r Result) Kind() ResultKind { return r.kind }

// Err returns the error carried by a Fail result, or nil.
func (r Result) Err() error { return r.err }

// Next continues with the next handler in the chain.
func Next() Result { return Result{kind: KindNext} }

// SkipRoute abandons the remaining handlers of the current route's chain
// and moves on to the next matching layer.
func SkipRoute() Result { return Result{kind: KindSkipRoute} }

// End finishes dispatch for this request.
func End() Result { return Result{kind: KindEnd} }

// Fail aborts normal traversal and hands err to catch-handler resolution.
// A nil err is treated as End.
func Fail(err error) Result {
	if err == nil {
		return Result{kind: KindEnd}
	}
	return Result{kind: KindFail, err: err}
}
