package router

import (
	"net/http"

	"github.com/dmitrymomot/relay/core/handler"
)

type methodTyp uint16

const (
	mGET methodTyp = 1 << iota
	mPOST
	mPUT
	mPATCH
	mDELETE
	mOPTIONS
	mHEAD

	// mUSE layers run for every method; their matcher, when present,
	// matches path prefixes instead of full paths.
	mUSE

	// mCATCH layers are skipped during normal traversal and only
	// considered while an error is being resolved.
	mCATCH
)

var mALL = mGET | mPOST | mPUT | mPATCH | mDELETE | mOPTIONS | mHEAD

var methodMap = map[string]methodTyp{
	http.MethodGet:     mGET,
	http.MethodPost:    mPOST,
	http.MethodPut:     mPUT,
	http.MethodPatch:   mPATCH,
	http.MethodDelete:  mDELETE,
	http.MethodOptions: mOPTIONS,
	http.MethodHead:    mHEAD,
}

var reverseMethodMap = map[methodTyp]string{
	mGET:     http.MethodGet,
	mPOST:    http.MethodPost,
	mPUT:     http.MethodPut,
	mPATCH:   http.MethodPatch,
	mDELETE:  http.MethodDelete,
	mOPTIONS: http.MethodOptions,
	mHEAD:    http.MethodHead,
}

// layer is one registered unit of behavior: a method filter, an optional
// path matcher, and exactly one of a handler chain, a mounted sub-router,
// or a catch handler. Layers are immutable once appended; their order in
// the owning router is the only dispatch priority.
type layer[C handler.Context] struct {
	method  methodTyp
	matcher *matcher
	pattern string

	chain []handler.HandlerFunc[C]
	sub   *mux[C]
	catch handler.ErrorHandlerFunc[C]
}

// matchesMethod reports whether the layer applies to the request method.
// USE layers apply to every method, including ones outside methodMap.
func (l *layer[C]) matchesMethod(mt methodTyp) bool {
	if l.method == mUSE {
		return true
	}
	return l.method&mt != 0
}
