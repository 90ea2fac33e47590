package router

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/relay/core/handler"
)

// Route is a router-scoped registration view bound to one fixed pattern
// set. Its per-method calls delegate to the owning router without
// re-specifying the path, and chain for fluent registration:
//
//	r.Route("/items/:id").
//		Get(show).
//		Put(update).
//		Delete(remove)
type Route[C handler.Context] struct {
	mux     *mux[C]
	matcher *matcher
	pattern string
}

// Get registers a GET chain on the bound pattern.
func (rt *Route[C]) Get(h ...handler.HandlerFunc[C]) *Route[C] {
	return rt.register(mGET, h)
}

// Post registers a POST chain on the bound pattern.
func (rt *Route[C]) Post(h ...handler.HandlerFunc[C]) *Route[C] {
	return rt.register(mPOST, h)
}

// Put registers a PUT chain on the bound pattern.
func (rt *Route[C]) Put(h ...handler.HandlerFunc[C]) *Route[C] {
	return rt.register(mPUT, h)
}

// Patch registers a PATCH chain on the bound pattern.
func (rt *Route[C]) Patch(h ...handler.HandlerFunc[C]) *Route[C] {
	return rt.register(mPATCH, h)
}

// Delete registers a DELETE chain on the bound pattern.
func (rt *Route[C]) Delete(h ...handler.HandlerFunc[C]) *Route[C] {
	return rt.register(mDELETE, h)
}

// Options registers an OPTIONS chain on the bound pattern.
func (rt *Route[C]) Options(h ...handler.HandlerFunc[C]) *Route[C] {
	return rt.register(mOPTIONS, h)
}

// Head registers a HEAD chain on the bound pattern.
func (rt *Route[C]) Head(h ...handler.HandlerFunc[C]) *Route[C] {
	return rt.register(mHEAD, h)
}

// All registers a chain for every method on the bound pattern.
func (rt *Route[C]) All(h ...handler.HandlerFunc[C]) *Route[C] {
	return rt.register(mALL, h)
}

// Method registers a chain for one named method on the bound pattern.
func (rt *Route[C]) Method(method string, h ...handler.HandlerFunc[C]) *Route[C] {
	mt, ok := methodMap[strings.ToUpper(method)]
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
	}
	return rt.register(mt, h)
}

func (rt *Route[C]) register(method methodTyp, h []handler.HandlerFunc[C]) *Route[C] {
	rt.mux.appendRoute(method, rt.matcher, rt.pattern, h)
	return rt
}
