// Package router implements the layered routing and dispatch engine.
//
// A router owns an ordered sequence of layers. Each layer pairs a method
// filter and an optional path matcher with one of three behaviors: a chain
// of handlers registered at a single call site, a mounted sub-router, or a
// catch handler. Registration order is the only priority signal: the first
// structurally matching layer runs first, with no specificity ranking by
// verb or pattern shape.
//
// Dispatch walks the matching layers and interprets each handler's Result.
// Next advances within the chain and then to the next matching layer,
// SkipRoute abandons only the rest of the current chain, End finishes the
// exchange, and Fail (or a recovered panic) switches the walk into error
// mode: the dispatcher searches forward through the remaining layers of
// the current router and of every enclosing router for the nearest catch
// handler. Requests that exhaust the layer list unanswered resolve to 404;
// unrecovered errors resolve to 500, never a crash.
//
// Routers, layers and matchers are immutable after setup and safely shared
// across concurrent requests; contexts are owned by a single exchange.
package router
