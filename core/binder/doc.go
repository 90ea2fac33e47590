// Package binder maps request data onto Go structs: JSON bodies, form
// payloads, query strings, and the URL parameters captured during routing.
//
// Binders operate on handler.Context, so they compose inside handler chains:
//
//	type profileRequest struct {
//		UserID string `path:"id"`
//		Expand bool   `query:"expand"`
//	}
//
//	r.Get("/users/:id", func(ctx *router.Context) handler.Result {
//		var req profileRequest
//		if err := binder.Bind(ctx, &req, binder.Path(), binder.Query()); err != nil {
//			return handler.Fail(err)
//		}
//		// ...
//		return handler.End()
//	})
//
// All binding failures wrap a sentinel error from this package and carry
// http.StatusBadRequest (or http.StatusUnsupportedMediaType), so the default
// error handler maps them to the right response without extra plumbing.
package binder
