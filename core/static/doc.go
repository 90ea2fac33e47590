// Package static serves files out of an fs.FS through the handler chain.
//
// The handlers are chain-aware: a request whose path resolves to a file is
// answered terminally, anything else passes to the next layer in the chain,
// so a file server registered with Use coexists with API routes behind it.
//
//	r.Use(static.Dir[*router.Context]("./public"))
//	r.Get("/api/health", healthHandler)
//
// SPA serves single-page applications: asset paths resolve to files, every
// other path falls back to the application shell so client-side routing can
// take over.
package static
