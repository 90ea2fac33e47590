// Package health provides handlers for service health monitoring.
//
//	r.Get("/health/live", health.Liveness[*router.Context])
//	r.Get("/health/ready", health.Readiness[*router.Context](log, db.Ping))
//	r.Get("/ping", health.NoContent[*router.Context])
//
// Dependency checks follow the func(context.Context) error signature.
package health
