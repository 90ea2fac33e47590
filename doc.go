// Package relay is a request-routing and middleware-dispatch engine that
// behaves identically whether requests arrive over a single-stream
// HTTP/1.1 connection or a multiplexed HTTP/2 connection.
//
// An application is a router plus a listener:
//
//	app := relay.New[*router.Context]()
//	app.Get("/users/:id", func(ctx *router.Context) handler.Result {
//		_ = ctx.Response().JSON(map[string]string{"id": ctx.Param("id")})
//		return handler.End()
//	})
//	_ = app.Listen(context.Background(), ":8080")
//
// Routing, chain control flow, catch handlers, and the dual-mode response
// writer live in core/router and core/response; relay wires them to the
// graceful server in core/server.
package relay
