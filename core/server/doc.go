// Package server wraps http.Server with graceful shutdown, env-driven
// configuration, and dual-transport wiring: the handler it serves receives
// HTTP/1.1 and HTTP/2 requests through the same interface. With TLS the
// protocol is negotiated via ALPN; without TLS, enabling h2c serves
// cleartext HTTP/2 alongside HTTP/1.1 on one listener.
package server
