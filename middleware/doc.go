// Package middleware provides reusable handlers meant to be registered
// with a router's Use. Each returns handler.Next so the chain continues to
// the matched route.
package middleware
