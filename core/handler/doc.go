// Package handler defines the contracts shared by the router and the
// application layer: the request Context interface, the typed handler
// function signatures, and the closed Result set that drives chain
// traversal (continue, skip the rest of the current route, finish, or
// fail into catch-handler resolution).
package handler
