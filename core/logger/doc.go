// Package logger provides slog attribute helpers for the framework's
// structured logging. Helpers follow the empty-Attr pattern: passing a nil
// error or empty identifier yields an attribute slog silently drops, so
// call sites need no nil checks.
package logger
