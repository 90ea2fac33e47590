package server

import "errors"

var (
	// Configuration errors
	ErrMissingAddress = errors.New("server address is required")
	ErrFailedLoadCert = errors.New("failed to load certificate")

	// Lifecycle errors
	ErrServerAlreadyRunning = errors.New("server is already running")
)
