// Package constants provides application-wide constants and timeouts.
package constants

import "time"

// Timeouts for various operations.
const (
	// ShutdownTimeout bounds graceful HTTP server shutdown.
	ShutdownTimeout = 15 * time.Second

	// ClientTimeout is the default HTTP client timeout for board API calls.
	ClientTimeout = 10 * time.Second

	// RequestTimeout bounds a single board write issued from the terminal UI.
	RequestTimeout = 15 * time.Second
)
