package generation

import "errors"

// Common errors returned by transports
var (
	// ErrBackendUnavailable is returned when the backend rejects or cannot serve the request
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrInvalidResponse is returned when the backend response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from backend")

	// ErrContentBlocked is returned when the backend blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by backend safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient backend failure")

	// ErrInvalidConfig is returned when a transport configuration is invalid
	ErrInvalidConfig = errors.New("invalid transport configuration")

	// ErrUnsupportedOperation is returned when a transport cannot perform the requested operation
	ErrUnsupportedOperation = errors.New("unsupported operation")
)
