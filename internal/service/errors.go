// Package service provides application-level note-analysis services.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Provider failures are not errors; they are reported inside results
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrProviderNotFound indicates the requested provider is not registered.
	// API layer should map this to HTTP 404 Not Found.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrNilRequest indicates a caller passed no analysis request.
	// API layer should map this to HTTP 400 Bad Request.
	ErrNilRequest = errors.New("analysis request cannot be nil")
)
