// Package domain defines the core entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidResult is returned when a summary or flashcard result
	// populates both or neither of its success and failure payloads.
	ErrInvalidResult = errors.New("invalid analysis result")
)
