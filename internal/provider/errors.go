package provider

import (
	"errors"

	"github.com/phrazzld/scry-notes/internal/domain"
)

// Error classes for provider failures. Result messages wrap one of these.
var (
	// ErrNotConfigured is returned when no credential is available for the variant
	ErrNotConfigured = errors.New("API key not configured")

	// ErrInvalidInput is returned when the note text is below the variant's minimum length
	ErrInvalidInput = errors.New("text too short")

	// ErrBackendFailure is returned when the backend call fails or returns an unusable response
	ErrBackendFailure = errors.New("backend failure")

	// ErrUnknownProvider is returned by the registry for unregistered names
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrInvalidVariant is returned when a variant definition is incomplete
	ErrInvalidVariant = errors.New("invalid provider variant")
)

// KindError maps a result's ErrorKind back to its sentinel error so callers
// can use errors.Is on results they did not produce.
func KindError(kind domain.ErrorKind) error {
	switch kind {
	case domain.ErrorKindNotConfigured:
		return ErrNotConfigured
	case domain.ErrorKindInvalidInput:
		return ErrInvalidInput
	case domain.ErrorKindBackendFailure:
		return ErrBackendFailure
	}
	return nil
}
