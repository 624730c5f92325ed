package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/scry-notes/internal/api/shared"
	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/service"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	validationErr := shared.ValidateRequest(&AnalyzeRequest{})
	_, emptyTextErr := domain.NewAnalysisRequest("  \n")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"provider not found", fmt.Errorf("%w: %q", service.ErrProviderNotFound, "x"), http.StatusNotFound},
		{"nil request", service.ErrNilRequest, http.StatusBadRequest},
		{"empty text", emptyTextErr, http.StatusBadRequest},
		{"wrapped domain validation", fmt.Errorf("%w: bad field", domain.ErrValidation), http.StatusBadRequest},
		{"empty body", shared.ErrEmptyBody, http.StatusBadRequest},
		{"validator error", validationErr, http.StatusBadRequest},
		{"unknown", errors.New("database exploded at 10.0.0.1"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Provider not found", GetSafeErrorMessage(fmt.Errorf("wrap: %w", service.ErrProviderNotFound)))
	_, emptyTextErr := domain.NewAnalysisRequest("")
	assert.Equal(t, "Note text cannot be empty", GetSafeErrorMessage(emptyTextErr))
	assert.Equal(t, "Invalid request", GetSafeErrorMessage(fmt.Errorf("%w: bad field", domain.ErrValidation)))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(errors.New("secret internal detail")))
	assert.Equal(t, "Invalid Text: required field", GetSafeErrorMessage(shared.ValidateRequest(&AnalyzeRequest{})))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	raw := errors.New("Key: 'AnalyzeRequest.Text' Error:Field validation for 'Text' failed on the 'max' tag")
	assert.Equal(t, "Invalid Text: too long", SanitizeValidationError(raw))
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
