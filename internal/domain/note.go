package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyNoteText is returned when an analysis request carries no text.
var ErrEmptyNoteText = errors.New("note text cannot be empty")

// AnalysisRequest is the raw note text submitted for analysis.
// It has no identity and lives only for the duration of a single call.
type AnalysisRequest struct {
	Text string `json:"text" validate:"required"`
}

// NewAnalysisRequest creates an AnalysisRequest for the given text.
// Returns an error if the text is empty after trimming whitespace.
func NewAnalysisRequest(text string) (*AnalysisRequest, error) {
	req := &AnalysisRequest{Text: text}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate checks that the request carries text. Failures match both
// ErrValidation and the specific cause.
func (r *AnalysisRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyNoteText)
	}
	return nil
}
