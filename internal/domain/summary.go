package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorKind classifies why a provider call produced a failure result.
type ErrorKind string

// Failure classes carried by SummaryResult and FlashcardResult.
const (
	ErrorKindNotConfigured  ErrorKind = "not_configured"
	ErrorKindInvalidInput   ErrorKind = "invalid_input"
	ErrorKindBackendFailure ErrorKind = "backend_failure"
)

// Valid reports whether k is one of the known failure classes.
func (k ErrorKind) Valid() bool {
	switch k {
	case ErrorKindNotConfigured, ErrorKindInvalidInput, ErrorKindBackendFailure:
		return true
	}
	return false
}

// SummaryResult is the outcome of a summary request. Exactly one of the
// success payload (Summary) or the failure payload (Error, FallbackSummary)
// is populated.
type SummaryResult struct {
	Success         bool      `json:"success"`
	Summary         string    `json:"summary,omitempty"`
	Error           string    `json:"error,omitempty"`
	FallbackSummary string    `json:"fallbackSummary,omitempty"`
	ErrorKind       ErrorKind `json:"errorKind,omitempty"`
}

// NewSummarySuccess builds a successful SummaryResult.
func NewSummarySuccess(summary string) SummaryResult {
	return SummaryResult{
		Success: true,
		Summary: summary,
	}
}

// NewSummaryFailure builds a failed SummaryResult carrying a fallback.
func NewSummaryFailure(kind ErrorKind, message, fallback string) SummaryResult {
	return SummaryResult{
		Success:         false,
		Error:           message,
		FallbackSummary: fallback,
		ErrorKind:       kind,
	}
}

// Display returns the text a caller should show: the summary on success,
// the fallback otherwise.
func (r SummaryResult) Display() string {
	if r.Success {
		return r.Summary
	}
	return r.FallbackSummary
}

// Validate checks the payload invariant of the result.
func (r SummaryResult) Validate() error {
	if r.Success {
		if r.Error != "" || r.FallbackSummary != "" || r.ErrorKind != "" {
			return fmt.Errorf("%w: successful summary carries failure payload", ErrInvalidResult)
		}
		return nil
	}

	if r.Error == "" {
		return fmt.Errorf("%w: failed summary has no error message", ErrInvalidResult)
	}
	if r.Summary != "" {
		return fmt.Errorf("%w: failed summary carries a summary", ErrInvalidResult)
	}
	if !r.ErrorKind.Valid() {
		return fmt.Errorf("%w: unknown error kind %q", ErrInvalidResult, r.ErrorKind)
	}
	return nil
}

// MarshalJSON always writes the text of the active branch, even when it is
// empty, and never writes the other branch's fields.
func (r SummaryResult) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(struct {
			Success bool   `json:"success"`
			Summary string `json:"summary"`
		}{
			Success: true,
			Summary: r.Summary,
		})
	}
	return json.Marshal(struct {
		Success         bool      `json:"success"`
		Error           string    `json:"error"`
		FallbackSummary string    `json:"fallbackSummary"`
		ErrorKind       ErrorKind `json:"errorKind,omitempty"`
	}{
		Error:           r.Error,
		FallbackSummary: r.FallbackSummary,
		ErrorKind:       r.ErrorKind,
	})
}
