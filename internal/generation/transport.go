package generation

import (
	"context"
	"fmt"
)

// Operation names the kind of work a backend is asked to perform.
type Operation string

const (
	// OperationSummarize asks the backend for a condensed summary of the text.
	OperationSummarize Operation = "summarize"

	// OperationQuestion asks the backend for a single study question about the text.
	OperationQuestion Operation = "question"
)

// Valid reports whether o is a known operation.
func (o Operation) Valid() bool {
	return o == OperationSummarize || o == OperationQuestion
}

// Request is a single backend call.
type Request struct {
	// Provider is the name of the provider variant issuing the call
	Provider string

	Operation Operation

	// Endpoint is the backend URL or model identifier for the operation
	Endpoint string

	// Credential is the resolved API key; never logged in clear
	Credential string

	Text string

	// MaxSentences bounds the summary length for OperationSummarize
	MaxSentences int

	// QuestionStyle is the question template family for OperationQuestion
	QuestionStyle string
}

// Validate checks that the request is well formed before it is sent.
func (r Request) Validate() error {
	if !r.Operation.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedOperation, r.Operation)
	}
	if r.Operation == OperationSummarize && r.MaxSentences < 0 {
		return fmt.Errorf("%w: max sentences must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Response is the raw text a backend produced.
type Response struct {
	Text string
}

// Transport defines the interface for reaching a text-analysis backend.
// This interface serves as a boundary between the provider abstraction and
// external services, following the hexagonal architecture pattern.
type Transport interface {
	// Call performs one backend request. Errors should wrap one of the
	// sentinel errors in this package so callers can classify them.
	Call(ctx context.Context, req Request) (*Response, error)
}

// TransportFunc adapts an ordinary function to the Transport interface.
type TransportFunc func(ctx context.Context, req Request) (*Response, error)

// Call implements Transport.
func (f TransportFunc) Call(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}
