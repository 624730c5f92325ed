package api

import (
	"encoding/json"

	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/provider"
)

// AnalyzeRequest is the payload for every note-analysis endpoint.
type AnalyzeRequest struct {
	Text string `json:"text" validate:"required"`
}

// ProvidersResponse lists the registered providers.
type ProvidersResponse struct {
	Default   string          `json:"default"`
	Providers []provider.Info `json:"providers"`
}

// SummaryResponse wraps a summary result with the provider that produced it.
type SummaryResponse struct {
	Provider string `json:"provider"`
	domain.SummaryResult
}

// FlashcardsResponse wraps a flashcard result with the provider that produced it.
type FlashcardsResponse struct {
	Provider string `json:"provider"`
	domain.FlashcardResult
}

// MarshalJSON adds the provider name to the result's own encoding.
func (r SummaryResponse) MarshalJSON() ([]byte, error) {
	return withProvider(r.Provider, r.SummaryResult)
}

// MarshalJSON adds the provider name to the result's own encoding.
func (r FlashcardsResponse) MarshalJSON() ([]byte, error) {
	return withProvider(r.Provider, r.FlashcardResult)
}

// withProvider encodes result and merges a "provider" field into it. The
// embedded results define MarshalJSON, which would otherwise be promoted
// and drop the provider.
func withProvider(name string, result json.Marshaler) ([]byte, error) {
	raw, err := result.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(name)
	if err != nil {
		return nil, err
	}
	fields["provider"] = encoded
	return json.Marshal(fields)
}
