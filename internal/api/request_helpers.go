package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/scry-notes/internal/api/shared"
	"github.com/phrazzld/scry-notes/internal/domain"
)

// providerNameParam is the chi route parameter holding a provider name.
const providerNameParam = "name"

// getProviderName returns the provider named in the path, lower-cased.
// An empty value selects the default provider.
func getProviderName(r *http.Request) string {
	return normalizeProviderName(chi.URLParam(r, providerNameParam))
}

func normalizeProviderName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// decodeAnalysisRequest parses and validates an AnalyzeRequest body. It
// writes an error response and returns false when the body is unusable.
func decodeAnalysisRequest(w http.ResponseWriter, r *http.Request) (*domain.AnalysisRequest, bool) {
	var req AnalyzeRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		if MapErrorToStatusCode(err) == http.StatusBadRequest {
			HandleAPIError(w, r, err, "")
		} else {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		}
		return nil, false
	}

	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}

	analysis, err := domain.NewAnalysisRequest(req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}
	return analysis, true
}
