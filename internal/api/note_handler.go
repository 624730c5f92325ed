package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/scry-notes/internal/api/shared"
	"github.com/phrazzld/scry-notes/internal/platform/logger"
	"github.com/phrazzld/scry-notes/internal/service"
)

// NoteHandler serves the note-analysis endpoints. Provider failures are not
// HTTP errors: they come back as 200 with success=false and a fallback.
type NoteHandler struct {
	notes service.NoteService
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(notes service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// ListProviders handles GET /api/providers requests
func (h *NoteHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	infos := h.notes.Providers(r.Context())

	resp := ProvidersResponse{Providers: infos}
	for _, info := range infos {
		if info.Default {
			resp.Default = info.Name
			break
		}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Summarize handles POST /api/providers/{name}/summary and POST /api/summary
func (h *NoteHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAnalysisRequest(w, r)
	if !ok {
		return
	}

	name := h.providerName(r)
	result, err := h.notes.Summarize(r.Context(), name, req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContext(r.Context()).DebugContext(r.Context(), "summary served",
		slog.String("provider", name),
		slog.Bool("success", result.Success))
	shared.RespondWithJSON(w, r, http.StatusOK, SummaryResponse{Provider: name, SummaryResult: result})
}

// Flashcards handles POST /api/providers/{name}/flashcards and POST /api/flashcards
func (h *NoteHandler) Flashcards(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAnalysisRequest(w, r)
	if !ok {
		return
	}

	name := h.providerName(r)
	result, err := h.notes.Flashcards(r.Context(), name, req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContext(r.Context()).DebugContext(r.Context(), "flashcards served",
		slog.String("provider", name),
		slog.Bool("success", result.Success))
	shared.RespondWithJSON(w, r, http.StatusOK, FlashcardsResponse{Provider: name, FlashcardResult: result})
}

// Analyze handles POST /api/providers/{name}/analyze and POST /api/analyze
func (h *NoteHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAnalysisRequest(w, r)
	if !ok {
		return
	}

	analysis, err := h.notes.Analyze(r.Context(), h.providerName(r), req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, analysis)
}

// providerName picks the provider from the path, then the "provider" query
// parameter, then the registry default.
func (h *NoteHandler) providerName(r *http.Request) string {
	if name := getProviderName(r); name != "" {
		return name
	}
	if name := r.URL.Query().Get("provider"); name != "" {
		return normalizeProviderName(name)
	}
	for _, info := range h.notes.Providers(r.Context()) {
		if info.Default {
			return info.Name
		}
	}
	return ""
}

// Mount registers the note routes on r.
func (h *NoteHandler) Mount(r chi.Router) {
	r.Get("/providers", h.ListProviders)
	r.Post("/summary", h.Summarize)
	r.Post("/flashcards", h.Flashcards)
	r.Post("/analyze", h.Analyze)

	r.Route("/providers/{"+providerNameParam+"}", func(r chi.Router) {
		r.Post("/summary", h.Summarize)
		r.Post("/flashcards", h.Flashcards)
		r.Post("/analyze", h.Analyze)
	})
}
