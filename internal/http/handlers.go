package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/sumitdas1984/financial-data-extraction-tool/internal/config"
	"github.com/sumitdas1984/financial-data-extraction-tool/internal/services/extraction"
	"github.com/sumitdas1984/financial-data-extraction-tool/internal/services/llm"
)

// ExtractionHandler serves the extraction API.
type ExtractionHandler struct {
	service         *extraction.Service
	defaultProvider llm.Provider
	maxBodyBytes    int64
}

// NewExtractionHandler creates a new ExtractionHandler. Requests that do not
// name a provider use defaultProvider; request bodies larger than
// maxBodyBytes are rejected with 413.
func NewExtractionHandler(service *extraction.Service, defaultProvider llm.Provider, maxBodyBytes int64) *ExtractionHandler {
	if defaultProvider == "" {
		defaultProvider = llm.DefaultProvider
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = config.DefaultMaxBodyBytes
	}
	return &ExtractionHandler{
		service:         service,
		defaultProvider: defaultProvider,
		maxBodyBytes:    maxBodyBytes,
	}
}

// RegisterRoutes registers all extraction routes
func (h *ExtractionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.With(chimiddleware.RequestSize(h.maxBodyBytes)).Post("/extract", h.Extract)
		r.Get("/extract/template", h.Template)
		r.Get("/providers", h.Providers)
	})
}

// Extract runs one extraction for the posted article.
func (h *ExtractionHandler) Extract(w http.ResponseWriter, r *http.Request) {
	// Parse JSON body
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrCodeTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "invalid request body")
		return
	}

	// Resolve provider
	provider := h.defaultProvider
	if req.Provider != "" {
		p, err := llm.ParseProvider(req.Provider)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
			return
		}
		provider = p
	}

	// Run the extraction
	result, err := h.service.Extract(r.Context(), extraction.Request{
		ArticleText: req.Article,
		Provider:    provider,
	})
	if err != nil {
		var perr *llm.ProviderError
		switch {
		case errors.As(err, &perr):
			log.Error().Err(err).Str("provider", provider.String()).Msg("Provider call failed")
			writeError(w, http.StatusBadGateway, ErrCodeProvider, err.Error())
		case errors.Is(err, llm.ErrUnknownProvider):
			writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		default:
			log.Error().Err(err).Msg("Extraction failed")
			writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to extract financial data")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Template returns the empty table shown before anything is extracted.
func (h *ExtractionHandler) Template(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TemplateResponse{Rows: extraction.FallbackTable()})
}

// Providers lists the selectable providers.
func (h *ExtractionHandler) Providers(w http.ResponseWriter, r *http.Request) {
	completers := h.service.Providers()
	resp := ProvidersResponse{
		Default:   h.defaultProvider,
		Providers: make([]ProviderInfo, 0, len(completers)),
	}
	for _, c := range completers {
		resp.Providers = append(resp.Providers, ProviderInfo{Name: c.Provider(), Model: c.Model()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, NewErrorResponse(code, message))
}
