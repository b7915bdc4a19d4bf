package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sumitdas1984/financial-data-extraction-tool/internal/config"
	"github.com/sumitdas1984/financial-data-extraction-tool/internal/middleware"
)

type Router struct {
	chi.Router
}

// NewRouter builds the chi router with the shared middleware stack.
func NewRouter(server config.ServerConfig, rl config.RateLimitConfig) *Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	// Only honor X-Forwarded-For / X-Real-IP behind a trusted proxy
	if server.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.Recovery)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Rate limiting keys on RemoteAddr, so it must run after RealIP
	r.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerMinute: rl.RequestsPerMinute,
		BurstSize:         rl.BurstSize,
	}))
	r.Use(middleware.Logging)

	return &Router{r}
}

// RegisterExtractionRoutes registers the extraction API.
func (r *Router) RegisterExtractionRoutes(h *ExtractionHandler) {
	h.RegisterRoutes(r)
}

// RegisterHealthRoutes registers health check routes
func (r *Router) RegisterHealthRoutes() {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "timestamp": time.Now().Format(time.RFC3339)})
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready", "timestamp": time.Now().Format(time.RFC3339)})
	})
}
