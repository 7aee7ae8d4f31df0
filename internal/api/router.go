// Package api assembles the HTTP routes of the explorer.
package api

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/formbricks/explorer/internal/api/handlers"
	"github.com/formbricks/explorer/internal/api/middleware"
	"github.com/formbricks/explorer/internal/api/response"
	"github.com/formbricks/explorer/internal/observability"
)

// RouterParams holds the handlers and options of the router. Metrics, MetricsHandler and
// StaticDir are optional.
type RouterParams struct {
	Health      *handlers.HealthHandler
	Transcripts *handlers.TranscriptsHandler
	Search      *handlers.SearchHandler
	Summary     *handlers.SummaryHandler

	Metrics *observability.Metrics
	// MetricsHandler serves GET /metrics when non-nil.
	MetricsHandler http.Handler
	MaxBodyBytes   int64
	// StaticDir serves index.html at / and the directory under /static/ when set.
	StaticDir string
	Logger    *slog.Logger
}

// NewRouter builds the chi router with all API routes and middleware.
func NewRouter(p RouterParams) http.Handler {
	var (
		httpMetrics  observability.HTTPMetrics
		bodyRecorder middleware.BodyLimitRecorder
	)

	if p.Metrics != nil {
		httpMetrics = p.Metrics.HTTP
		bodyRecorder = p.Metrics.HTTP
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging(p.Logger))
	r.Use(middleware.Metrics(httpMetrics))
	r.Use(middleware.MaxBody(p.MaxBodyBytes, bodyRecorder))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.RespondNotFound(w, "No route matches the request path")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.RespondError(w, http.StatusMethodNotAllowed, response.KindValidationError,
			"Method Not Allowed", "Method not allowed for this route")
	})

	r.Get("/health", p.Health.Check)

	if p.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", p.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/transcripts", p.Transcripts.List)
		r.Get("/transcript/{id}", p.Transcripts.Get)
		r.Get("/transcript/{id}/similar", p.Search.Similar)
		r.Post("/search", p.Search.Search)
		r.Get("/summary", p.Summary.Get)
	})

	if p.StaticDir != "" {
		index := filepath.Join(p.StaticDir, "index.html")

		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, index)
		})
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(p.StaticDir))))
	}

	return r
}
