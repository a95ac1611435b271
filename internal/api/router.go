package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/InteliHire/internal/hermes"
	"github.com/MikeSquared-Agency/InteliHire/internal/scoring"
	"github.com/MikeSquared-Agency/InteliHire/internal/store"
)

// RouterOptions carries the server settings the router needs.
type RouterOptions struct {
	AdminToken         string
	RateLimitPerMinute int
}

// NewRouter wires the scoring API. template is the configuration served as
// the default and used by reset; h may be nil when events are disabled.
func NewRouter(s store.Store, h hermes.Client, template scoring.Criteria, opts RouterOptions, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	if opts.RateLimitPerMinute > 0 {
		r.Use(RateLimitMiddleware(opts.RateLimitPerMinute))
	}

	engine := NewScoringHandler(template, logger)
	configs := NewConfigsHandler(s, h, template, logger)

	r.Route("/api/v1/scoring", func(r chi.Router) {
		r.Use(UserIDMiddleware)

		r.Get("/default", engine.Default)
		r.Post("/validate", engine.Validate)
		r.Post("/distribute", engine.Distribute)
		r.Post("/max-score", engine.MaxScore)
		r.Post("/edit", engine.Edit)
		r.Post("/evaluate", engine.Evaluate)
		r.Post("/export", engine.Export)

		r.Get("/configs", configs.List)
		r.Get("/configs/{owner_type}/{owner_id}", configs.Get)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(opts.AdminToken))
			r.Put("/configs/{owner_type}/{owner_id}", configs.Put)
			r.Post("/configs/{owner_type}/{owner_id}/reset", configs.Reset)
			r.Delete("/configs/{owner_type}/{owner_id}", configs.Delete)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
