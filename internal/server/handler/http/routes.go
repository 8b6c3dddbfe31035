package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/akulikov/winslog/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the journal API. It
// applies JSON content-type enforcement and request logging, and mounts
// the profile, entry and stats endpoints under /api.
//
// Routes:
//
//	GET    /api/profiles                 → profiles.List
//	POST   /api/profiles                 → profiles.Create
//	POST   /api/profiles/deactivate      → profiles.Deactivate
//	POST   /api/profiles/{id}/activate   → profiles.Activate
//	DELETE /api/profiles/{id}            → profiles.Delete
//	GET    /api/entries                  → entries.List (?type=, ?day=)
//	GET    /api/entries/week             → entries.Week
//	POST   /api/entries                  → entries.Create
//	DELETE /api/entries/{id}             → entries.Delete
//	GET    /api/stats                    → stats.Get
func NewRouter(
	entries *EntriesHandler,
	profiles *ProfilesHandler,
	stats *StatsHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow bodies with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", profiles.List)
			r.Post("/", profiles.Create)
			r.Post("/deactivate", profiles.Deactivate)
			r.Post("/{id}/activate", profiles.Activate)
			r.Delete("/{id}", profiles.Delete)
		})

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", entries.List)
			r.Get("/week", entries.Week)
			r.Post("/", entries.Create)
			r.Delete("/{id}", entries.Delete)
		})

		r.Get("/stats", stats.Get)
	})

	return r
}
