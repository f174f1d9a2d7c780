// Package server exposes the schedule generator and its persisted inputs
// over a JSON REST API: player records, progression state, phase
// transitions, and schedule generation.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mikevelosports/velosched/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read endpoints (no auth — tsnet handles access when enabled)
	s.router.Get("/api/v1/players", s.handleListPlayers)
	s.router.Get("/api/v1/players/{id}", s.handleGetPlayer)
	s.router.Get("/api/v1/players/{id}/progression", s.handleGetProgression)
	s.router.Get("/api/v1/players/{id}/schedules", s.handleListSchedules)
	s.router.Get("/api/v1/players/{id}/schedules/latest", s.handleLatestSchedule)
	s.router.Get("/api/v1/schedules/{id}", s.handleGetSchedule)

	// Stateless preview: runs the generator without touching storage
	s.router.Post("/api/v1/schedule/preview", s.handlePreviewSchedule)

	// Write endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/players", s.handleCreatePlayer)
		r.Put("/api/v1/players/{id}/progression", s.handlePutProgression)
		r.Post("/api/v1/players/{id}/phase", s.handlePhaseCommand)
		r.Post("/api/v1/players/{id}/schedule", s.handleGenerateSchedule)
	})
}
