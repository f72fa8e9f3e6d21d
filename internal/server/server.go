package server

import (
	"log/slog"
	"net/http"

	"github.com/aurelienperez/grease-the-groove/internal/storage"
	"github.com/go-chi/chi/v5"
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

	s.router.Route("/api/v1", func(r chi.Router) {
		// Read endpoints (no auth — tsnet handles access)
		r.Get("/exercises", s.handleListExercises)
		r.Get("/exercises/{id}", s.handleGetExercise)
		r.Get("/exercises/{id}/logs", s.handleListLogs)
		r.Get("/exercises/{id}/next-target", s.handleNextTarget)
		r.Get("/exercises/{id}/stats", s.handleStats)
		r.Get("/exercises/{id}/export/csv", s.handleExportExerciseCSV)
		r.Get("/templates", s.handleListTemplates)
		r.Get("/templates/{id}", s.handleGetTemplate)
		r.Get("/templates/{id}/targets", s.handleTemplateTargets)
		r.Get("/settings/profile", s.handleGetProfile)
		r.Get("/export", s.handleExport)
		r.Get("/export/csv", s.handleExportCSV)

		// Mutating endpoints (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/exercises", s.handleCreateExercise)
			r.Put("/exercises/{id}", s.handleUpdateExercise)
			r.Delete("/exercises/{id}", s.handleDeleteExercise)
			r.Post("/logs", s.handleCreateLog)
			r.Delete("/logs/{id}", s.handleDeleteLog)
			r.Post("/templates", s.handleCreateTemplate)
			r.Put("/templates/{id}", s.handleUpdateTemplate)
			r.Delete("/templates/{id}", s.handleDeleteTemplate)
			r.Put("/settings/profile", s.handlePutProfile)
			r.Post("/import", s.handleImport)
		})
	})
}

// MountMCP mounts the streamable-HTTP MCP handler under /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}
