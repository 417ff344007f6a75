// Package httpapi wires the HTTP surface of the workshop service.
// It keeps handlers thin, delegating business rules to the service layer.
package httpapi

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tinoosan/workshop/internal/service/document"
)

// Server wires handlers and middleware using Chi.
// It composes read (repo) and write (writer) dependencies through the service.
type Server struct {
	svc  document.Service
	repo document.Repo
	log  *slog.Logger
	rt   *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by basic request/response logging and panic recovery.
func New(repo document.Repo, writer document.Writer, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		svc:  document.New(repo, writer, logger),
		repo: repo,
		log:  logger,
		rt:   r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints.
func (s *Server) routes() {
	// Documents (v1)
	s.rt.Post("/v1/documents/{id}/import", s.importDocument)
	s.rt.Get("/v1/documents/{id}/items", s.listItems)
	s.rt.Get("/v1/documents/{id}/tree", s.getTree)
	s.rt.Get("/v1/documents/{id}/orders/{key}", s.getOrder)
	s.rt.Post("/v1/documents/{id}/snapshot", s.postSnapshot)
	s.rt.Get("/v1/documents/{id}/snapshot", s.getSnapshot)
	// Exports (v1)
	s.rt.Get("/v1/documents/{id}/export", s.exportFlat)
	s.rt.Get("/v1/documents/{id}/orders/{key}/export", s.exportOrder)
	// Item mutations (v1)
	s.rt.Patch("/v1/documents/{id}/items/{itemID}/quantity", s.patchQuantity)
	s.rt.Patch("/v1/documents/{id}/items/{itemID}/substitute", s.patchSubstitute)
	// Dictionary (v1)
	s.rt.Get("/v1/dictionary/work-groups", s.listWorkGroups)
	// Health and metrics (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}
