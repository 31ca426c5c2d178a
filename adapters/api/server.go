package api

import (
	"context"
	"log"
	"net/http"

	"happydash/internal/analysis"
	"happydash/internal/dataset"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// InfoSource describes the loaded dataset
type InfoSource interface {
	Info(ctx context.Context) (dataset.Info, error)
}

// Server is the JSON API over the analysis pipeline
type Server struct {
	router *chi.Mux
	runner *analysis.Runner
	info   InfoSource
}

// NewServer creates the API router
func NewServer(runner *analysis.Runner, info InfoSource) *Server {
	s := &Server{
		router: chi.NewRouter(),
		runner: runner,
		info:   info,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/dataset", s.handleDataset)
		r.Get("/options", s.handleOptions)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/analyses", s.handleListAnalyses)
		r.Get("/analyses/{id}", s.handleAnalysis)
		r.Get("/memo", s.handleMemoStats)
		r.Delete("/memo", s.handleMemoReset)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	log.Printf("Starting happydash API server on %s", addr)
	return http.ListenAndServe(addr, s.router)
}
