package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"math"
	"net/http"
	"strings"

	"happydash/adapters/chart"
	"happydash/internal/analysis"
	"happydash/ui/middleware"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html static/* content/*.md
var embeddedFiles embed.FS

// Server is the web dashboard
type Server struct {
	router    *gin.Engine
	runner    *analysis.Runner
	renderer  *chart.Renderer
	templates *template.Template
	about     template.HTML
}

// NewServer creates the dashboard server and parses its templates
func NewServer(runner *analysis.Runner, renderer *chart.Renderer) (*Server, error) {
	s := &Server{
		router:   gin.New(),
		runner:   runner,
		renderer: renderer,
	}

	funcMap := template.FuncMap{
		"fmt2": func(v float64) string {
			if math.IsNaN(v) {
				return "—"
			}
			return fmt.Sprintf("%.2f", v)
		},
		"cell":     formatCell,
		"upper":    strings.ToUpper,
		"contains": strings.Contains,
		"add":      func(a, b int) int { return a + b },
	}

	templatesFS, err := fs.Sub(embeddedFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to create templates filesystem: %w", err)
	}
	s.templates, err = template.New("").Funcs(funcMap).ParseFS(templatesFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	about, err := renderAbout()
	if err != nil {
		return nil, err
	}
	s.about = about

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Logger(), gin.Recovery())

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/about", s.handleAbout)

	s.router.GET("/", middleware.DatasetReady(s.runner, s.renderUnavailable), s.handleIndex)
	s.router.GET("/charts/:file", middleware.DatasetReady(s.runner, nil), s.handleChart)
}

// Handler exposes the router for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting happydash dashboard on http://%s", addr)
	return s.router.Run(addr)
}
