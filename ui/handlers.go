package ui

import (
	"bytes"
	"net/http"
	"path"
	"strings"

	"happydash/adapters/chart"
	"happydash/domain/happiness"
	"happydash/internal/analysis"
	"happydash/internal/errors"
	"happydash/ui/middleware"

	"github.com/gin-gonic/gin"
)

// handleIndex runs one render cycle and serves the dashboard page
func (s *Server) handleIndex(c *gin.Context) {
	ds, _ := middleware.Dataset(c)

	params, err := analysis.ParamsFromQuery(c.Request.URL.Query())
	if err != nil {
		s.renderError(c, err, ds)
		return
	}

	d, err := s.runner.Run(c.Request.Context(), params)
	if err != nil {
		s.renderError(c, err, ds)
		return
	}

	s.renderTemplate(c, http.StatusOK, "dashboard.html", newPage(ds, d))
}

func (s *Server) renderError(c *gin.Context, err error, ds *happiness.Dataset) {
	s.renderErrorStatus(c, httpStatus(err), err, ds)
}

// renderUnavailable shows the dashboard page with the load error and no sections
func (s *Server) renderUnavailable(c *gin.Context, err error) {
	s.renderErrorStatus(c, http.StatusServiceUnavailable, err, nil)
}

func (s *Server) renderErrorStatus(c *gin.Context, status int, err error, ds *happiness.Dataset) {
	page := page{Error: err.Error()}
	if ds != nil {
		lo, hi, _ := ds.YearBounds()
		page.Options = analysis.FilterOptions(ds, lo, hi)
		page.Selected = map[string]bool{}
	}
	s.renderTemplate(c, status, "dashboard.html", page)
}

// handleChart renders one analysis of the cycle described by the query as an image
func (s *Server) handleChart(c *gin.Context) {
	file := c.Param("file")
	ext := path.Ext(file)
	id, ok := happiness.ParseAnalysisID(strings.TrimSuffix(file, ext))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown analysis " + file})
		return
	}
	format, err := chart.ParseFormat(strings.TrimPrefix(ext, "."))
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}

	params, err := analysis.ParamsFromQuery(c.Request.URL.Query())
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	d, err := s.runner.Run(c.Request.Context(), params)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(d, id, format, &buf); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Header("Cache-Control", "private, max-age=60")
	c.Data(http.StatusOK, chart.ContentType(format), buf.Bytes())
}

// handleAbout serves the methodology page
func (s *Server) handleAbout(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "about.html", gin.H{"Content": s.about})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// httpStatus maps application error codes to HTTP statuses
func httpStatus(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeDatasetLoad, errors.CodeMissingColumns:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
