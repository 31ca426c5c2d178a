package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"happydash/adapters/chart"
	"happydash/domain/happiness"
	"happydash/internal/analysis"
	"happydash/internal/config"
	"happydash/internal/dataset"
	"happydash/internal/errors"
	"happydash/internal/testkit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct{}

func (failingSource) Get(context.Context) (*happiness.Dataset, error) {
	return nil, errors.DatasetLoad("cannot read data.xlsx", nil)
}

func newTestServer(t *testing.T, source analysis.DatasetSource) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	runner := analysis.NewRunner(source, cfg.Analysis, analysis.NewMemo(64))
	s, err := NewServer(runner, chart.NewRenderer(cfg.Charts))
	require.NoError(t, err)
	return s
}

func get(s *Server, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestIndex_RendersEverySection(t *testing.T) {
	s := newTestServer(t, dataset.NewStaticStore(testkit.Drivers()))

	w := get(s, "/?country=Finland&country=Chad")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	for _, entry := range analysis.Catalog {
		assert.Contains(t, body, `id="`+string(entry.ID)+`"`)
	}
	assert.Contains(t, body, "/charts/P1.png?")
	assert.Contains(t, body, `<option value="Finland" selected>`)
	assert.Contains(t, body, "</html>")
}

func TestIndex_InvalidParams(t *testing.T) {
	s := newTestServer(t, dataset.NewStaticStore(testkit.Drivers()))

	w := get(s, "/?year_min=2020&year_max=2019")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "is after year_max")
}

func TestIndex_SkippedSectionsExplainWhy(t *testing.T) {
	ds := happiness.NewDataset(testkit.Drivers().Records(), []happiness.Field{
		happiness.FieldCountry, happiness.FieldYear, happiness.FieldLifeEval,
	}, "life-only")
	s := newTestServer(t, dataset.NewStaticStore(ds))

	w := get(s, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Skipped: the dataset has no")
}

func TestIndex_DatasetUnavailable(t *testing.T) {
	s := newTestServer(t, failingSource{})

	w := get(s, "/")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `<div class="error">`)
	assert.Contains(t, w.Body.String(), "cannot read data.xlsx")
	assert.Contains(t, w.Body.String(), "</html>")

	w = get(s, "/charts/P1.png")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"dataset unavailable"`)

	w = get(s, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChart_PNGAndErrors(t *testing.T) {
	s := newTestServer(t, dataset.NewStaticStore(testkit.Drivers()))

	w := get(s, "/charts/P2.png?top_n=5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", w.Body.String()[:4])

	w = get(s, "/charts/P9.svg")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))

	assert.Equal(t, http.StatusNotFound, get(s, "/charts/P42.png").Code)
	assert.Equal(t, http.StatusBadRequest, get(s, "/charts/P1.gif").Code)
	assert.Equal(t, http.StatusBadRequest, get(s, "/charts/P1.png?top_n=x").Code)
	assert.Equal(t, http.StatusBadRequest, get(s, "/charts/P3.png?change_from=2030&change_to=2031").Code,
		"an unavailable change chart cannot be drawn")
}

func TestAbout_RendersMarkdown(t *testing.T) {
	s := newTestServer(t, dataset.NewStaticStore(testkit.Drivers()))

	w := get(s, "/about")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<h1 id="methodology">Methodology</h1>`)
	assert.Contains(t, body, "Correlation indicates association, not causation.")
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "7.123", formatCell(7.1234))
	assert.Equal(t, "yes", formatCell(true))
	assert.Equal(t, "2020", formatCell(2020))
	assert.Equal(t, "", formatCell(nil))
}
