package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"happydash/domain/happiness"
	"happydash/internal/analysis"
	"happydash/internal/config"
	"happydash/internal/dataset"
	"happydash/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() (*Server, *analysis.Memo) {
	store := dataset.NewStaticStore(testkit.Drivers())
	memo := analysis.NewMemo(64)
	runner := analysis.NewRunner(store, config.Default().Analysis, memo)
	return NewServer(runner, store), memo
}

func do(s *Server, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestDashboard(t *testing.T) {
	s, _ := newTestServer()

	w := do(s, http.MethodGet, "/api/dashboard?country=Finland&country=Chad&top_n=5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decode[DashboardResponse](t, w)
	assert.NotEmpty(t, resp.CycleID)
	assert.Equal(t, []string{"Finland", "Chad"}, resp.Params.Countries)
	assert.Equal(t, 5, resp.Params.TopN)
	assert.Equal(t, analysis.Summary{Countries: 5, Years: 2, Rows: 10}, resp.Summary)
	require.Len(t, resp.Frames, len(happiness.AnalysisIDs))
	assert.Equal(t, happiness.AnalysisTrend, resp.Frames[0].Analysis)
}

func TestAnalysis_Single(t *testing.T) {
	s, _ := newTestServer()

	w := do(s, http.MethodGet, "/api/analyses/p2?top_n=5")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[AnalysisResponse](t, w)
	assert.Equal(t, happiness.AnalysisRanking, resp.Frame.Analysis)
	assert.Equal(t, happiness.StatusOK, resp.Frame.Status)
	assert.Equal(t, []string{"group", "rank", "country", "avg_life_eval"}, resp.Frame.Columns)
	assert.Len(t, resp.Frame.Rows, 10)
	assert.Nil(t, resp.Scale)

	w = do(s, http.MethodGet, "/api/analyses/P10")
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[AnalysisResponse](t, w)
	require.NotNil(t, resp.Scale)
	assert.Len(t, resp.Scale.Ticks, 5)
}

func TestAnalysis_Errors(t *testing.T) {
	s, _ := newTestServer()

	w := do(s, http.MethodGet, "/api/analyses/P99")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode[ErrorResponse](t, w).Code)

	w = do(s, http.MethodGet, "/api/analyses/P1?year_min=2021&year_max=2019")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", decode[ErrorResponse](t, w).Code)

	w = do(s, http.MethodGet, "/api/dashboard?factors=rank")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAnalyses(t *testing.T) {
	s, _ := newTestServer()

	w := do(s, http.MethodGet, "/api/analyses")
	require.Equal(t, http.StatusOK, w.Code)
	entries := decode[[]analysis.Entry](t, w)
	require.Len(t, entries, len(analysis.Catalog))
	assert.Equal(t, happiness.AnalysisTrend, entries[0].ID)
}

func TestDatasetAndOptions(t *testing.T) {
	s, _ := newTestServer()

	w := do(s, http.MethodGet, "/api/dataset")
	require.Equal(t, http.StatusOK, w.Code)
	info := decode[dataset.Info](t, w)
	assert.Equal(t, "drivers", info.Source)
	assert.Equal(t, 10, info.Rows)
	assert.Equal(t, []int{2019, 2020}, info.Years)

	w = do(s, http.MethodGet, "/api/options?year_min=2020")
	require.Equal(t, http.StatusOK, w.Code)
	opts := decode[analysis.Options](t, w)
	assert.Equal(t, 2020, opts.YearMin)
	assert.Equal(t, []string{"Chad", "Costa Rica", "Finland", "Japan", "Kenya"}, opts.Countries)
	assert.Len(t, opts.Factors, 6)

	assert.Equal(t, http.StatusBadRequest, do(s, http.MethodGet, "/api/options?year_min=x").Code)
	assert.Equal(t, http.StatusBadRequest, do(s, http.MethodGet, "/api/options?year_min=2021&year_max=2019").Code)
}

func TestMemoEndpoints(t *testing.T) {
	s, memo := newTestServer()

	do(s, http.MethodGet, "/api/dashboard")
	do(s, http.MethodGet, "/api/dashboard")

	w := do(s, http.MethodGet, "/api/memo")
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[analysis.MemoStats](t, w)
	assert.Equal(t, int64(len(happiness.AnalysisIDs)), stats.Hits)

	w = do(s, http.MethodDelete, "/api/memo")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, memo.Stats().Entries)
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer()
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/healthz").Code)
}
