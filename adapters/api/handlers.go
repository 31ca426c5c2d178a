package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"happydash/domain/happiness"
	"happydash/internal/analysis"
	"happydash/internal/errors"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDataset describes the loaded dataset and its load report
func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	info, err := s.info.Info(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handleOptions lists the values the filters may take for a year range
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	ds, err := s.runner.Dataset(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	lo, hi, _ := ds.YearBounds()
	q := r.URL.Query()
	for key, dst := range map[string]*int{"year_min": &lo, "year_max": &hi} {
		if raw := q.Get(key); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, errors.InvalidInput(key+" must be an integer"))
				return
			}
			*dst = n
		}
	}
	if lo > hi {
		writeError(w, errors.InvalidInput("year_min is after year_max"))
		return
	}
	writeJSON(w, http.StatusOK, analysis.FilterOptions(ds, lo, hi))
}

// handleDashboard runs a full render cycle
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	params, err := analysis.ParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	d, err := s.runner.Run(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, DashboardResponse{
		CycleID:  d.CycleID.String(),
		Params:   d.Params,
		Summary:  d.Summary,
		Warnings: d.Warnings,
		Frames:   d.Frames(),
		Scale:    d.MapScale,
		TookMs:   float64(d.Took.Nanoseconds()) / 1e6,
	})
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analysis.Catalog)
}

// handleAnalysis runs a render cycle and returns a single analysis
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := happiness.ParseAnalysisID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, errors.NotFound("analysis "+chi.URLParam(r, "id")))
		return
	}
	params, err := analysis.ParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	d, err := s.runner.Run(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	frame, _ := d.Frame(id)
	entry, _ := analysis.Lookup(id)
	resp := AnalysisResponse{
		CycleID:  d.CycleID.String(),
		Params:   d.Params,
		Warnings: d.Warnings,
		Entry:    entry,
		Frame:    frame,
	}
	if id == happiness.AnalysisChoropleth && frame.Status == happiness.StatusOK {
		resp.Scale = &d.MapScale
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMemoStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.runner.Memo().Stats())
}

func (s *Server) handleMemoReset(w http.ResponseWriter, r *http.Request) {
	s.runner.Memo().Reset()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeDatasetLoad, errors.CodeMissingColumns:
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		log.Printf("[API] ERROR: %v", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}
