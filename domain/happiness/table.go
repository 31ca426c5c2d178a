package happiness

import (
	"slices"
	"strings"
)

// Status describes how an analysis ended
type Status string

const (
	// StatusOK means the table holds at least one row
	StatusOK Status = "ok"
	// StatusEmpty means the inputs were valid but no row satisfied the analysis
	StatusEmpty Status = "empty"
	// StatusNoData means there were no usable observations to analyse at all
	StatusNoData Status = "no_data"
	// StatusSkipped means required columns are absent from the dataset
	StatusSkipped Status = "skipped"
	// StatusUnavailable means a structural precondition of the analysis failed
	StatusUnavailable Status = "unavailable"
)

// AnalysisID names one chart-feeding analysis
type AnalysisID string

const (
	AnalysisTrend       AnalysisID = "P1"
	AnalysisRanking     AnalysisID = "P2"
	AnalysisChange      AnalysisID = "P3"
	AnalysisScatter     AnalysisID = "P4"
	AnalysisCorrelation AnalysisID = "P5"
	AnalysisFacets      AnalysisID = "P6"
	AnalysisQuadrant    AnalysisID = "P7"
	AnalysisProfile     AnalysisID = "P8"
	AnalysisEvolution   AnalysisID = "P9"
	AnalysisChoropleth  AnalysisID = "P10"
)

// AnalysisIDs lists every analysis in dashboard order
var AnalysisIDs = []AnalysisID{
	AnalysisTrend,
	AnalysisRanking,
	AnalysisChange,
	AnalysisScatter,
	AnalysisCorrelation,
	AnalysisFacets,
	AnalysisQuadrant,
	AnalysisProfile,
	AnalysisEvolution,
	AnalysisChoropleth,
}

// ParseAnalysisID accepts "P3" or "p3"
func ParseAnalysisID(s string) (AnalysisID, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, id := range AnalysisIDs {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

// Table is the ordered output of one analysis plus its status.
// A Table is never mutated after the analysis returns it.
type Table[R any] struct {
	Analysis AnalysisID `json:"analysis"`
	Status   Status     `json:"status"`
	Reason   string     `json:"reason,omitempty"`
	Missing  []string   `json:"missing_fields,omitempty"`
	Rows     []R        `json:"rows"`
}

// OK wraps rows; an empty slice downgrades the status to StatusEmpty
func OK[R any](id AnalysisID, rows []R) Table[R] {
	if len(rows) == 0 {
		return Empty[R](id, "no rows match the current filters")
	}
	return Table[R]{Analysis: id, Status: StatusOK, Rows: rows}
}

// Empty is a valid result with zero rows
func Empty[R any](id AnalysisID, reason string) Table[R] {
	return Table[R]{Analysis: id, Status: StatusEmpty, Reason: reason, Rows: []R{}}
}

// NoData reports that no observations were available to analyse
func NoData[R any](id AnalysisID, reason string) Table[R] {
	return Table[R]{Analysis: id, Status: StatusNoData, Reason: reason, Rows: []R{}}
}

// Skipped reports required columns absent from the dataset
func Skipped[R any](id AnalysisID, missing []string) Table[R] {
	return Table[R]{
		Analysis: id,
		Status:   StatusSkipped,
		Reason:   "analysis skipped: missing fields " + strings.Join(missing, ", "),
		Missing:  missing,
		Rows:     []R{},
	}
}

// Unavailable reports a failed structural precondition
func Unavailable[R any](id AnalysisID, reason string) Table[R] {
	return Table[R]{Analysis: id, Status: StatusUnavailable, Reason: reason, Rows: []R{}}
}

// Len returns the number of rows
func (t Table[R]) Len() int {
	return len(t.Rows)
}

// Renderable reports whether a chart can be drawn from the table
func (t Table[R]) Renderable() bool {
	return t.Status == StatusOK
}

// Clone returns a copy whose Rows and Missing do not share backing arrays with t
func (t Table[R]) Clone() Table[R] {
	t.Rows = slices.Clone(t.Rows)
	t.Missing = slices.Clone(t.Missing)
	return t
}
