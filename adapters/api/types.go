package api

import (
	"happydash/domain/happiness"
	"happydash/internal/analysis"
)

// AnalysisResponse is one analysis of a render cycle
type AnalysisResponse struct {
	CycleID  string               `json:"cycle_id"`
	Params   analysis.Params      `json:"params"`
	Warnings []string             `json:"warnings,omitempty"`
	Entry    analysis.Entry       `json:"entry"`
	Frame    happiness.Frame      `json:"frame"`
	Scale    *analysis.ColorScale `json:"color_scale,omitempty"`
}

// DashboardResponse is a whole render cycle flattened to frames
type DashboardResponse struct {
	CycleID  string              `json:"cycle_id"`
	Params   analysis.Params     `json:"params"`
	Summary  analysis.Summary    `json:"summary"`
	Warnings []string            `json:"warnings,omitempty"`
	Frames   []happiness.Frame   `json:"frames"`
	Scale    analysis.ColorScale `json:"color_scale"`
	TookMs   float64             `json:"took_ms"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
