package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"happydash/domain/happiness"
	"happydash/internal/analysis"

	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for the tool handlers
type toolHandler struct {
	runner *analysis.Runner
	info   InfoSource
}

// analysisResult is the payload of run_analysis
type analysisResult struct {
	CycleID  string               `json:"cycle_id"`
	Params   analysis.Params      `json:"params"`
	Warnings []string             `json:"warnings,omitempty"`
	Frame    happiness.Frame      `json:"analysis"`
	Scale    *analysis.ColorScale `json:"scale,omitempty"`
}

// frameStatus is one line of the run_dashboard payload
type frameStatus struct {
	Analysis happiness.AnalysisID `json:"id"`
	Title    string               `json:"title"`
	Status   happiness.Status     `json:"status"`
	Reason   string               `json:"reason,omitempty"`
	Rows     int                  `json:"rows"`
}

type dashboardResult struct {
	CycleID  string           `json:"cycle_id"`
	Params   analysis.Params  `json:"params"`
	Summary  analysis.Summary `json:"summary"`
	Warnings []string         `json:"warnings,omitempty"`
	Analyses []frameStatus    `json:"analyses"`
}

func (h *toolHandler) handleListAnalyses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return textResult(analysis.Catalog)
}

func (h *toolHandler) handleDatasetInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := h.info.Info(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dataset unavailable: %v", err)), nil
	}
	return textResult(info)
}

func (h *toolHandler) handleFilterOptions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ds, err := h.runner.Dataset(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dataset unavailable: %v", err)), nil
	}
	lo, hi, _ := ds.YearBounds()
	lo = request.GetInt("year_min", lo)
	hi = request.GetInt("year_max", hi)
	if lo > hi {
		return mcp.NewToolResultError("year_min is after year_max"), nil
	}
	return textResult(analysis.FilterOptions(ds, lo, hi))
}

func (h *toolHandler) handleRunAnalysis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := request.GetString("id", "")
	if raw == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	id, ok := happiness.ParseAnalysisID(raw)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown analysis %q", raw)), nil
	}

	params, err := analysis.ParamsFromQuery(queryFrom(request))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	d, err := h.runner.Run(ctx, params)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	frame, _ := d.Frame(id)
	result := analysisResult{
		CycleID:  d.CycleID.String(),
		Params:   d.Params,
		Warnings: d.Warnings,
		Frame:    frame,
	}
	if id == happiness.AnalysisChoropleth && frame.Status == happiness.StatusOK {
		result.Scale = &d.MapScale
	}
	return textResult(result)
}

func (h *toolHandler) handleRunDashboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params, err := analysis.ParamsFromQuery(queryFrom(request))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	d, err := h.runner.Run(ctx, params)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	result := dashboardResult{
		CycleID:  d.CycleID.String(),
		Params:   d.Params,
		Summary:  d.Summary,
		Warnings: d.Warnings,
	}
	for _, f := range d.Frames() {
		result.Analyses = append(result.Analyses, frameStatus{
			Analysis: f.Analysis,
			Title:    f.Title,
			Status:   f.Status,
			Reason:   f.Reason,
			Rows:     len(f.Rows),
		})
	}
	return textResult(result)
}

// queryFrom maps tool arguments onto the query keys shared with the HTTP surfaces
func queryFrom(request mcp.CallToolRequest) url.Values {
	q := url.Values{}
	for _, key := range []string{"year_min", "year_max", "top_n", "change_n", "max_countries"} {
		if n := request.GetInt(key, 0); n != 0 {
			q.Set(key, strconv.Itoa(n))
		}
	}
	for _, key := range []string{"countries", "factors"} {
		if s := request.GetString(key, ""); s != "" {
			q.Set(key, s)
		}
	}
	return q
}

func textResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
