// Package mcp exposes the dashboard analyses as Model Context Protocol tools.
package mcp

import (
	"context"

	"happydash/internal/analysis"
	"happydash/internal/dataset"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// InfoSource describes the loaded dataset
type InfoSource interface {
	Info(ctx context.Context) (dataset.Info, error)
}

// NewMCPServer builds the tool server without starting it
func NewMCPServer(runner *analysis.Runner, info InfoSource) *server.MCPServer {
	s := server.NewMCPServer(
		"Happiness Dashboard",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		runner: runner,
		info:   info,
	}

	s.AddTool(mcp.NewTool("list_analyses",
		mcp.WithDescription("List the dashboard analyses with their titles, axes and required columns."),
	), h.handleListAnalyses)

	s.AddTool(mcp.NewTool("dataset_info",
		mcp.WithDescription("Describe the loaded dataset: source, fingerprint, row count, years and load report."),
	), h.handleDatasetInfo)

	s.AddTool(mcp.NewTool("filter_options",
		mcp.WithDescription("List the year bounds and countries available to the filters."),
		mcp.WithNumber("year_min", mcp.Description("First year of the range (defaults to the dataset's first year).")),
		mcp.WithNumber("year_max", mcp.Description("Last year of the range (defaults to the dataset's last year).")),
	), h.handleFilterOptions)

	s.AddTool(mcp.NewTool("run_analysis",
		mcp.WithDescription("Run one analysis (P1..P10) over the filtered dataset and return its table."),
		mcp.WithString("id", mcp.Description("Analysis identifier."), mcp.Required(),
			mcp.Enum("P1", "P2", "P3", "P4", "P5", "P6", "P7", "P8", "P9", "P10")),
		mcp.WithNumber("year_min", mcp.Description("First year of the range.")),
		mcp.WithNumber("year_max", mcp.Description("Last year of the range.")),
		mcp.WithString("countries", mcp.Description("Comma-separated country allow-list. Empty means all countries.")),
		mcp.WithNumber("top_n", mcp.Description("Countries per group in the ranking.")),
		mcp.WithNumber("change_n", mcp.Description("Countries per direction in the change chart.")),
		mcp.WithNumber("max_countries", mcp.Description("Cap on countries drawn in the trend chart.")),
		mcp.WithString("factors", mcp.Description("Comma-separated factor columns for the scatter chart.")),
	), h.handleRunAnalysis)

	s.AddTool(mcp.NewTool("run_dashboard",
		mcp.WithDescription("Run every analysis for one filter state and return the KPI summary with each table's status."),
		mcp.WithNumber("year_min", mcp.Description("First year of the range.")),
		mcp.WithNumber("year_max", mcp.Description("Last year of the range.")),
		mcp.WithString("countries", mcp.Description("Comma-separated country allow-list.")),
	), h.handleRunDashboard)

	return s
}

// StartMCPServer serves the tools over stdio until the client disconnects
func StartMCPServer(_ context.Context, runner *analysis.Runner, info InfoSource) error {
	s := NewMCPServer(runner, info)
	return server.ServeStdio(s)
}
