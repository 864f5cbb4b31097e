// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/compass/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Compass MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Compass Portfolio Health Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_portfolio_health ---
	s.AddTool(mcp.NewTool("get_portfolio_health",
		mcp.WithDescription("Score every project in the portfolio and return the results, most at-risk first."),
		mcp.WithString("portfolio_dir", mcp.Description("Path to the portfolio directory (defaults to the configured portfolio).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetPortfolioHealth)

	// --- 2. Tool: get_project_health ---
	s.AddTool(mcp.NewTool("get_project_health",
		mcp.WithDescription("Score a single project, including its component breakdown."),
		mcp.WithString("project_id", mcp.Description("ID of the project to score."), mcp.Required()),
		mcp.WithString("portfolio_dir", mcp.Description("Path to the portfolio directory.")),
	), h.handleGetProjectHealth)

	// --- 3. Tool: get_project_trend ---
	s.AddTool(mcp.NewTool("get_project_trend",
		mcp.WithDescription("Analyze the stored health score history of a project for its trend direction."),
		mcp.WithString("project_id", mcp.Description("ID of the project to analyze."), mcp.Required()),
		mcp.WithNumber("window_days", mcp.Description("Trend window in days (defaults to the configured window).")),
	), h.handleGetProjectTrend)

	// --- 4. Tool: get_project_risks ---
	s.AddTool(mcp.NewTool("get_project_risks",
		mcp.WithDescription("Assess project risks with severity, likelihood, and suggested mitigations. Omit project_id for the whole portfolio."),
		mcp.WithString("project_id", mcp.Description("ID of the project to assess (omit for all projects).")),
		mcp.WithString("portfolio_dir", mcp.Description("Path to the portfolio directory.")),
	), h.handleGetProjectRisks)

	return s
}

// StartMCPServer starts the Compass MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
