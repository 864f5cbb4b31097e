package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/compass/core"
	"github.com/huangsam/compass/internal/collect"
	"github.com/huangsam/compass/internal/confstore"
	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

// newAnalyzer builds an analyzer for one tool call from a cloned config.
func (h *toolHandler) newAnalyzer(cfg *contract.Config) (*core.PortfolioAnalyzer, error) {
	store := confstore.NewStore(cfg.PortfolioDir)
	source := collect.NewGitHubSource(cfg.GitHubToken)

	var history contract.HistoryStore
	if h.mgr != nil {
		history = h.mgr.GetHistoryStore()
	}
	return core.NewPortfolioAnalyzer(cfg, store, source, history, nil)
}

func (h *toolHandler) handleGetPortfolioHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.ProjectID = ""
	if p := request.GetString("portfolio_dir", ""); p != "" {
		cfg.PortfolioDir = p
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	analyzer, err := h.newAnalyzer(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid configuration: %v", err)), nil
	}

	portfolio, err := analyzer.Run(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(portfolio, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetProjectHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.ProjectID = request.GetString("project_id", "")
	if cfg.ProjectID == "" {
		return mcp.NewToolResultError("project_id is required"), nil
	}
	if p := request.GetString("portfolio_dir", ""); p != "" {
		cfg.PortfolioDir = p
	}

	analyzer, err := h.newAnalyzer(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid configuration: %v", err)), nil
	}

	portfolio, err := analyzer.Run(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if len(portfolio.Projects) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("no results for project %s", cfg.ProjectID)), nil
	}

	jsonData, _ := json.MarshalIndent(portfolio.Projects[0], "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetProjectTrend(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	projectID := request.GetString("project_id", "")
	if projectID == "" {
		return mcp.NewToolResultError("project_id is required"), nil
	}
	if w := request.GetInt("window_days", 0); w > 0 {
		cfg.TrendWindowDays = w
	}

	analyzer, err := h.newAnalyzer(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid configuration: %v", err)), nil
	}

	analysis, err := analyzer.ProjectTrend(projectID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend analysis failed: %v", err)), nil
	}

	payload := struct {
		ProjectID string               `json:"project_id"`
		Analysis  schema.TrendAnalysis `json:"analysis"`
	}{ProjectID: projectID, Analysis: analysis}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetProjectRisks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	projectID := request.GetString("project_id", "")
	if p := request.GetString("portfolio_dir", ""); p != "" {
		cfg.PortfolioDir = p
	}

	analyzer, err := h.newAnalyzer(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid configuration: %v", err)), nil
	}

	var risks interface{}
	if projectID == "" {
		risks, err = analyzer.PortfolioRisks(ctx)
	} else {
		risks, err = analyzer.ProjectRisks(ctx, projectID)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("risk assessment failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(risks, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
