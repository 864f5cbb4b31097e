package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/compass/internal/contract"
	mcp_internal "github.com/huangsam/compass/internal/mcp"
	"github.com/huangsam/compass/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mcpPortfolioFixture = `projects:
  atlas:
    name: Atlas Migration
    status: active
    priority: high
    owner: sam
    start_date: "2026-03-01"
    target_date: "2026-09-01"
    milestones:
      - name: design
        date: "2026-04-01"
        status: completed
      - name: rollout
        date: "2026-08-01"
        status: planned
`

func mcpTestConfig(t *testing.T) *contract.Config {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "projects.yaml"), []byte(mcpPortfolioFixture), 0o644))
	return &contract.Config{
		PortfolioDir:     root,
		ResultLimit:      contract.DefaultResultLimit,
		LookbackDays:     contract.DefaultLookbackDays,
		TrendWindowDays:  contract.DefaultTrendWindowDays,
		StableThreshold:  contract.DefaultStableThreshold,
		CheckThreshold:   contract.DefaultCheckThreshold,
		ActivityBaseline: contract.DefaultActivityBaseline,
		Weights:          schema.GetDefaultWeights(),
	}
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := mcpTestConfig(t)
	var mgr contract.HistoryManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	t.Run("get_project_health missing project_id", func(t *testing.T) {
		res := callTool(t, s, "get_project_health", map[string]any{"project_id": ""})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "project_id is required")
	})

	t.Run("get_project_health unknown project", func(t *testing.T) {
		res := callTool(t, s, "get_project_health", map[string]any{"project_id": "zephyr"})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "zephyr")
	})

	t.Run("get_project_trend without history backend", func(t *testing.T) {
		res := callTool(t, s, "get_project_trend", map[string]any{"project_id": "atlas"})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "history backend")
	})
}

func TestMCPServerHandlers_Results(t *testing.T) {
	baseCfg := mcpTestConfig(t)
	s := mcp_internal.NewMCPServer(baseCfg, nil)

	t.Run("get_portfolio_health scores the portfolio", func(t *testing.T) {
		res := callTool(t, s, "get_portfolio_health", map[string]any{})
		require.False(t, res.IsError)

		var portfolio schema.PortfolioHealth
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &portfolio))
		require.Len(t, portfolio.Projects, 1)
		assert.Equal(t, "atlas", portfolio.Projects[0].ID)
		assert.NotEmpty(t, portfolio.Projects[0].Score.Category)
	})

	t.Run("get_project_health returns one project", func(t *testing.T) {
		res := callTool(t, s, "get_project_health", map[string]any{"project_id": "atlas"})
		require.False(t, res.IsError)

		var health schema.ProjectHealth
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &health))
		assert.Equal(t, "atlas", health.ID)
		assert.Len(t, health.Score.Components, 4)
	})

	t.Run("get_project_risks for whole portfolio", func(t *testing.T) {
		res := callTool(t, s, "get_project_risks", map[string]any{})
		require.False(t, res.IsError)

		var risks []schema.Risk
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &risks))
		for _, r := range risks {
			assert.Equal(t, "atlas", r.ProjectID)
		}
	})
}
