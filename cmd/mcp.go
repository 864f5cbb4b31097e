package cmd

import (
	"github.com/huangsam/compass/internal/iohistory"
	"github.com/huangsam/compass/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Compass MCP server",
	Long:  `Launch an MCP server that allows AI agents to inspect portfolio health via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Normal setup; handlers clone the validated config per tool call.
		// Stdout is reserved for the protocol, so nothing is printed here.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, iohistory.Manager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
