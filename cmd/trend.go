package cmd

import (
	"fmt"

	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/internal/outwriter"
	"github.com/spf13/cobra"
)

// trendCmd analyzes stored score history for one project.
var trendCmd = &cobra.Command{
	Use:   "trend <project-id>",
	Short: "Analyze the health score trend of a project over time.",
	Long: `Fit a trend line over the stored health snapshots of a project.

The direction is classified as improving, stable, or declining based on
the slope of overall score over successive snapshots, with a confidence
value derived from how well the line explains the series.

Requires a history backend (snapshots are recorded by 'compass health').

Examples:
  # Trend over the default 90-day window
  compass trend atlas

  # Shorter window, machine-readable output
  compass trend atlas --trend-window-days 30 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		projectID := args[0]
		analyzer, err := newAnalyzer()
		if err != nil {
			contract.LogFatal("Cannot configure analyzer", err)
		}
		analysis, err := analyzer.ProjectTrend(projectID)
		if err != nil {
			contract.LogFatal(fmt.Sprintf("Cannot analyze trend for %s", projectID), err)
		}
		if err := outwriter.NewOutWriter().WriteTrend(projectID, analysis, cfg); err != nil {
			contract.LogFatal("Cannot write trend results", err)
		}
	},
}
