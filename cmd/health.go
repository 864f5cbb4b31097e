package cmd

import (
	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/internal/outwriter"
	"github.com/spf13/cobra"
)

// healthCmd scores the portfolio and prints the ranked results.
var healthCmd = &cobra.Command{
	Use:   "health [project-id]",
	Short: "Score portfolio health and rank projects, most at-risk first.",
	Long: `Score every project in the portfolio across four weighted components:
timeline progress, development activity, open blockers, and upstream
dependency health. Results are ranked worst-first so the projects that
need attention come up top.

Pass a project ID to report on a single project. The rest of the
portfolio is still scored internally because dependency scores need it.

Every run records a snapshot per project when a history backend is
enabled, which feeds the trend command.

Examples:
  # Score the whole portfolio
  compass health --portfolio ./portfolio

  # Score one project with full component breakdown as JSON
  compass health atlas --output json

  # Export the ranking to CSV for tracking
  compass health --output csv --output-file health.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		analyzer, err := newAnalyzer()
		if err != nil {
			contract.LogFatal("Cannot configure analyzer", err)
		}
		health, err := analyzer.Run(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot score portfolio", err)
		}
		if err := outwriter.NewOutWriter().WriteHealth(health, cfg); err != nil {
			contract.LogFatal("Cannot write health results", err)
		}
	},
}
