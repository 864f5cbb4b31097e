package cmd

import (
	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/internal/outwriter"
	"github.com/huangsam/compass/schema"
	"github.com/spf13/cobra"
)

// risksCmd assesses timeline, blocker, and activity risks.
var risksCmd = &cobra.Command{
	Use:   "risks [project-id]",
	Short: "Assess project risks with severity, likelihood, and mitigations.",
	Long: `Evaluate each project against fixed risk rules and rank the findings
by priority (severity weighted over likelihood).

Rules cover schedule slip (behind the elapsed timeline), blocker pileup,
and activity droughts. Each finding carries suggested mitigations.

Pass a project ID to assess one project; omit it for the whole portfolio.

Examples:
  # Rank risks across the portfolio
  compass risks

  # Risks for one project, exported as JSON
  compass risks atlas --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		analyzer, err := newAnalyzer()
		if err != nil {
			contract.LogFatal("Cannot configure analyzer", err)
		}

		var risks []schema.Risk
		if cfg.ProjectID == "" {
			risks, err = analyzer.PortfolioRisks(rootCtx)
		} else {
			risks, err = analyzer.ProjectRisks(rootCtx, cfg.ProjectID)
		}
		if err != nil {
			contract.LogFatal("Cannot assess risks", err)
		}
		if err := outwriter.NewOutWriter().WriteRisks(risks, cfg); err != nil {
			contract.LogFatal("Cannot write risk results", err)
		}
	},
}
