package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/internal/outwriter"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Enforce a minimum health score for CI/CD pipelines (fails build on violations)",
	Long: `Score the whole portfolio and fail with a non-zero exit code when any
project's overall health falls below the configured threshold.

The gate always evaluates every project, ignoring the result limit and
any single-project scope.

Default threshold: 0.50

Use cases:
- Scheduled pipeline that pages when a project slips
- Release gates that require a healthy dependency chain
- Weekly portfolio review automation

Examples:
  # Gate at the default threshold
  compass check

  # Stricter gate for a release pipeline
  compass check --check-threshold 0.70`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		analyzer, err := newAnalyzer()
		if err != nil {
			contract.LogFatal("Cannot configure analyzer", err)
		}
		result, err := analyzer.Check(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot run health gate", err)
		}
		if err := outwriter.NewOutWriter().WriteCheck(result, cfg); err != nil {
			contract.LogFatal("Cannot write check results", err)
		}
		if !result.Passed {
			fmt.Printf("%d project(s) below threshold\n", len(result.FailedProjects))
			os.Exit(1)
		}
	},
}
