// Package cmd defines the command-line interface for compass.
package cmd

import (
	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(risksCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the projects subcommands to the parent projects command
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsShowCmd)
	projectsCmd.AddCommand(projectsSetCmd)

	// Add the report subcommands to the parent report command
	reportCmd.AddCommand(reportStatusCmd)
	reportCmd.AddCommand(reportOneOnOneCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("portfolio", "p", ".", "Path to the portfolio directory")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Int("lookback-days", contract.DefaultLookbackDays, "Activity collection window in days")
	rootCmd.PersistentFlags().Int("trend-window-days", contract.DefaultTrendWindowDays, "Snapshot history window for trend analysis in days")
	rootCmd.PersistentFlags().Float64("stable-threshold", contract.DefaultStableThreshold, "Trend slope magnitude below this is classified stable")
	rootCmd.PersistentFlags().Float64("check-threshold", contract.DefaultCheckThreshold, "Overall scores below this fail the health gate")
	rootCmd.PersistentFlags().Float64("activity-baseline", contract.DefaultActivityBaseline, "Expected weighted activity per lookback window")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "Snapshot history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("github-token", "", "GitHub token for activity collection (prefer COMPASS_GITHUB_TOKEN)")
	rootCmd.PersistentFlags().String("notes-command", "", "Optional command that prints per-project notes for reports")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of projectsListCmd to Viper
	projectsListCmd.Flags().String("status", "", "Filter projects by status (comma-separated)")
	projectsListCmd.Flags().String("priority", "", "Filter projects by priority (comma-separated)")
	if err := viper.BindPFlags(projectsListCmd.Flags()); err != nil {
		contract.LogFatal("Error binding projects list flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
