package cmd

import (
	"fmt"

	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/internal/iohistory"
	"github.com/huangsam/compass/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need snapshot access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.StoreBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.StoreBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := iohistory.InitHistory(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize snapshot history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.StoreBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.StoreBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on snapshot history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead
// of the full sharedSetup used by scoring commands. This avoids portfolio
// loading and complex config processing for simple storage operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage health snapshot history and exports",
	Long: `Manage the stored health snapshots used for trend analysis.

When enabled, compass records one snapshot per project on every health
run, storing the overall score, the four component scores, the category,
and the timestamp.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show snapshot storage statistics
  export  - Export snapshots to Parquet for analytics
  clear   - Remove all snapshot data
  migrate - Run database schema migrations

Examples:
  # Check snapshot storage status
  compass history status

  # Export for analysis in pandas/DuckDB
  compass history export --output-file compass-data.parquet`,
}

// historyClearCmd clears the snapshot data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored health snapshots",
	Long: `Delete every stored health snapshot.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  compass history export --output-file backup.parquet
  compass history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iohistory.ClearHistory(cfg.HistoryBackend, contract.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear snapshot history", err)
		}
		fmt.Println("Snapshot history cleared successfully.")
	},
}

// historyStatusCmd shows snapshot storage status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display snapshot storage statistics and connection details",
	Long: `Show detailed information about the snapshot history store.

Displays:
- Backend type and connection status
- Total number of snapshots and distinct projects
- Last and oldest snapshot timestamps
- Database table size

Examples:
  # Check snapshot storage status
  compass history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iohistory.Manager.GetHistoryStore()
		if store == nil {
			contract.LogFatal("Failed to get history status", fmt.Errorf("snapshot history is disabled"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iohistory.PrintHistoryStatus(status)
	},
}

// historyExportCmd exports snapshot data to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export snapshot history to Parquet for BI tools and analytics",
	Long: `Export all stored health snapshots to Parquet format.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools

Requires: --output-file parameter

Examples:
  # Export all snapshots
  compass history export --output-file compass-data.parquet

  # Use with DuckDB for analysis
  compass history export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.health_snapshots.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iohistory.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export snapshot history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the snapshot store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the snapshot history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  compass history migrate

  # Rollback to initial state
  compass history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iohistory.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
