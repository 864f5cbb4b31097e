package iohistory

import (
	"errors"
	"fmt"

	"github.com/huangsam/compass/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of snapshot history to a Parquet file.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("snapshot history is disabled (history-backend is none)")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalSnapshots == 0 {
		return errors.New("no snapshot history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total snapshots: %d\n", status.TotalSnapshots)
	fmt.Printf("Tracked projects: %d\n", status.TotalProjects)

	snapshots, err := store.GetAllSnapshots()
	if err != nil {
		return fmt.Errorf("failed to retrieve snapshots: %w", err)
	}

	// Convert to Parquet format and write
	rows := parquet.ConvertHealthSnapshotRecords(snapshots)
	snapshotsFile := outputFile + ".health_snapshots.parquet"
	if err := parquet.WriteHealthSnapshotsParquet(rows, snapshotsFile); err != nil {
		return fmt.Errorf("failed to write snapshots: %w", err)
	}
	fmt.Printf("Exported %d snapshots to: %s\n", len(rows), snapshotsFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
