// Package parquet provides data structures and functions for exporting health
// snapshot history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/compass/schema"
	"github.com/parquet-go/parquet-go"
)

// HealthSnapshot represents one stored project health snapshot.
// This struct maps to the compass_health_snapshots database table.
type HealthSnapshot struct {
	// SnapshotID is the unique identifier for this snapshot
	SnapshotID int64 `parquet:"snapshot_id,snappy"`

	// ProjectID identifies the scored project
	ProjectID string `parquet:"project_id,snappy"`

	// Overall is the weighted overall health score
	Overall float64 `parquet:"overall,snappy"`

	// Timeline is the raw timeline component score
	Timeline float64 `parquet:"timeline,snappy"`

	// Activity is the raw activity component score
	Activity float64 `parquet:"activity,snappy"`

	// Blockers is the raw blockers component score
	Blockers float64 `parquet:"blockers,snappy"`

	// Dependencies is the raw dependencies component score
	Dependencies float64 `parquet:"dependencies,snappy"`

	// Category is the health classification label
	Category string `parquet:"category,snappy"`

	// SnapshotTime is when the snapshot was taken (stored as TIMESTAMP with nanosecond precision)
	SnapshotTime time.Time `parquet:"snapshot_time,snappy"`
}

// WriteHealthSnapshotsParquet writes a slice of HealthSnapshot structs to a Parquet file.
func WriteHealthSnapshotsParquet(data []HealthSnapshot, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the HealthSnapshot struct tags
	writer := parquet.NewGenericWriter[HealthSnapshot](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertHealthSnapshotRecords converts schema.HealthSnapshotRecord to HealthSnapshot for Parquet export.
func ConvertHealthSnapshotRecords(records []schema.HealthSnapshotRecord) []HealthSnapshot {
	result := make([]HealthSnapshot, len(records))
	for i, record := range records {
		result[i] = HealthSnapshot{
			SnapshotID:   record.SnapshotID,
			ProjectID:    record.ProjectID,
			Overall:      record.Overall,
			Timeline:     record.Timeline,
			Activity:     record.Activity,
			Blockers:     record.Blockers,
			Dependencies: record.Dependencies,
			Category:     record.Category,
			SnapshotTime: record.SnapshotTime,
		}
	}
	return result
}

// MockFetchHealthSnapshots generates sample HealthSnapshot data for demonstration.
func MockFetchHealthSnapshots() []HealthSnapshot {
	now := time.Now()

	return []HealthSnapshot{
		{
			SnapshotID:   1,
			ProjectID:    "atlas",
			Overall:      0.845,
			Timeline:     0.9,
			Activity:     0.5,
			Blockers:     1.0,
			Dependencies: 1.0,
			Category:     "good",
			SnapshotTime: now.Add(-48 * time.Hour),
		},
		{
			SnapshotID:   2,
			ProjectID:    "atlas",
			Overall:      0.87,
			Timeline:     0.9,
			Activity:     0.8,
			Blockers:     1.0,
			Dependencies: 0.95,
			Category:     "excellent",
			SnapshotTime: now.Add(-24 * time.Hour),
		},
		{
			SnapshotID:   3,
			ProjectID:    "borealis",
			Overall:      0.42,
			Timeline:     0.4,
			Activity:     0.2,
			Blockers:     0.65,
			Dependencies: 0.5,
			Category:     "poor",
			SnapshotTime: now.Add(-24 * time.Hour),
		},
	}
}
