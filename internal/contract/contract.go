// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"io/fs"
	"time"

	"github.com/huangsam/compass/schema"
)

// Clock abstracts time.Now so cache-coherence and timeline math can be
// tested deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// StatFunc abstracts os.Stat for mtime-based cache invalidation tests.
type StatFunc func(name string) (fs.FileInfo, error)

// ActivitySource defines the operations needed to collect recent development
// activity for a project. This allows the collection layer to be tested
// without network access.
type ActivitySource interface {
	// FetchActivity aggregates commits, merged pull requests, and closed
	// issues across the given owner/repo slugs since the given time.
	FetchActivity(ctx context.Context, repos []string, since time.Time) (*schema.ActivityCounts, error)
}

// HistoryManager defines the interface for managing the snapshot history store.
// This allows the history layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for health snapshot storage.
type HistoryStore interface {
	// RecordSnapshot stores one project health snapshot and returns its ID.
	RecordSnapshot(rec schema.HealthSnapshotRecord) (int64, error)

	// GetProjectSeries returns the (timestamp, overall score) series for a
	// project since the given time, oldest first.
	GetProjectSeries(projectID string, since time.Time) ([]schema.TrendPoint, error)

	// GetAllSnapshots returns every stored snapshot, oldest first.
	GetAllSnapshots() ([]schema.HealthSnapshotRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection.
	Close() error
}
