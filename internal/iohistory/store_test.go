package iohistory

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/compass/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) (*HistoryStoreImpl, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*HistoryStoreImpl), dbPath
}

func sampleSnapshot(projectID string, overall float64, at time.Time) schema.HealthSnapshotRecord {
	return schema.HealthSnapshotRecord{
		ProjectID:    projectID,
		Overall:      overall,
		Timeline:     0.9,
		Activity:     0.5,
		Blockers:     1.0,
		Dependencies: 1.0,
		Category:     "good",
		SnapshotTime: at,
	}
}

// TestRecordAndFetchSnapshots exercises the SQLite round trip.
func TestRecordAndFetchSnapshots(t *testing.T) {
	store, _ := newSQLiteStore(t)
	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	id1, err := store.RecordSnapshot(sampleSnapshot("atlas", 0.845, base))
	require.NoError(t, err)
	id2, err := store.RecordSnapshot(sampleSnapshot("atlas", 0.87, base.AddDate(0, 0, 1)))
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	_, err = store.RecordSnapshot(sampleSnapshot("borealis", 0.42, base))
	require.NoError(t, err)

	all, err := store.GetAllSnapshots()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "atlas", all[0].ProjectID)
	assert.InDelta(t, 0.845, all[0].Overall, 0.001)
	assert.Equal(t, base, all[0].SnapshotTime)
	assert.InDelta(t, 0.9, all[0].Timeline, 0.001)
}

// TestGetProjectSeries verifies the per-project window filter and ordering.
func TestGetProjectSeries(t *testing.T) {
	store, _ := newSQLiteStore(t)
	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, overall := range []float64{0.5, 0.6, 0.7, 0.8} {
		_, err := store.RecordSnapshot(sampleSnapshot("atlas", overall, base.AddDate(0, 0, i)))
		require.NoError(t, err)
	}
	_, err := store.RecordSnapshot(sampleSnapshot("borealis", 0.3, base))
	require.NoError(t, err)

	points, err := store.GetProjectSeries("atlas", base.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, points, 3) // first snapshot filtered out
	assert.InDelta(t, 0.6, points[0].Value, 0.001)
	assert.InDelta(t, 0.8, points[2].Value, 0.001)
	assert.True(t, points[0].Timestamp.Before(points[2].Timestamp))
}

// TestGetStatus covers counts and time bounds.
func TestGetStatus(t *testing.T) {
	store, _ := newSQLiteStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalSnapshots)

	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	_, err = store.RecordSnapshot(sampleSnapshot("atlas", 0.845, base))
	require.NoError(t, err)
	_, err = store.RecordSnapshot(sampleSnapshot("borealis", 0.42, base.AddDate(0, 0, 2)))
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalSnapshots)
	assert.Equal(t, 2, status.TotalProjects)
	assert.Equal(t, base, status.OldestSnapshot)
	assert.Equal(t, base.AddDate(0, 0, 2), status.LastSnapshotTime)
	assert.Greater(t, status.TableSizeBytes, int64(0))
}

// TestNoneBackendIsNoop verifies the disabled store skips all operations.
func TestNoneBackendIsNoop(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	id, err := store.RecordSnapshot(sampleSnapshot("atlas", 0.8, time.Now()))
	assert.NoError(t, err)
	assert.Zero(t, id)

	points, err := store.GetProjectSeries("atlas", time.Now())
	assert.NoError(t, err)
	assert.Nil(t, points)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

// TestUnsupportedBackend verifies the constructor rejects unknown backends.
func TestUnsupportedBackend(t *testing.T) {
	_, err := NewHistoryStore(schema.StoreBackend("oracle"), "")
	assert.Error(t, err)
}

// TestClearHistorySQLite verifies file removal and the missing-file no-op.
func TestClearHistorySQLite(t *testing.T) {
	store, dbPath := newSQLiteStore(t)
	_, err := store.RecordSnapshot(sampleSnapshot("atlas", 0.8, time.Now()))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// Clearing again is a no-op
	assert.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))

	// Empty path is rejected
	assert.Error(t, ClearHistory(schema.SQLiteBackend, "", ""))
}
