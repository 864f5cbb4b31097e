package iohistory

import (
	"time"

	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockHistoryManager{} // Compile-time check

// GetHistoryStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// RecordSnapshot implements the HistoryStore interface.
func (m *MockHistoryStore) RecordSnapshot(rec schema.HealthSnapshotRecord) (int64, error) {
	args := m.Called(rec)
	return args.Get(0).(int64), args.Error(1)
}

// GetProjectSeries implements the HistoryStore interface.
func (m *MockHistoryStore) GetProjectSeries(projectID string, since time.Time) ([]schema.TrendPoint, error) {
	args := m.Called(projectID, since)
	points, _ := args.Get(0).([]schema.TrendPoint)
	return points, args.Error(1)
}

// GetAllSnapshots implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllSnapshots() ([]schema.HealthSnapshotRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.HealthSnapshotRecord)
	return records, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
