package iohistory

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/schema"
)

// HistoryStoreManager provides synchronized access to the snapshot store.
type HistoryStoreManager struct {
	sync.Mutex
	store contract.HistoryStore
}

var _ contract.HistoryManager = &HistoryStoreManager{} // Compile-time check

// GetHistoryStore returns the snapshot store, which may be nil when history
// is disabled.
func (m *HistoryStoreManager) GetHistoryStore() contract.HistoryStore {
	m.Lock()
	defer m.Unlock()
	return m.store
}

// Global Manager instance for main logic.
var (
	Manager   = &HistoryStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitHistory initializes the global history manager.
// An empty backend disables snapshot storage entirely.
func InitHistory(backend schema.StoreBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		if backend == "" || backend == schema.NoneBackend {
			return
		}

		store, err := NewHistoryStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize snapshot history: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.store = store
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseHistory should be called on application shutdown.
func CloseHistory() {
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Close()
		}
	})
}

// ClearHistory clears the snapshot history for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For NoneBackend, it does nothing.
func ClearHistory(backend schema.StoreBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearSQLTable("mysql", connStr, snapshotsTable)

	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", connStr, snapshotsTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}
