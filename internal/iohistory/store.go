// Package iohistory persists health snapshots across runs.
package iohistory

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// snapshotsTable is the name of the table for health snapshots.
const snapshotsTable = "compass_health_snapshots"

// HistoryStoreImpl handles durable snapshot storage using various database backends.
type HistoryStoreImpl struct {
	db         *sql.DB
	backend    schema.StoreBackend
	driverName string
	connStr    string
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore initializes and returns a new HistoryStore based on the backend type.
func NewHistoryStore(backend schema.StoreBackend, connStr string) (contract.HistoryStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite history at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL history: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL history: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled history
		return &HistoryStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
			connStr:    connStr,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported history backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection (skip for NoneBackend)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	// Create the table schema
	if _, err := db.Exec(getCreateSnapshotsQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", snapshotsTable, err)
	}

	return &HistoryStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// getCreateSnapshotsQuery returns the CREATE TABLE query for the given backend.
func getCreateSnapshotsQuery(backend schema.StoreBackend) string {
	quotedTableName := quoteTableName(snapshotsTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				project_id VARCHAR(255) NOT NULL,
				overall DOUBLE NOT NULL,
				timeline DOUBLE NOT NULL,
				activity DOUBLE NOT NULL,
				blockers DOUBLE NOT NULL,
				dependencies DOUBLE NOT NULL,
				category VARCHAR(50) NOT NULL,
				snapshot_time DATETIME(6) NOT NULL,
				INDEX idx_project_time (project_id, snapshot_time)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id BIGSERIAL PRIMARY KEY,
				project_id TEXT NOT NULL,
				overall DOUBLE PRECISION NOT NULL,
				timeline DOUBLE PRECISION NOT NULL,
				activity DOUBLE PRECISION NOT NULL,
				blockers DOUBLE PRECISION NOT NULL,
				dependencies DOUBLE PRECISION NOT NULL,
				category TEXT NOT NULL,
				snapshot_time TIMESTAMPTZ NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id INTEGER PRIMARY KEY AUTOINCREMENT,
				project_id TEXT NOT NULL,
				overall REAL NOT NULL,
				timeline REAL NOT NULL,
				activity REAL NOT NULL,
				blockers REAL NOT NULL,
				dependencies REAL NOT NULL,
				category TEXT NOT NULL,
				snapshot_time TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

// RecordSnapshot stores one project health snapshot and returns its ID.
func (hs *HistoryStoreImpl) RecordSnapshot(rec schema.HealthSnapshotRecord) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	quotedTableName := quoteTableName(snapshotsTable, hs.backend)
	snapshotTime := formatTime(rec.SnapshotTime, hs.backend)

	var snapshotID int64
	var err error
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (project_id, overall, timeline, activity, blockers, dependencies, category, snapshot_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING snapshot_id`, quotedTableName)
		err = hs.db.QueryRow(query, rec.ProjectID, rec.Overall, rec.Timeline, rec.Activity,
			rec.Blockers, rec.Dependencies, rec.Category, snapshotTime).Scan(&snapshotID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (project_id, overall, timeline, activity, blockers, dependencies, category, snapshot_time)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, rec.ProjectID, rec.Overall, rec.Timeline, rec.Activity,
			rec.Blockers, rec.Dependencies, rec.Category, snapshotTime)
		if err == nil {
			snapshotID, err = result.LastInsertId()
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert health snapshot: %w", err)
	}
	return snapshotID, nil
}

// GetProjectSeries returns the (timestamp, overall) series for a project
// since the given time, oldest first.
func (hs *HistoryStoreImpl) GetProjectSeries(projectID string, since time.Time) ([]schema.TrendPoint, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(snapshotsTable, hs.backend)
	var query string
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT snapshot_time, overall FROM %s WHERE project_id = $1 AND snapshot_time >= $2 ORDER BY snapshot_time`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT snapshot_time, overall FROM %s WHERE project_id = ? AND snapshot_time >= ? ORDER BY snapshot_time`, quotedTableName)
	}

	rows, err := hs.db.Query(query, projectID, formatTime(since, hs.backend))
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot series: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var points []schema.TrendPoint
	for rows.Next() {
		var point schema.TrendPoint
		switch hs.backend {
		case schema.SQLiteBackend:
			var tsStr string
			if err := rows.Scan(&tsStr, &point.Value); err != nil {
				return nil, fmt.Errorf("failed to scan snapshot point: %w", err)
			}
			ts, err := time.Parse(time.RFC3339Nano, tsStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse snapshot_time: %w", err)
			}
			point.Timestamp = ts
		default: // MySQL and PostgreSQL store as native datetime
			if err := rows.Scan(&point.Timestamp, &point.Value); err != nil {
				return nil, fmt.Errorf("failed to scan snapshot point: %w", err)
			}
		}
		points = append(points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot series: %w", err)
	}
	return points, nil
}

// GetAllSnapshots retrieves every stored snapshot, oldest first.
func (hs *HistoryStoreImpl) GetAllSnapshots() ([]schema.HealthSnapshotRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(snapshotsTable, hs.backend)
	query := fmt.Sprintf(`SELECT snapshot_id, project_id, overall, timeline, activity, blockers, dependencies, category, snapshot_time
		FROM %s ORDER BY snapshot_id`, quotedTableName)

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.HealthSnapshotRecord
	for rows.Next() {
		var rec schema.HealthSnapshotRecord
		switch hs.backend {
		case schema.SQLiteBackend:
			var tsStr string
			if err := rows.Scan(&rec.SnapshotID, &rec.ProjectID, &rec.Overall, &rec.Timeline,
				&rec.Activity, &rec.Blockers, &rec.Dependencies, &rec.Category, &tsStr); err != nil {
				return nil, fmt.Errorf("failed to scan snapshot: %w", err)
			}
			ts, err := time.Parse(time.RFC3339Nano, tsStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse snapshot_time: %w", err)
			}
			rec.SnapshotTime = ts
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&rec.SnapshotID, &rec.ProjectID, &rec.Overall, &rec.Timeline,
				&rec.Activity, &rec.Blockers, &rec.Dependencies, &rec.Category, &rec.SnapshotTime); err != nil {
				return nil, fmt.Errorf("failed to scan snapshot: %w", err)
			}
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:   string(hs.backend),
		Connected: hs.db != nil,
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(snapshotsTable, hs.backend)

	countQuery := fmt.Sprintf("SELECT COUNT(*), COUNT(DISTINCT project_id) FROM %s", quotedTableName)
	row := hs.db.QueryRow(countQuery)
	if err := row.Scan(&status.TotalSnapshots, &status.TotalProjects); err != nil {
		return status, fmt.Errorf("failed to get snapshot counts: %w", err)
	}

	if status.TotalSnapshots == 0 {
		return status, nil
	}

	first, err := hs.snapshotTimeAt("MIN", quotedTableName)
	if err != nil {
		return status, err
	}
	status.OldestSnapshot = first

	last, err := hs.snapshotTimeAt("MAX", quotedTableName)
	if err != nil {
		return status, err
	}
	status.LastSnapshotTime = last

	status.TableSizeBytes = hs.estimateTableSize(status.TotalSnapshots)
	return status, nil
}

// snapshotTimeAt reads the MIN or MAX snapshot_time from the table.
func (hs *HistoryStoreImpl) snapshotTimeAt(agg, quotedTableName string) (time.Time, error) {
	query := fmt.Sprintf("SELECT %s(snapshot_time) FROM %s", agg, quotedTableName)
	row := hs.db.QueryRow(query)

	switch hs.backend {
	case schema.SQLiteBackend:
		var tsStr string
		if err := row.Scan(&tsStr); err != nil {
			return time.Time{}, fmt.Errorf("failed to get %s snapshot time: %w", agg, err)
		}
		ts, err := time.Parse(time.RFC3339Nano, tsStr)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse snapshot_time: %w", err)
		}
		return ts, nil
	default:
		var ts time.Time
		if err := row.Scan(&ts); err != nil {
			return time.Time{}, fmt.Errorf("failed to get %s snapshot time: %w", agg, err)
		}
		return ts, nil
	}
}

// estimateTableSize approximates the on-disk size of the snapshots table.
func (hs *HistoryStoreImpl) estimateTableSize(totalSnapshots int) int64 {
	// Fallback rough estimate if backend-specific queries fail
	estimate := int64(totalSnapshots) * 200

	switch hs.backend {
	case schema.SQLiteBackend:
		// For SQLite, use page_count * page_size
		var size int64
		row := hs.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
		if err := row.Scan(&size); err == nil {
			return size
		}
	case schema.MySQLBackend:
		// Use information_schema for MySQL
		cfg, err := mysql.ParseDSN(hs.connStr)
		if err != nil || cfg.DBName == "" {
			break
		}
		var size int64
		row := hs.db.QueryRow("SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?",
			cfg.DBName, snapshotsTable)
		if err := row.Scan(&size); err == nil {
			return size
		}
	case schema.PostgreSQLBackend:
		// Use pg_total_relation_size for PostgreSQL
		var size int64
		row := hs.db.QueryRow("SELECT pg_total_relation_size($1)", snapshotsTable)
		if err := row.Scan(&size); err == nil {
			return size
		}
	}
	return estimate
}

// Close closes the underlying DB connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// quoteTableName quotes a table identifier for the backend.
func quoteTableName(tableName string, backend schema.StoreBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", tableName)
	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`"%s"`, tableName)
	default: // SQLite
		return fmt.Sprintf(`"%s"`, tableName)
	}
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.StoreBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t
	}
}
