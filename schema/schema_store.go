package schema

import "time"

// HealthSnapshotRecord represents a row from the compass_health_snapshots table.
type HealthSnapshotRecord struct {
	SnapshotID   int64     `json:"snapshot_id"`
	ProjectID    string    `json:"project_id"`
	Overall      float64   `json:"overall"`
	Timeline     float64   `json:"timeline"`
	Activity     float64   `json:"activity"`
	Blockers     float64   `json:"blockers"`
	Dependencies float64   `json:"dependencies"`
	Category     string    `json:"category"`
	SnapshotTime time.Time `json:"snapshot_time"`
}

// HistoryStatus represents the status of the snapshot history store.
type HistoryStatus struct {
	Backend          string    `json:"backend"`
	Connected        bool      `json:"connected"`
	TotalSnapshots   int       `json:"total_snapshots"`
	TotalProjects    int       `json:"total_projects"`
	LastSnapshotTime time.Time `json:"last_snapshot_time"`
	OldestSnapshot   time.Time `json:"oldest_snapshot_time"`
	TableSizeBytes   int64     `json:"table_size_bytes"`
}

// CheckResult holds the results of a portfolio health gate.
type CheckResult struct {
	Passed         bool                 `json:"passed"`
	Threshold      float64              `json:"threshold"`
	TotalProjects  int                  `json:"total_projects"`
	AvgScore       float64              `json:"avg_score"`
	FailedProjects []CheckFailedProject `json:"failed_projects"`
}

// CheckFailedProject represents a project that failed the health gate.
type CheckFailedProject struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Score    float64        `json:"score"`
	Category HealthCategory `json:"category"`
}
