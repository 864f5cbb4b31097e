package schema

// Custom string types for type safety.
type (
	// Status represents the lifecycle status of a project.
	Status string

	// Priority represents the planning priority of a project.
	Priority string

	// MilestoneStatus represents the status of a single milestone.
	MilestoneStatus string

	// HealthCategory represents the classification of an overall health score.
	HealthCategory string

	// ComponentName represents one named contributor to a health score.
	ComponentName string

	// TrendDirection represents the direction of a historical trend.
	TrendDirection string

	// RiskSeverity represents how bad a risk would be if it materialized.
	RiskSeverity string

	// RiskLikelihood represents how likely a risk is to materialize.
	RiskLikelihood string

	// OutputMode represents the format of the output.
	OutputMode string

	// StoreBackend represents the database backend for snapshot history.
	StoreBackend string
)

// All project statuses supported.
const (
	PlanningStatus   Status = "planning"
	ActiveStatus     Status = "active"
	InProgressStatus Status = "in_progress"
	CompletedStatus  Status = "completed"
	OnHoldStatus     Status = "on_hold"
	CancelledStatus  Status = "cancelled"
)

// All project priorities supported.
const (
	CriticalPriority Priority = "critical"
	HighPriority     Priority = "high"
	MediumPriority   Priority = "medium"
	LowPriority      Priority = "low"
)

// All milestone statuses supported.
const (
	PlannedMilestone    MilestoneStatus = "planned"
	InProgressMilestone MilestoneStatus = "in_progress"
	CompletedMilestone  MilestoneStatus = "completed"
	CancelledMilestone  MilestoneStatus = "cancelled"
)

// Health categories with their lower score bounds.
const (
	ExcellentHealth HealthCategory = "excellent" // >= 0.85
	GoodHealth      HealthCategory = "good"      // >= 0.70
	FairHealth      HealthCategory = "fair"      // >= 0.50
	PoorHealth      HealthCategory = "poor"      // >= 0.30
	CriticalHealth  HealthCategory = "critical"  // everything below
)

// The four named scoring components.
const (
	TimelineComponent     ComponentName = "timeline"
	ActivityComponent     ComponentName = "activity"
	BlockersComponent     ComponentName = "blockers"
	DependenciesComponent ComponentName = "dependencies"
)

// All trend directions supported.
const (
	ImprovingTrend TrendDirection = "improving"
	StableTrend    TrendDirection = "stable"
	DecliningTrend TrendDirection = "declining"
)

// All risk severities supported.
const (
	LowSeverity      RiskSeverity = "low"
	MediumSeverity   RiskSeverity = "medium"
	HighSeverity     RiskSeverity = "high"
	CriticalSeverity RiskSeverity = "critical"
)

// All risk likelihoods supported.
const (
	UnlikelyLikelihood RiskLikelihood = "unlikely"
	PossibleLikelihood RiskLikelihood = "possible"
	LikelyLikelihood   RiskLikelihood = "likely"
	CertainLikelihood  RiskLikelihood = "certain"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All history backends supported.
const (
	SQLiteBackend     StoreBackend = "sqlite" // default
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
	NoneBackend       StoreBackend = "none"
)

// ValidStatuses lists all valid project statuses.
var ValidStatuses = map[Status]struct{}{
	PlanningStatus:   {},
	ActiveStatus:     {},
	InProgressStatus: {},
	CompletedStatus:  {},
	OnHoldStatus:     {},
	CancelledStatus:  {},
}

// ValidPriorities lists all valid project priorities.
var ValidPriorities = map[Priority]struct{}{
	CriticalPriority: {},
	HighPriority:     {},
	MediumPriority:   {},
	LowPriority:      {},
}

// ValidMilestoneStatuses lists all valid milestone statuses.
var ValidMilestoneStatuses = map[MilestoneStatus]struct{}{
	PlannedMilestone:    {},
	InProgressMilestone: {},
	CompletedMilestone:  {},
	CancelledMilestone:  {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidStoreBackends lists all valid history backends.
var ValidStoreBackends = map[StoreBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// GetDefaultWeights returns the default component weight map.
// The four weights must sum to 1.0; NewScorer enforces this within
// a one percent tolerance.
func GetDefaultWeights() map[ComponentName]float64 {
	return map[ComponentName]float64{
		TimelineComponent:     0.30,
		ActivityComponent:     0.25,
		BlockersComponent:     0.25,
		DependenciesComponent: 0.20,
	}
}
