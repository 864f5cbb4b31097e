package schema

import "time"

// ComponentScore is one named, weighted contributor to an overall health score.
type ComponentScore struct {
	Name     ComponentName `json:"name"`
	Raw      float64       `json:"raw"`      // 0.0 - 1.0
	Weight   float64       `json:"weight"`   // 0.0 - 1.0
	Weighted float64       `json:"weighted"` // raw * weight
}

// HealthScore is the result of scoring one project's signals.
type HealthScore struct {
	Overall    float64          `json:"overall"` // sum of weighted contributions
	Category   HealthCategory   `json:"category"`
	Components []ComponentScore `json:"components"`
}

// ActivityCounts holds recent development activity for a project.
type ActivityCounts struct {
	Commits      int `json:"commits"`
	PullRequests int `json:"pull_requests"`
	ClosedIssues int `json:"closed_issues"`
}

// ProjectSignals is the bag of inputs to a single scoring call. Optional
// categories are pointers or nil slices; the scorer substitutes neutral
// defaults for anything missing rather than failing.
type ProjectSignals struct {
	ProjectID  string    `json:"project_id"`
	AsOf       time.Time `json:"as_of"` // reference time for elapsed-fraction math
	StartDate  time.Time `json:"start_date"`
	TargetDate time.Time `json:"target_date"`

	Milestones       []Milestone     `json:"milestones"`
	Activity         *ActivityCounts `json:"activity"`
	ActivityBaseline float64         `json:"activity_baseline"` // 0 means use the scorer default
	Blockers         []Blocker       `json:"blockers"`
	DependencyScores []float64       `json:"dependency_scores"` // upstream overall scores
}

// ProjectHealth pairs a project with its computed score for display.
type ProjectHealth struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Status   Status      `json:"status"`
	Priority Priority    `json:"priority"`
	Score    HealthScore `json:"score"`
}

// PortfolioHealth is the result of scoring every project in the portfolio.
type PortfolioHealth struct {
	Projects []ProjectHealth `json:"projects"`
	AsOf     time.Time       `json:"as_of"`
}
