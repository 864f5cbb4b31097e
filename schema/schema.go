// Package schema has configs, models and shared constants for all parts of compass.
package schema

// Project represents a single project record from the portfolio document.
// It carries planning metadata, scheduling dates, and the raw signal inputs
// (milestones, blockers, dependencies) consumed by the health scorer.
type Project struct {
	ID           string      `yaml:"-" json:"id"`
	Name         string      `yaml:"name" json:"name"`
	Status       Status      `yaml:"status" json:"status"`
	Priority     Priority    `yaml:"priority" json:"priority"`
	Owner        string      `yaml:"owner" json:"owner"`
	StartDate    string      `yaml:"start_date" json:"start_date"`     // ISO 8601, YYYY-MM-DD
	TargetDate   string      `yaml:"target_date" json:"target_date"`   // ISO 8601, YYYY-MM-DD
	GitHubRepos  []string    `yaml:"github_repos" json:"github_repos"` // owner/repo slugs
	Dependencies []string    `yaml:"dependencies" json:"dependencies"` // upstream project IDs
	Milestones   []Milestone `yaml:"milestones" json:"milestones"`
	Blockers     []Blocker   `yaml:"blockers" json:"blockers"`
}

// Milestone is a single dated deliverable within a project.
type Milestone struct {
	Name   string          `yaml:"name" json:"name"`
	Date   string          `yaml:"date" json:"date"` // ISO 8601, YYYY-MM-DD
	Status MilestoneStatus `yaml:"status" json:"status"`
}

// Blocker is an open impediment attached to a project.
type Blocker struct {
	ID          string       `yaml:"id" json:"id"`
	Description string       `yaml:"description" json:"description"`
	Severity    RiskSeverity `yaml:"severity" json:"severity"`
}

// TeamMember represents a single member record from the team roster document.
type TeamMember struct {
	ID    string `yaml:"-" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Role  string `yaml:"role" json:"role"`
	Email string `yaml:"email" json:"email"`
}

// Stakeholder represents a single stakeholder profile record.
type Stakeholder struct {
	ID        string `yaml:"-" json:"id"`
	Name      string `yaml:"name" json:"name"`
	Role      string `yaml:"role" json:"role"`
	Interest  string `yaml:"interest" json:"interest"`
	Influence string `yaml:"influence" json:"influence"`
}
