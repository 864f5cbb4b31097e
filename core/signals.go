package core

import (
	"fmt"
	"time"

	"github.com/huangsam/compass/schema"
)

// BuildSignals assembles the scoring inputs for one project. Unparseable
// dates are surfaced as errors rather than silently scored as neutral, so a
// typo in a portfolio document is visible instead of masked. Activity and
// dependency scores are supplied by the caller because they come from other
// subsystems (collection and portfolio ordering respectively).
func BuildSignals(project schema.Project, asOf time.Time, activity *schema.ActivityCounts, activityBaseline float64, dependencyScores []float64) (schema.ProjectSignals, error) {
	start, err := schema.ParseDate(project.StartDate)
	if err != nil {
		return schema.ProjectSignals{}, fmt.Errorf("project %q start_date: %w", project.ID, err)
	}
	target, err := schema.ParseDate(project.TargetDate)
	if err != nil {
		return schema.ProjectSignals{}, fmt.Errorf("project %q target_date: %w", project.ID, err)
	}

	return schema.ProjectSignals{
		ProjectID:        project.ID,
		AsOf:             asOf,
		StartDate:        start,
		TargetDate:       target,
		Milestones:       project.Milestones,
		Activity:         activity,
		ActivityBaseline: activityBaseline,
		Blockers:         project.Blockers,
		DependencyScores: dependencyScores,
	}, nil
}
