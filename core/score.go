// Package core holds the health scoring, trend analysis, and risk assessment
// logic for compass, plus the portfolio orchestration that feeds them.
package core

import (
	"fmt"
	"math"

	"github.com/huangsam/compass/schema"
)

// weightSumTolerance is the allowed deviation of the component weight sum
// from 1.0 (one percent).
const weightSumTolerance = 0.01

// defaultActivityBaseline is the expected weighted activity per lookback
// window when the caller supplies none.
const defaultActivityBaseline = 10.0

// componentOrder fixes the breakdown ordering for display and snapshots.
var componentOrder = []schema.ComponentName{
	schema.TimelineComponent,
	schema.ActivityComponent,
	schema.BlockersComponent,
	schema.DependenciesComponent,
}

// Scorer computes deterministic health scores from project signals. A Scorer
// has no mutable state; every call is a pure function of its inputs and may
// be invoked from any number of goroutines simultaneously.
type Scorer struct {
	weights map[schema.ComponentName]float64
}

// NewScorer validates the component weights and returns a Scorer. A nil map
// uses the default weights. Weights not summing to 1.0 within one percent
// are a configuration error, caught here so misconfiguration never produces
// silently-wrong scores.
func NewScorer(weights map[schema.ComponentName]float64) (*Scorer, error) {
	if weights == nil {
		weights = schema.GetDefaultWeights()
	}

	var sum float64
	for _, name := range componentOrder {
		w, ok := weights[name]
		if !ok {
			return nil, fmt.Errorf("missing weight for component %q", name)
		}
		if w < 0 || w > 1 {
			return nil, fmt.Errorf("weight for component %q must be in [0, 1] (received %g)", name, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return nil, fmt.Errorf("component weights must sum to 1.0 within %.0f%% (received %.4f)", weightSumTolerance*100, sum)
	}

	return &Scorer{weights: weights}, nil
}

// Score computes the four component scores independently, weights them, and
// classifies the overall result. Missing signal categories degrade to
// neutral defaults rather than failing.
func (s *Scorer) Score(signals schema.ProjectSignals) schema.HealthScore {
	raw := map[schema.ComponentName]float64{
		schema.TimelineComponent:     timelineScore(signals),
		schema.ActivityComponent:     activityScore(signals),
		schema.BlockersComponent:     blockerScore(signals),
		schema.DependenciesComponent: dependencyScore(signals),
	}

	var overall float64
	components := make([]schema.ComponentScore, 0, len(componentOrder))
	for _, name := range componentOrder {
		weighted := raw[name] * s.weights[name]
		overall += weighted
		components = append(components, schema.ComponentScore{
			Name:     name,
			Raw:      raw[name],
			Weight:   s.weights[name],
			Weighted: weighted,
		})
	}

	return schema.HealthScore{
		Overall:    overall,
		Category:   schema.CategoryForScore(overall),
		Components: components,
	}
}

// TimelineRatio is the schedule-performance ratio: completed milestone
// fraction over elapsed time fraction. A ratio above 1.0 means the project
// is ahead of its calendar. Returns ok=false when milestones or dates are
// missing, in which case the timeline component is neutral.
func TimelineRatio(signals schema.ProjectSignals) (float64, bool) {
	if len(signals.Milestones) == 0 {
		return 0, false
	}
	if signals.StartDate.IsZero() || signals.TargetDate.IsZero() || !signals.TargetDate.After(signals.StartDate) {
		return 0, false
	}

	completed := 0
	for _, m := range signals.Milestones {
		if m.Status == schema.CompletedMilestone {
			completed++
		}
	}
	completedFraction := float64(completed) / float64(len(signals.Milestones))

	total := signals.TargetDate.Sub(signals.StartDate).Seconds()
	elapsed := signals.AsOf.Sub(signals.StartDate).Seconds()
	elapsedFraction := elapsed / total
	if elapsedFraction > 1.0 {
		elapsedFraction = 1.0
	}

	// Before the start date nothing can be behind schedule.
	if elapsedFraction <= 0 {
		return math.Inf(1), true
	}
	return completedFraction / elapsedFraction, true
}

// timelineScore maps the timeline ratio onto the step function.
func timelineScore(signals schema.ProjectSignals) float64 {
	ratio, ok := TimelineRatio(signals)
	if !ok {
		return 0.5 // neutral: no milestones or no usable dates
	}

	switch {
	case ratio >= 1.10:
		return 1.0
	case ratio >= 0.95:
		return 0.9
	case ratio >= 0.85:
		return 0.75
	case ratio >= 0.70:
		return 0.6
	case ratio >= 0.50:
		return 0.4
	default:
		return 0.2
	}
}

// WeightedActivity is the scalar activity signal: commits plus doubled pull
// requests plus closed issues.
func WeightedActivity(counts schema.ActivityCounts) float64 {
	return float64(counts.Commits) + 2.0*float64(counts.PullRequests) + float64(counts.ClosedIssues)
}

// activityScore compares weighted activity against the baseline.
func activityScore(signals schema.ProjectSignals) float64 {
	if signals.Activity == nil {
		return 0.5 // neutral: no data collected
	}

	baseline := signals.ActivityBaseline
	if baseline <= 0 {
		baseline = defaultActivityBaseline
	}
	ratio := WeightedActivity(*signals.Activity) / baseline

	switch {
	case ratio >= 1.5:
		return 1.0
	case ratio >= 0.8:
		return 0.8
	case ratio >= 0.5:
		return 0.5
	default:
		return 0.2
	}
}

// blockerScore is an inverse step function of the open blocker count.
func blockerScore(signals schema.ProjectSignals) float64 {
	count := len(signals.Blockers)
	switch {
	case count == 0:
		return 1.0
	case count <= 2:
		return 0.85
	case count <= 5:
		return 0.65
	case count <= 10:
		return 0.4
	default:
		return 0.15
	}
}

// dependencyScore is the arithmetic mean of upstream health scores. With no
// dependencies there is nothing to be blocked by, so the component is 1.0.
func dependencyScore(signals schema.ProjectSignals) float64 {
	if len(signals.DependencyScores) == 0 {
		return 1.0
	}
	var sum float64
	for _, score := range signals.DependencyScores {
		sum += score
	}
	return sum / float64(len(signals.DependencyScores))
}
