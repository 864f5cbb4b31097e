package core

import (
	"testing"
	"time"

	"github.com/huangsam/compass/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewScorerWeightInvariant checks that weights summing to 0.95 are
// rejected while weights within one percent of 1.0 are accepted.
func TestNewScorerWeightInvariant(t *testing.T) {
	t.Run("nil uses defaults", func(t *testing.T) {
		scorer, err := NewScorer(nil)
		require.NoError(t, err)
		assert.NotNil(t, scorer)
	})

	t.Run("sum 0.95 rejected", func(t *testing.T) {
		weights := schema.GetDefaultWeights()
		weights[schema.TimelineComponent] = 0.25 // drags the sum to 0.95
		_, err := NewScorer(weights)
		assert.Error(t, err)
	})

	t.Run("sum within tolerance accepted", func(t *testing.T) {
		weights := schema.GetDefaultWeights()
		weights[schema.TimelineComponent] = 0.305 // sum 1.005
		_, err := NewScorer(weights)
		assert.NoError(t, err)
	})

	t.Run("missing component rejected", func(t *testing.T) {
		weights := schema.GetDefaultWeights()
		delete(weights, schema.BlockersComponent)
		_, err := NewScorer(weights)
		assert.Error(t, err)
	})

	t.Run("out of range rejected", func(t *testing.T) {
		weights := map[schema.ComponentName]float64{
			schema.TimelineComponent:     1.3,
			schema.ActivityComponent:     -0.1,
			schema.BlockersComponent:     -0.1,
			schema.DependenciesComponent: -0.1,
		}
		_, err := NewScorer(weights)
		assert.Error(t, err)
	})
}

// TestScoreEndToEnd reproduces the worked example: two of four milestones
// done at exactly half the schedule, no blockers, no dependencies, no
// activity data, default weights.
func TestScoreEndToEnd(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	signals := schema.ProjectSignals{
		ProjectID:  "atlas",
		AsOf:       asOf,
		StartDate:  asOf.AddDate(0, 0, -60),
		TargetDate: asOf.AddDate(0, 0, 60),
		Milestones: []schema.Milestone{
			{Name: "m1", Status: schema.CompletedMilestone},
			{Name: "m2", Status: schema.CompletedMilestone},
			{Name: "m3", Status: schema.PlannedMilestone},
			{Name: "m4", Status: schema.PlannedMilestone},
		},
	}

	ratio, ok := TimelineRatio(signals)
	require.True(t, ok)
	assert.InDelta(t, 1.0, ratio, 0.001)

	scorer, err := NewScorer(nil)
	require.NoError(t, err)
	score := scorer.Score(signals)

	byName := map[schema.ComponentName]schema.ComponentScore{}
	for _, c := range score.Components {
		byName[c.Name] = c
	}
	assert.InDelta(t, 0.9, byName[schema.TimelineComponent].Raw, 0.001)
	assert.InDelta(t, 0.5, byName[schema.ActivityComponent].Raw, 0.001)
	assert.InDelta(t, 1.0, byName[schema.BlockersComponent].Raw, 0.001)
	assert.InDelta(t, 1.0, byName[schema.DependenciesComponent].Raw, 0.001)

	assert.InDelta(t, 0.845, score.Overall, 0.001)
	assert.Equal(t, schema.GoodHealth, score.Category)
}

// TestTimelineMonotonicity verifies that completing more milestones at a
// fixed elapsed fraction never lowers the timeline component.
func TestTimelineMonotonicity(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	base := schema.ProjectSignals{
		AsOf:       asOf,
		StartDate:  asOf.AddDate(0, 0, -30),
		TargetDate: asOf.AddDate(0, 0, 70),
	}

	const total = 10
	previous := 0.0
	for completed := 0; completed <= total; completed++ {
		signals := base
		signals.Milestones = nil
		for i := 0; i < total; i++ {
			status := schema.PlannedMilestone
			if i < completed {
				status = schema.CompletedMilestone
			}
			signals.Milestones = append(signals.Milestones, schema.Milestone{Status: status})
		}

		score := timelineScore(signals)
		assert.GreaterOrEqual(t, score, previous, "completed=%d", completed)
		previous = score
	}
}

// TestTimelineRatioEdges covers the no-data and pre-start branches.
func TestTimelineRatioEdges(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	milestone := []schema.Milestone{{Status: schema.CompletedMilestone}}

	t.Run("no milestones", func(t *testing.T) {
		_, ok := TimelineRatio(schema.ProjectSignals{AsOf: asOf})
		assert.False(t, ok)
	})

	t.Run("missing dates", func(t *testing.T) {
		_, ok := TimelineRatio(schema.ProjectSignals{AsOf: asOf, Milestones: milestone})
		assert.False(t, ok)
	})

	t.Run("target before start", func(t *testing.T) {
		_, ok := TimelineRatio(schema.ProjectSignals{
			AsOf:       asOf,
			StartDate:  asOf,
			TargetDate: asOf.AddDate(0, 0, -10),
			Milestones: milestone,
		})
		assert.False(t, ok)
	})

	t.Run("before start date scores ahead", func(t *testing.T) {
		signals := schema.ProjectSignals{
			AsOf:       asOf,
			StartDate:  asOf.AddDate(0, 0, 10),
			TargetDate: asOf.AddDate(0, 0, 100),
			Milestones: []schema.Milestone{{Status: schema.PlannedMilestone}},
		}
		assert.InDelta(t, 1.0, timelineScore(signals), 0.001)
	})

	t.Run("past target clamps elapsed", func(t *testing.T) {
		signals := schema.ProjectSignals{
			AsOf:       asOf,
			StartDate:  asOf.AddDate(0, 0, -100),
			TargetDate: asOf.AddDate(0, 0, -10),
			Milestones: milestone,
		}
		ratio, ok := TimelineRatio(signals)
		require.True(t, ok)
		assert.InDelta(t, 1.0, ratio, 0.001)
	})
}

// TestActivityScore exercises the baseline ratio steps and neutral fallback.
func TestActivityScore(t *testing.T) {
	tests := []struct {
		name     string
		activity *schema.ActivityCounts
		baseline float64
		expected float64
	}{
		{name: "no data is neutral", activity: nil, baseline: 10, expected: 0.5},
		{name: "well above baseline", activity: &schema.ActivityCounts{Commits: 10, PullRequests: 3, ClosedIssues: 2}, baseline: 10, expected: 1.0},
		{name: "near baseline", activity: &schema.ActivityCounts{Commits: 8}, baseline: 10, expected: 0.8},
		{name: "half baseline", activity: &schema.ActivityCounts{Commits: 5}, baseline: 10, expected: 0.5},
		{name: "well below baseline", activity: &schema.ActivityCounts{Commits: 1}, baseline: 10, expected: 0.2},
		{name: "zero baseline uses default", activity: &schema.ActivityCounts{Commits: 15}, baseline: 0, expected: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signals := schema.ProjectSignals{Activity: tt.activity, ActivityBaseline: tt.baseline}
			assert.InDelta(t, tt.expected, activityScore(signals), 0.001)
		})
	}
}

// TestWeightedActivity confirms pull requests count double.
func TestWeightedActivity(t *testing.T) {
	counts := schema.ActivityCounts{Commits: 3, PullRequests: 2, ClosedIssues: 1}
	assert.InDelta(t, 8.0, WeightedActivity(counts), 0.001)
}

// TestBlockerScore checks each step of the inverse blocker count function.
func TestBlockerScore(t *testing.T) {
	tests := []struct {
		count    int
		expected float64
	}{
		{0, 1.0}, {1, 0.85}, {2, 0.85}, {3, 0.65}, {5, 0.65},
		{6, 0.4}, {10, 0.4}, {11, 0.15},
	}

	for _, tt := range tests {
		blockers := make([]schema.Blocker, tt.count)
		signals := schema.ProjectSignals{Blockers: blockers}
		assert.InDelta(t, tt.expected, blockerScore(signals), 0.001, "count=%d", tt.count)
	}
}

// TestDependencyScore verifies the mean and the empty case.
func TestDependencyScore(t *testing.T) {
	assert.InDelta(t, 1.0, dependencyScore(schema.ProjectSignals{}), 0.001)

	signals := schema.ProjectSignals{DependencyScores: []float64{0.9, 0.5, 0.7}}
	assert.InDelta(t, 0.7, dependencyScore(signals), 0.001)
}
