package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestCategoryForScore checks the category thresholds, including exact boundaries.
func TestCategoryForScore(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected HealthCategory
	}{
		{name: "excellent boundary", score: 0.85, expected: ExcellentHealth},
		{name: "just under excellent", score: 0.845, expected: GoodHealth},
		{name: "good boundary", score: 0.70, expected: GoodHealth},
		{name: "fair boundary", score: 0.50, expected: FairHealth},
		{name: "poor boundary", score: 0.30, expected: PoorHealth},
		{name: "critical", score: 0.29, expected: CriticalHealth},
		{name: "zero", score: 0.0, expected: CriticalHealth},
		{name: "perfect", score: 1.0, expected: ExcellentHealth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoryForScore(tt.score))
		})
	}
}

// TestParseDate validates ISO date parsing and the empty-string fallback.
func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		d, err := ParseDate("2026-03-15")
		assert.NoError(t, err)
		assert.Equal(t, 2026, d.Year())
		assert.Equal(t, time.March, d.Month())
		assert.Equal(t, 15, d.Day())
	})

	t.Run("empty string is zero time", func(t *testing.T) {
		d, err := ParseDate("")
		assert.NoError(t, err)
		assert.True(t, d.IsZero())
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("03/15/2026")
		assert.Error(t, err)
	})
}

// TestPriorityScore verifies the severity/likelihood blend.
func TestPriorityScore(t *testing.T) {
	assert.InDelta(t, 1.0, PriorityScore(CriticalSeverity, CertainLikelihood), 0.001)
	assert.InDelta(t, 0.25, PriorityScore(LowSeverity, UnlikelyLikelihood), 0.001)
	assert.InDelta(t, 0.75*0.6+0.5*0.4, PriorityScore(HighSeverity, PossibleLikelihood), 0.001)
}

// TestSortRisksByPriority checks most-urgent-first ordering regardless of input order.
func TestSortRisksByPriority(t *testing.T) {
	critical := Risk{ProjectID: "a", Kind: "timeline", Severity: CriticalSeverity, Likelihood: CertainLikelihood, Priority: PriorityScore(CriticalSeverity, CertainLikelihood)}
	low := Risk{ProjectID: "a", Kind: "activity", Severity: LowSeverity, Likelihood: UnlikelyLikelihood, Priority: PriorityScore(LowSeverity, UnlikelyLikelihood)}

	for _, risks := range [][]Risk{{critical, low}, {low, critical}} {
		SortRisksByPriority(risks)
		assert.Equal(t, CriticalSeverity, risks[0].Severity)
		assert.Equal(t, LowSeverity, risks[1].Severity)
	}
}

// TestSortPointsChronologically verifies the input slice is not mutated.
func TestSortPointsChronologically(t *testing.T) {
	now := time.Now()
	points := []TrendPoint{
		{Timestamp: now, Value: 3},
		{Timestamp: now.Add(-48 * time.Hour), Value: 1},
		{Timestamp: now.Add(-24 * time.Hour), Value: 2},
	}

	sorted := SortPointsChronologically(points)
	assert.Equal(t, 1.0, sorted[0].Value)
	assert.Equal(t, 2.0, sorted[1].Value)
	assert.Equal(t, 3.0, sorted[2].Value)
	assert.Equal(t, 3.0, points[0].Value) // original untouched
}
