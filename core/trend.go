package core

import (
	"math"

	"github.com/huangsam/compass/schema"
)

// AnalyzeTrend fits an ordinary least-squares line to the values against
// their sequence position (not timestamp deltas) and classifies the slope.
// Slope magnitudes below stableThreshold are stable regardless of sign.
// Fewer than two points is insufficient data, not an error.
func AnalyzeTrend(points []schema.TrendPoint, stableThreshold float64) schema.TrendAnalysis {
	sorted := schema.SortPointsChronologically(points)

	if len(sorted) < 2 {
		return schema.TrendAnalysis{
			Direction:  schema.StableTrend,
			Slope:      0,
			Confidence: 0,
			Points:     sorted,
		}
	}

	slope, intercept := fitLine(sorted)

	direction := schema.StableTrend
	if math.Abs(slope) >= stableThreshold {
		if slope > 0 {
			direction = schema.ImprovingTrend
		} else {
			direction = schema.DecliningTrend
		}
	}

	return schema.TrendAnalysis{
		Direction:  direction,
		Slope:      slope,
		Confidence: fitConfidence(sorted, slope, intercept),
		Points:     sorted,
	}
}

// fitLine computes the OLS slope and intercept of value over index.
func fitLine(points []schema.TrendPoint) (slope, intercept float64) {
	n := float64(len(points))

	var sumX, sumY, sumXY, sumXX float64
	for i, p := range points {
		x := float64(i)
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// fitConfidence is the coefficient of determination of the fit: the share
// of the values' variance the line explains, clamped to [0, 1]. Higher
// unexplained (residual) variance means lower confidence.
func fitConfidence(points []schema.TrendPoint, slope, intercept float64) float64 {
	n := float64(len(points))

	var sumY float64
	for _, p := range points {
		sumY += p.Value
	}
	mean := sumY / n

	var ssTotal, ssResidual float64
	for i, p := range points {
		predicted := slope*float64(i) + intercept
		ssTotal += (p.Value - mean) * (p.Value - mean)
		ssResidual += (p.Value - predicted) * (p.Value - predicted)
	}

	// A flat series is fit perfectly by a flat line.
	if ssTotal == 0 {
		return 1.0
	}

	confidence := 1.0 - ssResidual/ssTotal
	return math.Min(math.Max(confidence, 0), 1)
}
