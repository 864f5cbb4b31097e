package schema

import "time"

// TrendPoint represents a single (timestamp, value) observation.
type TrendPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// TrendAnalysis holds the result of a linear-regression trend fit over
// historical points. Slope is per sequence position, not per unit time.
type TrendAnalysis struct {
	Direction  TrendDirection `json:"direction"`
	Slope      float64        `json:"slope"`
	Confidence float64        `json:"confidence"` // 0.0 - 1.0
	Points     []TrendPoint   `json:"points"`     // sorted chronologically
}
