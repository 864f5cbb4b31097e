package schema

import (
	"sort"
	"time"
)

// DateFormat is the on-disk representation for all portfolio dates.
const DateFormat = "2006-01-02"

// CategoryForScore classifies an overall score into a health category.
func CategoryForScore(score float64) HealthCategory {
	switch {
	case score >= 0.85:
		return ExcellentHealth
	case score >= 0.70:
		return GoodHealth
	case score >= 0.50:
		return FairHealth
	case score >= 0.30:
		return PoorHealth
	default:
		return CriticalHealth
	}
}

// ParseDate parses an ISO 8601 calendar date (YYYY-MM-DD).
// The zero time is returned for an empty string so that optional
// dates degrade to "unknown" rather than erroring.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateFormat, s)
}

// SortPointsChronologically returns a copy of points sorted by timestamp ascending.
func SortPointsChronologically(points []TrendPoint) []TrendPoint {
	sorted := make([]TrendPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

// SortRisksByPriority sorts risks most-urgent-first. Equal priorities keep
// a deterministic order by project then kind.
func SortRisksByPriority(risks []Risk) {
	sort.SliceStable(risks, func(i, j int) bool {
		if risks[i].Priority != risks[j].Priority {
			return risks[i].Priority > risks[j].Priority
		}
		if risks[i].ProjectID != risks[j].ProjectID {
			return risks[i].ProjectID < risks[j].ProjectID
		}
		return risks[i].Kind < risks[j].Kind
	})
}
