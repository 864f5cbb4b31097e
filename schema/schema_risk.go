package schema

// Risk is one ranked finding from the risk assessment rule set.
type Risk struct {
	ProjectID   string         `json:"project_id"`
	Kind        string         `json:"kind"` // timeline, blockers, activity
	Severity    RiskSeverity   `json:"severity"`
	Likelihood  RiskLikelihood `json:"likelihood"`
	Priority    float64        `json:"priority"` // used purely for sort order
	Description string         `json:"description"`
	Mitigations []string       `json:"mitigations"`
}

// severityWeights maps each severity to its contribution to the priority score.
var severityWeights = map[RiskSeverity]float64{
	LowSeverity:      0.25,
	MediumSeverity:   0.50,
	HighSeverity:     0.75,
	CriticalSeverity: 1.00,
}

// likelihoodWeights maps each likelihood to its contribution to the priority score.
var likelihoodWeights = map[RiskLikelihood]float64{
	UnlikelyLikelihood: 0.25,
	PossibleLikelihood: 0.50,
	LikelyLikelihood:   0.75,
	CertainLikelihood:  1.00,
}

// PriorityScore derives the risk-ranking scalar from severity and likelihood.
// Severity dominates at 60 percent, likelihood contributes 40 percent.
func PriorityScore(severity RiskSeverity, likelihood RiskLikelihood) float64 {
	return severityWeights[severity]*0.6 + likelihoodWeights[likelihood]*0.4
}
