package core

import (
	"fmt"

	"github.com/huangsam/compass/schema"
)

// Risk kinds emitted by the rule set.
const (
	TimelineRisk = "timeline"
	BlockersRisk = "blockers"
	ActivityRisk = "activity"
)

// AssessRisks runs the fixed rule set against one project's signals and
// returns the findings ranked by priority, highest first. Rules only fire on
// data that is actually present: a project with no activity counts produces
// no activity risk, and a project with no usable timeline produces no
// timeline risk.
func AssessRisks(signals schema.ProjectSignals) []schema.Risk {
	var risks []schema.Risk

	if risk, ok := timelineRisk(signals); ok {
		risks = append(risks, risk)
	}
	if risk, ok := blockerRisk(signals); ok {
		risks = append(risks, risk)
	}
	if risk, ok := activityRisk(signals); ok {
		risks = append(risks, risk)
	}

	schema.SortRisksByPriority(risks)
	return risks
}

// AssessPortfolioRisks runs the rule set over every project and returns one
// combined ranking.
func AssessPortfolioRisks(all []schema.ProjectSignals) []schema.Risk {
	var risks []schema.Risk
	for _, signals := range all {
		risks = append(risks, AssessRisks(signals)...)
	}
	schema.SortRisksByPriority(risks)
	return risks
}

// timelineRisk fires when the schedule-performance ratio shows the project
// behind its calendar.
func timelineRisk(signals schema.ProjectSignals) (schema.Risk, bool) {
	ratio, ok := TimelineRatio(signals)
	if !ok || ratio >= 0.85 {
		return schema.Risk{}, false
	}

	severity := schema.MediumSeverity
	likelihood := schema.PossibleLikelihood
	switch {
	case ratio < 0.5:
		severity = schema.CriticalSeverity
		likelihood = schema.LikelyLikelihood
	case ratio < 0.7:
		severity = schema.HighSeverity
		likelihood = schema.LikelyLikelihood
	}

	return newRisk(signals.ProjectID, TimelineRisk, severity, likelihood,
		fmt.Sprintf("milestone completion is trailing the calendar (ratio %.2f)", ratio),
		[]string{
			"re-baseline the target date with stakeholders",
			"cut scope from the remaining milestones",
		}), true
}

// blockerRisk fires once open blockers pile up past two.
func blockerRisk(signals schema.ProjectSignals) (schema.Risk, bool) {
	count := len(signals.Blockers)
	if count <= 2 {
		return schema.Risk{}, false
	}

	severity := schema.MediumSeverity
	likelihood := schema.LikelyLikelihood
	switch {
	case count > 10:
		severity = schema.CriticalSeverity
		likelihood = schema.CertainLikelihood
	case count > 5:
		severity = schema.HighSeverity
		likelihood = schema.CertainLikelihood
	}

	return newRisk(signals.ProjectID, BlockersRisk, severity, likelihood,
		fmt.Sprintf("%d open blockers are impeding progress", count),
		[]string{
			"triage blockers in the next sync",
			"escalate the longest-standing blockers",
		}), true
}

// activityRisk fires when collected activity falls well below the baseline.
// No collected data means no finding, not a low-activity finding.
func activityRisk(signals schema.ProjectSignals) (schema.Risk, bool) {
	if signals.Activity == nil {
		return schema.Risk{}, false
	}

	score := activityScore(signals)
	if score > 0.5 {
		return schema.Risk{}, false
	}

	severity := schema.MediumSeverity
	likelihood := schema.PossibleLikelihood
	if score <= 0.2 {
		severity = schema.HighSeverity
		likelihood = schema.LikelyLikelihood
	}

	return newRisk(signals.ProjectID, ActivityRisk, severity, likelihood,
		"development activity is below the expected baseline",
		[]string{
			"confirm the team is not diverted to other work",
			"check whether activity happens outside the tracked repos",
		}), true
}

func newRisk(projectID, kind string, severity schema.RiskSeverity, likelihood schema.RiskLikelihood, description string, mitigations []string) schema.Risk {
	return schema.Risk{
		ProjectID:   projectID,
		Kind:        kind,
		Severity:    severity,
		Likelihood:  likelihood,
		Priority:    schema.PriorityScore(severity, likelihood),
		Description: description,
		Mitigations: mitigations,
	}
}
