package core

import (
	"sort"

	"github.com/huangsam/compass/schema"
)

// evaluateGate applies the health threshold to every scored project. The gate
// passes only when no project falls below the threshold; failed projects are
// reported worst first.
func evaluateGate(pass *portfolioPass, threshold float64) schema.CheckResult {
	result := schema.CheckResult{
		Passed:        true,
		Threshold:     threshold,
		TotalProjects: len(pass.projects),
	}

	var sum float64
	for _, p := range pass.projects {
		score := pass.scores[p.ID]
		sum += score.Overall
		if score.Overall < threshold {
			result.Passed = false
			result.FailedProjects = append(result.FailedProjects, schema.CheckFailedProject{
				ID:       p.ID,
				Name:     p.Name,
				Score:    score.Overall,
				Category: score.Category,
			})
		}
	}
	if len(pass.projects) > 0 {
		result.AvgScore = sum / float64(len(pass.projects))
	}

	sort.SliceStable(result.FailedProjects, func(i, j int) bool {
		if result.FailedProjects[i].Score != result.FailedProjects[j].Score {
			return result.FailedProjects[i].Score < result.FailedProjects[j].Score
		}
		return result.FailedProjects[i].ID < result.FailedProjects[j].ID
	})
	return result
}
