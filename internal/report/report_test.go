package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/huangsam/compass/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportFixture() (*schema.PortfolioHealth, []schema.Project, []schema.Risk) {
	portfolio := &schema.PortfolioHealth{
		AsOf: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
		Projects: []schema.ProjectHealth{
			{
				ID:       "borealis",
				Name:     "Borealis Rollout",
				Status:   schema.ActiveStatus,
				Priority: schema.MediumPriority,
				Score: schema.HealthScore{
					Overall:  0.42,
					Category: schema.PoorHealth,
					Components: []schema.ComponentScore{
						{Name: schema.TimelineComponent, Raw: 0.4},
						{Name: schema.BlockersComponent, Raw: 0.65},
					},
				},
			},
			{
				ID:       "atlas",
				Name:     "Atlas Migration",
				Status:   schema.ActiveStatus,
				Priority: schema.HighPriority,
				Score:    schema.HealthScore{Overall: 0.845, Category: schema.GoodHealth},
			},
		},
	}
	projects := []schema.Project{
		{
			ID:         "atlas",
			Name:       "Atlas Migration",
			Owner:      "sam",
			TargetDate: "2026-09-01",
			Milestones: []schema.Milestone{
				{Name: "Schema design", Date: "2026-04-01", Status: schema.CompletedMilestone},
				{Name: "Cutover", Date: "2026-08-15", Status: schema.PlannedMilestone},
			},
		},
		{ID: "borealis", Name: "Borealis Rollout", Owner: "sam"},
	}
	risks := []schema.Risk{
		{
			ProjectID:   "borealis",
			Kind:        "activity",
			Severity:    schema.MediumSeverity,
			Likelihood:  schema.PossibleLikelihood,
			Description: "development activity is below the expected baseline",
			Mitigations: []string{"check staffing"},
		},
	}
	return portfolio, projects, risks
}

// TestWriteStatus renders the full status report and checks each section.
func TestWriteStatus(t *testing.T) {
	gen, err := NewGenerator()
	require.NoError(t, err)

	portfolio, projects, risks := reportFixture()
	data := BuildStatusReport(portfolio, projects, risks, map[string]string{"atlas": "cutover on track"})

	var buf bytes.Buffer
	require.NoError(t, gen.WriteStatus(&buf, data))

	out := buf.String()
	assert.Contains(t, out, "Portfolio status update (2026-06-01)")
	assert.Contains(t, out, "Atlas Migration")
	assert.Contains(t, out, "Good (0.84)")
	assert.Contains(t, out, "Cutover (2026-08-15, planned)")
	assert.NotContains(t, out, "Schema design") // completed milestones are not upcoming
	assert.Contains(t, out, "development activity is below the expected baseline")
	assert.Contains(t, out, "mitigations: check staffing")
	assert.Contains(t, out, "cutover on track")
}

// TestWriteStatusEmpty covers the no-projects message.
func TestWriteStatusEmpty(t *testing.T) {
	gen, err := NewGenerator()
	require.NoError(t, err)

	data := &StatusReport{AsOf: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}
	var buf bytes.Buffer
	require.NoError(t, gen.WriteStatus(&buf, data))
	assert.Contains(t, buf.String(), "No projects in scope.")
}

// TestWriteOneOnOne checks ownership filtering and worst-first ordering.
func TestWriteOneOnOne(t *testing.T) {
	gen, err := NewGenerator()
	require.NoError(t, err)

	portfolio, projects, risks := reportFixture()
	status := BuildStatusReport(portfolio, projects, risks, nil)

	member := schema.TeamMember{ID: "sam", Name: "Sam Huang", Role: "Tech Lead"}
	data := BuildOneOnOneReport(member, status)
	require.Len(t, data.Projects, 2)
	assert.Equal(t, "borealis", data.Projects[0].Health.ID)

	var buf bytes.Buffer
	require.NoError(t, gen.WriteOneOnOne(&buf, data))

	out := buf.String()
	assert.Contains(t, out, "1:1 prep: Sam Huang (2026-06-01)")
	assert.Contains(t, out, "Role: Tech Lead")
	assert.Contains(t, out, "timeline: 0.40")
	assert.Contains(t, out, "Discussion points:")
}

// TestBuildOneOnOneReportNoProjects covers a member with no owned projects.
func TestBuildOneOnOneReportNoProjects(t *testing.T) {
	gen, err := NewGenerator()
	require.NoError(t, err)

	portfolio, projects, risks := reportFixture()
	status := BuildStatusReport(portfolio, projects, risks, nil)
	data := BuildOneOnOneReport(schema.TeamMember{ID: "alex", Name: "Alex Kim"}, status)
	assert.Empty(t, data.Projects)

	var buf bytes.Buffer
	require.NoError(t, gen.WriteOneOnOne(&buf, data))
	assert.Contains(t, buf.String(), "No projects owned by Alex Kim")
}

// TestOpenMilestones filters completed and cancelled entries.
func TestOpenMilestones(t *testing.T) {
	p := schema.Project{Milestones: []schema.Milestone{
		{Name: "a", Status: schema.CompletedMilestone},
		{Name: "b", Status: schema.InProgressMilestone},
		{Name: "c", Status: schema.CancelledMilestone},
		{Name: "d", Status: schema.PlannedMilestone},
	}}
	open := OpenMilestones(p)
	require.Len(t, open, 2)
	assert.Equal(t, "b", open[0].Name)
	assert.Equal(t, "d", open[1].Name)
}
