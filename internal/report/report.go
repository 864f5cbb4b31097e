// Package report renders status-update and 1:1 prep reports from
// portfolio health data using embedded text templates.
package report

import (
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/schema"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ProjectStatus bundles everything a report needs to say about one project.
type ProjectStatus struct {
	Project schema.Project
	Health  schema.ProjectHealth
	Risks   []schema.Risk
	Notes   string
}

// StatusReport is the data model for the portfolio status update template.
type StatusReport struct {
	AsOf     time.Time
	Projects []ProjectStatus
}

// OneOnOneReport is the data model for the 1:1 prep template. It narrows the
// status report to the projects owned by one team member.
type OneOnOneReport struct {
	Member   schema.TeamMember
	AsOf     time.Time
	Projects []ProjectStatus
}

// Generator holds the parsed report templates.
type Generator struct {
	templates *template.Template
}

// NewGenerator parses the embedded templates once. Template errors here are
// programming errors, so they surface immediately.
func NewGenerator() (*Generator, error) {
	funcs := template.FuncMap{
		"pct": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v*100)
		},
		"score": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"date": func(t time.Time) string {
			return t.Format(schema.DateFormat)
		},
		"label": contract.GetPlainLabel,
		"open":  OpenMilestones,
		"join": func(items []string) string {
			return strings.Join(items, "; ")
		},
	}
	tmpl, err := template.New("report").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report templates: %w", err)
	}
	return &Generator{templates: tmpl}, nil
}

// WriteStatus renders the portfolio status update report.
func (g *Generator) WriteStatus(w io.Writer, data *StatusReport) error {
	return g.templates.ExecuteTemplate(w, "status.tmpl", data)
}

// WriteOneOnOne renders the 1:1 prep report for a single team member.
func (g *Generator) WriteOneOnOne(w io.Writer, data *OneOnOneReport) error {
	return g.templates.ExecuteTemplate(w, "one_on_one.tmpl", data)
}

// BuildStatusReport joins health results with project records, risks, and
// optional notes. Projects keep the order of the health results, which is
// worst-first after an analysis run.
func BuildStatusReport(
	portfolio *schema.PortfolioHealth,
	projects []schema.Project,
	risks []schema.Risk,
	notes map[string]string,
) *StatusReport {
	byID := make(map[string]schema.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}
	riskByProject := make(map[string][]schema.Risk)
	for _, r := range risks {
		riskByProject[r.ProjectID] = append(riskByProject[r.ProjectID], r)
	}

	out := &StatusReport{AsOf: portfolio.AsOf}
	for _, h := range portfolio.Projects {
		out.Projects = append(out.Projects, ProjectStatus{
			Project: byID[h.ID],
			Health:  h,
			Risks:   riskByProject[h.ID],
			Notes:   notes[h.ID],
		})
	}
	return out
}

// BuildOneOnOneReport narrows a status report to the projects owned by the
// given member, matched by record ID against the project owner field.
// Projects are listed worst-first like the source report.
func BuildOneOnOneReport(member schema.TeamMember, status *StatusReport) *OneOnOneReport {
	out := &OneOnOneReport{Member: member, AsOf: status.AsOf}
	for _, ps := range status.Projects {
		if ps.Project.Owner == member.ID {
			out.Projects = append(out.Projects, ps)
		}
	}
	sort.SliceStable(out.Projects, func(i, j int) bool {
		return out.Projects[i].Health.Score.Overall < out.Projects[j].Health.Score.Overall
	})
	return out
}

// OpenMilestones returns the milestones of a project that are not completed
// or cancelled, for the "what's next" section of reports.
func OpenMilestones(p schema.Project) []schema.Milestone {
	var open []schema.Milestone
	for _, m := range p.Milestones {
		if m.Status == schema.CompletedMilestone || m.Status == schema.CancelledMilestone {
			continue
		}
		open = append(open, m)
	}
	return open
}
