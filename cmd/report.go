package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/compass/internal/collect"
	"github.com/huangsam/compass/internal/confstore"
	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/internal/report"
	"github.com/huangsam/compass/schema"
	"github.com/spf13/cobra"
)

// reportCmd groups the rendered report operations.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render status update and 1:1 prep reports",
	Long: `Render human-readable reports from the current portfolio state.

Subcommands:
  status - Portfolio status update (health, milestones, risks, notes)
  1on1   - 1:1 prep for one team member's projects

When a notes command is configured, it is run once per project and its
output is folded into the report.

Examples:
  # Weekly status update for the whole portfolio
  compass report status --output-file status.md

  # Prep for a 1:1 with one team member
  compass report 1on1 sam`,
}

// reportStatusCmd renders the portfolio status update.
var reportStatusCmd = &cobra.Command{
	Use:     "status [project-id]",
	Short:   "Render a portfolio status update report",
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		data, err := buildStatusReport()
		if err != nil {
			contract.LogFatal("Cannot build status report", err)
		}
		gen, err := report.NewGenerator()
		if err != nil {
			contract.LogFatal("Cannot load report templates", err)
		}
		writeReport(func(f *os.File) error {
			return gen.WriteStatus(f, data)
		})
	},
}

// reportOneOnOneCmd renders the 1:1 prep report for one team member.
var reportOneOnOneCmd = &cobra.Command{
	Use:     "1on1 <member-id>",
	Short:   "Render a 1:1 prep report for one team member",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		memberID := args[0]
		member, err := loadTeamMember(memberID)
		if err != nil {
			contract.LogFatal(fmt.Sprintf("Cannot load team member %s", memberID), err)
		}

		// 1:1 reports cover the member's whole slate, never a scoped run.
		cfg.ProjectID = ""
		status, err := buildStatusReport()
		if err != nil {
			contract.LogFatal("Cannot build status report", err)
		}

		gen, err := report.NewGenerator()
		if err != nil {
			contract.LogFatal("Cannot load report templates", err)
		}
		data := report.BuildOneOnOneReport(member, status)
		writeReport(func(f *os.File) error {
			return gen.WriteOneOnOne(f, data)
		})
	},
}

// buildStatusReport runs one analysis pass and joins it with records, risks,
// and optional notes.
func buildStatusReport() (*report.StatusReport, error) {
	analyzer, err := newAnalyzer()
	if err != nil {
		return nil, err
	}
	health, err := analyzer.Run(rootCtx)
	if err != nil {
		return nil, err
	}
	risks, err := analyzer.PortfolioRisks(rootCtx)
	if err != nil {
		return nil, err
	}
	projects, err := newPortfolioStore().GetAllProjects(nil)
	if err != nil {
		return nil, err
	}

	notes := map[string]string{}
	runner := collect.NewNotesRunner(cfg.NotesCommand)
	if runner.Enabled() {
		for _, p := range health.Projects {
			note, err := runner.FetchNotes(rootCtx, p.ID)
			if err != nil {
				contract.LogWarn(fmt.Sprintf("notes for %s", p.ID), err)
				continue
			}
			notes[p.ID] = note
		}
	}

	return report.BuildStatusReport(health, projects, risks, notes), nil
}

// loadTeamMember reads one roster record into its typed form.
func loadTeamMember(id string) (schema.TeamMember, error) {
	record, err := newPortfolioStore().GetRecord(confstore.TeamKind, id)
	if err != nil {
		return schema.TeamMember{}, err
	}
	member := schema.TeamMember{ID: id}
	if name, ok := record["name"].(string); ok {
		member.Name = name
	}
	if role, ok := record["role"].(string); ok {
		member.Role = role
	}
	if email, ok := record["email"].(string); ok {
		member.Email = email
	}
	return member, nil
}

// writeReport renders to stdout or the configured output file.
func writeReport(render func(*os.File) error) {
	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		contract.LogFatal("Cannot open output file", err)
	}
	if err := render(file); err != nil {
		contract.LogFatal("Cannot render report", err)
	}
	if file != os.Stdout {
		if err := file.Close(); err != nil {
			contract.LogFatal("Cannot close output file", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote report to %s\n", cfg.OutputFile)
	}
}
