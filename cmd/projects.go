package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/compass/internal/confstore"
	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/internal/outwriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// projectsCmd groups the portfolio record operations.
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List, inspect, and update project records",
	Long: `Work directly with the project records in the portfolio documents.

Subcommands:
  list - List projects with optional status/priority filters
  show - Print one project record as YAML
  set  - Update fields of one project record

Updates go through schema validation and an atomic write with a
timestamped backup, so a bad edit never corrupts the document.

Examples:
  # Active, high-priority projects only
  compass projects list --status active --priority high,critical

  # Inspect one record
  compass projects show atlas

  # Put a project on hold
  compass projects set atlas status=on_hold`,
}

// projectsListCmd lists projects with optional allow-list filters.
var projectsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List project records with optional status/priority filters",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		filters := map[string][]string{}
		if statuses := splitFilterValues(viper.GetString("status")); len(statuses) > 0 {
			filters["status"] = statuses
		}
		if priorities := splitFilterValues(viper.GetString("priority")); len(priorities) > 0 {
			filters["priority"] = priorities
		}

		projects, err := newPortfolioStore().GetAllProjects(filters)
		if err != nil {
			contract.LogFatal("Cannot list projects", err)
		}
		if err := outwriter.WriteProjectList(projects, cfg); err != nil {
			contract.LogFatal("Cannot write project list", err)
		}
	},
}

// projectsShowCmd prints one project record as YAML.
var projectsShowCmd = &cobra.Command{
	Use:     "show <project-id>",
	Short:   "Print one project record as YAML",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		record, err := newPortfolioStore().GetRecord(confstore.ProjectsKind, args[0])
		if err != nil {
			contract.LogFatal(fmt.Sprintf("Cannot load project %s", args[0]), err)
		}
		data, err := yaml.Marshal(record)
		if err != nil {
			contract.LogFatal("Cannot render project record", err)
		}
		fmt.Printf("%s:\n", args[0])
		for line := range strings.SplitSeq(strings.TrimRight(string(data), "\n"), "\n") {
			fmt.Printf("  %s\n", line)
		}
	},
}

// projectsSetCmd updates fields of one project record.
var projectsSetCmd = &cobra.Command{
	Use:   "set <project-id> <field=value> [field=value...]",
	Short: "Update fields of one project record",
	Long: `Deep-merge field updates into one project record.

Scalar fields (status, priority, owner, name, start_date, target_date)
are given as field=value pairs. The update is validated against the
document schema before anything is written, and the summary fields are
synced to the per-project cache document afterwards.

Examples:
  compass projects set atlas status=on_hold
  compass projects set atlas owner=kim target_date=2026-12-01`,
	Args:    cobra.MinimumNArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		projectID := args[0]
		updates := confstore.Document{}
		for _, pair := range args[1:] {
			field, value, ok := strings.Cut(pair, "=")
			if !ok || field == "" {
				contract.LogFatal("Invalid update", fmt.Errorf("expected field=value, got %q", pair))
			}
			updates[field] = value
		}

		store := newPortfolioStore()
		if err := store.UpdateRecord(confstore.ProjectsKind, projectID, updates); err != nil {
			contract.LogFatal(fmt.Sprintf("Cannot update project %s", projectID), err)
		}
		// Best-effort summary propagation; the record update already succeeded.
		if err := store.SyncProjectSummary(projectID); err != nil {
			contract.LogWarn(fmt.Sprintf("summary sync for %s", projectID), err)
		}
		fmt.Printf("Updated %s (%d field(s)).\n", projectID, len(updates))
	},
}

// splitFilterValues turns a comma-separated flag value into a clean slice.
func splitFilterValues(raw string) []string {
	var values []string
	for part := range strings.SplitSeq(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
