package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteProjectList outputs project records, dispatching based on the output format configured.
func WriteProjectList(projects []schema.Project, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, projects)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProjectCSV(w, projects)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProjectTable(w, projects, cfg)
		}, "Wrote project list")
	}
}

// writeProjectTable generates the human-readable project listing.
func writeProjectTable(writer io.Writer, projects []schema.Project, cfg *contract.Config) error {
	if len(projects) == 0 {
		_, err := fmt.Fprintln(writer, "No projects found.")
		return err
	}

	maxNameWidth := getMaxTableNameWidth(cfg)

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Project", "Name", "Status", "Priority", "Owner", "Target", "Milestones", "Blockers"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range projects {
		data = append(data, []string{
			p.ID,
			contract.TruncateName(p.Name, maxNameWidth),
			string(p.Status),
			string(p.Priority),
			p.Owner,
			p.TargetDate,
			fmt.Sprintf("%d", len(p.Milestones)),
			fmt.Sprintf("%d", len(p.Blockers)),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeProjectCSV writes project records in CSV format.
func writeProjectCSV(w io.Writer, projects []schema.Project) error {
	header := []string{"project", "name", "status", "priority", "owner", "start_date", "target_date", "milestones", "blockers"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, p := range projects {
			row := []string{
				p.ID,
				p.Name,
				string(p.Status),
				string(p.Priority),
				p.Owner,
				p.StartDate,
				p.TargetDate,
				fmt.Sprintf("%d", len(p.Milestones)),
				fmt.Sprintf("%d", len(p.Blockers)),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
