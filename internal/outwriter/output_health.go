package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteHealthResults outputs portfolio health, dispatching based on the output format configured.
func WriteHealthResults(health *schema.PortfolioHealth, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, health)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHealthCSV(w, health, fmtFloat)
		}, "Wrote CSV")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHealthTable(w, health, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// healthLabel picks the colored or plain category label.
func healthLabel(category schema.HealthCategory, useColors bool) string {
	if useColors {
		return contract.GetColorLabel(category)
	}
	return contract.GetPlainLabel(category)
}

// componentRaw extracts one raw component score from the breakdown.
func componentRaw(score schema.HealthScore, name schema.ComponentName) float64 {
	for _, c := range score.Components {
		if c.Name == name {
			return c.Raw
		}
	}
	return 0
}

// writeHealthTable generates and writes the human-readable table.
func writeHealthTable(writer io.Writer, health *schema.PortfolioHealth, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Rank", "Project", "Name", "Status", "Priority", "Timeline", "Activity", "Blockers", "Deps", "Overall", "Health"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for i, p := range health.Projects {
		row := []string{
			strconv.Itoa(i + 1),
			p.ID,
			contract.TruncateName(p.Name, nameWidth),
			string(p.Status),
			string(p.Priority),
			fmtFloat(componentRaw(p.Score, schema.TimelineComponent)),
			fmtFloat(componentRaw(p.Score, schema.ActivityComponent)),
			fmtFloat(componentRaw(p.Score, schema.BlockersComponent)),
			fmtFloat(componentRaw(p.Score, schema.DependenciesComponent)),
			fmtFloat(p.Score.Overall),
			healthLabel(p.Score.Category, cfg.UseColors),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Scored %d projects as of %s\n",
		len(health.Projects), health.AsOf.Format("2006-01-02 15:04:05")); err != nil {
		return err
	}
	return nil
}

// writeHealthCSV writes portfolio health in CSV format.
func writeHealthCSV(w io.Writer, health *schema.PortfolioHealth, fmtFloat func(float64) string) error {
	header := []string{"rank", "project", "name", "status", "priority", "timeline", "activity", "blockers", "dependencies", "overall", "health"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, p := range health.Projects {
			row := []string{
				strconv.Itoa(i + 1),
				p.ID,
				p.Name,
				string(p.Status),
				string(p.Priority),
				fmtFloat(componentRaw(p.Score, schema.TimelineComponent)),
				fmtFloat(componentRaw(p.Score, schema.ActivityComponent)),
				fmtFloat(componentRaw(p.Score, schema.BlockersComponent)),
				fmtFloat(componentRaw(p.Score, schema.DependenciesComponent)),
				fmtFloat(p.Score.Overall),
				contract.GetPlainLabel(p.Score.Category),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
