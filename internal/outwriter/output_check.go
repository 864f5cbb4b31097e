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

// WriteCheckResults outputs the health gate result, dispatching based on the output format configured.
func WriteCheckResults(result *schema.CheckResult, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckText(w, result, cfg, fmtFloat)
		}, "Wrote check result")
	}
}

// writeCheckText generates the human-readable gate summary.
func writeCheckText(writer io.Writer, result *schema.CheckResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	verdict := "PASSED"
	if !result.Passed {
		verdict = "FAILED"
	}
	if _, err := fmt.Fprintf(writer, "Health gate %s (threshold %s)\nProjects: %d, average score: %s\n",
		verdict, fmtFloat(result.Threshold), result.TotalProjects, fmtFloat(result.AvgScore)); err != nil {
		return err
	}

	if len(result.FailedProjects) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Project", "Name", "Score", "Health"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range result.FailedProjects {
		data = append(data, []string{
			p.ID,
			p.Name,
			fmtFloat(p.Score),
			healthLabel(p.Category, cfg.UseColors),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCheckCSV writes the failed projects in CSV format.
func writeCheckCSV(w io.Writer, result *schema.CheckResult, fmtFloat func(float64) string) error {
	header := []string{"project", "name", "score", "health", "threshold", "passed"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, p := range result.FailedProjects {
			row := []string{
				p.ID,
				p.Name,
				fmtFloat(p.Score),
				contract.GetPlainLabel(p.Category),
				fmtFloat(result.Threshold),
				fmt.Sprintf("%t", result.Passed),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
