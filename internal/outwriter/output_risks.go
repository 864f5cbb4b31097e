package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRiskResults outputs ranked risks, dispatching based on the output format configured.
func WriteRiskResults(risks []schema.Risk, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, risks)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRiskCSV(w, risks, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRiskTable(w, risks, fmtFloat)
		}, "Wrote table")
	}
}

// writeRiskTable generates and writes the human-readable risk ranking.
func writeRiskTable(writer io.Writer, risks []schema.Risk, fmtFloat func(float64) string) error {
	if len(risks) == 0 {
		_, err := fmt.Fprintln(writer, "No risks identified.")
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Project", "Kind", "Severity", "Likelihood", "Priority", "Description"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, r := range risks {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.ProjectID,
			r.Kind,
			string(r.Severity),
			string(r.Likelihood),
			fmtFloat(r.Priority),
			r.Description,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, r := range risks {
		if len(r.Mitigations) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(writer, "Mitigations for %s/%s:\n", r.ProjectID, r.Kind); err != nil {
			return err
		}
		for _, m := range r.Mitigations {
			if _, err := fmt.Fprintf(writer, "  - %s\n", m); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeRiskCSV writes risks in CSV format.
func writeRiskCSV(w io.Writer, risks []schema.Risk, fmtFloat func(float64) string) error {
	header := []string{"rank", "project", "kind", "severity", "likelihood", "priority", "description", "mitigations"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, r := range risks {
			row := []string{
				strconv.Itoa(i + 1),
				r.ProjectID,
				r.Kind,
				string(r.Severity),
				string(r.Likelihood),
				fmtFloat(r.Priority),
				r.Description,
				strings.Join(r.Mitigations, "; "),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
