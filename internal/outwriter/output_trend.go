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

// trendPayload wraps a trend analysis with its project for JSON output.
type trendPayload struct {
	ProjectID string               `json:"project_id"`
	Analysis  schema.TrendAnalysis `json:"analysis"`
}

// WriteTrendResults outputs a trend analysis, dispatching based on the output format configured.
func WriteTrendResults(projectID string, analysis schema.TrendAnalysis, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, trendPayload{ProjectID: projectID, Analysis: analysis})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendCSV(w, analysis, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendTable(w, projectID, analysis, fmtFloat)
		}, "Wrote table")
	}
}

// writeTrendTable generates and writes the human-readable trend view.
func writeTrendTable(writer io.Writer, projectID string, analysis schema.TrendAnalysis, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(writer, "Project: %s\nDirection: %s\nSlope: %+.4f per snapshot\nConfidence: %s\n\n",
		projectID, analysis.Direction, analysis.Slope, fmtFloat(analysis.Confidence)); err != nil {
		return err
	}

	if len(analysis.Points) == 0 {
		_, err := fmt.Fprintln(writer, "No snapshots in the trend window.")
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Snapshot", "Overall"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, point := range analysis.Points {
		data = append(data, []string{
			point.Timestamp.Format("2006-01-02 15:04:05"),
			fmtFloat(point.Value),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeTrendCSV writes the trend points in CSV format.
func writeTrendCSV(w io.Writer, analysis schema.TrendAnalysis, fmtFloat func(float64) string) error {
	header := []string{"snapshot_time", "overall", "direction"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, point := range analysis.Points {
			row := []string{
				point.Timestamp.Format("2006-01-02 15:04:05"),
				fmtFloat(point.Value),
				string(analysis.Direction),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
