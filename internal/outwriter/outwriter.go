// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteHealth prints portfolio health results using the configured output format.
func (ow *OutWriter) WriteHealth(health *schema.PortfolioHealth, cfg *contract.Config) error {
	return WriteHealthResults(health, cfg)
}

// WriteTrend prints a trend analysis using the configured output format.
func (ow *OutWriter) WriteTrend(projectID string, analysis schema.TrendAnalysis, cfg *contract.Config) error {
	return WriteTrendResults(projectID, analysis, cfg)
}

// WriteRisks prints ranked risks using the configured output format.
func (ow *OutWriter) WriteRisks(risks []schema.Risk, cfg *contract.Config) error {
	return WriteRiskResults(risks, cfg)
}

// WriteCheck prints the health gate result using the configured output format.
func (ow *OutWriter) WriteCheck(result *schema.CheckResult, cfg *contract.Config) error {
	return WriteCheckResults(result, cfg)
}

// getMaxTableNameWidth calculates the maximum width for project names in
// table output based on terminal width and the fixed columns.
func getMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns: rank, ID, status, priority,
	// score, health, and the four component columns with borders/padding.
	baseWidth := 70

	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable name width
		return 12
	}
	if available > 40 {
		// Maximum name width to keep rows compact
		return 40
	}
	return available
}
