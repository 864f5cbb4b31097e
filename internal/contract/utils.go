package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/compass/schema"
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // healthy, nothing to do
	GoodColor      = color.New(color.FgCyan)              // healthy, keep watching
	FairColor      = color.New(color.FgYellow)            // caution
	PoorColor      = color.New(color.FgMagenta, color.Bold)
	CriticalColor  = color.New(color.FgRed, color.Bold)
)

// GetPlainLabel returns a plain text label for a health category. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(category schema.HealthCategory) string {
	switch category {
	case schema.ExcellentHealth:
		return "Excellent"
	case schema.GoodHealth:
		return "Good"
	case schema.FairHealth:
		return "Fair"
	case schema.PoorHealth:
		return "Poor"
	default:
		return "Critical"
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(category schema.HealthCategory) string {
	text := GetPlainLabel(category)

	switch category {
	case schema.ExcellentHealth:
		return ExcellentColor.Sprint(text)
	case schema.GoodHealth:
		return GoodColor.Sprint(text)
	case schema.FairHealth:
		return FairColor.Sprint(text)
	case schema.PoorHealth:
		return PoorColor.Sprint(text)
	default:
		return CriticalColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".compass_history.db"
	}
	return filepath.Join(homeDir, ".compass_history.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// TruncateName truncates a display name to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one
// character of content.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}
