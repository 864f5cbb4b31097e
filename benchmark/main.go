// Package main provides a performance benchmarking tool for the Compass CLI.
// It measures execution times across synthetic portfolios of different sizes
// and command types, running each test multiple times, treating the first
// successful run as cold and averaging the rest as warm, generating CSV output
// for performance analysis and documentation.
//
// Prerequisites:
// - compass binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic portfolios are generated
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	Portfolio     string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir        string
	Timeout        time.Duration
	NoHistoryRuns  int
	HistoryRuns    int
	PortfolioSizes map[string]int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:       workDir,
		Timeout:       2 * time.Minute,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		PortfolioSizes: map[string]int{
			"small":  10,
			"medium": 100,
			"large":  500,
		},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear stored snapshots using compass history clear
	fmt.Printf("Clearing snapshot history...\n")
	clearCmd := exec.Command("compass", "history", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear history: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Snapshot history cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the compass binary exists.
func checkPrerequisites() error {
	if _, err := exec.LookPath("compass"); err != nil {
		return fmt.Errorf("compass binary not found in PATH")
	}
	return nil
}

// generatePortfolio writes a synthetic projects.yaml with the given project count.
func generatePortfolio(dir string, projects int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("projects:\n")
	for i := range projects {
		id := fmt.Sprintf("project-%04d", i)
		sb.WriteString(fmt.Sprintf("  %s:\n", id))
		sb.WriteString(fmt.Sprintf("    name: Project %04d\n", i))
		sb.WriteString("    status: active\n")
		sb.WriteString("    priority: medium\n")
		sb.WriteString("    start_date: \"2026-01-01\"\n")
		sb.WriteString("    target_date: \"2026-12-31\"\n")
		sb.WriteString("    milestones:\n")
		sb.WriteString("      - name: kickoff\n")
		sb.WriteString("        date: \"2026-02-01\"\n")
		sb.WriteString("        status: completed\n")
		sb.WriteString("      - name: delivery\n")
		sb.WriteString("        date: \"2026-11-01\"\n")
		sb.WriteString("        status: planned\n")
		// Chain dependencies so the scoring pass has to walk them
		if i > 0 {
			sb.WriteString("    dependencies:\n")
			sb.WriteString(fmt.Sprintf("      - project-%04d\n", i-1))
		}
	}

	return os.WriteFile(filepath.Join(dir, "projects.yaml"), []byte(sb.String()), 0o644)
}

// runBenchmarks executes all benchmark tests across configured portfolio sizes.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d portfolios, %v timeout, no-history: %d runs, history: %d runs\n",
		len(config.PortfolioSizes), config.Timeout, config.NoHistoryRuns, config.HistoryRuns)

	for _, name := range []string{"small", "medium", "large"} {
		size := config.PortfolioSizes[name]
		fmt.Printf("Benchmarking %s portfolio (%d projects)\n", name, size)

		dir := filepath.Join(config.WorkDir, name)
		if err := generatePortfolio(dir, size); err != nil {
			fmt.Printf("Failed to generate portfolio %s: %v\n", name, err)
			continue
		}

		for _, command := range []string{"health", "risks", "check"} {
			result := runBenchmarkSuite(config, name, dir, command)
			results = append(results, result)
		}
	}

	return results
}

// runBenchmarkSuite runs both no-history and history benchmarks for a command.
func runBenchmarkSuite(config BenchmarkConfig, portfolio, dir, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, portfolio)

	// Helper to run a benchmark phase
	runPhase := func(historyBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dir, command, historyBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-history runs
	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")

	// Phase 2: History runs
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Portfolio:     portfolio,
		Command:       command,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a compass command multiple times with the specified
// history backend and returns cold time and warm times.
func runBenchmark(config BenchmarkConfig, dir, command, historyBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command, "--portfolio", dir, "--history-backend", historyBackend, "--limit", "1000"}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("compass", args...)

		done := make(chan bool)
		var cmdErr error

		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/compass_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"portfolio", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Portfolio, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "health", "Health Scoring:")
	printCommandSummary(results, "risks", "Risk Assessment:")
	printCommandSummary(results, "check", "Health Gate:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type.
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: No-history: %s, Cold: %s, Warm: %s\n", result.Portfolio, result.NoHistoryTime, result.ColdTime, result.WarmTime)
		}
	}
}
