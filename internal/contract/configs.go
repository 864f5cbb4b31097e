package contract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/huangsam/compass/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit      = 25
	MaxResultLimit          = 1000
	DefaultPrecision        = 2
	DefaultLookbackDays     = 30
	DefaultTrendWindowDays  = 90
	DefaultStableThreshold  = 0.05
	DefaultCheckThreshold   = 0.50
	DefaultActivityBaseline = 10.0
)

// Config holds the runtime configuration for compass.
// This struct remains the "final, validated" config.
type Config struct {
	PortfolioDir string // Absolute path to the portfolio root directory
	ProjectID    string // Optional single-project scope (set by positional arg)

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	UseColors   bool
	Width       int // Terminal width override (0 = auto-detect)

	LookbackDays     int     // Activity collection window
	TrendWindowDays  int     // History window for trend analysis
	StableThreshold  float64 // Slope magnitude below this is classified stable
	CheckThreshold   float64 // Gate: overall scores below this fail the check
	ActivityBaseline float64 // Expected weighted activity per window

	// Weights is the final component weight map, computed from defaults
	// plus any config-file overrides. Validated by core.NewScorer.
	Weights map[schema.ComponentName]float64

	HistoryBackend   schema.StoreBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	GitHubToken  string // Please use env var as this is plaintext
	NotesCommand string // Optional notes CLI for report context
}

// ComponentWeightsRaw holds custom component weights from the config file.
// Float pointers distinguish "not set" from an explicit zero.
type ComponentWeightsRaw struct {
	Timeline     *float64 `mapstructure:"timeline"`
	Activity     *float64 `mapstructure:"activity"`
	Blockers     *float64 `mapstructure:"blockers"`
	Dependencies *float64 `mapstructure:"dependencies"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ProjectIDStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Portfolio        string  `mapstructure:"portfolio"`
	Limit            int     `mapstructure:"limit"`
	Precision        int     `mapstructure:"precision"`
	Output           string  `mapstructure:"output"`
	OutputFile       string  `mapstructure:"output-file"`
	Color            string  `mapstructure:"color"`
	Width            int     `mapstructure:"width"`
	LookbackDays     int     `mapstructure:"lookback-days"`
	TrendWindowDays  int     `mapstructure:"trend-window-days"`
	StableThreshold  float64 `mapstructure:"stable-threshold"`
	CheckThreshold   float64 `mapstructure:"check-threshold"`
	ActivityBaseline float64 `mapstructure:"activity-baseline"`
	HistoryBackend   string  `mapstructure:"history-backend"`
	HistoryDBConnect string  `mapstructure:"history-db-connect"`
	GitHubToken      string  `mapstructure:"github-token"`
	NotesCommand     string  `mapstructure:"notes-command"`

	// --- Custom component weights from config file ---
	Weights ComponentWeightsRaw `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Weights != nil {
		clone.Weights = make(map[schema.ComponentName]float64, len(c.Weights))
		for name, w := range c.Weights {
			clone.Weights[name] = w
		}
	}
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	if err := processWeights(cfg, input); err != nil {
		return err
	}
	if err := processHistoryBackend(cfg, input); err != nil {
		return err
	}
	return resolvePortfolioDir(cfg, input)
}

// validateSimpleInputs checks limit, precision, output mode, and color.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 1 || input.Precision > 3 {
		return fmt.Errorf("precision must be between 1 and 3 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, or json", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	useColors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color value: %w", err)
	}
	cfg.UseColors = useColors

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	cfg.ProjectID = input.ProjectIDStr
	cfg.GitHubToken = input.GitHubToken
	cfg.NotesCommand = input.NotesCommand
	return nil
}

// processThresholds validates the scoring and gating thresholds.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	if input.LookbackDays <= 0 {
		return fmt.Errorf("lookback-days must be greater than 0 (received %d)", input.LookbackDays)
	}
	cfg.LookbackDays = input.LookbackDays

	if input.TrendWindowDays <= 0 {
		return fmt.Errorf("trend-window-days must be greater than 0 (received %d)", input.TrendWindowDays)
	}
	cfg.TrendWindowDays = input.TrendWindowDays

	if input.StableThreshold < 0 || input.StableThreshold >= 1 {
		return fmt.Errorf("stable-threshold must be in [0, 1) (received %g)", input.StableThreshold)
	}
	cfg.StableThreshold = input.StableThreshold

	if input.CheckThreshold < 0 || input.CheckThreshold > 1 {
		return fmt.Errorf("check-threshold must be in [0, 1] (received %g)", input.CheckThreshold)
	}
	cfg.CheckThreshold = input.CheckThreshold

	if input.ActivityBaseline < 0 {
		return fmt.Errorf("activity-baseline cannot be negative (received %g)", input.ActivityBaseline)
	}
	cfg.ActivityBaseline = input.ActivityBaseline
	if cfg.ActivityBaseline == 0 {
		cfg.ActivityBaseline = DefaultActivityBaseline
	}
	return nil
}

// processWeights merges config-file weight overrides over the defaults.
// Sum validation is deferred to core.NewScorer, which owns the invariant.
func processWeights(cfg *Config, input *ConfigRawInput) error {
	weights := schema.GetDefaultWeights()

	overrides := map[schema.ComponentName]*float64{
		schema.TimelineComponent:     input.Weights.Timeline,
		schema.ActivityComponent:     input.Weights.Activity,
		schema.BlockersComponent:     input.Weights.Blockers,
		schema.DependenciesComponent: input.Weights.Dependencies,
	}
	for name, override := range overrides {
		if override == nil {
			continue
		}
		if *override < 0 || *override > 1 {
			return fmt.Errorf("weight for %s must be in [0, 1] (received %g)", name, *override)
		}
		weights[name] = *override
	}

	cfg.Weights = weights
	return nil
}

// processHistoryBackend validates the history backend and its connection string.
func processHistoryBackend(cfg *Config, input *ConfigRawInput) error {
	backend := schema.StoreBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidStoreBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, or none", input.HistoryBackend)
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(backend, input.HistoryDBConnect)
}

// resolvePortfolioDir makes the portfolio directory absolute.
func resolvePortfolioDir(cfg *Config, input *ConfigRawInput) error {
	dir := input.Portfolio
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("cannot resolve portfolio directory %q: %w", dir, err)
	}
	cfg.PortfolioDir = abs
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.StoreBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("invalid MySQL connection string. expected format: user:password@tcp(host:port)/dbname")
		}
		return nil
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("invalid PostgreSQL connection string. expected key=value pairs or a postgres:// URL")
		}
		return nil
	default:
		return fmt.Errorf("unsupported backend: %s", backend)
	}
}
