package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/runway-dev/runway/internal/logger"
)

// FileName is the config file written by `runway init`.
const FileName = "runway.yaml"

// Date fallback modes for rows whose date cannot be parsed.
const (
	UnparsableNow  = "now"
	UnparsableSkip = "skip"
)

// Environment variables that override the config file.
const (
	EnvLogLevel       = "RUNWAY_LOG_LEVEL"
	EnvForecastMonths = "RUNWAY_FORECAST_MONTHS"
	EnvSaaSShare      = "RUNWAY_SAAS_SHARE"
)

// Config represents the top-level runway.yaml configuration.
type Config struct {
	Forecast   ForecastConfig   `yaml:"forecast"`
	Scenario   ScenarioConfig   `yaml:"scenario"`
	Recurrence RecurrenceConfig `yaml:"recurrence"`
	Import     ImportConfig     `yaml:"import"`
	Log        LogConfig        `yaml:"log"`
}

// ForecastConfig controls projection length and the SaaS share of outflow.
type ForecastConfig struct {
	HorizonMonths int     `yaml:"horizon_months"`
	SaaSShare     float64 `yaml:"saas_share"` // fraction of outflow a SaaS cut applies to
}

// ScenarioConfig holds default scenario parameters, in percent.
type ScenarioConfig struct {
	RevenueGrowthPct float64 `yaml:"revenue_growth_pct"`
	SaaSReductionPct float64 `yaml:"saas_reduction_pct"`
}

// RecurrenceConfig tunes recurring vendor detection.
type RecurrenceConfig struct {
	MinOccurrences int     `yaml:"min_occurrences"`
	MaxVariation   float64 `yaml:"max_variation"`
}

// ImportConfig controls how input files are read.
type ImportConfig struct {
	Format          string `yaml:"format"`           // csv, tsv, semicolon or chase
	UnparsableDates string `yaml:"unparsable_dates"` // now or skip
	DayFirst        bool   `yaml:"day_first"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a runway.yaml file from disk. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Forecast: ForecastConfig{
			HorizonMonths: 12,
			SaaSShare:     0.15,
		},
		Recurrence: RecurrenceConfig{
			MinOccurrences: 3,
			MaxVariation:   0.2,
		},
		Import: ImportConfig{
			Format:          "csv",
			UnparsableDates: UnparsableNow,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadRepo reads <dir>/runway.yaml, falling back to defaults when the file
// does not exist, then applies <dir>/.env and the process environment.
func LoadRepo(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName), dir)
}

// LoadFile is LoadRepo with an explicit config path.
func LoadFile(path, dir string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}

	env, err := readDotEnv(filepath.Join(dir, ".env"))
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readDotEnv returns the .env file merged under the process environment, so
// real environment variables win.
func readDotEnv(path string) (map[string]string, error) {
	env := map[string]string{}
	if _, err := os.Stat(path); err == nil {
		env, err = godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	for _, key := range []string{EnvLogLevel, EnvForecastMonths, EnvSaaSShare} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

// ApplyEnv overrides fields from RUNWAY_* variables in env.
func (c *Config) ApplyEnv(env map[string]string) error {
	if v := strings.TrimSpace(env[EnvLogLevel]); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(env[EnvForecastMonths]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", EnvForecastMonths, v, err)
		}
		c.Forecast.HorizonMonths = n
	}
	if v := strings.TrimSpace(env[EnvSaaSShare]); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", EnvSaaSShare, v, err)
		}
		c.Forecast.SaaSShare = f
	}
	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Forecast.HorizonMonths < 1 {
		problems = append(problems, fmt.Sprintf("forecast.horizon_months %d: must be at least 1", c.Forecast.HorizonMonths))
	}
	if c.Forecast.SaaSShare < 0 || c.Forecast.SaaSShare > 1 {
		problems = append(problems, fmt.Sprintf("forecast.saas_share %g: must be between 0 and 1", c.Forecast.SaaSShare))
	}
	if c.Scenario.SaaSReductionPct < 0 || c.Scenario.SaaSReductionPct > 100 {
		problems = append(problems, fmt.Sprintf("scenario.saas_reduction_pct %g: must be between 0 and 100", c.Scenario.SaaSReductionPct))
	}
	if c.Recurrence.MinOccurrences < 2 {
		problems = append(problems, fmt.Sprintf("recurrence.min_occurrences %d: must be at least 2", c.Recurrence.MinOccurrences))
	}
	if c.Recurrence.MaxVariation <= 0 {
		problems = append(problems, fmt.Sprintf("recurrence.max_variation %g: must be positive", c.Recurrence.MaxVariation))
	}

	validFormats := []string{"csv", "tsv", "semicolon", "chase"}
	if !slices.Contains(validFormats, strings.ToLower(c.Import.Format)) {
		problems = append(problems, fmt.Sprintf("import.format %q: must be one of %v", c.Import.Format, validFormats))
	}
	if c.Import.UnparsableDates != UnparsableNow && c.Import.UnparsableDates != UnparsableSkip {
		problems = append(problems, fmt.Sprintf("import.unparsable_dates %q: must be %q or %q", c.Import.UnparsableDates, UnparsableNow, UnparsableSkip))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("log.level: %v", err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// LogLevel returns the configured level, or the default when invalid.
func (c *Config) LogLevel() zerolog.Level {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return logger.DefaultLevel
	}
	return level
}
