package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"discharge-analyzer/internal/data"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override, e.g. DISCHARGE_CUTOFF_VOLTAGE.
const EnvPrefix = "DISCHARGE"

// DefaultCutoffVoltage matches the 5.5 V cut-off used by the bench tests.
const DefaultCutoffVoltage = 5.5

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// CutoffVoltage in volts; samples below it are dropped before integration.
	CutoffVoltage float64 `yaml:"cutoff_voltage"`

	// Optional: discover conditions from data_<label>.{csv,xlsx} files in DataDir.
	// Only used when Conditions is empty.
	DataDir    string            `yaml:"data_dir"`
	Conditions []ConditionConfig `yaml:"conditions"`

	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	API     APIConfig     `yaml:"api"`
}

// ConditionConfig maps a condition label to its table.
type ConditionConfig struct {
	Label string `yaml:"label"`
	File  string `yaml:"file"`
	Sheet string `yaml:"sheet"`
}

type OutputConfig struct {
	// ChartDir receives the PNG charts. Empty disables chart rendering.
	ChartDir string `yaml:"chart_dir"`
	// SeriesDir receives one derived-series CSV per condition. Empty disables export.
	SeriesDir string `yaml:"series_dir"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

type APIConfig struct {
	Addr           string        `yaml:"addr"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
}

// envOverrides are read with envconfig and win over the YAML file.
type envOverrides struct {
	CutoffVoltage *float64 `envconfig:"CUTOFF_VOLTAGE"`
	DataDir       string   `envconfig:"DATA_DIR"`
	ChartDir      string   `envconfig:"CHART_DIR"`
	SeriesDir     string   `envconfig:"SERIES_DIR"`
	LogLevel      string   `envconfig:"LOG_LEVEL"`
	LogFormat     string   `envconfig:"LOG_FORMAT"`
	APIAddr       string   `envconfig:"API_ADDR"`
}

// Default returns a config with every optional field filled in and no conditions.
func Default() *Config {
	return &Config{
		CutoffVoltage: DefaultCutoffVoltage,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		API: APIConfig{
			Addr:           "127.0.0.1:8080",
			AllowedOrigins: []string{"http://localhost:5173"},
			CacheTTL:       time.Hour,
		},
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the YAML file over Default(), applies environment
// overrides, resolves paths and discovers conditions, but does not validate.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	base := filepath.Dir(path)
	c.DataDir = resolvePath(base, c.DataDir)
	// Output directories usually do not exist yet, so they always follow the config file.
	c.Output.ChartDir = joinRelative(base, c.Output.ChartDir)
	c.Output.SeriesDir = joinRelative(base, c.Output.SeriesDir)
	for i := range c.Conditions {
		c.Conditions[i].File = resolvePath(base, c.Conditions[i].File)
	}
	// Environment paths are taken as given (relative to cwd).
	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}

	if len(c.Conditions) == 0 && c.DataDir != "" {
		if err := c.Discover(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ApplyEnv overlays DISCHARGE_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to load config from env: %w", err)
	}
	if env.CutoffVoltage != nil {
		c.CutoffVoltage = *env.CutoffVoltage
	}
	if env.DataDir != "" {
		c.DataDir = env.DataDir
	}
	if env.ChartDir != "" {
		c.Output.ChartDir = env.ChartDir
	}
	if env.SeriesDir != "" {
		c.Output.SeriesDir = env.SeriesDir
	}
	if env.LogLevel != "" {
		c.Logging.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		c.Logging.Format = env.LogFormat
	}
	if env.APIAddr != "" {
		c.API.Addr = env.APIAddr
	}
	return nil
}

// Discover replaces Conditions with the tables found in DataDir.
func (c *Config) Discover() error {
	sources, err := data.DiscoverSources(c.DataDir)
	if err != nil {
		return err
	}
	c.Conditions = c.Conditions[:0]
	for _, s := range sources {
		c.Conditions = append(c.Conditions, ConditionConfig{Label: s.Label, File: s.Path})
	}
	return nil
}

// OverrideCutoff replaces CutoffVoltage with v. Zero means "keep the
// configured value"; negative or non-finite values are rejected.
func (c *Config) OverrideCutoff(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("cutoff must be > 0 (got %v)", v)
	}
	if v > 0 {
		c.CutoffVoltage = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if math.IsNaN(c.CutoffVoltage) || c.CutoffVoltage <= 0 {
		return fmt.Errorf("cutoff_voltage must be > 0 (got %v)", c.CutoffVoltage)
	}
	if len(c.Conditions) == 0 {
		return errors.New("at least one condition is required (conditions or data_dir)")
	}
	labels := make(map[string]bool, len(c.Conditions))
	for i, cond := range c.Conditions {
		if strings.TrimSpace(cond.Label) == "" {
			return fmt.Errorf("conditions[%d].label is required", i)
		}
		if labels[cond.Label] {
			return fmt.Errorf("conditions[%d]: duplicate label %q", i, cond.Label)
		}
		labels[cond.Label] = true
		if strings.TrimSpace(cond.File) == "" {
			return fmt.Errorf("conditions[%d].file is required for %q", i, cond.Label)
		}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format %q is not one of text, json", c.Logging.Format)
	}
	if c.API.CacheTTL < 0 {
		return errors.New("api.cache_ttl must be >= 0")
	}
	return nil
}

// resolvePath interprets relative paths as relative to the config file
// directory, falling back to the provided path (relative to cwd) if the
// candidate does not exist.
func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	cand := filepath.Join(base, p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}

func joinRelative(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
