package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tsprep/features"
	"github.com/rustyeddy/tsprep/resample"
	"github.com/rustyeddy/tsprep/split"
)

// Config declares a complete preparation run. Every stage reads its
// parameters from here rather than from ambient state, so two runs with the
// same config and input are identical.
type Config struct {
	Source   SourceConfig   `json:"source" yaml:"source"`
	Resample ResampleConfig `json:"resample" yaml:"resample"`
	Fill     FillConfig     `json:"fill" yaml:"fill"`
	Features FeaturesConfig `json:"features" yaml:"features"`
	Split    SplitConfig    `json:"split" yaml:"split"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// SourceConfig describes the input file.
type SourceConfig struct {
	Path       string   `json:"path" yaml:"path"`
	TimeColumn string   `json:"time_column" yaml:"time_column"`
	TimeLayout string   `json:"time_layout" yaml:"time_layout"`
	Fields     []string `json:"fields" yaml:"fields"`
}

// ResampleConfig sets the target grid frequency, e.g. "24h" or "12h".
type ResampleConfig struct {
	Frequency string `json:"frequency" yaml:"frequency"`
}

// ParseFrequency converts the frequency string to a time.Duration.
func (c ResampleConfig) ParseFrequency() (time.Duration, error) {
	d, err := time.ParseDuration(c.Frequency)
	if err != nil {
		return 0, fmt.Errorf("resample.frequency %q: %w", c.Frequency, err)
	}
	return d, nil
}

// FillConfig sets the gap-fill policy: "drop" or "interpolate".
type FillConfig struct {
	Policy string `json:"policy" yaml:"policy"`
}

// FeaturesConfig describes the derived columns and the target field.
type FeaturesConfig struct {
	Target     string   `json:"target" yaml:"target"`
	Fields     []string `json:"fields" yaml:"fields"`
	Windows    []int    `json:"windows" yaml:"windows"`
	MinPeriods int      `json:"min_periods" yaml:"min_periods"`
	Calendar   bool     `json:"calendar" yaml:"calendar"`
	NullPolicy string   `json:"null_policy" yaml:"null_policy"`
}

// SplitConfig sets the chronological train fraction.
type SplitConfig struct {
	Fraction float64 `json:"fraction" yaml:"fraction"`
}

// JournalConfig selects where run records go: "none", "csv", or "sqlite".
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"`
	RunsFile    string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads a config from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the config as YAML (or JSON for a .json path).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".json") {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration before a run.
func (c *Config) Validate() error {
	if c.Source.Path == "" {
		return fmt.Errorf("source.path is required")
	}
	if c.Source.TimeLayout == "" {
		return fmt.Errorf("source.time_layout is required")
	}
	if len(c.Source.Fields) == 0 {
		return fmt.Errorf("source.fields is required")
	}
	if _, err := c.Resample.ParseFrequency(); err != nil {
		return err
	}
	if !resample.Policy(c.Fill.Policy).Valid() {
		return fmt.Errorf("fill.policy must be %q or %q, got %q",
			resample.PolicyDrop, resample.PolicyInterpolate, c.Fill.Policy)
	}
	if c.Features.Target == "" {
		return fmt.Errorf("features.target is required")
	}
	if !contains(c.Source.Fields, c.Features.Target) {
		return fmt.Errorf("features.target %q is not among source.fields", c.Features.Target)
	}
	if len(c.Features.Fields) == 0 {
		return fmt.Errorf("features.fields is required")
	}
	for _, f := range c.Features.Fields {
		if !contains(c.Source.Fields, f) {
			return fmt.Errorf("features.fields entry %q is not among source.fields", f)
		}
	}
	if len(c.Features.Windows) == 0 {
		return fmt.Errorf("features.windows is required")
	}
	for _, w := range c.Features.Windows {
		if w <= 0 {
			return fmt.Errorf("features.windows entries must be positive, got %d", w)
		}
	}
	if c.Features.MinPeriods < 0 {
		return fmt.Errorf("features.min_periods must be >= 0")
	}
	if !features.NullPolicy(c.Features.NullPolicy).Valid() {
		return fmt.Errorf("features.null_policy must be %q or %q, got %q",
			features.NullMeanFill, features.NullDrop, c.Features.NullPolicy)
	}
	if c.Split.Fraction <= 0 || c.Split.Fraction >= 1 {
		return fmt.Errorf("split.fraction must be in (0,1): %w", split.ErrFraction)
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.RunsFile == "" || c.Journal.MetricsFile == "" {
			return fmt.Errorf("journal runs_file and metrics_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Default returns a configuration with sensible defaults for a daily series.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Path:       "./data.csv",
			TimeColumn: "Date",
			TimeLayout: "01/02/2006",
			Fields:     []string{"Temperature"},
		},
		Resample: ResampleConfig{Frequency: "24h"},
		Fill:     FillConfig{Policy: string(resample.PolicyInterpolate)},
		Features: FeaturesConfig{
			Target:     "Temperature",
			Fields:     []string{"Temperature"},
			Windows:    []int{7, 30},
			MinPeriods: 0,
			Calendar:   true,
			NullPolicy: string(features.NullMeanFill),
		},
		Split:   SplitConfig{Fraction: 0.75},
		Journal: JournalConfig{Type: "none"},
	}
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
