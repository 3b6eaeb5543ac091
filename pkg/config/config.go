// Package config loads and validates merit configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/panbanda/merit/pkg/models"
)

// Config holds all configuration options for merit.
type Config struct {
	// Repository and target authors
	Repo RepoConfig `koanf:"repo" toml:"repo"`

	// Analysis window
	Window WindowConfig `koanf:"window" toml:"window"`

	// Detector thresholds
	Thresholds ThresholdConfig `koanf:"thresholds" toml:"thresholds"`

	// Score weighting
	Weights WeightConfig `koanf:"weights" toml:"weights"`

	// Spreadsheet export settings
	Export ExportConfig `koanf:"export" toml:"export"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// RepoConfig locates the repository and the authors to score.
type RepoConfig struct {
	Path    string   `koanf:"path" toml:"path"`
	Authors []string `koanf:"authors" toml:"authors"`
}

// WindowConfig bounds the commit log query, dates in YYYY-MM-DD form.
type WindowConfig struct {
	Since string `koanf:"since" toml:"since"`
	Until string `koanf:"until" toml:"until"`
}

// ThresholdConfig defines detector thresholds.
type ThresholdConfig struct {
	CyclomaticComplexity int `koanf:"cyclomatic_complexity" toml:"cyclomatic_complexity"`
	NestingDepth         int `koanf:"nesting_depth" toml:"nesting_depth"`
	DuplicateMinLength   int `koanf:"duplicate_min_length" toml:"duplicate_min_length"`
	DuplicateWindow      int `koanf:"duplicate_window" toml:"duplicate_window"`
}

// WeightConfig splits the final score between quality and quantity.
type WeightConfig struct {
	Quality  float64 `koanf:"quality" toml:"quality"`
	Quantity float64 `koanf:"quantity" toml:"quantity"`
}

// ExportConfig controls spreadsheet export.
type ExportConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format string `koanf:"format" toml:"format"` // text, json, markdown
	Color  bool   `koanf:"color" toml:"color"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Repo: RepoConfig{
			Path: ".",
		},
		Thresholds: ThresholdConfig{
			CyclomaticComplexity: 10,
			NestingDepth:         3,
			DuplicateMinLength:   20,
			DuplicateWindow:      5,
		},
		Weights: WeightConfig{
			Quality:  0.8,
			Quantity: 0.2,
		},
		Export: ExportConfig{
			Enabled: true,
			Dir:     ".",
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load loads configuration from a file, layered over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns
// defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"merit.toml",
		"merit.yaml",
		"merit.yml",
		"merit.json",
		".merit.toml",
		".merit.yaml",
		".merit.yml",
		".merit.json",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
}

// Validate reports the first problem that would make a scoring run fail
// or produce meaningless numbers.
func (c *Config) Validate() error {
	if c.Repo.Path == "" {
		return fmt.Errorf("repo.path must not be empty")
	}
	if c.Window.Since != "" || c.Window.Until != "" {
		if c.Window.Since == "" || c.Window.Until == "" {
			return fmt.Errorf("window.since and window.until must be set together")
		}
		if _, err := models.ParseWindow(c.Window.Since, c.Window.Until); err != nil {
			return fmt.Errorf("invalid window: %w", err)
		}
	}
	if c.Thresholds.CyclomaticComplexity <= 0 {
		return fmt.Errorf("thresholds.cyclomatic_complexity must be positive")
	}
	if c.Thresholds.NestingDepth <= 0 {
		return fmt.Errorf("thresholds.nesting_depth must be positive")
	}
	if c.Thresholds.DuplicateMinLength <= 0 {
		return fmt.Errorf("thresholds.duplicate_min_length must be positive")
	}
	if c.Thresholds.DuplicateWindow <= 0 {
		return fmt.Errorf("thresholds.duplicate_window must be positive")
	}
	if c.Weights.Quality < 0 || c.Weights.Quantity < 0 {
		return fmt.Errorf("weights must not be negative")
	}
	if sum := c.Weights.Quality + c.Weights.Quantity; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("weights.quality and weights.quantity must sum to 1, got %.3f", sum)
	}
	switch strings.ToLower(c.Output.Format) {
	case "", "text", "json", "markdown", "md":
	default:
		return fmt.Errorf("output.format %q is not one of text, json, markdown", c.Output.Format)
	}
	return nil
}
