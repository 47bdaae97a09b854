// Package models defines data structures shared across the analyzer.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML accepts "10s" style values.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config holds runtime configuration loaded from an optional YAML file.
// CLI flags override whatever the file provides.
type Config struct {
	// CorpusDir is the root of the local company-document corpus searched
	// during assembly.
	CorpusDir string `yaml:"corpus_dir"`
	// OutputDir is where submission folders and exports are written.
	OutputDir string `yaml:"output_dir"`
	// RulesFile optionally overrides the built-in requirement rule catalog.
	RulesFile string `yaml:"rules_file"`
	// Pdftotext is the path of the pdftotext binary used for PDF text
	// extraction. Defaults to "pdftotext" on PATH.
	Pdftotext string `yaml:"pdftotext"`
	// FetchTimeout bounds URL enrichment requests.
	FetchTimeout Duration `yaml:"fetch_timeout"`
	// MaxAgeDays drops corpus files older than this during search.
	// Zero means no age limit.
	MaxAgeDays int `yaml:"max_age_days"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		CorpusDir:    "corpus",
		OutputDir:    "output",
		Pdftotext:    "pdftotext",
		FetchTimeout: Duration(10 * time.Second),
	}
}

// LoadConfig reads a YAML config file, applying defaults for absent keys.
// A missing file is not an error; the defaults are returned as-is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = Duration(10 * time.Second)
	}
	return cfg, nil
}
