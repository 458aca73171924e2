// =============================================================================
// Branch Sales Aggregator - Configuration Module
// =============================================================================
//
// This module loads the optional run configuration. Every setting has a
// default, so a run needs no configuration file at all; command line flags
// override whatever the file sets.
//
// EXAMPLE (salescalc.yaml):
//   branch_file: branch.lst
//   output_file: branch.out
//   xlsx_file: branch.xlsx
//   write_xlsx: true
//   log_level: warn
//   lenient: false
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/branch-sales/internal/branchlist"
	"github.com/ginjaninja78/branch-sales/internal/report"
)

// DefaultConfigFile is looked up in the working directory when no path is
// given; its absence is not an error.
const DefaultConfigFile = "salescalc.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the run settings.
type Config struct {
	// =========================================================================
	// FILE NAMES
	// =========================================================================
	// All names resolve inside the directory given on the command line.

	// BranchFile is the branch definition file.
	// Default: "branch.lst"
	BranchFile string `yaml:"branch_file"`

	// OutputFile is the summary report.
	// Default: "branch.out"
	OutputFile string `yaml:"output_file"`

	// XLSXFile is the optional workbook report.
	// Default: "branch.xlsx"
	XLSXFile string `yaml:"xlsx_file"`

	// =========================================================================
	// BEHAVIOUR
	// =========================================================================

	// WriteXLSX also writes XLSXFile after branch.out.
	// Default: false
	WriteXLSX bool `yaml:"write_xlsx"`

	// Lenient disables the sequence check and the 10-digit total limit.
	// Default: false
	Lenient bool `yaml:"lenient"`

	// =========================================================================
	// LOGGING
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error", "none"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration at path.
//
// An empty path means DefaultConfigFile, which may be absent. An explicit
// path that does not exist is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration data and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset option.
func applyDefaults(cfg *Config) {
	if cfg.BranchFile == "" {
		cfg.BranchFile = branchlist.DefaultFileName
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = report.DefaultFileName
	}
	if cfg.XLSXFile == "" {
		cfg.XLSXFile = report.DefaultXLSXFileName
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"none":  true,
}

// validate rejects values a run cannot use.
func validate(cfg *Config) error {
	if !logLevels[strings.ToLower(cfg.LogLevel)] {
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	for key, name := range map[string]string{
		"branch_file": cfg.BranchFile,
		"output_file": cfg.OutputFile,
		"xlsx_file":   cfg.XLSXFile,
	} {
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("%s must be a bare file name, got %q", key, name)
		}
	}
	names := []struct{ key, name string }{
		{"branch_file", cfg.BranchFile},
		{"output_file", cfg.OutputFile},
		{"xlsx_file", cfg.XLSXFile},
	}
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			if names[i].name == names[j].name {
				return fmt.Errorf("%s must differ from %s", names[j].key, names[i].key)
			}
		}
	}
	return nil
}
