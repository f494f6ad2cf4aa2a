package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the resolved sweep options. It is built once from the
// config file and CLI flags, then shared by reference across all workers;
// no worker mutates it.
type Config struct {
	// Root is the directory subtree to scan.
	Root string `yaml:"root"`

	// DryRun suppresses all filesystem mutation; classification and
	// existence checks still run.
	DryRun bool `yaml:"dry_run"`

	// Attrs are extra extended-attribute names appended to the built-in
	// candidate list.
	Attrs []string `yaml:"attrs"`

	// ExcludeVCS skips version-control directories during recursive walks.
	ExcludeVCS bool `yaml:"exclude_vcs"`

	// Recursive walks subdirectories instead of the top-level listing only.
	Recursive bool `yaml:"recursive"`

	// Workers bounds the sweep pool size (0 = number of CPUs).
	Workers int `yaml:"workers"`

	// Summary enables itemized output of affected paths.
	Summary bool `yaml:"summary"`

	// Quiet suppresses progress and count printing.
	Quiet bool `yaml:"quiet"`

	// CSVPath, when set, streams one CSV row per affected file.
	CSVPath string `yaml:"csv_path"`

	// LogLevel sets console verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// ConfirmRemoval requires the attribute removal call itself to succeed
	// before counting an attribute as removed. When false the legacy
	// probe-based success reporting applies.
	ConfirmRemoval bool `yaml:"confirm_removal"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Root:           ".",
		DryRun:         false,
		Attrs:          nil,
		ExcludeVCS:     false,
		Recursive:      true,
		Workers:        0, // Number of CPUs
		Summary:        false,
		Quiet:          false,
		LogLevel:       "info",
		ConfirmRemoval: true,
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// MergeWithFlags overlays CLI flag values onto the config. Only non-nil
// pointers are applied, so unset flags leave file/default values intact;
// flags always take precedence over the file.
func (c *Config) MergeWithFlags(root *string, dryRun *bool, attrs *[]string, excludeVCS, recursive *bool, workers *int, summary, quiet *bool, csvPath, logLevel *string, confirmRemoval *bool) {
	if root != nil {
		c.Root = *root
	}
	if dryRun != nil {
		c.DryRun = *dryRun
	}
	if attrs != nil {
		c.Attrs = append(c.Attrs, (*attrs)...)
	}
	if excludeVCS != nil {
		c.ExcludeVCS = *excludeVCS
	}
	if recursive != nil {
		c.Recursive = *recursive
	}
	if workers != nil {
		c.Workers = *workers
	}
	if summary != nil {
		c.Summary = *summary
	}
	if quiet != nil {
		c.Quiet = *quiet
	}
	if csvPath != nil {
		c.CSVPath = *csvPath
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if confirmRemoval != nil {
		c.ConfirmRemoval = *confirmRemoval
	}
}

// Validate checks the merged configuration for consistency.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root path cannot be empty")
	}
	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("root path %q: %w", c.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path %q is not a directory", c.Root)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return nil
}

// EffectiveWorkers resolves the worker count, defaulting to the number of
// available CPUs when unset.
func (c *Config) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
