package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Root != "." {
		t.Errorf("Root = %q, want %q", cfg.Root, ".")
	}
	if cfg.DryRun != false {
		t.Errorf("DryRun = %v, want false", cfg.DryRun)
	}
	if !cfg.Recursive {
		t.Errorf("Recursive = false, want true")
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0", cfg.Workers)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if !cfg.ConfirmRemoval {
		t.Errorf("ConfirmRemoval = false, want true")
	}
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `root: /data/incoming
dry_run: true
attrs:
  - user.custom.tag
exclude_vcs: true
workers: 4
summary: true
log_level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Root != "/data/incoming" {
		t.Errorf("Root = %q, want %q", cfg.Root, "/data/incoming")
	}
	if !cfg.DryRun {
		t.Errorf("DryRun = false, want true")
	}
	if len(cfg.Attrs) != 1 || cfg.Attrs[0] != "user.custom.tag" {
		t.Errorf("Attrs = %v, want [user.custom.tag]", cfg.Attrs)
	}
	if !cfg.ExcludeVCS {
		t.Errorf("ExcludeVCS = false, want true")
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if !cfg.Summary {
		t.Errorf("Summary = false, want true")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

// TestLoadConfigFileNotExists tests fallback to defaults when file doesn't exist
func TestLoadConfigFileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() should not error on missing file, got: %v", err)
	}

	if cfg.Root != "." {
		t.Errorf("Root = %q, want %q (default)", cfg.Root, ".")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q (default)", cfg.LogLevel, "info")
	}
}

// TestLoadConfigInvalidYAML tests error handling for malformed YAML
func TestLoadConfigInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidYAML := `
workers: 4
attrs: [this is not valid
log_level: debug
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Fatalf("LoadConfig() error = nil, want parse error")
	}
}

// TestMergeWithFlags verifies flags override file values and unset flags
// leave them intact.
func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Attrs = []string{"user.from.file"}
	cfg.Workers = 2

	root := "/tmp"
	dryRun := true
	extraAttrs := []string{"user.from.flag"}
	workers := 8

	cfg.MergeWithFlags(&root, &dryRun, &extraAttrs, nil, nil, &workers, nil, nil, nil, nil, nil)

	if cfg.Root != "/tmp" {
		t.Errorf("Root = %q, want %q", cfg.Root, "/tmp")
	}
	if !cfg.DryRun {
		t.Errorf("DryRun = false, want true")
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	// Flag attrs append to file attrs rather than replacing them.
	if len(cfg.Attrs) != 2 || cfg.Attrs[0] != "user.from.file" || cfg.Attrs[1] != "user.from.flag" {
		t.Errorf("Attrs = %v, want [user.from.file user.from.flag]", cfg.Attrs)
	}
	// Unset flags keep defaults.
	if !cfg.Recursive {
		t.Errorf("Recursive = false, want true (untouched default)")
	}
	if !cfg.ConfirmRemoval {
		t.Errorf("ConfirmRemoval = false, want true (untouched default)")
	}
}

// TestValidate verifies configuration validation rules
func TestValidate(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) { c.Root = tmpDir },
			wantErr: false,
		},
		{
			name:    "empty root",
			mutate:  func(c *Config) { c.Root = "" },
			wantErr: true,
		},
		{
			name:    "missing root",
			mutate:  func(c *Config) { c.Root = filepath.Join(tmpDir, "absent") },
			wantErr: true,
		},
		{
			name: "root is a file",
			mutate: func(c *Config) {
				path := filepath.Join(tmpDir, "afile")
				os.WriteFile(path, []byte("x"), 0644)
				c.Root = path
			},
			wantErr: true,
		},
		{
			name: "negative workers",
			mutate: func(c *Config) {
				c.Root = tmpDir
				c.Workers = -1
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestEffectiveWorkers verifies worker count resolution
func TestEffectiveWorkers(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.EffectiveWorkers(); got < 1 {
		t.Errorf("EffectiveWorkers() = %d, want >= 1", got)
	}

	cfg.Workers = 3
	if got := cfg.EffectiveWorkers(); got != 3 {
		t.Errorf("EffectiveWorkers() = %d, want 3", got)
	}
}
