// Package config provides Northroot's TOML-based configuration.
//
// Nested sections are tagged with `toml:"..."`, a New() constructor
// carries defaults, and LoadFile/LoadDefault helpers overlay a file onto
// them via github.com/BurntSushi/toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is Northroot's top-level configuration, loaded from
// northroot.toml.
type Config struct {
	Journal   JournalConfig   `toml:"journal"`
	Canon     CanonConfig     `toml:"canon"`
	Logging   LoggingConfig   `toml:"logging"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// JournalConfig sets the default journal location and durability mode.
type JournalConfig struct {
	Dir  string `toml:"dir"`
	Sync bool   `toml:"sync"`
}

// CanonConfig sets the default canonicalization profile.
type CanonConfig struct {
	Profile string `toml:"profile"`
}

// LoggingConfig configures the logrus-backed logger (internal/nrlog).
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text" or "json"
}

// TelemetryConfig configures OpenTelemetry tracing (internal/telemetry).
// Enabled selects the sampler passed to telemetry.Setup; no exporter is
// installed, and Endpoint is not read by Setup.
type TelemetryConfig struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`
}

// New returns a Config with Northroot's defaults.
func New() *Config {
	return &Config{
		Journal: JournalConfig{
			Dir:  "~/.local/share/northroot",
			Sync: true,
		},
		Canon: CanonConfig{
			Profile: "northroot-canonical-v1",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
		},
	}
}

// LoadFile loads configuration from a TOML file at path, starting from
// New()'s defaults and overlaying whatever the file specifies.
func LoadFile(path string) (*Config, error) {
	cfg := New()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// LoadDefault loads northroot.toml from the current directory, falling
// back silently to defaults if it does not exist.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: failed to get current directory: %w", err)
	}
	path := filepath.Join(cwd, "northroot.toml")
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return New(), nil
	}
	return LoadFile(path)
}
