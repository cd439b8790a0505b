// Package config provides configuration loading and management for stairtour.
//
// Configuration is loaded using Viper, supporting YAML config files and environment
// variable overrides. The package provides defaults that reproduce the product
// tour out of the box, with the ability to point at another catalog, switch the
// progress backend, or tune placement and effect timings.
//
// Key types:
//   - [Config] is the root configuration container with all settings
//   - [Loader] handles Viper-based configuration loading
//   - [StorageConfig] selects where the progress record lives
//   - [PlacementConfig] holds tooltip geometry parameters
//
// Configuration priority (highest to lowest):
//  1. Environment variables (STAIRTOUR_ prefix, e.g. STAIRTOUR_STORAGE_BACKEND)
//  2. Config file specified by STAIRTOUR_CONFIG_PATH
//  3. User config directory (platform-standard):
//     - Linux: ~/.config/stairtour/config.yaml
//     - macOS: ~/Library/Application Support/stairtour/config.yaml
//     - Windows: %APPDATA%\stairtour\config.yaml
//  4. ./stairtour.yaml
//  5. [DefaultConfig] defaults
package config

import (
	"fmt"
	"time"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config represents the root configuration structure.
//
// This is the main configuration container loaded by [Loader] and used throughout
// the application. Use [DefaultConfig] to get the defaults.
type Config struct {
	// Storage selects the progress backend.
	Storage StorageConfig `mapstructure:"storage"`

	// Catalog optionally replaces the built-in step catalog.
	Catalog CatalogConfig `mapstructure:"catalog"`

	// Placement holds the pixel-unit placement parameters used by the
	// place command and library hosts.
	Placement PlacementConfig `mapstructure:"placement"`

	// Terminal holds the cell-unit placement parameters used by the
	// interactive tour.
	Terminal PlacementConfig `mapstructure:"terminal"`

	// Timing controls the transient reward and confetti effects.
	Timing TimingConfig `mapstructure:"timing"`

	// Log configures structured logging.
	Log LogConfig `mapstructure:"log"`
}

// StorageConfig selects where the progress record is kept.
type StorageConfig struct {
	// Backend is "file", "sqlite" or "memory".
	// Default: "file"
	Backend string `mapstructure:"backend"`

	// Dir is the state directory. Empty means the platform config dir.
	// STAIRTOUR_STATE_DIR overrides it.
	Dir string `mapstructure:"dir"`

	// Key is the name the record is stored under.
	// Default: "stairs_tutorial"
	Key string `mapstructure:"key"`
}

// CatalogConfig points at an alternative catalog file.
type CatalogConfig struct {
	// Path is a .yaml, .yml or .csv catalog. Empty uses the built-in catalog.
	Path string `mapstructure:"path"`
}

// PlacementConfig holds tooltip geometry parameters.
type PlacementConfig struct {
	Padding       float64 `mapstructure:"padding"`
	TooltipWidth  float64 `mapstructure:"tooltip_width"`
	TooltipHeight float64 `mapstructure:"tooltip_height"`
}

// TimingConfig controls the self-expiring visual signals.
type TimingConfig struct {
	// Reward is how long the flash after each advance stays on.
	// Default: 700ms
	Reward time.Duration `mapstructure:"reward"`

	// Confetti is how long the completion celebration stays on.
	// Default: 3s
	Confetti time.Duration `mapstructure:"confetti"`
}

// LogConfig configures zap.
type LogConfig struct {
	// Level is debug, info, warn or error.
	// Default: "info"
	Level string `mapstructure:"level"`

	// Path is a log file. Empty disables logging for the interactive tour and
	// sends logs to stderr for the other commands.
	Path string `mapstructure:"path"`
}

// DefaultConfig returns a new [Config] with the defaults.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Key:     "stairs_tutorial",
		},
		Placement: PlacementConfig{
			Padding:       16,
			TooltipWidth:  380,
			TooltipHeight: 220,
		},
		Terminal: PlacementConfig{
			Padding:       1,
			TooltipWidth:  44,
			TooltipHeight: 12,
		},
		Timing: TimingConfig{
			Reward:   700 * time.Millisecond,
			Confetti: 3 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks values that would make the tour unusable.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend: %q", c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage key must not be empty")
	}
	for name, p := range map[string]PlacementConfig{"placement": c.Placement, "terminal": c.Terminal} {
		if p.Padding < 0 || p.TooltipWidth <= 0 || p.TooltipHeight <= 0 {
			return fmt.Errorf("invalid %s geometry: padding %v, tooltip %vx%v",
				name, p.Padding, p.TooltipWidth, p.TooltipHeight)
		}
	}
	if c.Timing.Reward < 0 || c.Timing.Confetti < 0 {
		return fmt.Errorf("effect timings must not be negative")
	}
	return nil
}
