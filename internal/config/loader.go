package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "STAIRTOUR"

// ConfigPathEnv names the variable holding an explicit config file path.
const ConfigPathEnv = "STAIRTOUR_CONFIG_PATH"

// Loader handles configuration loading with Viper.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a [Loader] with defaults and environment binding applied.
func NewLoader() *Loader {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.dir", d.Storage.Dir)
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("catalog.path", d.Catalog.Path)
	v.SetDefault("placement.padding", d.Placement.Padding)
	v.SetDefault("placement.tooltip_width", d.Placement.TooltipWidth)
	v.SetDefault("placement.tooltip_height", d.Placement.TooltipHeight)
	v.SetDefault("terminal.padding", d.Terminal.Padding)
	v.SetDefault("terminal.tooltip_width", d.Terminal.TooltipWidth)
	v.SetDefault("terminal.tooltip_height", d.Terminal.TooltipHeight)
	v.SetDefault("timing.reward", d.Timing.Reward)
	v.SetDefault("timing.confetti", d.Timing.Confetti)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.path", d.Log.Path)
}

// Load reads configuration following the priority documented on the package.
// A missing config file is not an error.
func (l *Loader) Load() (*Config, error) {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return l.LoadFromFile(path)
	}

	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err == nil {
			return l.LoadFromFile(path)
		}
	}
	return l.unmarshal()
}

// LoadFromFile reads configuration from an explicit file.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return l.unmarshal()
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return l.unmarshal()
}

// MustLoad is like [Loader.Load] but falls back to [DefaultConfig] on error.
func (l *Loader) MustLoad() *Config {
	cfg, err := l.Load()
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func searchPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "stairtour", "config.yaml"))
	}
	return append(paths, "stairtour.yaml")
}
