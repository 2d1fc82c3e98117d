// Package config provides configuration management for bak using Viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/thoreinstein/bak/internal/paths"
)

// DefaultDiffTool is the diff utility used when none is configured.
const DefaultDiffTool = "diff"

// Config represents the top-level configuration structure.
type Config struct {
	// DiffTool is the external tool invoked by diff mode.
	DiffTool string `mapstructure:"difftool" yaml:"difftool" toml:"difftool"`

	// PreserveSymlinks makes copy operations preserve symlinks by default,
	// as if --symlinks were always given.
	PreserveSymlinks bool `mapstructure:"preserve_symlinks" yaml:"preserve_symlinks" toml:"preserve_symlinks"`
}

// Default returns the built-in configuration values.
func Default() Config {
	return Config{
		DiffTool:         DefaultDiffTool,
		PreserveSymlinks: false,
	}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings; no explicit type, so config.toml and
	// config.yaml are both honored.
	viper.SetConfigName("config")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support (BAK_DIFFTOOL, ...)
	viper.SetEnvPrefix("BAK")
	viper.AutomaticEnv()

	// Defaults
	def := Default()
	viper.SetDefault("difftool", def.DiffTool)
	viper.SetDefault("preserve_symlinks", def.PreserveSymlinks)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
