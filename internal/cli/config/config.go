// Package config provides configuration loading for the burl CLI.
//
// Configuration merges four layers, lowest to highest precedence:
// built-in defaults, a burl.yaml config file, BURL_-prefixed environment
// variables, and command-line flags.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Default configuration values.
const (
	DefaultKernel    = "sdfx"
	DefaultMeshCells = 200
	DefaultSegments  = 32
	DefaultTolerance = 0.01
	DefaultOutput    = "text"
)

// Config holds all CLI configuration options.
type Config struct {
	Kernel    string  `koanf:"kernel"`
	MeshCells int     `koanf:"mesh_cells"`
	Segments  int     `koanf:"segments"`
	Tolerance float64 `koanf:"tolerance"`
	Verbose   bool    `koanf:"verbose"`
	Output    string  `koanf:"output"`
}

// Package-level koanf instance and config file tracking.
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// findConfigFile finds the config file to use.
// Priority: explicit path > burl.yaml > burl.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat("burl.yaml"); err == nil {
		return "burl.yaml"
	}
	if _, err := os.Stat("burl.yml"); err == nil {
		return "burl.yml"
	}
	return ""
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from file, environment variables, and
// flags. Precedence (highest to lowest): flags > env vars > config file >
// defaults.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	// 1. Defaults.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"kernel":     DefaultKernel,
		"mesh_cells": DefaultMeshCells,
		"segments":   DefaultSegments,
		"tolerance":  DefaultTolerance,
		"verbose":    false,
		"output":     DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file.
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables: BURL_MESH_CELLS -> mesh_cells.
	if err := k.Load(env.Provider("BURL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "BURL_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, highest priority.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.Kernel != "sdfx" && cfg.Kernel != "manifold" {
		return nil, fmt.Errorf("unknown kernel %q (want sdfx or manifold)", cfg.Kernel)
	}
	if cfg.MeshCells <= 0 {
		return nil, fmt.Errorf("mesh_cells must be positive, got %d", cfg.MeshCells)
	}

	currentConfig = &cfg
	return &cfg, nil
}

// loggerKey is the context key under which the CLI logger is stored.
type loggerKey struct{}

// LoggerKey returns the context key used for storing the logger. This lets
// the commands package retrieve the logger from context without an import
// cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration, or defaults
// when nothing has been loaded yet.
func GetCurrentConfig() *Config {
	if currentConfig != nil {
		return currentConfig
	}
	return &Config{
		Kernel:    DefaultKernel,
		MeshCells: DefaultMeshCells,
		Segments:  DefaultSegments,
		Tolerance: DefaultTolerance,
		Output:    DefaultOutput,
	}
}
