// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/BlueWallet/BlueWallet-sub014/lib/bbqr"
	"github.com/BlueWallet/BlueWallet-sub014/lib/preference"
)

// EnvVar names the environment variable Load reads.
const EnvVar = "BBQR_CONFIG"

// Config is the master configuration for the bbqr tool.
type Config struct {
	// Encode sets the defaults for the encode command.
	Encode EncodeConfig `yaml:"encode"`

	// Display configures animated-QR presentation.
	Display DisplayConfig `yaml:"display"`

	// Preference configures per-wallet protocol selection.
	Preference PreferenceConfig `yaml:"preference"`

	// Log configures the command logger.
	Log LogConfig `yaml:"log"`
}

// EncodeConfig bounds the split planner and picks the encoding.
type EncodeConfig struct {
	MinVersion int `yaml:"min_version"`
	MaxVersion int `yaml:"max_version"`
	MinSplit   int `yaml:"min_split"`
	MaxSplit   int `yaml:"max_split"`

	// Encoding is one of auto, hex, base32, compressed.
	// Default: auto
	Encoding string `yaml:"encoding"`
}

// DisplayConfig configures animated display.
type DisplayConfig struct {
	// FragmentCapacity is the payload bytes carried per animated
	// fragment. It raises the minimum split so each QR stays small
	// enough to scan from a phone screen. Zero disables the floor.
	// Default: 175
	FragmentCapacity int `yaml:"fragment_capacity"`
}

// PreferenceConfig configures protocol resolution.
type PreferenceConfig struct {
	// Protocol is one of auto, bbqr, urv2.
	// Default: auto
	Protocol string `yaml:"protocol"`

	// StateFile is the CBOR file holding per-wallet preferences.
	// Default: ${HOME}/.cache/bbqr/preferences.cbor
	StateFile string `yaml:"state_file"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is a slog level name: debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the default configuration. It is also the base that
// LoadFile merges the file into, so a file only needs the keys it
// changes.
func Default() *Config {
	bounds := bbqr.DefaultBounds()
	return &Config{
		Encode: EncodeConfig{
			MinVersion: bounds.MinVersion,
			MaxVersion: bounds.MaxVersion,
			MinSplit:   bounds.MinSplit,
			MaxSplit:   bounds.MaxSplit,
			Encoding:   "auto",
		},
		Display: DisplayConfig{
			FragmentCapacity: 175,
		},
		Preference: PreferenceConfig{
			Protocol:  "auto",
			StateFile: filepath.Join("${HOME}", ".cache", "bbqr", "preferences.cbor"),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by BBQR_CONFIG. If the
// variable is unset, the defaults are returned with variables expanded.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, layered over
// Default.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Preference.StateFile = expandVars(c.Preference.StateFile, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. Every problem is
// reported, not just the first.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Encode.Bounds().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("encode: %w", err))
	}
	if _, err := c.Encode.ParsedEncoding(); err != nil {
		errs = append(errs, fmt.Errorf("encode.encoding: %w", err))
	}

	if c.Display.FragmentCapacity < 0 {
		errs = append(errs, fmt.Errorf("display.fragment_capacity must not be negative, got %d", c.Display.FragmentCapacity))
	}

	if _, err := c.Preference.ParsedProtocol(); err != nil {
		errs = append(errs, fmt.Errorf("preference.protocol: %w", err))
	}
	if c.Preference.StateFile == "" {
		errs = append(errs, errors.New("preference.state_file is required"))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

// Bounds returns the configured split planner limits.
func (e EncodeConfig) Bounds() bbqr.Bounds {
	return bbqr.Bounds{
		MinVersion: e.MinVersion,
		MaxVersion: e.MaxVersion,
		MinSplit:   e.MinSplit,
		MaxSplit:   e.MaxSplit,
	}
}

// ParsedEncoding returns the configured encoding.
func (e EncodeConfig) ParsedEncoding() (bbqr.Encoding, error) {
	return bbqr.ParseEncodingName(e.Encoding)
}

// ParsedProtocol returns the configured protocol.
func (p PreferenceConfig) ParsedProtocol() (preference.Protocol, error) {
	return preference.ParseProtocol(p.Protocol)
}

// SlogLevel returns the configured level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}
