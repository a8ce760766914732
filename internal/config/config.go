// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config handles the application configuration file: which repomix
// executable to run, and overrides for the default ignore patterns, the
// skipped binary extensions and the state file location.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultExecutable is used when the config does not name one.
const DefaultExecutable = "repomix"

// Config represents the top-level application configuration
type Config struct {
	// Executable is the repomix binary name or path (optional)
	Executable string `yaml:"executable,omitempty"`

	// DefaultPatterns replaces the builtin list of auto-added ignore patterns (optional)
	DefaultPatterns []string `yaml:"default_patterns,omitempty"`

	// SkipExtensions replaces the builtin list of binary extensions hidden from the preview (optional)
	SkipExtensions []string `yaml:"skip_extensions,omitempty"`

	// StatePath overrides the location of the UI state file (optional)
	StatePath string `yaml:"state_path,omitempty"`
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "rgui", "config.yaml"), nil
}

func LoadConfig() (Config, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	cfg.DefaultPatterns = slices.DeleteFunc(cfg.DefaultPatterns, func(p string) bool {
		return strings.TrimSpace(p) == ""
	})
	cfg.SkipExtensions = slices.DeleteFunc(cfg.SkipExtensions, func(e string) bool {
		return strings.TrimSpace(e) == ""
	})

	return cfg, nil
}

func EnsureConfigDir() error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(configPath)
	err = os.MkdirAll(configDir, 0750) // rwxr-x---
	if err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}
	return nil
}

func SaveConfig(cfg Config) error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}

	err = EnsureConfigDir()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// Write with permissions rw-r----- (0640)
	err = os.WriteFile(configPath, data, 0640)
	if err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	return nil
}

func ResolvePath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path, fmt.Errorf("could not get user home directory to resolve path '%s': %w", path, err)
	}

	if path == "~" {
		return homeDir, nil
	}
	return filepath.Join(homeDir, path[2:]), nil
}

// ExecutableOrDefault returns the configured executable, resolving ~/ paths.
func (c Config) ExecutableOrDefault() string {
	exe := strings.TrimSpace(c.Executable)
	if exe == "" {
		return DefaultExecutable
	}
	if resolved, err := ResolvePath(exe); err == nil {
		return resolved
	}
	return exe
}

// PatternsOr returns the configured default patterns, or fallback when none are set.
func (c Config) PatternsOr(fallback []string) []string {
	if len(c.DefaultPatterns) > 0 {
		return slices.Clone(c.DefaultPatterns)
	}
	return slices.Clone(fallback)
}

// SkipExtensionsOr returns the configured skip list, or fallback when none is set.
// Entries are given a leading dot if they lack one.
func (c Config) SkipExtensionsOr(fallback []string) []string {
	if len(c.SkipExtensions) == 0 {
		return slices.Clone(fallback)
	}
	out := make([]string, 0, len(c.SkipExtensions))
	for _, e := range c.SkipExtensions {
		e = strings.TrimSpace(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

// StatePathOr returns the configured state path (with ~/ resolved), or fallback.
func (c Config) StatePathOr(fallback string) (string, error) {
	if strings.TrimSpace(c.StatePath) == "" {
		return fallback, nil
	}
	return ResolvePath(strings.TrimSpace(c.StatePath))
}
