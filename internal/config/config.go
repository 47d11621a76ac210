// SPDX-License-Identifier: MPL-2.0

// Package config loads the launcher's configuration: which node
// binary to spawn, where the runner's entry script lives, and the few
// knobs of the supervision loop. Values resolve, highest precedence
// first, from an explicit --tp-config file, TESTPILOT_* environment
// variables, the user config file, and compiled-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
	"mvdan.cc/sh/v3/shell"
)

const (
	// AppName is the application name.
	AppName = "testpilot"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// Config is the launcher's effective configuration.
type Config struct {
	Node   NodeConfig   `mapstructure:"node" toml:"node"`
	Runner RunnerConfig `mapstructure:"runner" toml:"runner"`
	Launch LaunchConfig `mapstructure:"launch" toml:"launch"`
	UI     UIConfig     `mapstructure:"ui" toml:"ui"`
}

// NodeConfig selects and decorates the node executable.
type NodeConfig struct {
	// Path is the node binary to spawn; resolved via PATH when bare.
	Path string `mapstructure:"path" toml:"path"`
	// Args holds extra runtime arguments as one shell-quoted string,
	// prepended to the classified node vector.
	Args string `mapstructure:"args" toml:"args"`
}

// RunnerConfig locates the test runner.
type RunnerConfig struct {
	// Entry is the runner's real entry-point script.
	Entry string `mapstructure:"entry" toml:"entry"`
}

// LaunchConfig tunes the supervision loop.
type LaunchConfig struct {
	// GracePeriod bounds how long an interrupted child may ignore
	// SIGINT before SIGTERM follows.
	GracePeriod time.Duration `mapstructure:"grace_period" toml:"grace_period"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Verbose bool `mapstructure:"verbose" toml:"verbose"`
}

// DefaultConfig returns the compiled-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Node:   NodeConfig{Path: "node"},
		Runner: RunnerConfig{Entry: filepath.Join("bin", "_runner.js")},
		Launch: LaunchConfig{GracePeriod: 10 * time.Second},
	}
}

// NodeArgs splits the configured extra runtime arguments with shell
// quoting rules, so values like `--title "my run"` survive intact.
func (c *Config) NodeArgs() ([]string, error) {
	if c.Node.Args == "" {
		return nil, nil
	}
	fields, err := shell.Fields(c.Node.Args, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("invalid node.args %q: %w", c.Node.Args, err)
	}
	return fields, nil
}

// ConfigDir returns the testpilot configuration directory using
// platform conventions: %APPDATA% on Windows, ~/Library/Application
// Support on macOS, $XDG_CONFIG_HOME (default ~/.config) elsewhere.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load resolves the effective configuration. A missing config file is
// not an error; an unreadable or malformed one is.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("node.path", defaults.Node.Path)
	v.SetDefault("node.args", defaults.Node.Args)
	v.SetDefault("runner.entry", defaults.Runner.Entry)
	v.SetDefault("launch.grace_period", defaults.Launch.GracePeriod)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix("TESTPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Historical spelling kept for parity with NODE_OPTIONS users.
	_ = v.BindEnv("node.args", "TESTPILOT_NODE_OPTIONS", "TESTPILOT_NODE_ARGS")

	if configFilePathOverride != "" {
		v.SetConfigFile(configFilePathOverride)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFilePathOverride, err)
		}
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
