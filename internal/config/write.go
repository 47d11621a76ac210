// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// defaultConfigTOML is the commented starter file config init writes.
const defaultConfigTOML = `# testpilot configuration

[node]
# Node binary to spawn; bare names resolve via PATH.
path = "node"
# Extra node arguments, shell-quoted, prepended to the classified vector.
args = ""

[runner]
# The runner's real entry-point script.
entry = "bin/_runner.js"

[launch]
# How long an interrupted run may ignore SIGINT before SIGTERM follows.
grace_period = "10s"

[ui]
verbose = false
`

// Marshal renders cfg as TOML, the on-disk config format.
func Marshal(cfg *Config) ([]byte, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return out, nil
}

// WriteDefault creates the user config file populated with defaults.
// It refuses to overwrite an existing file and returns the path it
// wrote.
func WriteDefault() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s: %w", path, os.ErrExist)
	}

	if err := os.WriteFile(path, []byte(defaultConfigTOML), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
