// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"
)

func TestGetVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = origVersion, origCommit, origDate })

	Version, Commit, BuildDate = "dev", "unknown", "unknown"
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("getVersionString() = %q, want dev marker", got)
	}

	Version, Commit, BuildDate = "1.2.0", "abc1234", "2026-08-24"
	got := getVersionString()
	for _, want := range []string{"1.2.0", "abc1234", "2026-08-24"} {
		if !strings.Contains(got, want) {
			t.Errorf("getVersionString() = %q, missing %q", got, want)
		}
	}
}

func TestRootCommandWiring(t *testing.T) {
	t.Parallel()

	if !rootCmd.DisableFlagParsing {
		t.Error("root command must leave flag parsing to the classifier")
	}

	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	if !names["config"] {
		t.Errorf("config subcommand not registered; have %v", names)
	}
}
