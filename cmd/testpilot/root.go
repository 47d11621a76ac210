// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for testpilot.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"testpilot-cli/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// rootCmd represents the base command when called without any subcommands.
	// Flag parsing is disabled: the whole point of the launcher is to
	// accept flags it has never heard of and route them to the right
	// process, so cobra must hand the raw vector through untouched.
	rootCmd = &cobra.Command{
		Use:   "testpilot [node-or-runner-flags] [spec-files...]",
		Short: "A launcher for the node test runner",
		Long: TitleStyle.Render("testpilot") + SubtitleStyle.Render(" - a launcher for the node test runner") + `

testpilot takes one flat command line, decides flag by flag whether it
belongs to the node executable or to the runner script, rewrites
retired debugger spellings for the node installation actually present,
and spawns:

  ` + CmdStyle.Render("node <node-flags> <runner-entry> <runner-flags>") + `

with inherited stdio. The launcher mirrors the runner's exit code, or
re-raises its fatal signal so both processes die the same way.

` + SubtitleStyle.Render("Launcher-owned flags:") + `
  --tp-config <file>   use a specific config file
  --tp-verbose         trace the classification pipeline

` + SubtitleStyle.Render("Examples:") + `
  testpilot --reporter spec test/
  testpilot --inspect-brk --timeout 5000 test/slow.spec.js
  testpilot debug test/flaky.spec.js
  testpilot config init`,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE:               runLaunch,
	}
)

func init() {
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
	); err != nil {
		var ae *issue.ActionableError
		if errors.As(err, &ae) {
			if verbose {
				fmt.Fprintln(os.Stderr, ae.Render("dark"))
			} else {
				fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+ae.Format(false))
			}
		}
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
