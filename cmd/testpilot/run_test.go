// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"testpilot-cli/internal/argv"
	"testpilot-cli/internal/config"
	"testpilot-cli/internal/issue"
	"testpilot-cli/internal/nodeenv"
	"testpilot-cli/internal/testutil"
)

// testConfig returns a config whose node binary and runner entry both
// exist under a fresh temp dir, so composeInvocation can resolve them.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	nodePath := filepath.Join(dir, "node")
	testutil.WriteExecutable(t, nodePath, "#!/bin/sh\nexit 0\n")
	entry := filepath.Join(dir, "_runner.js")
	testutil.WriteExecutable(t, entry, "// runner entry\n")

	cfg := config.DefaultConfig()
	cfg.Node.Path = nodePath
	cfg.Runner.Entry = entry
	return cfg
}

func TestComposeInvocation(t *testing.T) {
	t.Parallel()

	env := nodeenv.Static{Major: 22, Flags: []string{"inspect", "inspect-brk"}}

	tests := []struct {
		name           string
		args           []string
		wantNodeArgs   []string
		wantRunnerArgs []string
	}{
		{
			name:           "mixed vector splits by destination",
			args:           []string{"--reporter", "spec", "--inspect", "--timeout", "5000"},
			wantNodeArgs:   []string{"--inspect"},
			wantRunnerArgs: []string{"--reporter", "spec", "--timeout", "0"},
		},
		{
			name:           "plain runner flags pass through",
			args:           []string{"test/a.spec.js", "--reporter", "dot", "--bail"},
			wantNodeArgs:   nil,
			wantRunnerArgs: []string{"--bail", "--reporter", "dot", "test/a.spec.js"},
		},
		{
			name:           "aliases collapse onto canonical names",
			args:           []string{"-R", "dot", "-t", "100"},
			wantNodeArgs:   nil,
			wantRunnerArgs: []string{"--reporter", "dot", "--timeout", "100"},
		},
		{
			name:           "legacy debug command becomes runtime subcommand",
			args:           []string{"debug", "test/a.spec.js"},
			wantNodeArgs:   []string{"inspect"},
			wantRunnerArgs: []string{"--timeout", "0", "test/a.spec.js"},
		},
		{
			name:           "v8 prefix strips for the runtime",
			args:           []string{"--v8-expose-gc", "--grep", "slow"},
			wantNodeArgs:   []string{"--expose-gc"},
			wantRunnerArgs: []string{"--grep", "slow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig(t)

			spec, err := composeInvocation(argv.Parse(tt.args), cfg, env, nil)
			if err != nil {
				t.Fatalf("composeInvocation() error = %v", err)
			}
			if !reflect.DeepEqual(spec.NodeArgs, tt.wantNodeArgs) {
				t.Errorf("NodeArgs = %v, want %v", spec.NodeArgs, tt.wantNodeArgs)
			}
			if !reflect.DeepEqual(spec.RunnerArgs, tt.wantRunnerArgs) {
				t.Errorf("RunnerArgs = %v, want %v", spec.RunnerArgs, tt.wantRunnerArgs)
			}
			if spec.NodePath != cfg.Node.Path {
				t.Errorf("NodePath = %q, want %q", spec.NodePath, cfg.Node.Path)
			}
			if spec.Entry != cfg.Runner.Entry {
				t.Errorf("Entry = %q, want %q", spec.Entry, cfg.Runner.Entry)
			}
		})
	}
}

func TestComposeInvocationConfiguredNodeArgs(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	cfg.Node.Args = `--max-old-space-size=4096 --title "pilot run"`

	env := nodeenv.Static{Major: 22}
	spec, err := composeInvocation(argv.Parse([]string{"--inspect"}), cfg, env, nil)
	if err != nil {
		t.Fatalf("composeInvocation() error = %v", err)
	}

	want := []string{"--inspect", "--max-old-space-size=4096", "--title", "pilot run"}
	if !reflect.DeepEqual(spec.NodeArgs, want) {
		t.Errorf("NodeArgs = %v, want %v", spec.NodeArgs, want)
	}
}

func TestComposeInvocationEmitsCompatWarnings(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)

	var warnings []string
	warnf := func(format string, args ...any) {
		warnings = append(warnings, format)
	}

	// The fake runtime predates the inspector flags entirely.
	env := nodeenv.Static{Major: 6}
	spec, err := composeInvocation(argv.Parse([]string{"--debug"}), cfg, env, warnf)
	if err != nil {
		t.Fatalf("composeInvocation() error = %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	for _, arg := range spec.NodeArgs {
		if arg == "--debug" {
			t.Errorf("retired flag survived the rewrite: %v", spec.NodeArgs)
		}
	}
}

func TestComposeInvocationMissingEntry(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	cfg.Runner.Entry = filepath.Join(t.TempDir(), "no-such-runner.js")

	_, err := composeInvocation(argv.Parse(nil), cfg, nodeenv.Static{Major: 22}, nil)
	if err == nil {
		t.Fatal("composeInvocation() succeeded with a missing entry script")
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %T, want *issue.ActionableError", err)
	}
	if !strings.Contains(ae.Operation, "entry") {
		t.Errorf("Operation = %q, want it to mention the entry", ae.Operation)
	}
	if len(ae.Suggestions) == 0 {
		t.Error("expected at least one suggestion")
	}
}

func TestComposeInvocationMissingNode(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	cfg.Node.Path = filepath.Join(t.TempDir(), "no-such-node")

	_, err := composeInvocation(argv.Parse(nil), cfg, nodeenv.Static{Major: 22}, nil)
	if err == nil {
		t.Fatal("composeInvocation() succeeded with a missing node binary")
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %T, want *issue.ActionableError", err)
	}
}
