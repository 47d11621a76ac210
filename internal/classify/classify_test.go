// SPDX-License-Identifier: MPL-2.0

package classify

import (
	"testing"

	"testpilot-cli/internal/argv"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       argv.Options
		wantNode   argv.Options
		wantRunner argv.Options
	}{
		{
			name:       "unknown option defaults to runner",
			opts:       argv.Options{"reporter": "spec"},
			wantNode:   argv.Options{},
			wantRunner: argv.Options{"reporter": "spec"},
		},
		{
			name:       "known node flag goes to node",
			opts:       argv.Options{"max-old-space-size": "2048"},
			wantNode:   argv.Options{"max-old-space-size": "2048"},
			wantRunner: argv.Options{},
		},
		{
			name:       "v8 prefix is stripped",
			opts:       argv.Options{"v8-stack-trace-limit": "100"},
			wantNode:   argv.Options{"stack-trace-limit": "100"},
			wantRunner: argv.Options{},
		},
		{
			name:       "v8-options exception stays whole",
			opts:       argv.Options{"v8-options": true},
			wantNode:   argv.Options{"v8-options": true},
			wantRunner: argv.Options{},
		},
		{
			name:       "negated node flag routes to node",
			opts:       argv.Parse([]string{"--no-warnings", "--reporter", "spec"}),
			wantNode:   argv.Options{"warnings": false},
			wantRunner: argv.Options{"reporter": "spec"},
		},
		{
			name:       "negated unknown flag stays with runner",
			opts:       argv.Options{"color": false},
			wantNode:   argv.Options{},
			wantRunner: argv.Options{"color": false},
		},
		{
			name:       "debugger shorthand goes to node and kills timeout",
			opts:       argv.Options{"inspect": true, "timeout": "5000"},
			wantNode:   argv.Options{"inspect": true},
			wantRunner: argv.Options{"timeout": "0"},
		},
		{
			name:       "inspect-brk clears timeout alias spellings",
			opts:       argv.Options{"inspect-brk": true, "t": "5000", "timeouts": "5000"},
			wantNode:   argv.Options{"inspect-brk": true},
			wantRunner: argv.Options{"timeout": "0"},
		},
		{
			name: "positionals start in the runner set",
			opts: argv.Options{
				"inspect-port":     "9229",
				argv.PositionalKey: []string{"test/a.js"},
			},
			wantNode:   argv.Options{"inspect-port": "9229"},
			wantRunner: argv.Options{argv.PositionalKey: []string{"test/a.js"}},
		},
		{
			name: "mixed command line",
			opts: argv.Options{
				"reporter":         "dot",
				"expose-gc":        true,
				"require":          []string{"hook.js"},
				argv.PositionalKey: []string{"spec/"},
			},
			wantNode: argv.Options{"expose-gc": true},
			wantRunner: argv.Options{
				"reporter":         "dot",
				"require":          []string{"hook.js"},
				argv.PositionalKey: []string{"spec/"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			node, runner := Split(tt.opts, DefaultRegistry())
			if !node.Equal(tt.wantNode) {
				t.Errorf("node set = %#v, want %#v", node, tt.wantNode)
			}
			if !runner.Equal(tt.wantRunner) {
				t.Errorf("runner set = %#v, want %#v", runner, tt.wantRunner)
			}
		})
	}
}

func TestSplitIsTotalAndDisjoint(t *testing.T) {
	t.Parallel()

	opts := argv.Options{
		"inspect":          true,
		"v8-liftoff":       true,
		"reporter":         "spec",
		"timeout":          "5000",
		"made-up-flag":     "x",
		argv.PositionalKey: []string{"a", "b"},
	}

	node, runner := Split(opts, DefaultRegistry())

	// timeout is rewritten by the no-timeout side effect, everything
	// else must appear exactly once across the two sets.
	reg := DefaultRegistry()
	for _, name := range opts.Names() {
		classified := reg.Normalize(name)
		_, inNode := node[classified]
		_, inRunner := runner[name]
		if inNode == inRunner {
			t.Errorf("option %q: inNode=%v inRunner=%v, want exactly one", name, inNode, inRunner)
		}
	}
	if got := len(node) + len(runner); got != len(opts) {
		t.Errorf("total classified entries = %d, want %d", got, len(opts))
	}
}

func TestSplitDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	opts := argv.Options{
		"inspect":          true,
		"timeout":          "5000",
		argv.PositionalKey: []string{"debug"},
	}
	orig := opts.Clone()

	node, runner := Split(opts, DefaultRegistry())
	runner.SetPositionals(nil)
	node["extra"] = true

	if !opts.Equal(orig) {
		t.Errorf("Split mutated its input: %#v, want %#v", opts, orig)
	}
}

func TestRegistryNormalize(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	tests := []struct {
		in   string
		want string
	}{
		{"v8-foo", "foo"},
		{"v8-options", "v8-options"},
		{"v8-pool-size", "v8-pool-size"},
		{"inspect", "inspect"},
		{"v8-", "v8-"},
	}

	for _, tt := range tests {
		if got := reg.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsRuntimeFlag(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	tests := []struct {
		name string
		want bool
	}{
		{"inspect", true},
		{"inspect-brk", true},
		{"debug", true},
		{"debug-brk", true},
		{"v8-liftoff", true},
		{"v8-options", true},
		{"v8-pool-size", true},
		{"gc", true},
		{"reporter", false},
		{"timeout", false},
		{"grep", false},
		{"v8-", false},
	}

	for _, tt := range tests {
		if got := reg.IsRuntimeFlag(tt.name); got != tt.want {
			t.Errorf("IsRuntimeFlag(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
