// SPDX-License-Identifier: MPL-2.0

// Package compat rewrites classified option sets so legacy debugger
// spellings still work against whatever node installation is present.
// Rules run in a fixed order and mutate the two sets in place; every
// firing is a warning, never an error, and the launch always proceeds.
package compat

import (
	"testpilot-cli/internal/argv"
	"testpilot-cli/internal/classify"
	"testpilot-cli/internal/nodeenv"
)

// WarnFunc receives one human-readable line per rule firing.
type WarnFunc func(format string, args ...any)

// Rule is one in-place transformation of the (node, runner) pair.
type Rule func(node, runner argv.Options, env nodeenv.Env, warnf WarnFunc)

// Rules returns the rule chain in its required order. The legacy
// debugger command rule deletes flags the version-gating rule would
// otherwise rewrite, so it must run first.
func Rules() []Rule {
	return []Rule{
		LegacyDebugCommand,
		GateDebugFlags,
		RenameDeprecatedGC,
	}
}

// Apply runs the full rule chain. A nil warnf discards warnings.
func Apply(node, runner argv.Options, env nodeenv.Env, warnf WarnFunc) {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}
	for _, rule := range Rules() {
		rule(node, runner, env, warnf)
	}
}

// debuggerFlags are the flag names that conflict with a debugger entry
// command on the command line.
var debuggerFlags = []string{"debug", "inspect", "debug-brk", "inspect-brk"}

// LegacyDebugCommand handles the historical "debug" / "inspect"
// leading positional: it moves debugger selection from the runner's
// argument list to a runtime subcommand, dropping any flag spellings
// that would conflict with it.
func LegacyDebugCommand(node, runner argv.Options, env nodeenv.Env, warnf WarnFunc) {
	positionals := runner.Positionals()
	if len(positionals) == 0 {
		return
	}
	command := positionals[0]
	if command != "debug" && command != "inspect" {
		return
	}

	runner.SetPositionals(positionals[1:])
	if classify.ImpliesNoTimeout(command) {
		classify.DisableTimeouts(runner)
	}

	for _, flag := range debuggerFlags {
		_, inNode := node[flag]
		_, inRunner := runner[flag]
		if inNode || inRunner {
			warnf("%q is incompatible with %q; ignoring", "--"+flag, command)
			delete(node, flag)
			delete(runner, flag)
		}
	}

	// node >= 8 ships the inspector-based debugger entry.
	entry := "debug"
	if env.MajorVersion() >= 8 {
		entry = "inspect"
	}
	node.SetPositionals([]string{entry})
}

// gatedDebugFlags maps retired debug spellings to their inspector
// replacements.
var gatedDebugFlags = []struct{ old, replacement string }{
	{"debug", "inspect"},
	{"debug-brk", "inspect-brk"},
}

// GateDebugFlags rewrites --debug / --debug-brk to their inspector
// equivalents when the live runtime no longer accepts the old name,
// preserving any host:port value. The runner's timeout option is
// forced to the disabled sentinel (false), which is distinct from the
// zero-timeout sentinel the classifier writes.
func GateDebugFlags(node, runner argv.Options, env nodeenv.Env, warnf WarnFunc) {
	for _, gate := range gatedDebugFlags {
		value, present := node[gate.old]
		if !present || env.Supports(gate.old) {
			continue
		}
		warnf("%q is not supported by this node version; using %q instead",
			"--"+gate.old, "--"+gate.replacement)
		node[gate.replacement] = value
		runner["timeout"] = false
		delete(node, gate.old)
	}
}

// RenameDeprecatedGC rewrites the retired -gc memory-profiling toggle
// to --gc-global, keeping its value.
func RenameDeprecatedGC(node, runner argv.Options, env nodeenv.Env, warnf WarnFunc) {
	value, present := node["gc"]
	if !present {
		return
	}
	warnf("%q is deprecated; use %q instead", "-gc", "--gc-global")
	node["gc-global"] = value
	delete(node, "gc")
}
