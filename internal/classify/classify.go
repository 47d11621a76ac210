// SPDX-License-Identifier: MPL-2.0

package classify

import (
	"golang.org/x/exp/slices"

	"testpilot-cli/internal/argv"
)

// Split partitions opts into the node-destined and runner-destined
// option sets. Every input name lands in exactly one output; the
// positional list starts in the runner set and only the compatibility
// rules may later move entries out of it.
//
// While classifying, any option that implies disabled timeouts forces
// timeout: "0" onto the runner set and clears its alias spellings,
// regardless of which set the option itself lands in.
func Split(opts argv.Options, reg *Registry) (node, runner argv.Options) {
	node = argv.Options{}
	runner = argv.Options{}

	runner.SetPositionals(slices.Clone(opts.Positionals()))

	for _, name := range opts.Names() {
		switch {
		case reg.IsRuntimeFlag(name):
			node[reg.Normalize(name)] = opts[name]
		case opts[name] == false && reg.IsRuntimeFlag("no-"+name):
			// The parser rewrites --no-warnings to warnings: false, so a
			// negated node flag must be matched under its no- spelling.
			node[name] = opts[name]
		default:
			runner[name] = opts[name]
		}
	}

	// The side-effect sweep runs after placement so a user-supplied
	// timeout value cannot overwrite the forced sentinel, whatever the
	// traversal order put it at.
	for _, name := range opts.Names() {
		if ImpliesNoTimeout(name) {
			DisableTimeouts(runner)
		}
	}
	return node, runner
}

// DisableTimeouts forces the zero-timeout sentinel onto the runner set
// and removes the alias spellings so the unparser cannot resurrect a
// user-supplied limit.
func DisableTimeouts(runner argv.Options) {
	runner["timeout"] = "0"
	delete(runner, "timeouts")
	delete(runner, "t")
}
