// SPDX-License-Identifier: MPL-2.0

// Package classify partitions a parsed option mapping into the flags
// destined for the node executable and the flags destined for the test
// runner script. Classification is open: anything not recognized as a
// node flag belongs to the runner.
package classify

import "regexp"

// Registry decides whether an option name addresses the host runtime.
// It is immutable after construction; callers share one instance.
type Registry struct {
	exact     map[string]struct{}
	shorthand *regexp.Regexp
	prefix    string
	prefixExc map[string]struct{}
}

// knownNodeFlags are node/V8 flag names the launcher always routes to
// the runtime, independent of the installed node version. The list
// deliberately includes long-retired spellings (debug, gc) so the
// compatibility rules get a chance to rewrite them.
var knownNodeFlags = []string{
	"abort-on-uncaught-exception",
	"allow-natives-syntax",
	"debug",
	"debug-brk",
	"debug-port",
	"diagnostic-dir",
	"disable-warning",
	"dns-result-order",
	"enable-source-maps",
	"es-staging",
	"experimental-import-meta-resolve",
	"experimental-loader",
	"experimental-modules",
	"experimental-repl-await",
	"experimental-specifier-resolution",
	"experimental-vm-modules",
	"expose-gc",
	"expose-internals",
	"frozen-intrinsics",
	"gc",
	"gc-global",
	"harmony",
	"heapsnapshot-signal",
	"icu-data-dir",
	"input-type",
	"insecure-http-parser",
	"inspect-port",
	"inspect-publish-uid",
	"interpreted-frames-native-stack",
	"loader",
	"log-timer-events",
	"max-http-header-size",
	"max-old-space-size",
	"max-semi-space-size",
	"napi-modules",
	// Negation-only spellings: they reach the classifier as
	// deprecation/warnings: false and are matched via the no- recheck.
	"no-deprecation",
	"no-warnings",
	"openssl-config",
	"pending-deprecation",
	"perf-basic-prof",
	"perf-basic-prof-only-functions",
	"perf-prof",
	"perf-prof-unwinding-info",
	"preserve-symlinks",
	"preserve-symlinks-main",
	"prof",
	"prof-process",
	"redirect-warnings",
	"report-dir",
	"report-filename",
	"report-on-fatalerror",
	"report-on-signal",
	"report-signal",
	"report-uncaught-exception",
	"stack-size",
	"throw-deprecation",
	"title",
	"tls-cipher-list",
	"tls-keylog",
	"tls-max-v1.2",
	"tls-max-v1.3",
	"tls-min-v1.0",
	"tls-min-v1.1",
	"tls-min-v1.2",
	"tls-min-v1.3",
	"trace-deprecation",
	"trace-event-categories",
	"trace-event-file-pattern",
	"trace-events-enabled",
	"trace-exit",
	"trace-sigint",
	"trace-sync-io",
	"trace-tls",
	"trace-uncaught",
	"trace-warnings",
	"track-heap-objects",
	"unhandled-rejections",
	"use-bundled-ca",
	"use-largepages",
	"use-openssl-ca",
	"v8-options",
	"v8-pool-size",
	"zero-fill-buffers",
}

// debuggerShorthand matches the debug/inspect flag family including
// =host:port values, e.g. inspect-brk=0.0.0.0:9229.
var debuggerShorthand = regexp.MustCompile(`^(debug|inspect)(-brk)?(=\S*)?$`)

// noTimeoutFlags are option names whose presence implies the runner's
// time limits must be switched off: a paused debugger would trip them.
var noTimeoutFlags = map[string]struct{}{
	"debug":       {},
	"debug-brk":   {},
	"inspect":     {},
	"inspect-brk": {},
}

// DefaultRegistry returns the registry covering the static node flag
// list, the debugger shorthand family, and the v8- prefix rule with
// its whole-word exceptions.
func DefaultRegistry() *Registry {
	exact := make(map[string]struct{}, len(knownNodeFlags))
	for _, name := range knownNodeFlags {
		exact[name] = struct{}{}
	}
	return &Registry{
		exact:     exact,
		shorthand: debuggerShorthand,
		prefix:    "v8-",
		// Real node flags that happen to start with the vendor prefix;
		// stripping them would produce spellings node rejects.
		prefixExc: map[string]struct{}{
			"v8-options":   {},
			"v8-pool-size": {},
		},
	}
}

// IsRuntimeFlag reports whether name addresses the host runtime.
// Evaluation order is fixed: exact set, then shorthand pattern, then
// prefix rule.
func (r *Registry) IsRuntimeFlag(name string) bool {
	if _, ok := r.exact[name]; ok {
		return true
	}
	if r.shorthand.MatchString(name) {
		return true
	}
	return r.matchesPrefix(name)
}

// Normalize rewrites a vendor-prefixed spelling to the name the
// runtime expects: v8-foo becomes foo, while the whole-word exceptions
// are kept intact. Names outside the prefix family pass through.
func (r *Registry) Normalize(name string) string {
	if r.matchesPrefix(name) {
		return name[len(r.prefix):]
	}
	return name
}

func (r *Registry) matchesPrefix(name string) bool {
	if _, exempt := r.prefixExc[name]; exempt {
		return false
	}
	return len(name) > len(r.prefix) && name[:len(r.prefix)] == r.prefix
}

// ImpliesNoTimeout reports whether classifying name must force the
// runner's timeouts off.
func ImpliesNoTimeout(name string) bool {
	_, ok := noTimeoutFlags[name]
	return ok
}
