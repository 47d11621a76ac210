// SPDX-License-Identifier: MPL-2.0

package argv

// Unparse reconstructs a flat argument vector from an option mapping.
//
// Emission rules:
//
//	bool true    --name (or -n for single-character names)
//	bool false   --no-name
//	string       --name value
//	[]string     one --name value pair per element, in order
//
// Named options are emitted in sorted-name order so the output is
// deterministic for a given mapping. Positionals follow the named
// options; a "--" separator is inserted when re-parsing would
// otherwise glue the first positional to a preceding switch.
//
// Alias handling: an alias spelling collapses onto its canonical name
// and each canonical name is emitted at most once. A canonical entry
// always wins over its aliases; when only alias spellings are present,
// the table's declared order decides which value survives.
func Unparse(opts Options, aliases AliasTable) []string {
	canonicalOf := aliases.canonicalize()

	// Collapse alias spellings first so ordering and dedup operate on
	// canonical names only. Canonical entries land first, then each
	// unclaimed alias group resolves in table order, never in map
	// iteration order.
	collapsed := make(Options, len(opts))
	for _, name := range opts.Names() {
		if _, isAlias := canonicalOf[name]; !isAlias {
			collapsed[name] = opts[name]
		}
	}
	for _, name := range opts.Names() {
		canonical, isAlias := canonicalOf[name]
		if !isAlias {
			continue
		}
		if _, taken := collapsed[canonical]; taken {
			continue
		}
		for _, alias := range aliases[canonical] {
			if value, ok := opts[alias]; ok {
				collapsed[canonical] = value
				break
			}
		}
	}

	var out []string
	lastWasSwitch := false
	for _, name := range collapsed.Names() {
		switch value := collapsed[name].(type) {
		case bool:
			if value {
				out = append(out, dashed(name))
				lastWasSwitch = true
			} else {
				out = append(out, "--no-"+name)
				lastWasSwitch = false
			}
		case []string:
			for _, item := range value {
				out = append(out, dashed(name), item)
			}
			lastWasSwitch = false
		default:
			out = append(out, dashed(name), stringify(value))
			lastWasSwitch = false
		}
	}

	positionals := opts.Positionals()
	if len(positionals) > 0 {
		if lastWasSwitch || isFlagToken(positionals[0]) {
			out = append(out, "--")
		}
		out = append(out, positionals...)
	}
	return out
}

// UnparseJoined reconstructs an argument vector in the single-token
// form the host runtime expects: valued options emit as --name=value
// and positionals lead the vector, since runtime subcommands (such as
// the debugger entry) must precede its flags.
func UnparseJoined(opts Options) []string {
	out := append([]string(nil), opts.Positionals()...)
	for _, name := range opts.Names() {
		switch value := opts[name].(type) {
		case bool:
			if value {
				out = append(out, dashed(name))
			} else {
				out = append(out, "--no-"+name)
			}
		case []string:
			for _, item := range value {
				out = append(out, dashed(name)+"="+item)
			}
		default:
			out = append(out, dashed(name)+"="+stringify(value))
		}
	}
	return out
}

// dashed returns the flag spelling for a name: one dash for
// single-character names, two otherwise.
func dashed(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + name
}
