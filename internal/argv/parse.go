// SPDX-License-Identifier: MPL-2.0

package argv

import "strings"

// Parse converts a raw argument vector into an option mapping.
//
// Recognized token shapes:
//
//	--name            switch, true
//	--no-name         switch, false
//	--name=value      valued option
//	--name value      valued option when the next token is not a flag
//	-n / -n value     short spellings, same rules
//	--                terminates flag parsing; the rest are positionals
//
// A flag seen more than once accumulates its values into a []string in
// encounter order. Unknown names are never an error: the mapping is
// open-world and classification happens later.
func Parse(args []string) Options {
	opts := Options{}
	var positionals []string
	terminated := false

	for i := 0; i < len(args); i++ {
		tok := args[i]

		switch {
		case terminated || !isFlagToken(tok):
			positionals = append(positionals, tok)

		case tok == "--":
			terminated = true

		default:
			name := strings.TrimLeft(tok, "-")

			if eq := strings.IndexByte(name, '='); eq >= 0 {
				opts.accumulate(name[:eq], name[eq+1:])
				continue
			}
			if rest, negated := strings.CutPrefix(name, "no-"); negated && rest != "" {
				opts.accumulate(rest, false)
				continue
			}
			if i+1 < len(args) && !isFlagToken(args[i+1]) && !terminated {
				opts.accumulate(name, args[i+1])
				i++
				continue
			}
			opts.accumulate(name, true)
		}
	}

	opts.SetPositionals(positionals)
	return opts
}

// isFlagToken reports whether tok starts a flag. A lone "-" is a
// conventional stdin placeholder and counts as positional.
func isFlagToken(tok string) bool {
	return len(tok) > 1 && tok[0] == '-'
}

// accumulate records value under name, promoting repeated occurrences
// to a []string in encounter order. Mixed bool/string repetitions keep
// the stringified forms so no occurrence is dropped.
func (o Options) accumulate(name string, value any) {
	prev, seen := o[name]
	if !seen {
		o[name] = value
		return
	}
	list, ok := prev.([]string)
	if !ok {
		list = []string{stringify(prev)}
	}
	o[name] = append(list, stringify(value))
}
