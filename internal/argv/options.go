// SPDX-License-Identifier: MPL-2.0

// Package argv models a flat command-line option mapping and converts
// between it and raw argument vectors. Parsing is open-world: any flag
// spelling is accepted and preserved, because the launcher cannot know
// the vocabulary of the two programs it feeds.
package argv

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// PositionalKey is the reserved mapping key holding the ordered list of
// bare (non-flag) tokens. It can never collide with a flag name because
// parsed names have their leading dashes stripped and "_" is not a
// valid flag spelling.
const PositionalKey = "_"

// Options is a parsed option mapping: flag name (without leading
// dashes) to value. Values are bool for switches, string for valued
// options, and []string for repeated options or the positional list.
type Options map[string]any

// AliasTable maps a canonical option name to its alternate spellings.
// It is consulted only while unparsing, to collapse aliases back onto
// the canonical name.
type AliasTable map[string][]string

// Positionals returns the positional-argument list, or nil when none
// were recorded.
func (o Options) Positionals() []string {
	pos, _ := o[PositionalKey].([]string)
	return pos
}

// SetPositionals replaces the positional-argument list. An empty list
// removes the reserved key entirely.
func (o Options) SetPositionals(pos []string) {
	if len(pos) == 0 {
		delete(o, PositionalKey)
		return
	}
	o[PositionalKey] = pos
}

// Names returns the non-positional option names in sorted order.
// Sorting keeps every downstream traversal deterministic.
func (o Options) Names() []string {
	names := maps.Keys(o)
	names = slices.DeleteFunc(names, func(n string) bool { return n == PositionalKey })
	slices.Sort(names)
	return names
}

// Clone returns a deep copy of the mapping. Slice values are copied so
// mutations of the clone never alias the original.
func (o Options) Clone() Options {
	dup := make(Options, len(o))
	for name, value := range o {
		if list, ok := value.([]string); ok {
			dup[name] = slices.Clone(list)
			continue
		}
		dup[name] = value
	}
	return dup
}

// Equal reports whether two mappings hold the same names and values.
func (o Options) Equal(other Options) bool {
	if len(o) != len(other) {
		return false
	}
	for name, value := range o {
		got, ok := other[name]
		if !ok {
			return false
		}
		if list, isList := value.([]string); isList {
			gotList, gotIsList := got.([]string)
			if !gotIsList || !slices.Equal(list, gotList) {
				return false
			}
			continue
		}
		if got != value {
			return false
		}
	}
	return true
}

// canonicalize returns the reverse alias index: alias spelling to
// canonical name.
func (t AliasTable) canonicalize() map[string]string {
	rev := make(map[string]string)
	for canonical, aliases := range t {
		for _, alias := range aliases {
			rev[alias] = canonical
		}
	}
	return rev
}

// stringify renders a scalar option value as a single argument token.
func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
