// SPDX-License-Identifier: MPL-2.0

// Package nodeenv answers two questions about the node installation
// the launcher is about to use: its major version, and whether it
// still recognizes a given runtime flag. Both answers come from the
// node binary itself so version-gated rewrites track reality rather
// than a compiled-in table.
package nodeenv

import (
	"bytes"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Env is the environment surface the compatibility rules consume.
type Env interface {
	// MajorVersion returns the runtime's major version, or 0 when the
	// runtime could not be probed.
	MajorVersion() int
	// Supports reports whether the runtime accepts the flag name
	// (spelled without leading dashes).
	Supports(flag string) bool
}

// Probe queries a node binary lazily and memoizes the result for the
// lifetime of the process. The zero value is not usable; construct
// with NewProbe.
type Probe struct {
	nodePath string

	once  sync.Once
	major int
	flags map[string]struct{}
}

// NewProbe returns a Probe for the node binary at nodePath.
func NewProbe(nodePath string) *Probe {
	return &Probe{nodePath: nodePath}
}

// MajorVersion implements Env.
func (p *Probe) MajorVersion() int {
	p.run()
	return p.major
}

// Supports implements Env. An unprobeable runtime supports nothing,
// which biases the rules toward the modern flag spellings.
func (p *Probe) Supports(flag string) bool {
	p.run()
	_, ok := p.flags["--"+flag]
	return ok
}

func (p *Probe) run() {
	p.once.Do(func() {
		p.major = probeMajor(p.nodePath)
		p.flags = probeFlags(p.nodePath)
	})
}

// probeMajor evaluates process.version, e.g. "v22.11.0" -> 22.
func probeMajor(nodePath string) int {
	out, err := capture(nodePath, "-p", "process.version")
	if err != nil {
		log.Debug("node version probe failed", "node", nodePath, "err", err)
		return 0
	}
	version := strings.TrimPrefix(strings.TrimSpace(out), "v")
	majorText, _, _ := strings.Cut(version, ".")
	major, err := strconv.Atoi(majorText)
	if err != nil {
		log.Debug("unparseable node version", "node", nodePath, "output", out)
		return 0
	}
	return major
}

// probeFlags evaluates process.allowedNodeEnvironmentFlags, one flag
// spelling per line, each with its leading dashes.
func probeFlags(nodePath string) map[string]struct{} {
	const expr = "[...process.allowedNodeEnvironmentFlags].join('\\n')"
	out, err := capture(nodePath, "-p", expr)
	if err != nil {
		log.Debug("node flag registry probe failed", "node", nodePath, "err", err)
		return map[string]struct{}{}
	}
	flags := make(map[string]struct{})
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			flags[line] = struct{}{}
		}
	}
	return flags
}

func capture(path string, args ...string) (string, error) {
	var stdout bytes.Buffer
	cmd := exec.Command(path, args...)
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return stdout.String(), nil
}

// Static is a fixed Env for tests and offline defaults.
type Static struct {
	Major int
	Flags []string
}

// MajorVersion implements Env.
func (s Static) MajorVersion() int { return s.Major }

// Supports implements Env.
func (s Static) Supports(flag string) bool {
	for _, f := range s.Flags {
		if f == flag {
			return true
		}
	}
	return false
}
