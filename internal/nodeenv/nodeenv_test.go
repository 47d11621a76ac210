// SPDX-License-Identifier: MPL-2.0

package nodeenv

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestStatic(t *testing.T) {
	t.Parallel()

	env := Static{Major: 10, Flags: []string{"inspect", "inspect-brk"}}

	if got := env.MajorVersion(); got != 10 {
		t.Errorf("MajorVersion() = %d, want 10", got)
	}
	if !env.Supports("inspect") {
		t.Error("Supports(inspect) = false, want true")
	}
	if env.Supports("debug") {
		t.Error("Supports(debug) = true, want false")
	}
}

func TestProbeAgainstFakeNode(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("fake node is a shell script")
	}

	// A stand-in binary that answers the two probe expressions the way
	// a node 14 installation would.
	script := `#!/bin/sh
case "$2" in
  process.version) echo "v14.17.3" ;;
  *) printf -- '--inspect\n--inspect-brk\n--max-old-space-size\n' ;;
esac
`
	dir := t.TempDir()
	fake := filepath.Join(dir, "node")
	if err := os.WriteFile(fake, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	probe := NewProbe(fake)

	if got := probe.MajorVersion(); got != 14 {
		t.Errorf("MajorVersion() = %d, want 14", got)
	}
	if !probe.Supports("inspect") {
		t.Error("Supports(inspect) = false, want true")
	}
	if probe.Supports("debug") {
		t.Error("Supports(debug) = true, want false")
	}
}

func TestProbeFailureDegrades(t *testing.T) {
	t.Parallel()

	probe := NewProbe(filepath.Join(t.TempDir(), "missing-binary"))

	if got := probe.MajorVersion(); got != 0 {
		t.Errorf("MajorVersion() = %d, want 0 on probe failure", got)
	}
	if probe.Supports("inspect") {
		t.Error("Supports() = true on probe failure, want false")
	}
}
