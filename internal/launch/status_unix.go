// SPDX-License-Identifier: MPL-2.0

//go:build unix

package launch

import (
	"os/exec"
	"syscall"

	"testpilot-cli/pkg/types"
)

// statusFromExitError distinguishes a signal death from a plain
// non-zero exit via the platform wait status.
func statusFromExitError(exitErr *exec.ExitError) Status {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return Status{Signal: ws.Signal(), Signaled: true}
	}
	return Status{Code: types.ExitCode(exitErr.ExitCode())}
}
