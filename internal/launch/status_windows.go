// SPDX-License-Identifier: MPL-2.0

//go:build windows

package launch

import (
	"os/exec"

	"testpilot-cli/pkg/types"
)

// statusFromExitError: Windows has no signal-death wait status, so
// every abnormal termination surfaces as an exit code.
func statusFromExitError(exitErr *exec.ExitError) Status {
	return Status{Code: types.ExitCode(exitErr.ExitCode())}
}
