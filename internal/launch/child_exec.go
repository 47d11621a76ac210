// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"os"
	"os/exec"

	"testpilot-cli/pkg/types"
)

// execChild is the production Child backed by os/exec. Stdio is
// inherited from the parent so the runner owns the terminal.
type execChild struct {
	cmd *exec.Cmd
}

func newExecChild(spec Spec) Child {
	cmd := exec.Command(spec.NodePath, spec.Argv()...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return &execChild{cmd: cmd}
}

func (c *execChild) Start() error {
	return c.cmd.Start()
}

func (c *execChild) Signal(sig os.Signal) error {
	return c.cmd.Process.Signal(sig)
}

func (c *execChild) Wait() Status {
	err := c.cmd.Wait()
	if err == nil {
		return Status{Code: 0}
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return statusFromExitError(exitErr)
	}
	// Wait itself failed; treat as a generic failure code.
	return Status{Code: types.ExitCode(1)}
}
