// SPDX-License-Identifier: MPL-2.0

//go:build unix

package launch

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// Raise re-delivers sig to the launcher's own process with default
// disposition restored, so the parent's wait status reports the same
// termination cause as the child's. It does not return on success.
func Raise(sig syscall.Signal) error {
	signal.Reset(os.Signal(sig))
	return unix.Kill(os.Getpid(), sig)
}
