// SPDX-License-Identifier: MPL-2.0

//go:build windows

package launch

import (
	"os"
	"syscall"

	"testpilot-cli/pkg/types"
)

// Raise cannot re-deliver a signal on Windows; the closest observable
// equivalent is the conventional 128+signal exit code.
func Raise(sig syscall.Signal) error {
	os.Exit(int(types.FromSignal(int(sig))))
	return nil
}
