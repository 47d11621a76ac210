// SPDX-License-Identifier: MPL-2.0

package main

import cmd "testpilot-cli/cmd/testpilot"

func main() {
	cmd.Execute()
}
