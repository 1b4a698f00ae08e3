// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/capreg/capreg/cmd/capreg"

func main() {
	cmd.Execute()
}
