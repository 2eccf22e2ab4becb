// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"livingroom/repl"
)

func main() {
	if err := repl.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "repl: %v\n", err)
		os.Exit(1)
	}
}
