// Command zircoc is the thin driver that wires the type-checker and code
// generator together end to end (SPEC_FULL.md §1's "added CLI driver
// module"): it owns file I/O, diagnostic rendering, and exit codes, none
// of which are part of the middle-end's own scope.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
