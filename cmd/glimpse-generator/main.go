// Package main provides the CLI entrypoint for glimpse-generator.
//
// glimpse-generator reads styleable attribute annotations from struct field
// comments and generates one binding per annotated struct:
//   - gen writes the bindings next to their targets
//   - check reports diagnostics without writing anything
//   - analyze prints the discovered targets
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(&options{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
