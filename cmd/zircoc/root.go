package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the `zircoc` cobra command tree: build, check, repl,
// config (SPEC_FULL.md §6's concrete CLI surface).
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "zircoc",
		Short: "Zirco middle-end: type-checker and LLVM code generator",
	}
	root.AddCommand(newBuildCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newReplCmd())
	root.AddCommand(newConfigCmd())
	return root
}
