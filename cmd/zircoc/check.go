package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zirco-lang/zircoc/internal/ast"
	"github.com/zirco-lang/zircoc/internal/typecheck"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Type-check a Zirco AST-JSON file without generating code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			prog, err := ast.DecodeProgram(data)
			if err != nil {
				return err
			}
			if _, err := typecheck.CheckProgram(prog); err != nil {
				return renderTypecheckError(err, args[0])
			}
			fmt.Println("ok")
			return nil
		},
	}
	return cmd
}
