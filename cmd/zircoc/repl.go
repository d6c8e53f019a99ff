package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/zirco-lang/zircoc/internal/ast"
	"github.com/zirco-lang/zircoc/internal/typecheck"
)

var (
	replBold = color.New(color.Bold).SprintFunc()
	replDim  = color.New(color.Faint).SprintFunc()
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively type-check single function declarations",
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepl(os.Stdout)
			return nil
		},
	}
}

// runRepl is a liner-backed interactive type-checker/pretty-printer loop
// (SPEC_FULL.md §2's "interactive mode" ambient component), grounded on
// the teacher's internal/repl.REPL.Start: a liner.Liner with history and
// multiline input, reading one AST-JSON function declaration per entry
// and printing its type-checked tree. It is a debugging aid, not part of
// the core pipeline, so it reads the same JSON-encoded-AST fragments the
// `build`/`check` commands do rather than Zirco source text.
func runRepl(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := filepath.Join(os.TempDir(), ".zircoc_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintln(out, replBold("zircoc repl"))
	fmt.Fprintln(out, replDim("Paste one FuncDecl/StructDecl/UnionDecl JSON fragment per entry, :quit to exit"))

	for {
		input, err := line.Prompt("zirco> ")
		if err != nil {
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if input == ":quit" || input == ":q" {
			break
		}

		prog := &ast.Program{}
		n, err := ast.DecodeProgram([]byte(`{"type":"Program","funcs":[` + input + `]}`))
		if err == nil {
			prog = n
		} else if fd, err2 := decodeSingleDecl(input); err2 == nil {
			prog = fd
		} else {
			fmt.Fprintln(out, replDim(err.Error()))
			continue
		}

		tprog, err := typecheck.CheckProgram(prog)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprintf(out, "%+v\n", tprog)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// decodeSingleDecl falls back to treating input as a bare StructDecl or
// UnionDecl JSON fragment when it is not a FuncDecl.
func decodeSingleDecl(input string) (*ast.Program, error) {
	if n, err := ast.DecodeProgram([]byte(`{"type":"Program","structs":[` + input + `]}`)); err == nil {
		return n, nil
	}
	return ast.DecodeProgram([]byte(`{"type":"Program","unions":[` + input + `]}`))
}
