package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zirco-lang/zircoc/internal/ast"
	"github.com/zirco-lang/zircoc/internal/codegen"
	"github.com/zirco-lang/zircoc/internal/config"
	"github.com/zirco-lang/zircoc/internal/diagnostics"
	"github.com/zirco-lang/zircoc/internal/typecheck"
)

// emitKind enumerates spec.md §6's `--emit` targets.
const (
	emitLLVM            = "llvm"
	emitAST             = "ast"
	emitASTDebug        = "ast-debug"
	emitASTDebugPretty  = "ast-debug-pretty"
	emitTAST            = "tast"
	emitTASTDebug       = "tast-debug"
	emitTASTDebugPretty = "tast-debug-pretty"
)

func newBuildCmd() *cobra.Command {
	var (
		emit       string
		optLevel   string
		debugInfo  bool
		target     string
		cpu        string
		outPath    string
		force      bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Type-check and lower a Zirco AST-JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigOrDefault(configPath)
			if err != nil {
				return err
			}
			if _, err := config.ParseOptLevel(optLevel); err != nil {
				return err
			}
			if target != "" {
				cfg.Target = target
			}
			if cpu != "" {
				cfg.CPU = cpu
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			prog, err := ast.DecodeProgram(data)
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(outPath, force)
			if err != nil {
				return err
			}
			defer closeOut()

			switch emit {
			case emitAST, emitASTDebug, emitASTDebugPretty:
				fmt.Fprintln(out, ast.PrintProgram(prog))
				return nil
			}

			tprog, err := typecheck.CheckProgram(prog)
			if err != nil {
				return renderTypecheckError(err, args[0])
			}

			switch emit {
			case emitTAST, emitTASTDebug, emitTASTDebugPretty:
				fmt.Fprintf(out, "%+v\n", tprog)
				return nil
			case emitLLVM, "":
				module := codegen.GenerateModule(tprog, codegen.Options{
					DebugInfo: debugInfo || cfg.DebugInfo,
					Filename:  args[0],
				})
				fmt.Fprintln(out, module.String())
				return nil
			default:
				return fmt.Errorf("unrecognized --emit target %q", emit)
			}
		},
	}

	cmd.Flags().StringVar(&emit, "emit", emitLLVM,
		"output format: llvm, ast, ast-debug, ast-debug-pretty, tast, tast-debug, tast-debug-pretty (asm and object are not supported)")
	cmd.Flags().StringVarP(&optLevel, "optimize", "O", "default", "optimization level: 0/1/2/3 or none/default/aggressive")
	cmd.Flags().BoolVarP(&debugInfo, "debug-info", "g", false, "emit DWARF-style debug info")
	cmd.Flags().StringVar(&target, "target", "", "target triple (overrides zircoc.yaml)")
	cmd.Flags().StringVar(&cpu, "cpu", "", "target CPU (overrides zircoc.yaml)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "-", "output path, or - for stdout")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing output file")
	cmd.Flags().StringVar(&configPath, "config", "zircoc.yaml", "path to zircoc.yaml")

	return cmd
}

func renderTypecheckError(err error, file string) error {
	rep, ok := diagnostics.AsReport(err)
	if !ok {
		return err
	}
	diagnostics.NewRenderer().Render(os.Stderr, rep, "")
	return fmt.Errorf("%s: type-check failed", file)
}

func openOutput(path string, force bool) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, nil, fmt.Errorf("%s already exists; pass --force to overwrite", path)
		}
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func loadConfigOrDefault(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err != nil {
		return config.Default(), nil
	}
	return config.Load(path)
}
