package codegen

import (
	"github.com/llir/llvm/ir"

	"github.com/zirco-lang/zircoc/internal/span"
	"github.com/zirco-lang/zircoc/internal/tast"
)

// Options controls ambient codegen behavior orthogonal to the TAST itself
// (spec.md §6's `-g` flag, and the source file name recorded in debug info).
type Options struct {
	DebugInfo bool
	Filename  string
}

// GenerateModule lowers an entire typed program into one *ir.Module,
// grounded on the teacher's two-pass declareFunction/generateFunction
// split (_examples/other_examples's dshills-alas LLVMCodegen): every
// function signature is declared before any body is generated, so mutual
// recursion and forward calls resolve without a second pass over the
// TAST.
func GenerateModule(prog *tast.Program, opts Options) *ir.Module {
	module := ir.NewModule()
	mc := &ModuleCtx{Module: module, Functions: make(map[string]*ir.Func, len(prog.Funcs))}
	dbg := NewDebugScope(module, opts.DebugInfo, opts.Filename)

	for _, fd := range prog.Funcs {
		llvmFunc := module.NewFunc(fd.Name, llvmReturnType(fd.ReturnType))
		for _, p := range fd.Params {
			llvmFunc.Params = append(llvmFunc.Params, ir.NewParam(p.Name, llvmType(p.Type)))
		}
		llvmFunc.Sig.Variadic = fd.Variadic
		mc.Functions[fd.Name] = llvmFunc
	}

	for _, fd := range prog.Funcs {
		if fd.Body == nil {
			continue // declaration-only (extern): no CFG to lower
		}
		generateFunctionBody(mc, dbg, fd)
	}

	return module
}

func generateFunctionBody(mc *ModuleCtx, dbg *DebugScope, fd tast.FuncDecl) {
	llvmFunc := mc.Functions[fd.Name]
	entry := llvmFunc.NewBlock("entry")
	line := 0
	if len(fd.Body) > 0 {
		line = lineOf(fd.Body[0].Sp)
	}
	fnDbg := dbg.EnterFunction(llvmFunc, fd.Name, line)

	fc := &FunctionCtx{Module: mc, Fn: llvmFunc, EntryBlock: entry, DebugScope: fnDbg}
	scope := NewCgScope()

	// Parameter allocas sit at the function's own opening line, not a
	// statement's, so they are attached to fnDbg against a synthetic point
	// span rather than a per-param span the TAST doesn't carry; Attach only
	// reads sp.Start (lineOf), so the filename component is irrelevant here.
	entrySp := span.New("", line, line)

	body := entry
	for i, p := range fd.Params {
		ptr := entry.NewAlloca(llvmType(p.Type))
		fnDbg.Attach(&ptr.Metadata, entrySp)
		body.NewStore(llvmFunc.Params[i], ptr)
		scope.Insert(p.Name, ptr)
	}

	bc := &BlockCtx{Scope: scope, Debug: fnDbg}
	end, terminated := cgBlock(fc, bc, body, fd.Body)
	if !terminated {
		// Reached only for a Unit-returning function whose TAST somehow
		// lacks a trailing ReturnStmt; the type-checker's MustReturn(Unit)
		// rule (spec.md §4.3 step 5) always injects one, so this is a
		// backstop against that invariant rather than an expected path.
		end.NewRet(nil)
	}
}
