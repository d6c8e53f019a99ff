package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"

	"github.com/zirco-lang/zircoc/internal/span"
	"github.com/zirco-lang/zircoc/internal/tast"
)

// cgBlock implements spec.md §9's cg_block: lowers a sequence of typed
// statements into bb, cloning bc's scope on entry exactly as the
// type-checker's TypeBlock clones its scope (internal/scope.Scope). It
// returns the block execution continues from and whether that block is
// already terminated, mirroring original_source/compiler/zrc_codegen's
// `Option<BasicBlock>` convention ("None" there is "terminated = true"
// here): a caller must not add its own terminator to a block this function
// reports as terminated.
func cgBlock(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, stmts []tast.TypedStmt) (*ir.Block, bool) {
	line := 0
	if len(stmts) > 0 {
		line = lineOf(stmts[0].Sp)
	}
	inner := bc.Enter(line)
	block := bb
	for _, stmt := range stmts {
		var terminated bool
		block, terminated = cgStmt(fc, inner, block, stmt)
		if terminated {
			return block, true
		}
	}
	return block, false
}

func cgStmt(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, stmt tast.TypedStmt) (*ir.Block, bool) {
	switch k := stmt.Kind.(type) {
	case tast.BreakStmt:
		br := bb.NewBr(bc.Breakaway.OnBreak)
		bc.Debug.Attach(&br.Metadata, stmt.Sp)
		return bb, true

	case tast.ContinueStmt:
		br := bb.NewBr(bc.Breakaway.OnContinue)
		bc.Debug.Attach(&br.Metadata, stmt.Sp)
		return bb, true

	case tast.UnreachableStmt:
		unreach := bb.NewUnreachable()
		bc.Debug.Attach(&unreach.Metadata, stmt.Sp)
		return bb, true

	case tast.DeclarationList:
		return cgLetDeclarations(fc, bc, bb, stmt.Sp, k), false

	case tast.IfStmt:
		return cgIfStmt(fc, bc, bb, stmt.Sp, k)

	case tast.WhileStmt:
		return cgWhileStmt(fc, bc, bb, stmt.Sp, k)

	case tast.DoWhileStmt:
		return cgDoWhileStmt(fc, bc, bb, stmt.Sp, k)

	case tast.ForStmt:
		return cgForStmt(fc, bc, bb, stmt.Sp, k)

	case tast.SwitchCase:
		return cgSwitchStmt(fc, bc, bb, stmt.Sp, k)

	case tast.MatchStmt:
		return cgMatchStmt(fc, bc, bb, stmt.Sp, k)

	case tast.BlockStmt:
		return cgBlock(fc, bc, bb, k.Body)

	case tast.ExprStmt:
		e := cgExpr(fc, bc, bb, k.X)
		return e.Block, false

	case tast.ReturnStmt:
		if k.Value == nil {
			ret := bb.NewRet(nil)
			bc.Debug.Attach(&ret.Metadata, stmt.Sp)
			return bb, true
		}
		e := cgExpr(fc, bc, bb, *k.Value)
		ret := e.Block.NewRet(e.Value)
		bc.Debug.Attach(&ret.Metadata, stmt.Sp)
		return e.Block, true

	default:
		panic(fmt.Sprintf("internal invariant violation: unknown tast.StmtKind %T", stmt.Kind))
	}
}

// cgLetDeclarations hoists one alloca per binding into fc.EntryBlock (the
// single-entry-allocas convention), storing the initializer, if any, at
// the point of declaration rather than in the entry block. sp is the
// enclosing DeclarationList's span; individual LetDeclarations don't carry
// their own in the TAST, so every binding's alloca/store shares it.
func cgLetDeclarations(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, sp span.Span, decls tast.DeclarationList) *ir.Block {
	block := bb
	for _, d := range decls.Declarations {
		ptr := fc.EntryBlock.NewAlloca(llvmType(d.Type))
		bc.Debug.Attach(&ptr.Metadata, sp)
		bc.Scope.Insert(d.Name, ptr)
		if d.Init != nil {
			initE := cgExpr(fc, bc, block, *d.Init)
			st := initE.Block.NewStore(initE.Value, ptr)
			bc.Debug.Attach(&st.Metadata, sp)
			block = initE.Block
		}
	}
	return block
}

// cgIfStmt builds the then/else/merge diamond. Either or both arms may
// come back already terminated (e.g. a `return` on every path); merge is
// only reachable, and only then given an explicit branch, from an arm that
// is not. If neither arm reaches it, merge itself is unreachable and the
// whole statement reports terminated=true.
func cgIfStmt(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, sp span.Span, n tast.IfStmt) (*ir.Block, bool) {
	fn := fc.Fn
	condE := cgExpr(fc, bc, bb, n.Cond)

	thenBB := fn.NewBlock("")
	elseBB := fn.NewBlock("")
	condBr := condE.Block.NewCondBr(condE.Value, thenBB, elseBB)
	bc.Debug.Attach(&condBr.Metadata, sp)

	mergeBB := fn.NewBlock("")
	reachesMerge := false

	thenEnd, thenTerm := cgBlock(fc, bc, thenBB, n.Then)
	if !thenTerm {
		br := thenEnd.NewBr(mergeBB)
		bc.Debug.Attach(&br.Metadata, sp)
		reachesMerge = true
	}

	if n.Else != nil {
		elseEnd, elseTerm := cgBlock(fc, bc, elseBB, n.Else)
		if !elseTerm {
			br := elseEnd.NewBr(mergeBB)
			bc.Debug.Attach(&br.Metadata, sp)
			reachesMerge = true
		}
	} else {
		br := elseBB.NewBr(mergeBB)
		bc.Debug.Attach(&br.Metadata, sp)
		reachesMerge = true
	}

	if !reachesMerge {
		unreach := mergeBB.NewUnreachable()
		bc.Debug.Attach(&unreach.Metadata, sp)
		return mergeBB, true
	}
	return mergeBB, false
}
