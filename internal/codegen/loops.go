package codegen

import (
	"github.com/llir/llvm/ir"

	"github.com/zirco-lang/zircoc/internal/span"
	"github.com/zirco-lang/zircoc/internal/tast"
)

// cgWhileStmt lowers `while (cond) body` into header/body/exit blocks,
// grounded on original_source/compiler/zrc_codegen/src/stmt/loops.rs's
// cg_while_stmt. `continue` re-enters header (re-checks cond); `break`
// jumps straight to exit. The exit block is always reachable via the
// zero-iteration path, so a while loop never reports terminated.
func cgWhileStmt(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, sp span.Span, n tast.WhileStmt) (*ir.Block, bool) {
	fn := fc.Fn
	headerBB := fn.NewBlock("")
	bodyBB := fn.NewBlock("")
	exitBB := fn.NewBlock("")

	entry := bb.NewBr(headerBB)
	bc.Debug.Attach(&entry.Metadata, sp)

	condE := cgExpr(fc, bc, headerBB, n.Cond)
	condBr := condE.Block.NewCondBr(condE.Value, bodyBB, exitBB)
	bc.Debug.Attach(&condBr.Metadata, sp)

	loopBc := bc.EnterLoop(LoopBreakaway{OnBreak: exitBB, OnContinue: headerBB})
	bodyEnd, bodyTerm := cgBlock(fc, loopBc, bodyBB, n.Body)
	if !bodyTerm {
		br := bodyEnd.NewBr(headerBB)
		bc.Debug.Attach(&br.Metadata, sp)
	}

	return exitBB, false
}

// cgDoWhileStmt lowers `do body while (cond);` into body/header/exit
// blocks: the body always runs once before the condition is first
// checked. `continue` jumps to header (the condition check); `break`
// jumps to exit.
func cgDoWhileStmt(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, sp span.Span, n tast.DoWhileStmt) (*ir.Block, bool) {
	fn := fc.Fn
	bodyBB := fn.NewBlock("")
	headerBB := fn.NewBlock("")
	exitBB := fn.NewBlock("")

	entry := bb.NewBr(bodyBB)
	bc.Debug.Attach(&entry.Metadata, sp)

	loopBc := bc.EnterLoop(LoopBreakaway{OnBreak: exitBB, OnContinue: headerBB})
	bodyEnd, bodyTerm := cgBlock(fc, loopBc, bodyBB, n.Body)
	if !bodyTerm {
		br := bodyEnd.NewBr(headerBB)
		bc.Debug.Attach(&br.Metadata, sp)
	}

	condE := cgExpr(fc, bc, headerBB, n.Cond)
	condBr := condE.Block.NewCondBr(condE.Value, bodyBB, exitBB)
	bc.Debug.Attach(&condBr.Metadata, sp)

	return exitBB, false
}

// cgForStmt lowers `for (init; cond; post) body` into
// preheader/header/body/latch/exit blocks, the canonical five-block shape
// from loops.rs: init runs once in preheader, header re-checks cond,
// latch runs post before looping back to header. `continue` jumps to
// latch (so post still runs); `break` jumps to exit.
func cgForStmt(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, sp span.Span, n tast.ForStmt) (*ir.Block, bool) {
	fn := fc.Fn
	forBc := bc.Enter(lineOf(sp))

	preheaderBB := fn.NewBlock("")
	headerBB := fn.NewBlock("")
	bodyBB := fn.NewBlock("")
	latchBB := fn.NewBlock("")
	exitBB := fn.NewBlock("")

	entry := bb.NewBr(preheaderBB)
	forBc.Debug.Attach(&entry.Metadata, sp)

	initEnd := cgLetDeclarations(fc, forBc, preheaderBB, sp, tast.DeclarationList{Declarations: n.Init})
	initBr := initEnd.NewBr(headerBB)
	forBc.Debug.Attach(&initBr.Metadata, sp)

	if n.Cond != nil {
		condE := cgExpr(fc, forBc, headerBB, *n.Cond)
		condBr := condE.Block.NewCondBr(condE.Value, bodyBB, exitBB)
		forBc.Debug.Attach(&condBr.Metadata, sp)
	} else {
		br := headerBB.NewBr(bodyBB)
		forBc.Debug.Attach(&br.Metadata, sp)
	}

	loopBc := forBc.EnterLoop(LoopBreakaway{OnBreak: exitBB, OnContinue: latchBB})
	bodyEnd, bodyTerm := cgBlock(fc, loopBc, bodyBB, n.Body)
	if !bodyTerm {
		br := bodyEnd.NewBr(latchBB)
		forBc.Debug.Attach(&br.Metadata, sp)
	}

	if n.Post != nil {
		postE := cgExpr(fc, forBc, latchBB, *n.Post)
		br := postE.Block.NewBr(headerBB)
		forBc.Debug.Attach(&br.Metadata, sp)
	} else {
		br := latchBB.NewBr(headerBB)
		forBc.Debug.Attach(&br.Metadata, sp)
	}

	return exitBB, false
}
