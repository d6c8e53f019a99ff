package codegen

import (
	"github.com/llir/llvm/ir"
)

// LoopBreakaway records where `break`/`continue` branch to while generating
// a loop body, grounded on original_source/compiler/zrc_codegen/src/stmt.rs's
// struct of the same name: OnBreak is the loop's exit block, OnContinue is
// the block a `continue` should jump to (the condition/header block for
// `while`/`do-while`, the latch block for `for`, so the post-expression
// still runs).
type LoopBreakaway struct {
	OnBreak    *ir.Block
	OnContinue *ir.Block
}

// ModuleCtx is shared, read-only state for the whole translation unit: the
// module being built and every declared function/global, populated by a
// first declaration pass before any body is generated (spec.md §5:
// single-owner *ir.Module, no locking, because generation is single-
// threaded and strictly source-ordered).
type ModuleCtx struct {
	Module    *ir.Module
	Functions map[string]*ir.Func
}

// FunctionCtx is the plain-record bundle threaded through one function's
// codegen (spec.md §9's design note: "plain-record builder contexts", not
// an object with hidden mutable cursor state — every helper takes and
// returns the relevant *ir.Block explicitly).
type FunctionCtx struct {
	Module     *ModuleCtx
	Fn         *ir.Func
	EntryBlock *ir.Block // every alloca is hoisted here, mirroring a real LLVM frontend's single-entry-allocas convention
	DebugScope *DebugScope
}

// BlockCtx is the per-basic-block state: the scope visible at this point,
// the active loop breakaway target, if any (nil outside a loop body), and
// the debug-info lexical scope every instruction built against this
// BlockCtx should be attached under.
type BlockCtx struct {
	Scope     *CgScope
	Breakaway *LoopBreakaway
	Debug     *DebugScope
}

// Enter clones bc for a nested lexical block (if/while/for/match body),
// matching internal/scope.Scope's clone-on-enter contract at codegen time,
// and nests a DILexicalBlock under the enclosing debug scope at line
// (spec.md §4.7: every `{ ... }` introduces its own lexical block).
func (bc *BlockCtx) Enter(line int) *BlockCtx {
	return &BlockCtx{Scope: bc.Scope.Clone(), Breakaway: bc.Breakaway, Debug: bc.Debug.EnterLexicalBlock(line)}
}

// EnterLoop clones bc for a loop body, installing a new breakaway target.
// The debug scope is carried through unchanged; the loop body's own `{ }`
// gets its lexical block from the Enter call inside cgBlock, not here.
func (bc *BlockCtx) EnterLoop(breakaway LoopBreakaway) *BlockCtx {
	return &BlockCtx{Scope: bc.Scope.Clone(), Breakaway: &breakaway, Debug: bc.Debug}
}
