package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/zirco-lang/zircoc/internal/span"
	"github.com/zirco-lang/zircoc/internal/tast"
)

// cgSwitchStmt lowers a `switch` into one block per arm plus a shared exit
// block, using LLVM's native `switch` instruction directly since every
// label is already a resolved integer/bool constant (spec.md §4.3's
// typeSwitchCase normalization). When the source has no `default` arm,
// the LLVM switch's required default target is exit itself — unmatched
// values simply fall through, same as the source semantics.
func cgSwitchStmt(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, sp span.Span, n tast.SwitchCase) (*ir.Block, bool) {
	fn := fc.Fn
	scrutE := cgExpr(fc, bc, bb, n.Scrutinee)

	exitBB := fn.NewBlock("")
	var cases []*ir.Case
	defaultBB := exitBB
	anyReachesExit := false

	for _, arm := range n.Cases {
		armBB := fn.NewBlock("")
		armEnd, armTerm := cgBlock(fc, bc, armBB, arm.Body)
		if !armTerm {
			br := armEnd.NewBr(exitBB)
			bc.Debug.Attach(&br.Metadata, sp)
			anyReachesExit = true
		}

		if arm.Default {
			defaultBB = armBB
			continue
		}
		labelE := cgExpr(fc, bc, scrutE.Block, *arm.Label)
		label, ok := labelE.Value.(*constant.Int)
		if !ok {
			panic("internal invariant violation: switch case label is not a resolved integer constant")
		}
		cases = append(cases, ir.NewCase(label, armBB))
	}

	if defaultBB == exitBB {
		anyReachesExit = true
	}
	sw := scrutE.Block.NewSwitch(scrutE.Value, defaultBB, cases...)
	bc.Debug.Attach(&sw.Metadata, sp)

	if !anyReachesExit {
		unreach := exitBB.NewUnreachable()
		bc.Debug.Attach(&unreach.Metadata, sp)
		return exitBB, true
	}
	return exitBB, false
}

// cgMatchStmt lowers a `match` over a union scrutinee. The scrutinee's
// union carries an explicit i32 discriminant (UnionTagIndex, stamped on
// every field write by cgAssignment) precisely so this dispatch is
// possible at all: spec.md's Union type is otherwise untagged, overlapping
// storage, which cannot by itself drive a runtime branch — see
// DESIGN.md's Open Question on union representation for the reasoning.
// Exhaustiveness is already enforced by the type-checker (typeMatch), so
// the LLVM switch's required default target is only reached by a
// wildcard arm, or is unreachable when the match covers every field.
func cgMatchStmt(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, sp span.Span, n tast.MatchStmt) (*ir.Block, bool) {
	load, ok := n.Scrutinee.Kind.(tast.Load)
	if !ok {
		panic("internal invariant violation: match scrutinee is not a place load after type-checking")
	}
	place := load.Place

	fn := fc.Fn
	baseE := cgPlace(fc, bc, bb, place)
	aggTy := llvmType(place.InferredType)
	tagPtr := baseE.Block.NewGetElementPtr(aggTy, baseE.Value,
		constant.NewInt(lltypes.I32, 0), constant.NewInt(lltypes.I32, UnionTagIndex))
	bc.Debug.Attach(&tagPtr.Metadata, sp)
	tagVal := baseE.Block.NewLoad(lltypes.I32, tagPtr)
	bc.Debug.Attach(&tagVal.Metadata, sp)
	block := baseE.Block

	exitBB := fn.NewBlock("")
	var cases []*ir.Case
	var wildcardBB *ir.Block
	anyReachesExit := false

	for _, arm := range n.Cases {
		armBB := fn.NewBlock("")
		armBc := bc.Enter(lineOf(sp))
		bodyStart := armBB
		if arm.BindingPlace != nil {
			ptrE := cgPlace(fc, armBc, armBB, *arm.BindingPlace)
			armBc.Scope.Insert(arm.Binding, ptrE.Value)
			bodyStart = ptrE.Block
		}

		armEnd, armTerm := cgBlock(fc, armBc, bodyStart, arm.Body)
		if !armTerm {
			br := armEnd.NewBr(exitBB)
			armBc.Debug.Attach(&br.Metadata, sp)
			anyReachesExit = true
		}

		if arm.Wildcard {
			wildcardBB = armBB
			continue
		}
		idx, ok := place.InferredType.FieldIndex(arm.Variant)
		if !ok {
			panic("internal invariant violation: match variant " + arm.Variant + " missing from its own union after type-checking")
		}
		cases = append(cases, ir.NewCase(constant.NewInt(lltypes.I32, int64(idx)), armBB))
	}

	dflt := wildcardBB
	if dflt == nil {
		dflt = exitBB
		anyReachesExit = true
	}
	sw := block.NewSwitch(tagVal, dflt, cases...)
	bc.Debug.Attach(&sw.Metadata, sp)

	if !anyReachesExit {
		unreach := exitBB.NewUnreachable()
		bc.Debug.Attach(&unreach.Metadata, sp)
		return exitBB, true
	}
	return exitBB, false
}
