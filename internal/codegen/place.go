package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/zirco-lang/zircoc/internal/tast"
	"github.com/zirco-lang/zircoc/internal/types"
)

// cgPlace implements spec.md §9's cg_place: lowers an l-value to its
// address, never its loaded value, grounded on
// original_source/compiler/zrc_codegen/src/expr/place.rs's per-PlaceKind
// table.
func cgPlace(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, p tast.Place) BasicBlockAnd[value.Value] {
	switch k := p.Kind.(type) {
	case tast.Variable:
		return and(bb, bc.Scope.Lookup(k.Name))

	case tast.Deref:
		// The pointer's own value IS the dereferenced place's address; no
		// load is issued here, only when the place is later read via
		// cgExpr's Load case.
		return cgExpr(fc, bc, bb, k.Pointer)

	case tast.IndexPlace:
		ptrE := cgExpr(fc, bc, bb, k.Ptr)
		idxE := cgExpr(fc, bc, ptrE.Block, k.Idx)
		elemTy := llvmType(*k.Ptr.InferredType.Pointee)
		gep := idxE.Block.NewGetElementPtr(elemTy, ptrE.Value, idxE.Value)
		bc.Debug.Attach(&gep.Metadata, p.Sp)
		return and(idxE.Block, gep)

	case tast.DotPlace:
		baseE := cgPlace(fc, bc, bb, *k.Base)
		baseTy := k.Base.InferredType

		if baseTy.Kind == types.KindUnion {
			// Every field of a union addresses the same payload slot
			// (UnionPayloadIndex): no reinterpretation of WHERE the field
			// lives, just a GEP to the fixed payload index regardless of
			// field name. The slot itself is stored as the union's widest
			// member (widestField), so a narrower/differently-typed field
			// needs its pointer bitcast to its own declared type before any
			// load/store touches it — without that, a load/store built
			// against this address would carry the wrong pointee type
			// (e.g. storing an i8 through a pointer GEP'd as i32). The
			// discriminant tag alongside this slot is maintained separately
			// by cgAssignment, since a plain read here (e.g. nested Dot,
			// AddressOf) must not disturb it.
			aggTy := llvmType(baseTy)
			gep := baseE.Block.NewGetElementPtr(aggTy, baseE.Value,
				constant.NewInt(lltypes.I32, 0), constant.NewInt(lltypes.I32, UnionPayloadIndex))
			bc.Debug.Attach(&gep.Metadata, p.Sp)

			fieldTy, ok := baseTy.FieldType(k.Field)
			if !ok {
				panic("internal invariant violation: DotPlace field " + k.Field + " missing from its own type after type-checking")
			}
			cast := baseE.Block.NewBitCast(gep, lltypes.NewPointer(llvmType(fieldTy)))
			bc.Debug.Attach(&cast.Metadata, p.Sp)
			return and(baseE.Block, cast)
		}

		idx, ok := baseTy.FieldIndex(k.Field)
		if !ok {
			panic("internal invariant violation: DotPlace field " + k.Field + " missing from its own type after type-checking")
		}
		aggTy := llvmType(baseTy)
		zero := constant.NewInt(lltypes.I32, 0)
		fieldIdx := constant.NewInt(lltypes.I32, int64(idx))
		gep := baseE.Block.NewGetElementPtr(aggTy, baseE.Value, zero, fieldIdx)
		bc.Debug.Attach(&gep.Metadata, p.Sp)
		return and(baseE.Block, gep)

	default:
		panic("internal invariant violation: unknown tast.PlaceKind")
	}
}
