// Package codegen lowers a type-checked tast.Program into an LLVM module
// via github.com/llir/llvm, implementing spec.md §6/§9's structured
// basic-block-CFG code generator: one alloca per local, GEP-based
// field/index addressing, and block-per-control-flow-construct.
//
// Grounded on the teacher-adjacent pack example dshills-alas's
// internal/codegen LLVMCodegen (a direct ast-walking emitter against the
// same library), generalized from ALaS's dynamically-typed value model to
// Zirco's statically-typed place/value split.
package codegen

import (
	"fmt"

	lltypes "github.com/llir/llvm/ir/types"

	"github.com/zirco-lang/zircoc/internal/types"
)

// llvmType maps a Zirco types.Type onto its llir/llvm representation. Unit
// lowers to an empty struct type rather than void, so it can still occupy
// a value slot (a Unit-returning function still uses void at the
// signature level; see llvmReturnType).
func llvmType(t types.Type) lltypes.Type {
	switch t.Kind {
	case types.KindUnit:
		return lltypes.NewStruct()
	case types.KindBool:
		return lltypes.I1
	case types.KindInt:
		return lltypes.NewInt(uint64(t.IntWidth.Bits()))
	case types.KindPointer:
		return lltypes.NewPointer(llvmType(*t.Pointee))
	case types.KindStruct, types.KindUnion:
		return llvmAggregateType(t)
	case types.KindFn:
		params := make([]lltypes.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = llvmType(p)
		}
		return lltypes.NewPointer(lltypes.NewFunc(llvmReturnType(*t.Return), params...))
	default:
		panic(fmt.Sprintf("internal invariant violation: unknown type kind %d in llvmType", t.Kind))
	}
}

// llvmAggregateType lowers a struct field-by-field. A union lowers to a
// two-field struct: an i32 discriminant tag at index 0 (`UnionTagIndex`),
// and its widest member at index 1 (`UnionPayloadIndex`), since llir/llvm
// has no native union type. The payload slot is addressed identically
// regardless of which field name is used (spec.md §4.6's "both writes GEP
// to the same address" scenario, preserved exactly), with the tag store
// layered on alongside it purely to make `Match` (spec.md §4.3's
// "pattern-based dispatch on tagged-union-like scrutinees") resolvable at
// codegen time — see DESIGN.md's Open Question on union representation.
func llvmAggregateType(t types.Type) lltypes.Type {
	if t.Kind == types.KindStruct {
		fields := make([]lltypes.Type, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = llvmType(f.Type)
		}
		return lltypes.NewStruct(fields...)
	}
	return lltypes.NewStruct(lltypes.I32, widestField(t))
}

// UnionTagIndex / UnionPayloadIndex are the fixed struct-GEP indices of a
// lowered union's discriminant and payload slots.
const (
	UnionTagIndex     = 0
	UnionPayloadIndex = 1
)

func widestField(t types.Type) lltypes.Type {
	var widest lltypes.Type = lltypes.NewStruct()
	widestBits := int64(-1)
	for _, f := range t.Fields {
		ft := llvmType(f.Type)
		if bits := approxBitSize(ft); bits > widestBits {
			widest, widestBits = ft, bits
		}
	}
	return widest
}

func approxBitSize(t lltypes.Type) int64 {
	switch v := t.(type) {
	case *lltypes.IntType:
		return int64(v.BitSize)
	case *lltypes.PointerType:
		return 64
	default:
		return 0
	}
}

// llvmReturnType treats Unit specially: a Unit-returning function is void
// at the ABI boundary rather than an empty-struct value, matching how a
// systems-language backend actually lowers a zero-sized return.
func llvmReturnType(t types.Type) lltypes.Type {
	if t.Kind == types.KindUnit {
		return lltypes.Void
	}
	return llvmType(t)
}
