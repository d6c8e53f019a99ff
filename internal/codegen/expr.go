package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/zirco-lang/zircoc/internal/span"
	"github.com/zirco-lang/zircoc/internal/tast"
	"github.com/zirco-lang/zircoc/internal/types"
)

// cgExpr implements spec.md §9's cg_expr: lowers a typed value expression,
// threading the current basic block through every sub-evaluation via
// BasicBlockAnd, exactly as the Rust original threads it through
// `unpack!`.
func cgExpr(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, e tast.TypedExpr) BasicBlockAnd[value.Value] {
	switch k := e.Kind.(type) {
	case tast.Integer:
		return and(bb, constant.NewInt(llvmType(e.InferredType).(*lltypes.IntType), int64(k.Value)))

	case tast.Bool:
		v := int64(0)
		if k.Value {
			v = 1
		}
		return and(bb, constant.NewInt(lltypes.I1, v))

	case tast.Load:
		ptrE := cgPlace(fc, bc, bb, k.Place)
		loaded := ptrE.Block.NewLoad(llvmType(e.InferredType), ptrE.Value)
		bc.Debug.Attach(&loaded.Metadata, e.Sp)
		return and(ptrE.Block, loaded)

	case tast.Binary:
		return cgBinary(fc, bc, bb, e.Sp, e.InferredType, k)

	case tast.Comparison:
		return cgComparison(fc, bc, bb, e.Sp, k)

	case tast.Logical:
		return cgLogical(fc, bc, bb, e.Sp, k)

	case tast.Assignment:
		return cgAssignment(fc, bc, bb, e.Sp, k)

	case tast.Call:
		return cgCall(fc, bc, bb, e.Sp, e.InferredType, k)

	case tast.AddressOf:
		return cgPlace(fc, bc, bb, k.Place)

	case tast.Cast:
		return cgCast(fc, bc, bb, e.Sp, e.InferredType, k)

	case tast.IncDec:
		return cgIncDec(fc, bc, bb, e.Sp, k)

	default:
		panic(fmt.Sprintf("internal invariant violation: unknown tast.ExprKind %T", e.Kind))
	}
}

func cgBinary(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, sp span.Span, resultTy types.Type, k tast.Binary) BasicBlockAnd[value.Value] {
	lhs := cgExpr(fc, bc, bb, k.Left)
	rhs := cgExpr(fc, bc, lhs.Block, k.Right)
	block := rhs.Block

	unsigned := resultTy.IsUnsignedInt()
	var result value.Value
	switch k.Op {
	case "+":
		inst := block.NewAdd(lhs.Value, rhs.Value)
		bc.Debug.Attach(&inst.Metadata, sp)
		result = inst
	case "-":
		inst := block.NewSub(lhs.Value, rhs.Value)
		bc.Debug.Attach(&inst.Metadata, sp)
		result = inst
	case "*":
		inst := block.NewMul(lhs.Value, rhs.Value)
		bc.Debug.Attach(&inst.Metadata, sp)
		result = inst
	case "/":
		if unsigned {
			inst := block.NewUDiv(lhs.Value, rhs.Value)
			bc.Debug.Attach(&inst.Metadata, sp)
			result = inst
		} else {
			inst := block.NewSDiv(lhs.Value, rhs.Value)
			bc.Debug.Attach(&inst.Metadata, sp)
			result = inst
		}
	case "%":
		if unsigned {
			inst := block.NewURem(lhs.Value, rhs.Value)
			bc.Debug.Attach(&inst.Metadata, sp)
			result = inst
		} else {
			inst := block.NewSRem(lhs.Value, rhs.Value)
			bc.Debug.Attach(&inst.Metadata, sp)
			result = inst
		}
	default:
		panic("internal invariant violation: unknown binary operator " + k.Op)
	}
	return and(block, result)
}

func icmpPredicate(op string, unsigned bool) enum.IPred {
	switch op {
	case "==":
		return enum.IPredEQ
	case "!=":
		return enum.IPredNE
	case "<":
		if unsigned {
			return enum.IPredULT
		}
		return enum.IPredSLT
	case "<=":
		if unsigned {
			return enum.IPredULE
		}
		return enum.IPredSLE
	case ">":
		if unsigned {
			return enum.IPredUGT
		}
		return enum.IPredSGT
	case ">=":
		if unsigned {
			return enum.IPredUGE
		}
		return enum.IPredSGE
	default:
		panic("internal invariant violation: unknown comparison operator " + op)
	}
}

func cgComparison(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, sp span.Span, k tast.Comparison) BasicBlockAnd[value.Value] {
	lhs := cgExpr(fc, bc, bb, k.Left)
	rhs := cgExpr(fc, bc, lhs.Block, k.Right)
	unsigned := k.Left.InferredType.IsUnsignedInt()
	pred := icmpPredicate(k.Op, unsigned)
	result := rhs.Block.NewICmp(pred, lhs.Value, rhs.Value)
	bc.Debug.Attach(&result.Metadata, sp)
	return and(rhs.Block, result)
}

// cgLogical implements spec.md §9's short-circuit diamond+phi lowering
// for `&&`/`||`: the right operand is only evaluated in its own block,
// reached conditionally from the left operand's block.
func cgLogical(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, sp span.Span, k tast.Logical) BasicBlockAnd[value.Value] {
	lhs := cgExpr(fc, bc, bb, k.Left)
	fn := fc.Fn

	rhsBlock := fn.NewBlock("")
	mergeBlock := fn.NewBlock("")

	short := constant.NewInt(lltypes.I1, 0)
	if k.Op == "||" {
		short = constant.NewInt(lltypes.I1, 1)
	}

	var condBr *ir.TermCondBr
	if k.Op == "&&" {
		condBr = lhs.Block.NewCondBr(lhs.Value, rhsBlock, mergeBlock)
	} else {
		condBr = lhs.Block.NewCondBr(lhs.Value, mergeBlock, rhsBlock)
	}
	bc.Debug.Attach(&condBr.Metadata, sp)

	rhs := cgExpr(fc, bc, rhsBlock, k.Right)
	br := rhs.Block.NewBr(mergeBlock)
	bc.Debug.Attach(&br.Metadata, sp)

	phi := mergeBlock.NewPhi(
		ir.NewIncoming(short, lhs.Block),
		ir.NewIncoming(rhs.Value, rhs.Block),
	)
	bc.Debug.Attach(&phi.Metadata, sp)
	return and(mergeBlock, phi)
}

func cgAssignment(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, sp span.Span, k tast.Assignment) BasicBlockAnd[value.Value] {
	valE := cgExpr(fc, bc, bb, k.Value)

	// Writing through a union field also stamps its discriminant, so a
	// later Match on the same union has something to switch on. cgPlace
	// itself stays tag-agnostic (plain reads must not disturb the tag);
	// the write site is the only place that knows a store, not a read,
	// is happening.
	if dp, ok := k.Target.Kind.(tast.DotPlace); ok && dp.Base.InferredType.Kind == types.KindUnion {
		baseE := cgPlace(fc, bc, valE.Block, *dp.Base)
		idx, ok := dp.Base.InferredType.FieldIndex(dp.Field)
		if !ok {
			panic("internal invariant violation: DotPlace field " + dp.Field + " missing from its own type after type-checking")
		}
		fieldTy, ok := dp.Base.InferredType.FieldType(dp.Field)
		if !ok {
			panic("internal invariant violation: DotPlace field " + dp.Field + " missing from its own type after type-checking")
		}
		aggTy := llvmType(dp.Base.InferredType)
		tagPtr := baseE.Block.NewGetElementPtr(aggTy, baseE.Value,
			constant.NewInt(lltypes.I32, 0), constant.NewInt(lltypes.I32, UnionTagIndex))
		bc.Debug.Attach(&tagPtr.Metadata, sp)
		tagStore := baseE.Block.NewStore(constant.NewInt(lltypes.I32, int64(idx)), tagPtr)
		bc.Debug.Attach(&tagStore.Metadata, sp)

		payloadPtr := baseE.Block.NewGetElementPtr(aggTy, baseE.Value,
			constant.NewInt(lltypes.I32, 0), constant.NewInt(lltypes.I32, UnionPayloadIndex))
		bc.Debug.Attach(&payloadPtr.Metadata, sp)
		// payloadPtr is typed as the union's widest member (widestField),
		// which may not be dp.Field's own declared type (e.g. `u.y = 5 as
		// i8` into a union whose widest member is i32) — bitcast it to the
		// field's actual type first so the store's pointee type matches the
		// value being stored, rather than relying on whichever pointer
		// model (typed vs. opaque) this llir/llvm version happens to use.
		fieldPtr := baseE.Block.NewBitCast(payloadPtr, lltypes.NewPointer(llvmType(fieldTy)))
		bc.Debug.Attach(&fieldPtr.Metadata, sp)
		payloadStore := baseE.Block.NewStore(valE.Value, fieldPtr)
		bc.Debug.Attach(&payloadStore.Metadata, sp)
		return and(baseE.Block, valE.Value)
	}

	ptrE := cgPlace(fc, bc, valE.Block, k.Target)
	st := ptrE.Block.NewStore(valE.Value, ptrE.Value)
	bc.Debug.Attach(&st.Metadata, sp)
	return and(ptrE.Block, valE.Value)
}

func cgCall(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, sp span.Span, resultTy types.Type, k tast.Call) BasicBlockAnd[value.Value] {
	callee, ok := fc.Module.Functions[k.Name]
	if !ok {
		panic("internal invariant violation: call to undeclared function " + k.Name)
	}
	block := bb
	args := make([]value.Value, len(k.Args))
	for i, a := range k.Args {
		argE := cgExpr(fc, bc, block, a)
		args[i] = argE.Value
		block = argE.Block
	}
	call := block.NewCall(callee, args...)
	bc.Debug.Attach(&call.Metadata, sp)
	if resultTy.Kind == types.KindUnit {
		return and(block, value.Value(constant.NewZeroInitializer(llvmType(resultTy))))
	}
	return and(block, call)
}

func cgCast(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, sp span.Span, targetTy types.Type, k tast.Cast) BasicBlockAnd[value.Value] {
	valE := cgExpr(fc, bc, bb, k.Value)
	sourceTy := k.Value.InferredType
	block := valE.Block
	v := valE.Value

	switch {
	case types.Equal(sourceTy, targetTy):
		return and(block, v)

	case sourceTy.IsInt() && targetTy.IsInt():
		from, to := sourceTy.IntWidth.Bits(), targetTy.IntWidth.Bits()
		llTarget := llvmType(targetTy).(*lltypes.IntType)
		switch {
		case to == from:
			return and(block, v)
		case to < from:
			inst := block.NewTrunc(v, llTarget)
			bc.Debug.Attach(&inst.Metadata, sp)
			return and(block, inst)
		case sourceTy.IntWidth.Signed():
			inst := block.NewSExt(v, llTarget)
			bc.Debug.Attach(&inst.Metadata, sp)
			return and(block, inst)
		default:
			inst := block.NewZExt(v, llTarget)
			bc.Debug.Attach(&inst.Metadata, sp)
			return and(block, inst)
		}

	case sourceTy.IsPointer() && targetTy.IsPointer():
		inst := block.NewBitCast(v, llvmType(targetTy))
		bc.Debug.Attach(&inst.Metadata, sp)
		return and(block, inst)

	case sourceTy.IsInt() && targetTy.IsPointer():
		inst := block.NewIntToPtr(v, llvmType(targetTy))
		bc.Debug.Attach(&inst.Metadata, sp)
		return and(block, inst)

	case sourceTy.IsPointer() && targetTy.IsInt():
		inst := block.NewPtrToInt(v, llvmType(targetTy))
		bc.Debug.Attach(&inst.Metadata, sp)
		return and(block, inst)

	default:
		panic("internal invariant violation: unreachable cast combination after type-checking")
	}
}

// cgIncDec implements spec.md §9's pre/post increment lowering: load,
// compute the incremented/decremented value, store it back, and yield
// either the old value (postfix) or the new one (prefix).
func cgIncDec(fc *FunctionCtx, bc *BlockCtx, bb *ir.Block, sp span.Span, k tast.IncDec) BasicBlockAnd[value.Value] {
	ptrE := cgPlace(fc, bc, bb, k.Target)
	elemTy := llvmType(k.Target.InferredType)
	old := ptrE.Block.NewLoad(elemTy, ptrE.Value)
	bc.Debug.Attach(&old.Metadata, sp)

	one := constant.NewInt(elemTy.(*lltypes.IntType), 1)
	var updated value.Value
	if k.Op == "++" {
		inst := ptrE.Block.NewAdd(old, one)
		bc.Debug.Attach(&inst.Metadata, sp)
		updated = inst
	} else {
		inst := ptrE.Block.NewSub(old, one)
		bc.Debug.Attach(&inst.Metadata, sp)
		updated = inst
	}
	st := ptrE.Block.NewStore(updated, ptrE.Value)
	bc.Debug.Attach(&st.Metadata, sp)

	if k.Postfix {
		return and(ptrE.Block, old)
	}
	return and(ptrE.Block, updated)
}
