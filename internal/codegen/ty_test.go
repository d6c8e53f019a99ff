package codegen

import (
	"testing"

	lltypes "github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"

	"github.com/zirco-lang/zircoc/internal/types"
)

func TestLlvmTypePrimitives(t *testing.T) {
	assert.Equal(t, lltypes.I1, llvmType(types.Bool()))
	assert.Equal(t, lltypes.NewInt(32), llvmType(types.Int(types.I32)))
	assert.Equal(t, lltypes.NewPointer(lltypes.NewInt(8)), llvmType(types.Pointer(types.Int(types.I8))))
}

func TestLlvmReturnTypeUnitIsVoid(t *testing.T) {
	assert.Equal(t, lltypes.Void, llvmReturnType(types.Unit()))
	assert.NotEqual(t, lltypes.Void, llvmReturnType(types.Int(types.I32)))
}

func TestWidestFieldPicksLargerInt(t *testing.T) {
	union := types.Union([]types.Field{
		{Name: "small", Type: types.Int(types.I8)},
		{Name: "big", Type: types.Int(types.I64)},
	})
	assert.Equal(t, lltypes.NewInt(64), widestField(union))
}

func TestUnionLoweringHasTagAndPayloadSlots(t *testing.T) {
	union := types.Union([]types.Field{
		{Name: "a", Type: types.Int(types.I32)},
		{Name: "b", Type: types.Pointer(types.Int(types.I8))},
	})
	st, ok := llvmAggregateType(union).(*lltypes.StructType)
	if !ok {
		t.Fatalf("expected *lltypes.StructType, got %T", llvmAggregateType(union))
	}
	assert.Len(t, st.Fields, 2, "tag + payload")
	assert.Equal(t, lltypes.I32, st.Fields[UnionTagIndex])
}
