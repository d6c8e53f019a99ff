package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zirco-lang/zircoc/internal/tast"
	"github.com/zirco-lang/zircoc/internal/types"
)

// TestGenerateModuleWhileLoopCFGShape drives GenerateModule for
//
//	fn spin(cond: bool) -> unit {
//	  while (cond) {}
//	}
//
// and checks the emitted IR text has the header/body/exit block shape
// cgWhileStmt builds: a conditional branch deciding whether to enter the
// body, and an unconditional branch from the body back to the header.
func TestGenerateModuleWhileLoopCFGShape(t *testing.T) {
	prog := &tast.Program{
		Funcs: []tast.FuncDecl{
			{
				Name:       "spin",
				Params:     []tast.Param{{Name: "cond", Type: types.Bool()}},
				ReturnType: types.Unit(),
				Body: []tast.TypedStmt{
					{Kind: tast.WhileStmt{
						Cond: tast.TypedExpr{InferredType: types.Bool(), Kind: tast.Load{Place: tast.Place{
							InferredType: types.Bool(), Kind: tast.Variable{Name: "cond"},
						}}},
					}},
				},
			},
		},
	}

	ir := GenerateModule(prog, Options{}).String()

	assert.Contains(t, ir, "br i1", "while's header must conditionally branch on cond")
	assert.Contains(t, ir, "ret void", "a Unit-returning function lowers to `ret void`")
	// Two unconditional branches: entry->header, body->header (looping
	// back), distinguishing this from a single-shot if.
	assert.GreaterOrEqual(t, strings.Count(ir, "br label"), 2)
}

// TestGenerateModuleForLoopCFGShape drives GenerateModule for the
// canonical five-block for-loop shape (preheader/header/body/latch/exit)
// cgForStmt builds, grounded on loops.rs's cg_for_stmt.
func TestGenerateModuleForLoopCFGShape(t *testing.T) {
	i32 := types.Int(types.I32)
	iVar := tast.Place{InferredType: i32, Kind: tast.Variable{Name: "i"}}

	prog := &tast.Program{
		Funcs: []tast.FuncDecl{
			{
				Name:       "count",
				ReturnType: types.Unit(),
				Body: []tast.TypedStmt{
					{Kind: tast.ForStmt{
						Init: []tast.LetDeclaration{
							{Name: "i", Type: i32, Init: &tast.TypedExpr{InferredType: i32, Kind: tast.Integer{Value: 0}}},
						},
						Cond: &tast.TypedExpr{InferredType: types.Bool(), Kind: tast.Comparison{
							Op:   "<",
							Left: tast.TypedExpr{InferredType: i32, Kind: tast.Load{Place: iVar}},
							Right: tast.TypedExpr{InferredType: i32, Kind: tast.Integer{Value: 10}},
						}},
						Post: &tast.TypedExpr{InferredType: i32, Kind: tast.IncDec{Target: iVar, Op: "++", Postfix: true}},
					}},
				},
			},
		},
	}

	ir := GenerateModule(prog, Options{}).String()

	assert.Contains(t, ir, "icmp slt", "the `<` comparison lowers to a signed less-than icmp")
	assert.Contains(t, ir, "br i1", "the for loop's header conditionally branches on the comparison")
	assert.Contains(t, ir, "ret void")
}

// TestGenerateModuleUnionFieldWriteBitcastsToFieldType drives GenerateModule
// for a write through a narrower union field than the union's widest
// member, exercising the bitcast fix for the payload-pointer type mismatch
// (a plain GEP to the payload slot is typed as the widest field, i32 here,
// so storing the narrower i8 field through it without reinterpretation
// would produce a type-mismatched store).
func TestGenerateModuleUnionFieldWriteBitcastsToFieldType(t *testing.T) {
	i8 := types.Int(types.I8)
	i32 := types.Int(types.I32)
	unionTy := types.Union([]types.Field{
		{Name: "x", Type: i32},
		{Name: "y", Type: i8},
	})
	uVar := &tast.Place{InferredType: unionTy, Kind: tast.Variable{Name: "u"}}

	prog := &tast.Program{
		Unions: []tast.UnionDecl{{Name: "U", Type: unionTy}},
		Funcs: []tast.FuncDecl{
			{
				Name:       "write_union",
				ReturnType: types.Unit(),
				Body: []tast.TypedStmt{
					{Kind: tast.DeclarationList{Declarations: []tast.LetDeclaration{
						{Name: "u", Type: unionTy},
					}}},
					{Kind: tast.ExprStmt{X: tast.TypedExpr{InferredType: i8, Kind: tast.Assignment{
						Target: tast.Place{InferredType: i8, Kind: tast.DotPlace{Base: uVar, Field: "y"}},
						Value:  tast.TypedExpr{InferredType: i8, Kind: tast.Integer{Value: 5}},
					}}}},
				},
			},
		},
	}

	ir := GenerateModule(prog, Options{}).String()

	assert.Contains(t, ir, "bitcast", "the narrower field's payload pointer must be reinterpreted before the store")
	assert.Contains(t, ir, "store i8 5", "the value stored is the field's own i8 type, not the union's widest i32")
}
