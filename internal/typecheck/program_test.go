package typecheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zirco-lang/zircoc/internal/ast"
	"github.com/zirco-lang/zircoc/internal/diagnostics"
	"github.com/zirco-lang/zircoc/internal/span"
	"github.com/zirco-lang/zircoc/internal/tast"
)

// sp returns an arbitrary non-zero span; these trees are hand-built rather
// than parsed, so the exact byte offsets carried are irrelevant to the
// assertions below.
func sp(start, end int) span.Span { return span.New("test.zr", start, end) }

func TestCheckProgramImplicitUnitReturn(t *testing.T) {
	// fn main() { 1 + 1; } -- no explicit `return;`, Unit return type, must
	// still type-check via TypeBlock's MustReturn(Unit) implicit-injection
	// branch (block.go).
	prog := &ast.Program{
		Sp: sp(0, 1),
		Funcs: []*ast.FuncDecl{
			{
				Sp:   sp(0, 1),
				Name: "main",
				Body: []ast.Stmt{
					&ast.ExprStmt{X: &ast.BinaryOp{
						Op:    "+",
						Left:  &ast.IntegerLiteral{Value: 1},
						Right: &ast.IntegerLiteral{Value: 1},
					}},
				},
			},
		},
	}

	tprog, err := CheckProgram(prog)
	require.NoError(t, err)
	require.Len(t, tprog.Funcs, 1)

	body := tprog.Funcs[0].Body
	require.NotEmpty(t, body)
	last := body[len(body)-1]
	ret, ok := last.Kind.(tast.ReturnStmt)
	require.True(t, ok, "expected an implicit ReturnStmt appended to the block")
	assert.Nil(t, ret.Value)
}

func TestCheckProgramBreakOutsideLoop(t *testing.T) {
	// fn main() { break; } -- break with no enclosing loop.
	prog := &ast.Program{
		Sp: sp(0, 1),
		Funcs: []*ast.FuncDecl{
			{
				Sp:   sp(0, 1),
				Name: "main",
				Body: []ast.Stmt{
					&ast.BreakStmt{},
				},
			},
		},
	}

	_, err := CheckProgram(prog)
	require.Error(t, err)
	report, ok := diagnostics.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, diagnostics.CF001CannotUseBreakOutsideOfLoop, report.Code)
}

func TestCheckProgramReturnTypeMismatch(t *testing.T) {
	// fn main() -> i32 { return true; } -- bool where i32 is expected, no
	// implicit coercion exists between them.
	prog := &ast.Program{
		Sp: sp(0, 1),
		Funcs: []*ast.FuncDecl{
			{
				Sp:         sp(0, 1),
				Name:       "main",
				ReturnType: &ast.NamedTypeExpr{Name: "i32"},
				Body: []ast.Stmt{
					&ast.ReturnStmt{Value: &ast.BoolLiteral{Value: true}},
				},
			},
		},
	}

	_, err := CheckProgram(prog)
	require.Error(t, err)
	report, ok := diagnostics.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, diagnostics.TY001ExpectedGot, report.Code)
}

func TestCheckProgramNonExhaustiveSwitchFailsToReturn(t *testing.T) {
	// fn main() -> i32 {
	//   switch (1) {
	//     0 => { return 1; }
	//   }
	// }
	// No default arm, so the switch can never be guaranteed to return on
	// every path, and the function's overall MustReturn(i32) ability goes
	// unsatisfied -> TY007 ExpectedABlockToReturn, even though the one arm
	// present does itself always return.
	prog := &ast.Program{
		Sp: sp(0, 1),
		Funcs: []*ast.FuncDecl{
			{
				Sp:         sp(0, 1),
				Name:       "main",
				ReturnType: &ast.NamedTypeExpr{Name: "i32"},
				Body: []ast.Stmt{
					&ast.SwitchCase{
						Scrutinee: &ast.IntegerLiteral{Value: 1},
						Cases: []ast.SwitchCaseArm{
							{
								Label: &ast.IntegerLiteral{Value: 0},
								Body: []ast.Stmt{
									&ast.ReturnStmt{Value: &ast.IntegerLiteral{Value: 1}},
								},
							},
						},
					},
				},
			},
		},
	}

	_, err := CheckProgram(prog)
	require.Error(t, err)
	report, ok := diagnostics.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, diagnostics.TY007ExpectedABlockToReturn, report.Code)
}
