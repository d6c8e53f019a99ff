package typecheck

import (
	"github.com/zirco-lang/zircoc/internal/ast"
	"github.com/zirco-lang/zircoc/internal/diagnostics"
	"github.com/zirco-lang/zircoc/internal/scope"
	"github.com/zirco-lang/zircoc/internal/span"
	"github.com/zirco-lang/zircoc/internal/tast"
	"github.com/zirco-lang/zircoc/internal/types"
)

// TypeBlock implements spec.md §4.3's type_block: given a parent scope, a
// spanned sequence of AST statements, whether break/continue are legal
// here, and the block's return ability, produces the block's typed
// statements and its return actuality.
//
// Grounded directly on the five-step procedure of
// original_source/compiler/zrc_typeck/src/typeck/block.rs: clone scope,
// walk statements dispatching per-kind, combine actualities, then
// reconcile against the return ability (including the implicit-unit-return
// injection).
func TypeBlock(
	parentScope *scope.Scope,
	blockSpan span.Span,
	stmts []ast.Stmt,
	canUseBreakContinue bool,
	ability ReturnAbility,
) ([]tast.TypedStmt, Actuality, error) {
	s := parentScope.Clone()

	var typedStmts []tast.TypedStmt
	var actualities []Actuality

	for _, stmt := range stmts {
		typed, actuality, err := typeStmt(s, stmt, canUseBreakContinue, ability)
		if err != nil {
			return nil, 0, err
		}
		if typed == nil {
			continue // EmptyStmt
		}
		typedStmts = append(typedStmts, *typed)
		actualities = append(actualities, actuality)
	}

	actuality := Combine(actualities)

	switch ability.Kind {
	case MustNotReturn:
		if actuality != NeverReturns {
			panic("internal invariant violation: block must not return, but a sub-block may return")
		}
		return typedStmts, NeverReturns, nil

	case MayReturn:
		return typedStmts, actuality, nil

	case MustReturn:
		if actuality == AlwaysReturns {
			return typedStmts, AlwaysReturns, nil
		}
		if types.Equal(ability.Expected, types.Unit()) {
			implicitSpan := blockSpan.CollapseToEnd()
			typedStmts = append(typedStmts, tast.TypedStmt{
				Sp:   implicitSpan,
				Kind: tast.ReturnStmt{Value: nil},
			})
			return typedStmts, AlwaysReturns, nil
		}
		return nil, 0, diagnostics.Wrap(diagnostics.ExpectedABlockToReturn(blockSpan))

	default:
		panic("internal invariant violation: unknown ReturnAbilityKind")
	}
}

// typeStmt dispatches a single AST statement, implementing spec.md §4.3
// step 3. A nil *tast.TypedStmt return (with nil error) means the
// statement produced nothing (EmptyStmt).
func typeStmt(s *scope.Scope, stmt ast.Stmt, canUseBreakContinue bool, ability ReturnAbility) (*tast.TypedStmt, Actuality, error) {
	sp := stmt.Span()

	switch n := stmt.(type) {
	case *ast.EmptyStmt:
		return nil, NeverReturns, nil

	case *ast.BreakStmt:
		if !canUseBreakContinue {
			return nil, 0, diagnostics.Wrap(diagnostics.CannotUseBreakOutsideOfLoop(sp))
		}
		return wrap(sp, tast.BreakStmt{}), NeverReturns, nil

	case *ast.ContinueStmt:
		if !canUseBreakContinue {
			return nil, 0, diagnostics.Wrap(diagnostics.CannotUseContinueOutsideOfLoop(sp))
		}
		return wrap(sp, tast.ContinueStmt{}), NeverReturns, nil

	case *ast.UnreachableStmt:
		// Treated as AlwaysReturns for return analysis (spec.md §9 Open
		// Question 3): semantically it is divergence, which behaves
		// identically to always-returns in this lattice.
		return wrap(sp, tast.UnreachableStmt{}), AlwaysReturns, nil

	case *ast.DeclarationList:
		decls, err := processLetDeclaration(s, n.Declarations)
		if err != nil {
			return nil, 0, err
		}
		return wrap(sp, tast.DeclarationList{Declarations: decls}), NeverReturns, nil

	case *ast.IfStmt:
		return typeIf(s, n, canUseBreakContinue, ability)

	case *ast.WhileStmt:
		return typeWhile(s, n, ability)

	case *ast.DoWhileStmt:
		return typeDoWhile(s, n, ability)

	case *ast.ForStmt:
		return typeFor(s, n, ability)

	case *ast.SwitchCase:
		return typeSwitchCase(s, n, canUseBreakContinue, ability)

	case *ast.Match:
		return typeMatch(s, n, canUseBreakContinue, ability)

	case *ast.BlockStmt:
		typed, actuality, err := TypeBlock(s, sp, n.Body, canUseBreakContinue, ability.Demote())
		if err != nil {
			return nil, 0, err
		}
		return wrap(sp, tast.BlockStmt{Body: typed}), actuality, nil

	case *ast.ExprStmt:
		checked, err := TypeExpr(s, n.X)
		if err != nil {
			return nil, 0, err
		}
		return wrap(sp, tast.ExprStmt{X: AsValue(checked)}), NeverReturns, nil

	case *ast.ReturnStmt:
		return typeReturn(s, n, ability)

	default:
		panic("internal invariant violation: unknown ast.Stmt")
	}
}

func wrap(sp span.Span, kind tast.StmtKind) *tast.TypedStmt {
	return &tast.TypedStmt{Sp: sp, Kind: kind}
}

// typeReturn implements spec.md §4.3's ReturnStmt rule.
func typeReturn(s *scope.Scope, n *ast.ReturnStmt, ability ReturnAbility) (*tast.TypedStmt, Actuality, error) {
	sp := n.Span()

	if ability.Kind == MustNotReturn {
		return nil, 0, diagnostics.Wrap(diagnostics.CannotReturnHere(sp))
	}

	var value *tast.TypedExpr
	inferred := types.Unit()
	if n.Value != nil {
		checked, err := TypeExpr(s, n.Value)
		if err != nil {
			return nil, 0, err
		}
		v := AsValue(checked)
		value = &v
		inferred = v.InferredType
	}

	if !types.Equal(inferred, ability.Expected) {
		if !inferred.CanImplicitlyCastTo(ability.Expected) {
			return nil, 0, diagnostics.Wrap(diagnostics.ExpectedGot(ability.Expected.String(), inferred.String(), sp))
		}
		if value != nil {
			coerced, ok := TryCoerceTo(*value, ability.Expected)
			if !ok {
				return nil, 0, diagnostics.Wrap(diagnostics.ExpectedGot(ability.Expected.String(), inferred.String(), sp))
			}
			value = &coerced
		}
	}

	return wrap(sp, tast.ReturnStmt{Value: value}), AlwaysReturns, nil
}
