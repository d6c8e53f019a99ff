package typecheck

import (
	"github.com/zirco-lang/zircoc/internal/ast"
	"github.com/zirco-lang/zircoc/internal/diagnostics"
	"github.com/zirco-lang/zircoc/internal/scope"
	"github.com/zirco-lang/zircoc/internal/tast"
	"github.com/zirco-lang/zircoc/internal/types"
)

// typeIf implements spec.md §4.3's IfStmt rule: cond typed as bool; then
// and else type-checked as nested blocks under the demoted ability;
// actuality combines per spec.md's branch-combination rule.
func typeIf(s *scope.Scope, n *ast.IfStmt, canUseBreakContinue bool, ability ReturnAbility) (*tast.TypedStmt, Actuality, error) {
	sp := n.Span()

	condChecked, err := TypeExpr(s, n.Cond)
	if err != nil {
		return nil, 0, err
	}
	cond := AsValue(condChecked)
	if !types.Equal(cond.InferredType, types.Bool()) {
		return nil, 0, diagnostics.Wrap(diagnostics.ExpectedGot("bool", cond.InferredType.String(), cond.Sp))
	}

	thenTyped, thenActuality, err := TypeBlock(s, n.Span(), n.Then, canUseBreakContinue, ability.Demote())
	if err != nil {
		return nil, 0, err
	}

	var elseTyped []tast.TypedStmt
	elseActuality := NeverReturns
	if n.Else != nil {
		elseTyped, elseActuality, err = TypeBlock(s, n.Span(), n.Else, canUseBreakContinue, ability.Demote())
		if err != nil {
			return nil, 0, err
		}
	}

	actuality := CombineBranches(thenActuality, n.Else != nil, elseActuality)

	return wrap(sp, tast.IfStmt{Cond: cond, Then: thenTyped, Else: elseTyped}), actuality, nil
}
