package typecheck

import (
	"github.com/zirco-lang/zircoc/internal/ast"
	"github.com/zirco-lang/zircoc/internal/diagnostics"
	"github.com/zirco-lang/zircoc/internal/scope"
	"github.com/zirco-lang/zircoc/internal/tast"
	"github.com/zirco-lang/zircoc/internal/types"
)

func checkBoolCond(s *scope.Scope, e ast.Expr) (tast.TypedExpr, error) {
	checked, err := TypeExpr(s, e)
	if err != nil {
		return tast.TypedExpr{}, err
	}
	cond := AsValue(checked)
	if !types.Equal(cond.InferredType, types.Bool()) {
		return tast.TypedExpr{}, diagnostics.Wrap(diagnostics.ExpectedGot("bool", cond.InferredType.String(), cond.Sp))
	}
	return cond, nil
}

// typeWhile implements spec.md §4.3's WhileStmt rule: cond as bool; body
// checked with can_use_break_continue=true and demoted ability; the
// resulting actuality is downgraded because the loop may run zero times.
func typeWhile(s *scope.Scope, n *ast.WhileStmt, ability ReturnAbility) (*tast.TypedStmt, Actuality, error) {
	cond, err := checkBoolCond(s, n.Cond)
	if err != nil {
		return nil, 0, err
	}
	body, bodyActuality, err := TypeBlock(s, n.Span(), n.Body, true, ability.Demote())
	if err != nil {
		return nil, 0, err
	}
	return wrap(n.Span(), tast.WhileStmt{Cond: cond, Body: body}), LoopDowngrade(bodyActuality), nil
}

// typeDoWhile implements spec.md §4.3's DoWhileStmt rule: identical to
// while, except the body runs at least once, so AlwaysReturns is
// preserved rather than downgraded.
func typeDoWhile(s *scope.Scope, n *ast.DoWhileStmt, ability ReturnAbility) (*tast.TypedStmt, Actuality, error) {
	body, bodyActuality, err := TypeBlock(s, n.Span(), n.Body, true, ability.Demote())
	if err != nil {
		return nil, 0, err
	}
	cond, err := checkBoolCond(s, n.Cond)
	if err != nil {
		return nil, 0, err
	}
	return wrap(n.Span(), tast.DoWhileStmt{Body: body, Cond: cond}), bodyActuality, nil
}

// typeFor implements spec.md §4.3's ForStmt rule: a sub-scope for init;
// cond as bool; post as an expression of any type; body treated like
// while (same zero-iteration downgrade).
func typeFor(s *scope.Scope, n *ast.ForStmt, ability ReturnAbility) (*tast.TypedStmt, Actuality, error) {
	sub := s.Clone()

	var init []tast.LetDeclaration
	if n.Init != nil {
		var err error
		init, err = processLetDeclaration(sub, n.Init)
		if err != nil {
			return nil, 0, err
		}
	}

	var cond *tast.TypedExpr
	if n.Cond != nil {
		c, err := checkBoolCond(sub, n.Cond)
		if err != nil {
			return nil, 0, err
		}
		cond = &c
	}

	var post *tast.TypedExpr
	if n.Post != nil {
		checked, err := TypeExpr(sub, n.Post)
		if err != nil {
			return nil, 0, err
		}
		p := AsValue(checked)
		post = &p
	}

	body, bodyActuality, err := TypeBlock(sub, n.Span(), n.Body, true, ability.Demote())
	if err != nil {
		return nil, 0, err
	}

	return wrap(n.Span(), tast.ForStmt{Init: init, Cond: cond, Post: post, Body: body}), LoopDowngrade(bodyActuality), nil
}
