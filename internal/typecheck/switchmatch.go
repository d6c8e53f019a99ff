package typecheck

import (
	"fmt"

	"github.com/zirco-lang/zircoc/internal/ast"
	"github.com/zirco-lang/zircoc/internal/diagnostics"
	"github.com/zirco-lang/zircoc/internal/scope"
	"github.com/zirco-lang/zircoc/internal/span"
	"github.com/zirco-lang/zircoc/internal/tast"
	"github.com/zirco-lang/zircoc/internal/types"
)

// typeSwitchCase implements spec.md §4.3's SwitchCase rule: the scrutinee
// must be an integer or bool; each non-default arm's label must be a
// constant of the scrutinee's type, unique among the arms; the default
// arm (if present) is normalized to the final entry in Cases. A switch
// with no default can never be AlwaysReturns, since no arm is guaranteed
// to run.
func typeSwitchCase(s *scope.Scope, n *ast.SwitchCase, canUseBreakContinue bool, ability ReturnAbility) (*tast.TypedStmt, Actuality, error) {
	sp := n.Span()

	scrutineeChecked, err := TypeExpr(s, n.Scrutinee)
	if err != nil {
		return nil, 0, err
	}
	scrutinee := AsValue(scrutineeChecked)
	if !scrutinee.InferredType.IsInt() && !types.Equal(scrutinee.InferredType, types.Bool()) {
		return nil, 0, diagnostics.Wrap(diagnostics.ExpectedGot("an integer or bool type", scrutinee.InferredType.String(), scrutinee.Sp))
	}

	seenLabels := make(map[string]struct{})
	var defaultArm *tast.SwitchCaseArm
	var arms []tast.SwitchCaseArm
	var actualities []Actuality

	for _, c := range n.Cases {
		if c.Default {
			if defaultArm != nil {
				return nil, 0, diagnostics.Wrap(diagnostics.DuplicateDeclaration("default", c.Sp))
			}
			body, actuality, err := typeArmBody(s, c.Sp, c.Body, canUseBreakContinue, ability)
			if err != nil {
				return nil, 0, err
			}
			arm := tast.SwitchCaseArm{Default: true, Body: body}
			defaultArm = &arm
			actualities = append(actualities, actuality)
			continue
		}

		labelChecked, err := TypeExpr(s, c.Label)
		if err != nil {
			return nil, 0, err
		}
		label := AsValue(labelChecked)
		coerced, ok := TryCoerceTo(label, scrutinee.InferredType)
		if !ok {
			return nil, 0, diagnostics.Wrap(diagnostics.ExpectedGot(scrutinee.InferredType.String(), label.InferredType.String(), label.Sp))
		}

		key, err := constLabelKey(coerced)
		if err != nil {
			return nil, 0, err
		}
		if _, dup := seenLabels[key]; dup {
			return nil, 0, diagnostics.Wrap(diagnostics.DuplicateDeclaration(key, c.Sp))
		}
		seenLabels[key] = struct{}{}

		body, actuality, err := typeArmBody(s, c.Sp, c.Body, canUseBreakContinue, ability)
		if err != nil {
			return nil, 0, err
		}
		// Store the label as a bare literal of the scrutinee's type, so
		// codegen can use it directly as a switch case constant.
		folded := unwrapCast(coerced)
		folded.InferredType = scrutinee.InferredType
		arms = append(arms, tast.SwitchCaseArm{Label: &folded, Body: body})
		actualities = append(actualities, actuality)
	}

	if defaultArm != nil {
		arms = append(arms, *defaultArm)
	}

	actuality := CombineArms(actualities, defaultArm != nil)
	return wrap(sp, tast.SwitchCase{Scrutinee: scrutinee, Cases: arms}), actuality, nil
}

// typeArmBody type-checks one switch/match arm body as a nested block:
// switch/match introduces no new break/continue target of its own, so
// canUseBreakContinue passes through unchanged from the enclosing context.
func typeArmBody(s *scope.Scope, sp span.Span, body []ast.Stmt, canUseBreakContinue bool, ability ReturnAbility) ([]tast.TypedStmt, Actuality, error) {
	return TypeBlock(s, sp, body, canUseBreakContinue, ability.Demote())
}

// constLabelKey renders a typed constant expression's value as a unique
// map key, used to detect duplicate switch labels. Only literal integer
// and bool kinds reach here, since coercion never changes the underlying
// Kind of a literal (spec.md §4.1: implicit coercion wraps in Cast,
// leaving the original literal nested inside).
func constLabelKey(e tast.TypedExpr) (string, error) {
	switch k := unwrapCast(e).Kind.(type) {
	case tast.Integer:
		return fmt.Sprintf("int:%d", k.Value), nil
	case tast.Bool:
		return fmt.Sprintf("bool:%t", k.Value), nil
	default:
		return "", diagnostics.Wrap(diagnostics.ExpectedGot("a constant literal", "a non-constant expression", e.Sp))
	}
}

// unwrapCast strips the implicit Cast nodes TryCoerceTo may have wrapped a
// literal in, to recover its underlying literal kind.
func unwrapCast(e tast.TypedExpr) tast.TypedExpr {
	for {
		c, ok := e.Kind.(tast.Cast)
		if !ok {
			return e
		}
		e = c.Value
	}
}

// typeMatch implements spec.md §4.3's Match rule: the scrutinee must be a
// place of union type; each non-wildcard arm names one of the union's
// fields, binding the field's payload (if Binding is non-empty) to a
// local of the field's type for the arm body; every field must be covered
// exactly once unless a wildcard arm is present, else CF003
// NonExhaustiveMatch is raised.
func typeMatch(s *scope.Scope, n *ast.Match, canUseBreakContinue bool, ability ReturnAbility) (*tast.TypedStmt, Actuality, error) {
	sp := n.Span()

	scrutineeChecked, err := TypeExpr(s, n.Scrutinee)
	if err != nil {
		return nil, 0, err
	}
	scrutineePlace, err := AsPlace(scrutineeChecked)
	if err != nil {
		return nil, 0, err
	}
	if scrutineePlace.InferredType.Kind != types.KindUnion {
		return nil, 0, diagnostics.Wrap(diagnostics.ExpectedGot("a union", scrutineePlace.InferredType.String(), scrutineePlace.Sp))
	}

	covered := make(map[string]struct{})
	hasWildcard := false
	var arms []tast.MatchArm
	var actualities []Actuality

	for _, c := range n.Cases {
		if c.Wildcard {
			hasWildcard = true
			body, actuality, err := typeArmBody(s, c.Sp, c.Body, canUseBreakContinue, ability)
			if err != nil {
				return nil, 0, err
			}
			arms = append(arms, tast.MatchArm{Wildcard: true, Body: body})
			actualities = append(actualities, actuality)
			continue
		}

		fieldTy, ok := scrutineePlace.InferredType.FieldType(c.Variant)
		if !ok {
			return nil, 0, diagnostics.Wrap(diagnostics.FieldNotFound(scrutineePlace.InferredType.String(), c.Variant, c.Sp))
		}
		if _, dup := covered[c.Variant]; dup {
			return nil, 0, diagnostics.Wrap(diagnostics.DuplicateDeclaration(c.Variant, c.Sp))
		}
		covered[c.Variant] = struct{}{}

		armScope := s.Clone()
		var bindingPlace *tast.Place
		if c.Binding != "" {
			place := tast.Place{Sp: c.Sp, InferredType: fieldTy, Kind: tast.DotPlace{Base: &scrutineePlace, Field: c.Variant}}
			bindingPlace = &place
			armScope.Insert(c.Binding, scope.Binding{Type: fieldTy, Kind: scope.BindingVariable})
		}

		body, actuality, err := typeArmBody(armScope, c.Sp, c.Body, canUseBreakContinue, ability)
		if err != nil {
			return nil, 0, err
		}
		arms = append(arms, tast.MatchArm{Variant: c.Variant, Binding: c.Binding, BindingPlace: bindingPlace, Body: body})
		actualities = append(actualities, actuality)
	}

	exhaustive := hasWildcard
	if !hasWildcard {
		var missing []string
		for _, f := range scrutineePlace.InferredType.Fields {
			if _, ok := covered[f.Name]; !ok {
				missing = append(missing, f.Name)
			}
		}
		if len(missing) > 0 {
			return nil, 0, diagnostics.Wrap(diagnostics.NonExhaustiveMatch(missing, sp))
		}
		exhaustive = true
	}

	actuality := CombineArms(actualities, exhaustive)
	return wrap(sp, tast.MatchStmt{Scrutinee: tast.TypedExpr{Sp: scrutineePlace.Sp, InferredType: scrutineePlace.InferredType, Kind: tast.Load{Place: scrutineePlace}}, Cases: arms}), actuality, nil
}
