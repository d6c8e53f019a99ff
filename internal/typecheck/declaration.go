package typecheck

import (
	"github.com/zirco-lang/zircoc/internal/ast"
	"github.com/zirco-lang/zircoc/internal/diagnostics"
	"github.com/zirco-lang/zircoc/internal/scope"
	"github.com/zirco-lang/zircoc/internal/tast"
)

// processLetDeclaration implements spec.md §4.3's process_let_declaration:
// mutates scope in place, inserting one binding per declaration, and
// returns the TAST declarations with initializers already coerced via
// TryCoerceTo.
func processLetDeclaration(s *scope.Scope, decls []ast.LetDeclaration) ([]tast.LetDeclaration, error) {
	out := make([]tast.LetDeclaration, len(decls))
	for i, d := range decls {
		if _, exists := s.Lookup(d.Name); exists {
			return nil, diagnostics.Wrap(diagnostics.DuplicateDeclaration(d.Name, d.Sp))
		}

		var declared *tast.TypedExpr
		if d.Init != nil {
			checked, err := TypeExpr(s, d.Init)
			if err != nil {
				return nil, err
			}
			value := AsValue(checked)
			declared = &value
		}

		switch {
		case d.Type != nil:
			declTy, err := resolveType(s, d.Type)
			if err != nil {
				return nil, err
			}
			if declared != nil {
				coerced, ok := TryCoerceTo(*declared, declTy)
				if !ok {
					return nil, diagnostics.Wrap(diagnostics.ExpectedGot(declTy.String(), declared.InferredType.String(), declared.Sp))
				}
				declared = &coerced
			}
			s.Insert(d.Name, scope.Binding{Type: declTy, Kind: scope.BindingVariable})
			out[i] = tast.LetDeclaration{Name: d.Name, Type: declTy, Init: declared}

		case declared != nil:
			s.Insert(d.Name, scope.Binding{Type: declared.InferredType, Kind: scope.BindingVariable})
			out[i] = tast.LetDeclaration{Name: d.Name, Type: declared.InferredType, Init: declared}

		default:
			return nil, diagnostics.Wrap(diagnostics.ExpectedGot("a type annotation or initializer", "neither", d.Sp))
		}
	}
	return out, nil
}
