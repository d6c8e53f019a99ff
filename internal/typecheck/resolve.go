package typecheck

import (
	"fmt"

	"github.com/zirco-lang/zircoc/internal/ast"
	"github.com/zirco-lang/zircoc/internal/diagnostics"
	"github.com/zirco-lang/zircoc/internal/scope"
	"github.com/zirco-lang/zircoc/internal/types"
)

var primitiveNames = map[string]types.Type{
	"unit":  types.Unit(),
	"bool":  types.Bool(),
	"i8":    types.Int(types.I8),
	"i16":   types.Int(types.I16),
	"i32":   types.Int(types.I32),
	"i64":   types.Int(types.I64),
	"u8":    types.Int(types.U8),
	"u16":   types.Int(types.U16),
	"u32":   types.Int(types.U32),
	"u64":   types.Int(types.U64),
	"usize": types.Int(types.Usize),
	"isize": types.Int(types.Isize),
}

// resolveType turns a syntactic TypeExpr into a concrete types.Type,
// resolving named struct/union references against the scope's global type
// namespace.
func resolveType(s *scope.Scope, t ast.TypeExpr) (types.Type, error) {
	switch n := t.(type) {
	case *ast.NamedTypeExpr:
		if prim, ok := primitiveNames[n.Name]; ok {
			return prim, nil
		}
		if named, ok := s.LookupNamedType(n.Name); ok {
			return named, nil
		}
		return types.Type{}, diagnostics.Wrap(diagnostics.IdentifierNotFound(n.Name, n.Span()))

	case *ast.PointerTypeExpr:
		pointee, err := resolveType(s, n.Pointee)
		if err != nil {
			return types.Type{}, err
		}
		return types.Pointer(pointee), nil

	case *ast.StructTypeExpr:
		fields, err := resolveFields(s, n.Fields)
		if err != nil {
			return types.Type{}, err
		}
		return types.Struct(fields), nil

	case *ast.UnionTypeExpr:
		fields, err := resolveFields(s, n.Fields)
		if err != nil {
			return types.Type{}, err
		}
		return types.Union(fields), nil

	default:
		panic(fmt.Sprintf("internal invariant violation: unknown TypeExpr %T", t))
	}
}

func resolveFields(s *scope.Scope, fields []ast.FieldTypeExpr) ([]types.Field, error) {
	out := make([]types.Field, len(fields))
	for i, f := range fields {
		ft, err := resolveType(s, f.Type)
		if err != nil {
			return nil, err
		}
		out[i] = types.Field{Name: f.Name, Type: ft}
	}
	return out, nil
}

// resolveReturnType treats a nil ReturnType (no `-> T` clause) as Unit.
func resolveReturnType(s *scope.Scope, t ast.TypeExpr) (types.Type, error) {
	if t == nil {
		return types.Unit(), nil
	}
	return resolveType(s, t)
}
