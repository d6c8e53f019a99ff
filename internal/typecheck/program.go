package typecheck

import (
	"github.com/zirco-lang/zircoc/internal/ast"
	"github.com/zirco-lang/zircoc/internal/diagnostics"
	"github.com/zirco-lang/zircoc/internal/scope"
	"github.com/zirco-lang/zircoc/internal/tast"
	"github.com/zirco-lang/zircoc/internal/types"
)

// CheckProgram implements spec.md §2/§4's top-level pass: declare every
// struct/union and function signature into the global scope (so mutually
// recursive functions and forward-referencing struct/union pointers
// resolve regardless of declaration order), then type-check each
// function's body against its own signature.
func CheckProgram(prog *ast.Program) (*tast.Program, error) {
	s := scope.Global()

	structTypes, unionTypes, err := declareAggregates(s, prog)
	if err != nil {
		return nil, err
	}

	funcSigs := make(map[string]types.Type, len(prog.Funcs))
	for _, fd := range prog.Funcs {
		if _, exists := s.Lookup(fd.Name); exists {
			return nil, diagnostics.Wrap(diagnostics.DuplicateDeclaration(fd.Name, fd.Sp))
		}

		params := make([]types.Type, len(fd.Params))
		for i, p := range fd.Params {
			pt, err := resolveType(s, p.Type)
			if err != nil {
				return nil, err
			}
			params[i] = pt
		}
		ret, err := resolveReturnType(s, fd.ReturnType)
		if err != nil {
			return nil, err
		}

		fnType := types.Fn(params, ret, fd.Variadic)
		s.Insert(fd.Name, scope.Binding{Type: fnType, Kind: scope.BindingFunction})
		funcSigs[fd.Name] = fnType
	}

	funcs := make([]tast.FuncDecl, 0, len(prog.Funcs))
	for _, fd := range prog.Funcs {
		fnType := funcSigs[fd.Name]

		tparams := make([]tast.Param, len(fd.Params))
		for i, p := range fd.Params {
			tparams[i] = tast.Param{Name: p.Name, Type: fnType.Params[i]}
		}

		if fd.Body == nil {
			funcs = append(funcs, tast.FuncDecl{
				Name: fd.Name, Params: tparams, Variadic: fd.Variadic, ReturnType: *fnType.Return,
			})
			continue
		}

		funcScope := s.Clone()
		for i, p := range tparams {
			funcScope.Insert(p.Name, scope.Binding{Type: p.Type, Kind: scope.BindingParameter})
		}

		body, _, err := TypeBlock(funcScope, fd.Sp, fd.Body, false, Must(*fnType.Return))
		if err != nil {
			return nil, err
		}

		funcs = append(funcs, tast.FuncDecl{
			Name: fd.Name, Params: tparams, Variadic: fd.Variadic, ReturnType: *fnType.Return, Body: body,
		})
	}

	return &tast.Program{Structs: structTypes, Unions: unionTypes, Funcs: funcs}, nil
}

// declareAggregates resolves every struct/union declaration and installs
// it into the scope's global type namespace. Pointer types that name a
// struct/union declared elsewhere in the same program (including the
// enclosing declaration itself) resolve against a shared forward-reference
// cell rather than a value snapshot, at any depth of indirection (`*Node`,
// `**Node`) and also inside an inline struct/union literal, so
// self-referential and mutually-recursive structures (for example a
// linked-list `Node { next: *Node }`) see the type's final field list once
// every declaration has been processed. A by-value (non-pointer) field
// naming a same-program struct/union copies that cell's contents at the
// moment the field is resolved.
func declareAggregates(s *scope.Scope, prog *ast.Program) ([]tast.StructDecl, []tast.UnionDecl, error) {
	cells := make(map[string]*types.Type, len(prog.Structs)+len(prog.Unions))
	for _, sd := range prog.Structs {
		if _, ok := primitiveNames[sd.Name]; ok {
			return nil, nil, diagnostics.Wrap(diagnostics.DuplicateDeclaration(sd.Name, sd.Sp))
		}
		if _, exists := cells[sd.Name]; exists {
			return nil, nil, diagnostics.Wrap(diagnostics.DuplicateDeclaration(sd.Name, sd.Sp))
		}
		cells[sd.Name] = &types.Type{}
	}
	for _, ud := range prog.Unions {
		if _, ok := primitiveNames[ud.Name]; ok {
			return nil, nil, diagnostics.Wrap(diagnostics.DuplicateDeclaration(ud.Name, ud.Sp))
		}
		if _, exists := cells[ud.Name]; exists {
			return nil, nil, diagnostics.Wrap(diagnostics.DuplicateDeclaration(ud.Name, ud.Sp))
		}
		cells[ud.Name] = &types.Type{}
	}

	var structDecls []tast.StructDecl
	for _, sd := range prog.Structs {
		fields, err := resolveFieldsWithCells(s, cells, sd.Fields)
		if err != nil {
			return nil, nil, err
		}
		final := types.Struct(fields)
		*cells[sd.Name] = final
		s.DeclareStruct(sd.Name, final)
		structDecls = append(structDecls, tast.StructDecl{Name: sd.Name, Type: final})
	}

	var unionDecls []tast.UnionDecl
	for _, ud := range prog.Unions {
		fields, err := resolveFieldsWithCells(s, cells, ud.Fields)
		if err != nil {
			return nil, nil, err
		}
		final := types.Union(fields)
		*cells[ud.Name] = final
		s.DeclareUnion(ud.Name, final)
		unionDecls = append(unionDecls, tast.UnionDecl{Name: ud.Name, Type: final})
	}

	return structDecls, unionDecls, nil
}

func resolveFieldsWithCells(s *scope.Scope, cells map[string]*types.Type, fields []ast.FieldTypeExpr) ([]types.Field, error) {
	seen := make(map[string]struct{}, len(fields))
	out := make([]types.Field, len(fields))
	for i, f := range fields {
		if _, dup := seen[f.Name]; dup {
			return nil, diagnostics.Wrap(diagnostics.DuplicateDeclaration(f.Name, f.Type.Span()))
		}
		seen[f.Name] = struct{}{}

		ft, err := resolveTypeWithCells(s, cells, f.Type)
		if err != nil {
			return nil, err
		}
		out[i] = types.Field{Name: f.Name, Type: ft}
	}
	return out, nil
}

// resolveTypeWithCells mirrors resolveType, but gives a pointer to a
// not-yet-finalized struct/union declared in the same program a shared
// cell rather than a value snapshot.
func resolveTypeWithCells(s *scope.Scope, cells map[string]*types.Type, t ast.TypeExpr) (types.Type, error) {
	if pt, ok := t.(*ast.PointerTypeExpr); ok {
		if named, ok := pt.Pointee.(*ast.NamedTypeExpr); ok {
			if cell, pending := cells[named.Name]; pending {
				return types.Type{Kind: types.KindPointer, Pointee: cell}, nil
			}
		}
	}

	switch n := t.(type) {
	case *ast.NamedTypeExpr:
		if prim, ok := primitiveNames[n.Name]; ok {
			return prim, nil
		}
		if cell, pending := cells[n.Name]; pending {
			return *cell, nil
		}
		return resolveType(s, n)

	case *ast.PointerTypeExpr:
		pointee, err := resolveTypeWithCells(s, cells, n.Pointee)
		if err != nil {
			return types.Type{}, err
		}
		return types.Pointer(pointee), nil

	case *ast.StructTypeExpr:
		fields, err := resolveFieldsWithCells(s, cells, n.Fields)
		if err != nil {
			return types.Type{}, err
		}
		return types.Struct(fields), nil

	case *ast.UnionTypeExpr:
		fields, err := resolveFieldsWithCells(s, cells, n.Fields)
		if err != nil {
			return types.Type{}, err
		}
		return types.Union(fields), nil

	default:
		return resolveType(s, t)
	}
}
