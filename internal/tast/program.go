package tast

import "github.com/zirco-lang/zircoc/internal/types"

// Param is one resolved function parameter.
type Param struct {
	Name string
	Type types.Type
}

// FuncDecl is a fully type-checked function. Body is nil for a
// declaration-only function (an extern with no defined CFG, spec.md §2).
type FuncDecl struct {
	Name       string
	Params     []Param
	Variadic   bool
	ReturnType types.Type
	Body       []TypedStmt
}

// StructDecl / UnionDecl record a named aggregate's resolved field layout,
// kept alongside the function list so codegen can emit LLVM struct types
// without re-deriving them from the scope's internal map.
type StructDecl struct {
	Name string
	Type types.Type
}

type UnionDecl struct {
	Name string
	Type types.Type
}

// Program is the root of the Typed AST: every declaration of a compiled
// source file, fully resolved and return-analyzed.
type Program struct {
	Structs []StructDecl
	Unions  []UnionDecl
	Funcs   []FuncDecl
}
