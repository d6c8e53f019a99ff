// Package ast defines the input Abstract Syntax Tree consumed by the
// type-checker. The lexer/parser that produces this tree is outside this
// module's scope (spec.md §1); every node is hand-buildable, which is how
// this package's own tests construct trees.
//
// Grounded on the teacher's internal/ast node-set shape (a closed Node
// interface implemented by many small structs, each carrying its own Pos),
// generalized from AILANG's expression-only tree to Zirco's
// statement-and-expression tree with source spans instead of bare
// positions.
package ast

import "github.com/zirco-lang/zircoc/internal/span"

// Node is implemented by every AST node.
type Node interface {
	Span() span.Span
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr is implemented by every syntactic type annotation node.
type TypeExpr interface {
	Node
	typeNode()
}

// base is embedded by every node to provide its Span implementation.
type base struct{ Sp span.Span }

func (b base) Span() span.Span { return b.Sp }

// ---------------------------------------------------------------- TypeExpr

// NamedTypeExpr refers to a primitive or user-declared type by name
// (e.g. "i32", "bool", "MyStruct").
type NamedTypeExpr struct {
	base
	Name string
}

func (*NamedTypeExpr) typeNode() {}

// PointerTypeExpr is `*Pointee`.
type PointerTypeExpr struct {
	base
	Pointee TypeExpr
}

func (*PointerTypeExpr) typeNode() {}

// FieldTypeExpr is one named field of a struct/union declaration.
type FieldTypeExpr struct {
	Name string
	Type TypeExpr
}

// StructTypeExpr is an inline `struct { ... }` declaration.
type StructTypeExpr struct {
	base
	Fields []FieldTypeExpr
}

func (*StructTypeExpr) typeNode() {}

// UnionTypeExpr is an inline `union { ... }` declaration.
type UnionTypeExpr struct {
	base
	Fields []FieldTypeExpr
}

func (*UnionTypeExpr) typeNode() {}

// -------------------------------------------------------------------- Expr

// Identifier references a bound name.
type Identifier struct {
	base
	Name string
}

func (*Identifier) exprNode() {}

// IntegerLiteral is an integer constant with an optional explicit type
// suffix (e.g. `4u8`); an empty Suffix defaults to i32 per spec.md §4.2.
type IntegerLiteral struct {
	base
	Value  uint64
	Suffix string
}

func (*IntegerLiteral) exprNode() {}

// BoolLiteral is `true`/`false`.
type BoolLiteral struct {
	base
	Value bool
}

func (*BoolLiteral) exprNode() {}

// BinaryOp is an arithmetic operator: `+ - * / %`.
type BinaryOp struct {
	base
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryOp) exprNode() {}

// ComparisonOp is `== != < <= > >=`.
type ComparisonOp struct {
	base
	Op    string
	Left  Expr
	Right Expr
}

func (*ComparisonOp) exprNode() {}

// LogicalOp is `&& ||`.
type LogicalOp struct {
	base
	Op    string
	Left  Expr
	Right Expr
}

func (*LogicalOp) exprNode() {}

// Assignment is `place = value` (and its compound forms `+= -= *= /= %=`,
// where Op is the empty string for plain `=`).
type Assignment struct {
	base
	Op     string
	Target Expr
	Value  Expr
}

func (*Assignment) exprNode() {}

// Call is `callee(args...)`.
type Call struct {
	base
	Callee Expr
	Args   []Expr
}

func (*Call) exprNode() {}

// Index is `a[b]`.
type Index struct {
	base
	Target Expr
	Idx    Expr
}

func (*Index) exprNode() {}

// Deref is `*p`.
type Deref struct {
	base
	Target Expr
}

func (*Deref) exprNode() {}

// AddressOf is `&place`.
type AddressOf struct {
	base
	Target Expr
}

func (*AddressOf) exprNode() {}

// Dot is `x.f`.
type Dot struct {
	base
	Target Expr
	Field  string
}

func (*Dot) exprNode() {}

// Cast is `e as T`.
type Cast struct {
	base
	Target Expr
	To     TypeExpr
}

func (*Cast) exprNode() {}

// IncDec is a pre/post increment or decrement: `++x`, `x++`, `--x`, `x--`.
type IncDec struct {
	base
	Target  Expr
	Op      string // "++" or "--"
	Postfix bool
}

func (*IncDec) exprNode() {}

// -------------------------------------------------------------------- Stmt

// EmptyStmt is a bare `;`.
type EmptyStmt struct{ base }

func (*EmptyStmt) stmtNode() {}

// BreakStmt is `break;`.
type BreakStmt struct{ base }

func (*BreakStmt) stmtNode() {}

// ContinueStmt is `continue;`.
type ContinueStmt struct{ base }

func (*ContinueStmt) stmtNode() {}

// UnreachableStmt is `unreachable;`.
type UnreachableStmt struct{ base }

func (*UnreachableStmt) stmtNode() {}

// LetDeclaration is one `let name[: Type] [= init]` binding within a
// DeclarationList (`let a = 1, b: i32;`).
type LetDeclaration struct {
	Sp   span.Span
	Name string
	Type TypeExpr // nil if inferred from Init
	Init Expr     // nil if uninitialized
}

// DeclarationList is `let a = 1, b: i32 = 2;`.
type DeclarationList struct {
	base
	Declarations []LetDeclaration
}

func (*DeclarationList) stmtNode() {}

// IfStmt is `if (cond) then [else elseBranch]`.
type IfStmt struct {
	base
	Cond Expr
	Then []Stmt
	Else []Stmt // nil if no else branch
}

func (*IfStmt) stmtNode() {}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	base
	Cond Expr
	Body []Stmt
}

func (*WhileStmt) stmtNode() {}

// DoWhileStmt is `do body while (cond);`.
type DoWhileStmt struct {
	base
	Body []Stmt
	Cond Expr
}

func (*DoWhileStmt) stmtNode() {}

// ForStmt is `for (init; cond; post) body`. Each optional clause is nil
// when omitted.
type ForStmt struct {
	base
	Init []LetDeclaration
	Cond Expr
	Post Expr
	Body []Stmt
}

func (*ForStmt) stmtNode() {}

// SwitchCaseArm is one `label => body` arm of a SwitchCase, or the
// `default => body` arm when Default is true.
type SwitchCaseArm struct {
	Sp      span.Span
	Default bool
	Label   Expr // nil when Default
	Body    []Stmt
}

// SwitchCase is `switch (scrutinee) { cases... }`.
type SwitchCase struct {
	base
	Scrutinee Expr
	Cases     []SwitchCaseArm
}

func (*SwitchCase) stmtNode() {}

// MatchArm is one arm of a Match: `Variant(binding) => body` or the
// wildcard `_ => body` when Wildcard is true.
type MatchArm struct {
	Sp       span.Span
	Wildcard bool
	Variant  string // union field tag, empty when Wildcard
	Binding  string // name bound to the variant's payload, may be empty
	Body     []Stmt
}

// Match is a pattern-based dispatch on a tagged-union-like scrutinee
// (spec.md §3/§4.3); exhaustiveness over the scrutinee's union fields is
// required unless a wildcard arm is present.
type Match struct {
	base
	Scrutinee Expr
	Cases     []MatchArm
}

func (*Match) stmtNode() {}

// BlockStmt is a bare nested `{ ... }`.
type BlockStmt struct {
	base
	Body []Stmt
}

func (*BlockStmt) stmtNode() {}

// ExprStmt is an expression used as a statement: `expr;`.
type ExprStmt struct {
	base
	X Expr
}

func (*ExprStmt) stmtNode() {}

// ReturnStmt is `return [expr];`.
type ReturnStmt struct {
	base
	Value Expr // nil for a bare `return;`
}

func (*ReturnStmt) stmtNode() {}

// --------------------------------------------------------------- Top level

// Param is one function parameter.
type Param struct {
	Name string
	Type TypeExpr
}

// FuncDecl is `fn name(params) -> ReturnType { body }`, or a bare
// declaration `fn name(params) -> ReturnType;` when Body is nil (an
// extern/forward declaration with no defined CFG).
type FuncDecl struct {
	Sp         span.Span
	Name       string
	Params     []Param
	Variadic   bool
	ReturnType TypeExpr // nil means Unit
	Body       []Stmt   // nil for a declaration with no body
}

func (f *FuncDecl) Span() span.Span { return f.Sp }

// StructDecl is a top-level `struct Name { fields... }`.
type StructDecl struct {
	Sp     span.Span
	Name   string
	Fields []FieldTypeExpr
}

func (s *StructDecl) Span() span.Span { return s.Sp }

// UnionDecl is a top-level `union Name { fields... }`.
type UnionDecl struct {
	Sp     span.Span
	Name   string
	Fields []FieldTypeExpr
}

func (u *UnionDecl) Span() span.Span { return u.Sp }

// Program is the root of the AST: a source file's top-level declarations.
type Program struct {
	Sp      span.Span
	Structs []*StructDecl
	Unions  []*UnionDecl
	Funcs   []*FuncDecl
}

func (p *Program) Span() span.Span { return p.Sp }
