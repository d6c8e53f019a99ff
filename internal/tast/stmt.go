package tast

import (
	"github.com/zirco-lang/zircoc/internal/span"
	"github.com/zirco-lang/zircoc/internal/types"
)

// StmtKind is implemented by every concrete typed-statement payload.
type StmtKind interface {
	stmtKind()
}

// TypedStmt is one statement of a typed block.
type TypedStmt struct {
	Sp   span.Span
	Kind StmtKind
}

// BreakStmt / ContinueStmt mirror the AST 1:1 once validated against
// `can_use_break_continue`.
type BreakStmt struct{}

func (BreakStmt) stmtKind() {}

type ContinueStmt struct{}

func (ContinueStmt) stmtKind() {}

// UnreachableStmt is treated as AlwaysReturns for return analysis
// (spec.md §9 Open Question 3).
type UnreachableStmt struct{}

func (UnreachableStmt) stmtKind() {}

// LetDeclaration is one resolved `let` binding; Init is already coerced to
// Type when present.
type LetDeclaration struct {
	Name string
	Type types.Type
	Init *TypedExpr
}

// DeclarationList is `let a = 1, b: i32;`.
type DeclarationList struct {
	Declarations []LetDeclaration
}

func (DeclarationList) stmtKind() {}

// IfStmt mirrors the AST; Else is nil when there is no else branch.
type IfStmt struct {
	Cond Expr
	Then []TypedStmt
	Else []TypedStmt
}

func (IfStmt) stmtKind() {}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Cond Expr
	Body []TypedStmt
}

func (WhileStmt) stmtKind() {}

// DoWhileStmt is `do body while (cond);`.
type DoWhileStmt struct {
	Body []TypedStmt
	Cond Expr
}

func (DoWhileStmt) stmtKind() {}

// ForStmt is `for (init; cond; post) body`.
type ForStmt struct {
	Init []LetDeclaration
	Cond *Expr
	Post *Expr
	Body []TypedStmt
}

func (ForStmt) stmtKind() {}

// SwitchCaseArm is one resolved arm; Label is nil when Default is true.
type SwitchCaseArm struct {
	Default bool
	Label   *Expr
	Body    []TypedStmt
}

// SwitchCase is `switch (scrutinee) { cases... }`; Default, if present, is
// always the final entry in Cases (see the type-checker's normalization).
type SwitchCase struct {
	Scrutinee Expr
	Cases     []SwitchCaseArm
}

func (SwitchCase) stmtKind() {}

// MatchArm is one resolved arm of a MatchStmt; Variant is empty when
// Wildcard is true. Binding, if non-empty, names the local the variant's
// payload is bound to for the duration of Body.
type MatchArm struct {
	Wildcard bool
	Variant  string
	Binding  string
	// BindingPlace is non-nil exactly when Binding != "": the DotPlace
	// addressing the scrutinee's variant field, which codegen binds
	// directly under Binding's name rather than allocating fresh storage
	// (the union occupies one block of memory regardless of active tag).
	BindingPlace *Place
	Body         []TypedStmt
}

// MatchStmt is a tagged-union pattern dispatch; exhaustiveness over the
// scrutinee union's fields is enforced at type-check time (spec.md §4.3),
// so codegen never needs to handle a missing variant.
type MatchStmt struct {
	Scrutinee Expr
	Cases     []MatchArm
}

func (MatchStmt) stmtKind() {}

// BlockStmt is a bare nested `{ ... }`.
type BlockStmt struct {
	Body []TypedStmt
}

func (BlockStmt) stmtKind() {}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	X Expr
}

func (ExprStmt) stmtKind() {}

// ReturnStmt is `return [expr];`; Value is nil for a bare `return;`
// (including one synthesized by the implicit-unit-return rule, spec.md
// §4.3 step 5).
type ReturnStmt struct {
	Value *Expr
}

func (ReturnStmt) stmtKind() {}

// Expr is the sum of the two typed-expression shapes that can appear
// wherever the AST allowed a bare expression: an ordinary TypedExpr, or a
// Place used in value position (already desugared to a Load by the
// expression type-checker — this alias exists so statement constructors
// read naturally).
type Expr = TypedExpr
