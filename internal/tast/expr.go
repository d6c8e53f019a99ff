// Package tast is the Typed AST: the output of the type-checker and the
// input to the code generator. Every expression carries an inferred_type,
// and l-values are segregated into a distinct Place sum type rather than a
// mode bit on TypedExpr (spec.md §9's place/value design note).
//
// Grounded on the overall shape of the teacher's internal/typedast package
// (a TypedExpr base embedded into each concrete node, carrying type info
// alongside the underlying node), rewritten for Zirco's concrete,
// monomorphic Type instead of AILANG's `interface{}`-erased HM type.
package tast

import (
	"github.com/zirco-lang/zircoc/internal/span"
	"github.com/zirco-lang/zircoc/internal/types"
)

// ExprKind is implemented by every concrete ordinary-value expression
// payload.
type ExprKind interface {
	exprKind()
}

// TypedExpr is an ordinary (non-place) typed expression.
type TypedExpr struct {
	Sp            span.Span
	InferredType  types.Type
	Kind          ExprKind
}

// Integer is a literal integer value, already resolved to its final type
// (the literal's default i32, or the type it was coerced to).
type Integer struct {
	Value uint64
}

func (Integer) exprKind() {}

// Bool is a literal boolean value.
type Bool struct {
	Value bool
}

func (Bool) exprKind() {}

// Load reads through a Place to obtain its value (the typical case of an
// identifier, index, deref, or dot used in value position).
type Load struct {
	Place Place
}

func (Load) exprKind() {}

// Binary is an arithmetic binary operation; both operands already share
// InferredType's type.
type Binary struct {
	Op          string
	Left, Right TypedExpr
}

func (Binary) exprKind() {}

// Comparison is `== != < <= > >=`; InferredType is always Bool.
type Comparison struct {
	Op          string
	Left, Right TypedExpr
}

func (Comparison) exprKind() {}

// Logical is `&& ||`, left un-normalized (no branch lowering at this
// stage, per spec.md §4.2).
type Logical struct {
	Op          string
	Left, Right TypedExpr
}

func (Logical) exprKind() {}

// Assignment stores Value into Target and evaluates to Value's type.
type Assignment struct {
	Target Place
	Value  TypedExpr
}

func (Assignment) exprKind() {}

// Call invokes the function bound to Name (always of Fn type, resolved via
// Scope) with Args already coerced to their declared parameter types.
type Call struct {
	Name string
	Args []TypedExpr
}

func (Call) exprKind() {}

// AddressOf is `&place`; InferredType is Pointer(place.InferredType).
type AddressOf struct {
	Place Place
}

func (AddressOf) exprKind() {}

// Cast is a coercion or an explicit `as` conversion.
type Cast struct {
	Value TypedExpr
}

func (Cast) exprKind() {}

// IncDec is a pre/post increment/decrement. Postfix indicates the
// expression evaluates to the value before the mutation (post-inc/dec);
// when false it evaluates to the value after (pre-inc/dec).
type IncDec struct {
	Target   Place
	Op       string
	Postfix  bool
}

func (IncDec) exprKind() {}
