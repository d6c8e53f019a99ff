package tast

import (
	"github.com/zirco-lang/zircoc/internal/span"
	"github.com/zirco-lang/zircoc/internal/types"
)

// PlaceKind is implemented by every concrete addressable-expression
// payload (spec.md §3: "Only places may appear on the left of
// assignments, as the target of `&`, or as the receiver of indexing/dot
// whose result is a place").
type PlaceKind interface {
	placeKind()
}

// Place is an l-value: codegen's cg_place yields its address, never its
// loaded value.
type Place struct {
	Sp           span.Span
	InferredType types.Type
	Kind         PlaceKind
}

// Variable is a named local/parameter binding.
type Variable struct {
	Name string
}

func (Variable) placeKind() {}

// Deref is `*e`; e is an ordinary value of pointer type whose value IS the
// place's address.
type Deref struct {
	Pointer TypedExpr
}

func (Deref) placeKind() {}

// IndexPlace is `a[b]`; Ptr must be Pointer(T), Idx an unsigned integer.
type IndexPlace struct {
	Ptr TypedExpr
	Idx TypedExpr
}

func (IndexPlace) placeKind() {}

// DotPlace is `place.field`, addressing into a struct or union.
type DotPlace struct {
	Base  *Place
	Field string
}

func (DotPlace) placeKind() {}
