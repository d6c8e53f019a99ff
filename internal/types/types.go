// Package types implements the Zirco type algebra: primitives, pointers,
// structs, unions and function types, together with structural equality,
// implicit-coercion rules and canonical source-form printing.
//
// Grounded on the shape of the teacher's internal/types type model (a closed
// Kind-like sum type with a Builder and a String method per constructor),
// generalized from AILANG's row-polymorphic Hindley-Milner algebra down to
// Zirco's much simpler structural, monomorphic one.
package types

import (
	"fmt"
	"strings"
)

// Kind identifies which case of the Type sum a value represents.
type Kind int

const (
	KindUnit Kind = iota
	KindBool
	KindInt
	KindPointer
	KindStruct
	KindUnion
	KindFn
)

// IntWidth enumerates the integer widths/signedness Zirco supports.
type IntWidth int

const (
	I8 IntWidth = iota
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	Usize
	Isize
)

var intNames = map[IntWidth]string{
	I8: "i8", I16: "i16", I32: "i32", I64: "i64",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64",
	Usize: "usize", Isize: "isize",
}

// Bits returns the bit width of the integer type, treating usize/isize as
// pointer-sized (64-bit, matching the llir/llvm-targeted backend).
func (w IntWidth) Bits() int {
	switch w {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32:
		return 32
	case I64, U64, Usize, Isize:
		return 64
	default:
		panic(fmt.Sprintf("internal invariant violation: unknown integer width %d", w))
	}
}

// Signed reports whether w is a signed integer width.
func (w IntWidth) Signed() bool {
	switch w {
	case I8, I16, I32, I64, Isize:
		return true
	default:
		return false
	}
}

// Unsigned reports whether w is an unsigned integer width.
func (w IntWidth) Unsigned() bool { return !w.Signed() }

// Field is a named, ordered member of a struct or union.
type Field struct {
	Name string
	Type Type
}

// Type is the immutable, structurally-comparable Zirco type value.
//
// Only one of the payload fields is meaningful for a given Kind:
// IntWidth for KindInt, Pointee for KindPointer, Fields for KindStruct and
// KindUnion, and Params/Return/Variadic for KindFn.
type Type struct {
	Kind     Kind
	IntWidth IntWidth
	Pointee  *Type
	Fields   []Field
	Params   []Type
	Return   *Type
	Variadic bool
}

// Unit is the zero-sized default return type.
func Unit() Type { return Type{Kind: KindUnit} }

// Bool is the boolean type.
func Bool() Type { return Type{Kind: KindBool} }

// Int constructs an integer type of the given width.
func Int(w IntWidth) Type { return Type{Kind: KindInt, IntWidth: w} }

// Pointer constructs a pointer-to-pointee type.
func Pointer(pointee Type) Type { return Type{Kind: KindPointer, Pointee: &pointee} }

// Struct constructs a struct type from ordered fields. Panics (internal
// invariant violation) on duplicate field names — callers are expected to
// have already validated this at declaration time.
func Struct(fields []Field) Type {
	assertUniqueFieldNames(fields)
	return Type{Kind: KindStruct, Fields: fields}
}

// Union constructs a union type from ordered fields.
func Union(fields []Field) Type {
	assertUniqueFieldNames(fields)
	return Type{Kind: KindUnion, Fields: fields}
}

// Fn constructs a function type.
func Fn(params []Type, ret Type, variadic bool) Type {
	return Type{Kind: KindFn, Params: params, Return: &ret, Variadic: variadic}
}

func assertUniqueFieldNames(fields []Field) {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f.Name]; ok {
			panic("internal invariant violation: duplicate field name " + f.Name + " reached the type model")
		}
		seen[f.Name] = struct{}{}
	}
}

// IsInt reports whether t is any integer type.
func (t Type) IsInt() bool { return t.Kind == KindInt }

// IsUnsignedInt reports whether t is an unsigned integer type.
func (t Type) IsUnsignedInt() bool { return t.Kind == KindInt && t.IntWidth.Unsigned() }

// IsPointer reports whether t is a pointer type.
func (t Type) IsPointer() bool { return t.Kind == KindPointer }

// FieldType returns the declared type of a field, and whether it exists.
func (t Type) FieldType(name string) (Type, bool) {
	if t.Kind != KindStruct && t.Kind != KindUnion {
		return Type{}, false
	}
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return Type{}, false
}

// FieldIndex returns the ordinal of a struct/union field, used for
// struct-GEP indexing.
func (t Type) FieldIndex(name string) (int, bool) {
	for i, f := range t.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Equal reports whether two types are structurally identical.
//
// A self-referential type built through the forward-reference cell design
// (`struct Node { next: *Node }`, where the back-reference's Pointee is the
// very same *Type cell as the struct being defined) would otherwise send
// this straight into Pointer->Struct->Pointer->... recursion with no base
// case. equalSeen guards that with a pair of shortcuts: pointer-identical
// Pointees are trivially equal without recursing, and a (Pointee, Pointee)
// pair already on the current recursion path is assumed equal rather than
// re-walked, exactly like a cycle-safe graph-equality check.
func Equal(a, b Type) bool {
	return equalSeen(a, b, nil)
}

func equalSeen(a, b Type, seen map[[2]*Type]bool) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindUnit, KindBool:
		return true
	case KindInt:
		return a.IntWidth == b.IntWidth
	case KindPointer:
		if a.Pointee == b.Pointee {
			return true
		}
		key := [2]*Type{a.Pointee, b.Pointee}
		if seen[key] {
			return true
		}
		if seen == nil {
			seen = make(map[[2]*Type]bool)
		}
		seen[key] = true
		eq := equalSeen(*a.Pointee, *b.Pointee, seen)
		delete(seen, key)
		return eq
	case KindStruct, KindUnion:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name || !equalSeen(a.Fields[i].Type, b.Fields[i].Type, seen) {
				return false
			}
		}
		return true
	case KindFn:
		if a.Variadic != b.Variadic || len(a.Params) != len(b.Params) || !equalSeen(*a.Return, *b.Return, seen) {
			return false
		}
		for i := range a.Params {
			if !equalSeen(a.Params[i], b.Params[i], seen) {
				return false
			}
		}
		return true
	default:
		panic("internal invariant violation: unknown type kind in Equal")
	}
}

// CanImplicitlyCastTo implements spec.md §4.1: types may implicitly coerce
// when structurally equal, or when both are integers of identical
// signedness where the target width is >= the source width, or when both
// are Unit. No other implicit coercions exist — in particular there is
// never an implicit pointer<->integer or pointer<->pointer-of-different-
// pointee coercion, and structs/unions never implicitly coerce even to
// themselves beyond plain equality.
func (t Type) CanImplicitlyCastTo(target Type) bool {
	if Equal(t, target) {
		return true
	}
	if t.Kind == KindInt && target.Kind == KindInt {
		return t.IntWidth.Signed() == target.IntWidth.Signed() && target.IntWidth.Bits() >= t.IntWidth.Bits()
	}
	return false
}

// CanExplicitlyCastTo implements the `as` operator's permitted conversions:
// integer<->integer of any width/sign, pointer<->pointer of any pointee,
// and integer<->pointer. Struct/union casts are never permitted.
func (t Type) CanExplicitlyCastTo(target Type) bool {
	if t.CanImplicitlyCastTo(target) {
		return true
	}
	switch {
	case t.Kind == KindInt && target.Kind == KindInt:
		return true
	case t.Kind == KindPointer && target.Kind == KindPointer:
		return true
	case t.Kind == KindInt && target.Kind == KindPointer:
		return true
	case t.Kind == KindPointer && target.Kind == KindInt:
		return true
	default:
		return false
	}
}

// String renders the canonical Zirco source-form spelling of t, used in
// diagnostics (spec.md §4.1's `to_string`).
func (t Type) String() string {
	return t.stringSeen(nil)
}

// stringSeen carries the set of Pointees currently being rendered along the
// recursion path so a self-referential type built through the forward-
// reference cell design (`struct Node { next: *Node }`) terminates instead
// of following Pointer->Struct->Pointer->... forever; the entry is removed
// again on the way back out, so two sibling fields that merely share a
// pointee (not a cycle) still render in full.
func (t Type) stringSeen(seen map[*Type]bool) string {
	switch t.Kind {
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return intNames[t.IntWidth]
	case KindPointer:
		if seen[t.Pointee] {
			return "*..."
		}
		if seen == nil {
			seen = make(map[*Type]bool)
		}
		seen[t.Pointee] = true
		s := "*" + t.Pointee.stringSeen(seen)
		delete(seen, t.Pointee)
		return s
	case KindStruct:
		return "struct { " + fieldsString(t.Fields, seen) + " }"
	case KindUnion:
		return "union { " + fieldsString(t.Fields, seen) + " }"
	case KindFn:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.stringSeen(seen)
		}
		variadic := ""
		if t.Variadic {
			if len(parts) > 0 {
				variadic = ", "
			}
			variadic += "..."
		}
		return fmt.Sprintf("fn(%s%s) -> %s", strings.Join(parts, ", "), variadic, t.Return.stringSeen(seen))
	default:
		panic("internal invariant violation: unknown type kind in String")
	}
}

func fieldsString(fields []Field, seen map[*Type]bool) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Type.stringSeen(seen))
	}
	return strings.Join(parts, ", ")
}
