package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveStrings(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		expected string
	}{
		{"Unit", Unit(), "unit"},
		{"Bool", Bool(), "bool"},
		{"I32", Int(I32), "i32"},
		{"Usize", Int(Usize), "usize"},
		{"PointerToI8", Pointer(Int(I8)), "*i8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.typ.String())
		})
	}
}

func TestStructEquality(t *testing.T) {
	a := Struct([]Field{{Name: "x", Type: Int(I32)}, {Name: "y", Type: Int(I32)}})
	b := Struct([]Field{{Name: "x", Type: Int(I32)}, {Name: "y", Type: Int(I32)}})
	c := Struct([]Field{{Name: "y", Type: Int(I32)}, {Name: "x", Type: Int(I32)}})

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c), "field order is part of struct identity")
}

func TestDuplicateFieldNamesPanic(t *testing.T) {
	require.Panics(t, func() {
		Struct([]Field{{Name: "x", Type: Bool()}, {Name: "x", Type: Int(I32)}})
	})
}

func TestCanImplicitlyCastTo(t *testing.T) {
	tests := []struct {
		name   string
		from   Type
		to     Type
		expect bool
	}{
		{"i8 widens to i32", Int(I8), Int(I32), true},
		{"i32 does not narrow to i8", Int(I32), Int(I8), false},
		{"u8 widens to u64", Int(U8), Int(U64), true},
		{"signed never coerces to unsigned", Int(I32), Int(U32), false},
		{"unit coerces to unit", Unit(), Unit(), true},
		{"pointer never coerces to int", Pointer(Int(I32)), Int(I64), false},
		{"pointer to different pointee never coerces", Pointer(Int(I32)), Pointer(Int(I8)), false},
		{"identical struct coerces to itself", Struct(nil), Struct(nil), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.from.CanImplicitlyCastTo(tt.to))
		})
	}
}

func TestCanExplicitlyCastTo(t *testing.T) {
	assert.True(t, Int(I32).CanExplicitlyCastTo(Int(U8)), "narrowing cast permitted with `as`")
	assert.True(t, Pointer(Int(I32)).CanExplicitlyCastTo(Pointer(Bool())), "pointer reinterpret permitted with `as`")
	assert.True(t, Int(I64).CanExplicitlyCastTo(Pointer(Int(I8))), "int->pointer permitted with `as`")
	assert.False(t, Struct(nil).CanExplicitlyCastTo(Union(nil)), "struct/union casts never permitted")
}

func TestFieldLookup(t *testing.T) {
	s := Struct([]Field{{Name: "a", Type: Bool()}, {Name: "b", Type: Int(I64)}})

	ty, ok := s.FieldType("b")
	require.True(t, ok)
	assert.True(t, Equal(ty, Int(I64)))

	idx, ok := s.FieldIndex("b")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = s.FieldType("missing")
	assert.False(t, ok)
}
