package ast

import (
	"encoding/json"
	"testing"

	"github.com/zirco-lang/zircoc/internal/span"
)

func sp(start, end int) span.Span { return span.New("test://unit", start, end) }

func TestPrintReturnStmtRoundTripsThroughJSON(t *testing.T) {
	ret := &ReturnStmt{base: base{Sp: sp(0, 7)}, Value: &IntegerLiteral{base: base{Sp: sp(7, 8)}, Value: 1}}

	out := Print(ret)

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("printed AST is not valid JSON: %v", err)
	}
	if decoded["type"] != "ReturnStmt" {
		t.Errorf("expected type ReturnStmt, got %v", decoded["type"])
	}
	value, ok := decoded["value"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected nested value object, got %#v", decoded["value"])
	}
	if value["type"] != "IntegerLiteral" {
		t.Errorf("expected nested IntegerLiteral, got %v", value["type"])
	}
}

func TestPrintProgramIncludesAllTopLevelDecls(t *testing.T) {
	prog := &Program{
		Sp: sp(0, 10),
		Structs: []*StructDecl{
			{Sp: sp(0, 5), Name: "S", Fields: []FieldTypeExpr{{Name: "x", Type: &NamedTypeExpr{Name: "i32"}}}},
		},
		Funcs: []*FuncDecl{
			{Sp: sp(5, 10), Name: "main", ReturnType: &NamedTypeExpr{Name: "i32"}},
		},
	}

	out := Print(prog)

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("printed AST is not valid JSON: %v", err)
	}
	structs, _ := decoded["structs"].([]interface{})
	if len(structs) != 1 {
		t.Errorf("expected 1 struct, got %d", len(structs))
	}
	funcs, _ := decoded["funcs"].([]interface{})
	if len(funcs) != 1 {
		t.Errorf("expected 1 func, got %d", len(funcs))
	}
}

func TestDecodeProgramRoundTripsThroughPrint(t *testing.T) {
	prog := &Program{
		Structs: []*StructDecl{
			{Name: "Pair", Fields: []FieldTypeExpr{
				{Name: "x", Type: &NamedTypeExpr{Name: "i32"}},
				{Name: "y", Type: &NamedTypeExpr{Name: "i32"}},
			}},
		},
		Funcs: []*FuncDecl{
			{
				Name:       "add",
				Params:     []Param{{Name: "a", Type: &NamedTypeExpr{Name: "i32"}}, {Name: "b", Type: &NamedTypeExpr{Name: "i32"}}},
				ReturnType: &NamedTypeExpr{Name: "i32"},
				Body: []Stmt{
					&ReturnStmt{Value: &BinaryOp{Op: "+", Left: &Identifier{Name: "a"}, Right: &Identifier{Name: "b"}}},
				},
			},
		},
	}

	decoded, err := DecodeProgram([]byte(PrintProgram(prog)))
	if err != nil {
		t.Fatalf("DecodeProgram: %v", err)
	}

	if len(decoded.Structs) != 1 || decoded.Structs[0].Name != "Pair" {
		t.Fatalf("struct did not round-trip: %#v", decoded.Structs)
	}
	if len(decoded.Funcs) != 1 || decoded.Funcs[0].Name != "add" {
		t.Fatalf("func did not round-trip: %#v", decoded.Funcs)
	}
	fd := decoded.Funcs[0]
	if len(fd.Params) != 2 || fd.Params[0].Name != "a" {
		t.Fatalf("params did not round-trip: %#v", fd.Params)
	}
	ret, ok := fd.Body[0].(*ReturnStmt)
	if !ok {
		t.Fatalf("expected *ReturnStmt, got %T", fd.Body[0])
	}
	bin, ok := ret.Value.(*BinaryOp)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected BinaryOp(+), got %#v", ret.Value)
	}
}
