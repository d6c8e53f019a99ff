package ast

import (
	"encoding/json"
	"fmt"
)

// Print produces a deterministic JSON representation of an AST node, used
// for `--emit ast-debug` and golden snapshot tests.
//
// Grounded on the teacher's internal/ast/print.go `simplify`-to-map
// approach: walk the node, emit a "type" tag plus only the populated
// fields, and marshal with json.MarshalIndent for determinism.
func Print(node Node) string {
	data, err := json.MarshalIndent(simplify(node), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// PrintProgram is the Program-rooted convenience entry point.
func PrintProgram(p *Program) string {
	return Print(p)
}

func simplify(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		return map[string]interface{}{
			"type":    "Program",
			"structs": simplifyAll(structsToNodes(n.Structs)),
			"unions":  simplifyAll(unionsToNodes(n.Unions)),
			"funcs":   simplifyAll(funcsToNodes(n.Funcs)),
		}
	case *StructDecl:
		return map[string]interface{}{"type": "StructDecl", "name": n.Name, "fields": simplifyFields(n.Fields)}
	case *UnionDecl:
		return map[string]interface{}{"type": "UnionDecl", "name": n.Name, "fields": simplifyFields(n.Fields)}
	case *FuncDecl:
		m := map[string]interface{}{
			"type":     "FuncDecl",
			"name":     n.Name,
			"params":   simplifyParams(n.Params),
			"variadic": n.Variadic,
		}
		if n.ReturnType != nil {
			m["returns"] = simplify(n.ReturnType)
		}
		if n.Body != nil {
			m["body"] = simplifyStmts(n.Body)
		}
		return m

	case *NamedTypeExpr:
		return map[string]interface{}{"type": "NamedType", "name": n.Name}
	case *PointerTypeExpr:
		return map[string]interface{}{"type": "PointerType", "pointee": simplify(n.Pointee)}
	case *StructTypeExpr:
		return map[string]interface{}{"type": "StructType", "fields": simplifyFields(n.Fields)}
	case *UnionTypeExpr:
		return map[string]interface{}{"type": "UnionType", "fields": simplifyFields(n.Fields)}

	case *Identifier:
		return map[string]interface{}{"type": "Identifier", "name": n.Name}
	case *IntegerLiteral:
		return map[string]interface{}{"type": "IntegerLiteral", "value": n.Value, "suffix": n.Suffix}
	case *BoolLiteral:
		return map[string]interface{}{"type": "BoolLiteral", "value": n.Value}
	case *BinaryOp:
		return map[string]interface{}{"type": "BinaryOp", "op": n.Op, "left": simplify(n.Left), "right": simplify(n.Right)}
	case *ComparisonOp:
		return map[string]interface{}{"type": "ComparisonOp", "op": n.Op, "left": simplify(n.Left), "right": simplify(n.Right)}
	case *LogicalOp:
		return map[string]interface{}{"type": "LogicalOp", "op": n.Op, "left": simplify(n.Left), "right": simplify(n.Right)}
	case *Assignment:
		return map[string]interface{}{"type": "Assignment", "op": n.Op, "target": simplify(n.Target), "value": simplify(n.Value)}
	case *Call:
		return map[string]interface{}{"type": "Call", "callee": simplify(n.Callee), "args": simplifyAll(exprsToNodes(n.Args))}
	case *Index:
		return map[string]interface{}{"type": "Index", "target": simplify(n.Target), "index": simplify(n.Idx)}
	case *Deref:
		return map[string]interface{}{"type": "Deref", "target": simplify(n.Target)}
	case *AddressOf:
		return map[string]interface{}{"type": "AddressOf", "target": simplify(n.Target)}
	case *Dot:
		return map[string]interface{}{"type": "Dot", "target": simplify(n.Target), "field": n.Field}
	case *Cast:
		return map[string]interface{}{"type": "Cast", "target": simplify(n.Target), "to": simplify(n.To)}
	case *IncDec:
		return map[string]interface{}{"type": "IncDec", "op": n.Op, "postfix": n.Postfix, "target": simplify(n.Target)}

	case *EmptyStmt:
		return map[string]interface{}{"type": "EmptyStmt"}
	case *BreakStmt:
		return map[string]interface{}{"type": "BreakStmt"}
	case *ContinueStmt:
		return map[string]interface{}{"type": "ContinueStmt"}
	case *UnreachableStmt:
		return map[string]interface{}{"type": "UnreachableStmt"}
	case *DeclarationList:
		decls := make([]interface{}, len(n.Declarations))
		for i, d := range n.Declarations {
			e := map[string]interface{}{"name": d.Name}
			if d.Type != nil {
				e["decl_type"] = simplify(d.Type)
			}
			if d.Init != nil {
				e["init"] = simplify(d.Init)
			}
			decls[i] = e
		}
		return map[string]interface{}{"type": "DeclarationList", "declarations": decls}
	case *IfStmt:
		m := map[string]interface{}{"type": "IfStmt", "cond": simplify(n.Cond), "then": simplifyStmts(n.Then)}
		if n.Else != nil {
			m["else"] = simplifyStmts(n.Else)
		}
		return m
	case *WhileStmt:
		return map[string]interface{}{"type": "WhileStmt", "cond": simplify(n.Cond), "body": simplifyStmts(n.Body)}
	case *DoWhileStmt:
		return map[string]interface{}{"type": "DoWhileStmt", "body": simplifyStmts(n.Body), "cond": simplify(n.Cond)}
	case *ForStmt:
		m := map[string]interface{}{"type": "ForStmt", "body": simplifyStmts(n.Body)}
		if n.Init != nil {
			decls := make([]interface{}, len(n.Init))
			for i, d := range n.Init {
				e := map[string]interface{}{"name": d.Name}
				if d.Type != nil {
					e["decl_type"] = simplify(d.Type)
				}
				if d.Init != nil {
					e["init"] = simplify(d.Init)
				}
				decls[i] = e
			}
			m["init"] = decls
		}
		if n.Cond != nil {
			m["cond"] = simplify(n.Cond)
		}
		if n.Post != nil {
			m["post"] = simplify(n.Post)
		}
		return m
	case *SwitchCase:
		cases := make([]interface{}, len(n.Cases))
		for i, c := range n.Cases {
			e := map[string]interface{}{"default": c.Default, "body": simplifyStmts(c.Body)}
			if c.Label != nil {
				e["label"] = simplify(c.Label)
			}
			cases[i] = e
		}
		return map[string]interface{}{"type": "SwitchCase", "scrutinee": simplify(n.Scrutinee), "cases": cases}
	case *Match:
		cases := make([]interface{}, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = map[string]interface{}{
				"wildcard": c.Wildcard, "variant": c.Variant, "binding": c.Binding, "body": simplifyStmts(c.Body),
			}
		}
		return map[string]interface{}{"type": "Match", "scrutinee": simplify(n.Scrutinee), "cases": cases}
	case *BlockStmt:
		return map[string]interface{}{"type": "BlockStmt", "body": simplifyStmts(n.Body)}
	case *ExprStmt:
		return map[string]interface{}{"type": "ExprStmt", "expr": simplify(n.X)}
	case *ReturnStmt:
		m := map[string]interface{}{"type": "ReturnStmt"}
		if n.Value != nil {
			m["value"] = simplify(n.Value)
		}
		return m

	default:
		return map[string]interface{}{"type": fmt.Sprintf("%T", n)}
	}
}

func simplifyFields(fields []FieldTypeExpr) []interface{} {
	out := make([]interface{}, len(fields))
	for i, f := range fields {
		out[i] = map[string]interface{}{"name": f.Name, "field_type": simplify(f.Type)}
	}
	return out
}

func simplifyParams(params []Param) []interface{} {
	out := make([]interface{}, len(params))
	for i, p := range params {
		out[i] = map[string]interface{}{"name": p.Name, "param_type": simplify(p.Type)}
	}
	return out
}

func simplifyStmts(stmts []Stmt) []interface{} {
	out := make([]interface{}, len(stmts))
	for i, s := range stmts {
		out[i] = simplify(s)
	}
	return out
}

func simplifyAll(nodes []Node) []interface{} {
	out := make([]interface{}, len(nodes))
	for i, n := range nodes {
		out[i] = simplify(n)
	}
	return out
}

func structsToNodes(s []*StructDecl) []Node {
	out := make([]Node, len(s))
	for i, x := range s {
		out[i] = x
	}
	return out
}

func unionsToNodes(u []*UnionDecl) []Node {
	out := make([]Node, len(u))
	for i, x := range u {
		out[i] = x
	}
	return out
}

func funcsToNodes(f []*FuncDecl) []Node {
	out := make([]Node, len(f))
	for i, x := range f {
		out[i] = x
	}
	return out
}

func exprsToNodes(e []Expr) []Node {
	out := make([]Node, len(e))
	for i, x := range e {
		out[i] = x
	}
	return out
}
