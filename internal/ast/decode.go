package ast

import (
	"encoding/json"
	"fmt"
)

// DecodeProgram parses the JSON representation produced by PrintProgram
// back into a *Program. Since the lexer/parser that would normally produce
// an AST from Zirco source text is outside this module's scope (spec.md
// §1), this JSON tree is the CLI's actual program input format — a
// hand-buildable, language-agnostic stand-in for a real parser's output,
// symmetric with Print's "type"-tagged map encoding.
func DecodeProgram(data []byte) (*Program, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid AST JSON: %w", err)
	}
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	prog, ok := n.(*Program)
	if !ok {
		return nil, fmt.Errorf("root node is %T, expected Program", n)
	}
	return prog, nil
}

func decodeNode(raw interface{}) (Node, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		if raw == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("expected a JSON object node, got %T", raw)
	}
	typ, _ := m["type"].(string)
	switch typ {
	case "Program":
		p := &Program{}
		for _, s := range asList(m["structs"]) {
			sd, err := decodeNode(s)
			if err != nil {
				return nil, err
			}
			decl, ok := sd.(*StructDecl)
			if !ok {
				return nil, fmt.Errorf("structs entry is %T, expected StructDecl", sd)
			}
			p.Structs = append(p.Structs, decl)
		}
		for _, u := range asList(m["unions"]) {
			ud, err := decodeNode(u)
			if err != nil {
				return nil, err
			}
			decl, ok := ud.(*UnionDecl)
			if !ok {
				return nil, fmt.Errorf("unions entry is %T, expected UnionDecl", ud)
			}
			p.Unions = append(p.Unions, decl)
		}
		for _, f := range asList(m["funcs"]) {
			fd, err := decodeNode(f)
			if err != nil {
				return nil, err
			}
			decl, ok := fd.(*FuncDecl)
			if !ok {
				return nil, fmt.Errorf("funcs entry is %T, expected FuncDecl", fd)
			}
			p.Funcs = append(p.Funcs, decl)
		}
		return p, nil

	case "StructDecl":
		return &StructDecl{Name: asString(m["name"]), Fields: decodeFields(m["fields"])}, nil
	case "UnionDecl":
		return &UnionDecl{Name: asString(m["name"]), Fields: decodeFields(m["fields"])}, nil
	case "FuncDecl":
		fd := &FuncDecl{Name: asString(m["name"]), Variadic: asBool(m["variadic"]), Params: decodeParams(m["params"])}
		if rt, ok := m["returns"]; ok {
			te, err := decodeTypeExpr(rt)
			if err != nil {
				return nil, err
			}
			fd.ReturnType = te
		}
		if body, ok := m["body"]; ok {
			stmts, err := decodeStmts(body)
			if err != nil {
				return nil, err
			}
			fd.Body = stmts
		}
		return fd, nil

	case "NamedType":
		return &NamedTypeExpr{Name: asString(m["name"])}, nil
	case "PointerType":
		pointee, err := decodeTypeExpr(m["pointee"])
		if err != nil {
			return nil, err
		}
		return &PointerTypeExpr{Pointee: pointee}, nil
	case "StructType":
		return &StructTypeExpr{Fields: decodeFields(m["fields"])}, nil
	case "UnionType":
		return &UnionTypeExpr{Fields: decodeFields(m["fields"])}, nil

	case "Identifier":
		return &Identifier{Name: asString(m["name"])}, nil
	case "IntegerLiteral":
		return &IntegerLiteral{Value: asUint64(m["value"]), Suffix: asString(m["suffix"])}, nil
	case "BoolLiteral":
		return &BoolLiteral{Value: asBool(m["value"])}, nil
	case "BinaryOp":
		l, r, err := decodeExprPair(m["left"], m["right"])
		if err != nil {
			return nil, err
		}
		return &BinaryOp{Op: asString(m["op"]), Left: l, Right: r}, nil
	case "ComparisonOp":
		l, r, err := decodeExprPair(m["left"], m["right"])
		if err != nil {
			return nil, err
		}
		return &ComparisonOp{Op: asString(m["op"]), Left: l, Right: r}, nil
	case "LogicalOp":
		l, r, err := decodeExprPair(m["left"], m["right"])
		if err != nil {
			return nil, err
		}
		return &LogicalOp{Op: asString(m["op"]), Left: l, Right: r}, nil
	case "Assignment":
		target, err := decodeExpr(m["target"])
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		return &Assignment{Op: asString(m["op"]), Target: target, Value: value}, nil
	case "Call":
		callee, err := decodeExpr(m["callee"])
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(m["args"])
		if err != nil {
			return nil, err
		}
		return &Call{Callee: callee, Args: args}, nil
	case "Index":
		target, idx, err := decodeExprPair(m["target"], m["index"])
		if err != nil {
			return nil, err
		}
		return &Index{Target: target, Idx: idx}, nil
	case "Deref":
		target, err := decodeExpr(m["target"])
		if err != nil {
			return nil, err
		}
		return &Deref{Target: target}, nil
	case "AddressOf":
		target, err := decodeExpr(m["target"])
		if err != nil {
			return nil, err
		}
		return &AddressOf{Target: target}, nil
	case "Dot":
		target, err := decodeExpr(m["target"])
		if err != nil {
			return nil, err
		}
		return &Dot{Target: target, Field: asString(m["field"])}, nil
	case "Cast":
		target, err := decodeExpr(m["target"])
		if err != nil {
			return nil, err
		}
		to, err := decodeTypeExpr(m["to"])
		if err != nil {
			return nil, err
		}
		return &Cast{Target: target, To: to}, nil
	case "IncDec":
		target, err := decodeExpr(m["target"])
		if err != nil {
			return nil, err
		}
		return &IncDec{Target: target, Op: asString(m["op"]), Postfix: asBool(m["postfix"])}, nil

	case "EmptyStmt":
		return &EmptyStmt{}, nil
	case "BreakStmt":
		return &BreakStmt{}, nil
	case "ContinueStmt":
		return &ContinueStmt{}, nil
	case "UnreachableStmt":
		return &UnreachableStmt{}, nil
	case "DeclarationList":
		var decls []LetDeclaration
		for _, e := range asList(m["declarations"]) {
			em := e.(map[string]interface{})
			d := LetDeclaration{Name: asString(em["name"])}
			if dt, ok := em["decl_type"]; ok {
				te, err := decodeTypeExpr(dt)
				if err != nil {
					return nil, err
				}
				d.Type = te
			}
			if init, ok := em["init"]; ok {
				ie, err := decodeExpr(init)
				if err != nil {
					return nil, err
				}
				d.Init = ie
			}
			decls = append(decls, d)
		}
		return &DeclarationList{Declarations: decls}, nil
	case "IfStmt":
		cond, err := decodeExpr(m["cond"])
		if err != nil {
			return nil, err
		}
		then, err := decodeStmts(m["then"])
		if err != nil {
			return nil, err
		}
		n := &IfStmt{Cond: cond, Then: then}
		if els, ok := m["else"]; ok {
			elseStmts, err := decodeStmts(els)
			if err != nil {
				return nil, err
			}
			n.Else = elseStmts
		}
		return n, nil
	case "WhileStmt":
		cond, err := decodeExpr(m["cond"])
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(m["body"])
		if err != nil {
			return nil, err
		}
		return &WhileStmt{Cond: cond, Body: body}, nil
	case "DoWhileStmt":
		cond, err := decodeExpr(m["cond"])
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(m["body"])
		if err != nil {
			return nil, err
		}
		return &DoWhileStmt{Cond: cond, Body: body}, nil
	case "ForStmt":
		body, err := decodeStmts(m["body"])
		if err != nil {
			return nil, err
		}
		n := &ForStmt{Body: body}
		for _, e := range asList(m["init"]) {
			em, _ := e.(map[string]interface{})
			d := LetDeclaration{Name: asString(em["name"])}
			if d.Type, err = decodeTypeExpr(em["decl_type"]); err != nil {
				return nil, err
			}
			if d.Init, err = decodeExpr(em["init"]); err != nil {
				return nil, err
			}
			n.Init = append(n.Init, d)
		}
		if cond, ok := m["cond"]; ok {
			ce, err := decodeExpr(cond)
			if err != nil {
				return nil, err
			}
			n.Cond = ce
		}
		if post, ok := m["post"]; ok {
			pe, err := decodeExpr(post)
			if err != nil {
				return nil, err
			}
			n.Post = pe
		}
		return n, nil
	case "SwitchCase":
		scrutinee, err := decodeExpr(m["scrutinee"])
		if err != nil {
			return nil, err
		}
		var arms []SwitchCaseArm
		for _, c := range asList(m["cases"]) {
			cm := c.(map[string]interface{})
			body, err := decodeStmts(cm["body"])
			if err != nil {
				return nil, err
			}
			arm := SwitchCaseArm{Default: asBool(cm["default"]), Body: body}
			if label, ok := cm["label"]; ok {
				le, err := decodeExpr(label)
				if err != nil {
					return nil, err
				}
				arm.Label = le
			}
			arms = append(arms, arm)
		}
		return &SwitchCase{Scrutinee: scrutinee, Cases: arms}, nil
	case "Match":
		scrutinee, err := decodeExpr(m["scrutinee"])
		if err != nil {
			return nil, err
		}
		var arms []MatchArm
		for _, c := range asList(m["cases"]) {
			cm := c.(map[string]interface{})
			body, err := decodeStmts(cm["body"])
			if err != nil {
				return nil, err
			}
			arms = append(arms, MatchArm{
				Wildcard: asBool(cm["wildcard"]),
				Variant:  asString(cm["variant"]),
				Binding:  asString(cm["binding"]),
				Body:     body,
			})
		}
		return &Match{Scrutinee: scrutinee, Cases: arms}, nil
	case "BlockStmt":
		body, err := decodeStmts(m["body"])
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Body: body}, nil
	case "ExprStmt":
		x, err := decodeExpr(m["expr"])
		if err != nil {
			return nil, err
		}
		return &ExprStmt{X: x}, nil
	case "ReturnStmt":
		n := &ReturnStmt{}
		if v, ok := m["value"]; ok {
			ve, err := decodeExpr(v)
			if err != nil {
				return nil, err
			}
			n.Value = ve
		}
		return n, nil

	default:
		return nil, fmt.Errorf("unknown AST node type %q", typ)
	}
}

func decodeExpr(raw interface{}) (Expr, error) {
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	e, ok := n.(Expr)
	if !ok {
		return nil, fmt.Errorf("node %T is not an expression", n)
	}
	return e, nil
}

func decodeExprPair(a, b interface{}) (Expr, Expr, error) {
	ea, err := decodeExpr(a)
	if err != nil {
		return nil, nil, err
	}
	eb, err := decodeExpr(b)
	if err != nil {
		return nil, nil, err
	}
	return ea, eb, nil
}

func decodeExprs(raw interface{}) ([]Expr, error) {
	var out []Expr
	for _, e := range asList(raw) {
		expr, err := decodeExpr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

func decodeStmts(raw interface{}) ([]Stmt, error) {
	var out []Stmt
	for _, s := range asList(raw) {
		n, err := decodeNode(s)
		if err != nil {
			return nil, err
		}
		stmt, ok := n.(Stmt)
		if !ok {
			return nil, fmt.Errorf("node %T is not a statement", n)
		}
		out = append(out, stmt)
	}
	return out, nil
}

func decodeTypeExpr(raw interface{}) (TypeExpr, error) {
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	te, ok := n.(TypeExpr)
	if !ok {
		return nil, fmt.Errorf("node %T is not a type expression", n)
	}
	return te, nil
}

func decodeFields(raw interface{}) []FieldTypeExpr {
	var out []FieldTypeExpr
	for _, f := range asList(raw) {
		fm := f.(map[string]interface{})
		te, err := decodeTypeExpr(fm["field_type"])
		if err != nil {
			continue
		}
		out = append(out, FieldTypeExpr{Name: asString(fm["name"]), Type: te})
	}
	return out
}

func decodeParams(raw interface{}) []Param {
	var out []Param
	for _, p := range asList(raw) {
		pm := p.(map[string]interface{})
		te, err := decodeTypeExpr(pm["param_type"])
		if err != nil {
			continue
		}
		out = append(out, Param{Name: asString(pm["name"]), Type: te})
	}
	return out
}

func asList(raw interface{}) []interface{} {
	l, _ := raw.([]interface{})
	return l
}

func asString(raw interface{}) string {
	s, _ := raw.(string)
	return s
}

func asBool(raw interface{}) bool {
	b, _ := raw.(bool)
	return b
}

func asUint64(raw interface{}) uint64 {
	switch v := raw.(type) {
	case float64:
		return uint64(v)
	case string:
		var n uint64
		fmt.Sscanf(v, "%d", &n)
		return n
	default:
		return 0
	}
}
