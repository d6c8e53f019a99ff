package typecheck

import (
	"strconv"

	"github.com/zirco-lang/zircoc/internal/ast"
	"github.com/zirco-lang/zircoc/internal/diagnostics"
	"github.com/zirco-lang/zircoc/internal/scope"
	"github.com/zirco-lang/zircoc/internal/span"
	"github.com/zirco-lang/zircoc/internal/tast"
	"github.com/zirco-lang/zircoc/internal/types"
)

// Checked is the result of type-checking one AST expression: either a
// Place (addressable l-value) or an ordinary value, never both. This is
// the Go expression of spec.md §3's "TypedExpr | Place" split — rather
// than a mode bit, an AddressOf/Assignment/IncDec/Match call site must
// explicitly call AsPlace and handle the NotAPlace diagnostic.
type Checked struct {
	Sp   span.Span
	Type types.Type
	Plc  *tast.Place // non-nil when this expression denotes an l-value
	Val  tast.ExprKind
}

// AsValue converts c to an ordinary TypedExpr, inserting an implicit Load
// if c was a place (spec.md §4.5: "leaf values ... a load from the
// variable's stack slot").
func AsValue(c Checked) tast.TypedExpr {
	if c.Plc != nil {
		return tast.TypedExpr{Sp: c.Sp, InferredType: c.Type, Kind: tast.Load{Place: *c.Plc}}
	}
	return tast.TypedExpr{Sp: c.Sp, InferredType: c.Type, Kind: c.Val}
}

// AsPlace extracts c's Place, or raises NotAPlace.
func AsPlace(c Checked) (tast.Place, error) {
	if c.Plc == nil {
		return tast.Place{}, diagnostics.Wrap(diagnostics.NotAPlace(c.Sp))
	}
	return *c.Plc, nil
}

// TryCoerceTo implements spec.md §4.1's try_coerce_to: returns expr
// unchanged if its type already matches target, else wraps it in a
// synthetic Cast node when CanImplicitlyCastTo holds. ok is false when no
// implicit coercion exists; the caller is responsible for raising
// ExpectedGot in that case, mirroring the Rust contract that the caller
// has "already emitted a diagnostic" when ok is false.
func TryCoerceTo(expr tast.TypedExpr, target types.Type) (out tast.TypedExpr, ok bool) {
	if types.Equal(expr.InferredType, target) {
		return expr, true
	}
	if !expr.InferredType.CanImplicitlyCastTo(target) {
		return expr, false
	}
	return tast.TypedExpr{Sp: expr.Sp, InferredType: target, Kind: tast.Cast{Value: expr}}, true
}

// TypeExpr type-checks a single AST expression against a scope, returning
// either a Checked result or a diagnostic (spec.md §4.2).
func TypeExpr(s *scope.Scope, e ast.Expr) (Checked, error) {
	switch n := e.(type) {
	case *ast.Identifier:
		return typeIdentifier(s, n)
	case *ast.IntegerLiteral:
		return typeIntegerLiteral(n)
	case *ast.BoolLiteral:
		return Checked{Sp: n.Span(), Type: types.Bool(), Val: tast.Bool{Value: n.Value}}, nil
	case *ast.BinaryOp:
		return typeBinaryOp(s, n)
	case *ast.ComparisonOp:
		return typeComparisonOp(s, n)
	case *ast.LogicalOp:
		return typeLogicalOp(s, n)
	case *ast.Assignment:
		return typeAssignment(s, n)
	case *ast.Call:
		return typeCall(s, n)
	case *ast.Index:
		return typeIndex(s, n)
	case *ast.Deref:
		return typeDeref(s, n)
	case *ast.AddressOf:
		return typeAddressOf(s, n)
	case *ast.Dot:
		return typeDot(s, n)
	case *ast.Cast:
		return typeCast(s, n)
	case *ast.IncDec:
		return typeIncDec(s, n)
	default:
		panic("internal invariant violation: unknown ast.Expr")
	}
}

func typeIdentifier(s *scope.Scope, n *ast.Identifier) (Checked, error) {
	b, ok := s.Lookup(n.Name)
	if !ok {
		return Checked{}, diagnostics.Wrap(diagnostics.IdentifierNotFound(n.Name, n.Span()))
	}
	place := tast.Place{Sp: n.Span(), InferredType: b.Type, Kind: tast.Variable{Name: n.Name}}
	return Checked{Sp: n.Span(), Type: b.Type, Plc: &place}, nil
}

// typeIntegerLiteral implements spec.md §4.2: default type i32 absent a
// suffix; a typed suffix selects the literal's own type directly (coercion
// to a wider context type, if any, happens via TryCoerceTo at the use
// site, exactly as for any other value).
func typeIntegerLiteral(n *ast.IntegerLiteral) (Checked, error) {
	ty := types.Int(types.I32)
	if n.Suffix != "" {
		suffixed, ok := primitiveNames[n.Suffix]
		if !ok || !suffixed.IsInt() {
			return Checked{}, diagnostics.Wrap(diagnostics.ExpectedGot("an integer type", n.Suffix, n.Span()))
		}
		ty = suffixed
	}
	if !fitsInWidth(n.Value, ty.IntWidth) {
		return Checked{}, diagnostics.Wrap(diagnostics.IntegerOutOfRange(strconv.FormatUint(n.Value, 10), ty.String(), n.Span()))
	}
	return Checked{Sp: n.Span(), Type: ty, Val: tast.Integer{Value: n.Value}}, nil
}

func fitsInWidth(v uint64, w types.IntWidth) bool {
	bits := w.Bits()
	if w.Signed() {
		bits--
	}
	if bits >= 64 {
		return true
	}
	return v < (uint64(1) << bits)
}

// typeBinaryOp implements spec.md §4.2: both operands integer, mutual
// coercion attempted from the literal side, result type = operand type.
func typeBinaryOp(s *scope.Scope, n *ast.BinaryOp) (Checked, error) {
	left, err := TypeExpr(s, n.Left)
	if err != nil {
		return Checked{}, err
	}
	right, err := TypeExpr(s, n.Right)
	if err != nil {
		return Checked{}, err
	}
	lv, rv := AsValue(left), AsValue(right)

	if !lv.InferredType.IsInt() {
		return Checked{}, diagnostics.Wrap(diagnostics.ExpectedGot("an integer type", lv.InferredType.String(), lv.Sp))
	}
	if !rv.InferredType.IsInt() {
		return Checked{}, diagnostics.Wrap(diagnostics.ExpectedGot("an integer type", rv.InferredType.String(), rv.Sp))
	}

	lv, rv, common, ok := unifyOperands(lv, rv)
	if !ok {
		return Checked{}, diagnostics.Wrap(diagnostics.ExpectedGot(lv.InferredType.String(), rv.InferredType.String(), n.Span()))
	}

	return Checked{Sp: n.Span(), Type: common, Val: tast.Binary{Op: n.Op, Left: lv, Right: rv}}, nil
}

// unifyOperands tries to coerce one operand to the other's type (either
// direction) so a mixed literal/typed expression still type-checks, per
// spec.md §4.2's "require equal type after mutual coercion attempts from
// literal side".
func unifyOperands(lv, rv tast.TypedExpr) (tast.TypedExpr, tast.TypedExpr, types.Type, bool) {
	if types.Equal(lv.InferredType, rv.InferredType) {
		return lv, rv, lv.InferredType, true
	}
	if coerced, ok := TryCoerceTo(lv, rv.InferredType); ok {
		return coerced, rv, rv.InferredType, true
	}
	if coerced, ok := TryCoerceTo(rv, lv.InferredType); ok {
		return lv, coerced, lv.InferredType, true
	}
	return lv, rv, types.Type{}, false
}

// typeComparisonOp implements spec.md §4.2: operands integer-or-pointer of
// equal type; result bool.
func typeComparisonOp(s *scope.Scope, n *ast.ComparisonOp) (Checked, error) {
	left, err := TypeExpr(s, n.Left)
	if err != nil {
		return Checked{}, err
	}
	right, err := TypeExpr(s, n.Right)
	if err != nil {
		return Checked{}, err
	}
	lv, rv := AsValue(left), AsValue(right)

	if !lv.InferredType.IsInt() && !lv.InferredType.IsPointer() {
		return Checked{}, diagnostics.Wrap(diagnostics.ExpectedGot("an integer or pointer type", lv.InferredType.String(), lv.Sp))
	}
	lv, rv, _, ok := unifyOperands(lv, rv)
	if !ok {
		return Checked{}, diagnostics.Wrap(diagnostics.ExpectedGot(lv.InferredType.String(), rv.InferredType.String(), n.Span()))
	}

	return Checked{Sp: n.Span(), Type: types.Bool(), Val: tast.Comparison{Op: n.Op, Left: lv, Right: rv}}, nil
}

// typeLogicalOp implements spec.md §4.2: operands bool; result bool;
// short-circuit semantics preserved untouched in the TAST.
func typeLogicalOp(s *scope.Scope, n *ast.LogicalOp) (Checked, error) {
	left, err := TypeExpr(s, n.Left)
	if err != nil {
		return Checked{}, err
	}
	right, err := TypeExpr(s, n.Right)
	if err != nil {
		return Checked{}, err
	}
	lv, rv := AsValue(left), AsValue(right)
	if !types.Equal(lv.InferredType, types.Bool()) {
		return Checked{}, diagnostics.Wrap(diagnostics.ExpectedGot("bool", lv.InferredType.String(), lv.Sp))
	}
	if !types.Equal(rv.InferredType, types.Bool()) {
		return Checked{}, diagnostics.Wrap(diagnostics.ExpectedGot("bool", rv.InferredType.String(), rv.Sp))
	}
	return Checked{Sp: n.Span(), Type: types.Bool(), Val: tast.Logical{Op: n.Op, Left: lv, Right: rv}}, nil
}

func typeAssignment(s *scope.Scope, n *ast.Assignment) (Checked, error) {
	targetChecked, err := TypeExpr(s, n.Target)
	if err != nil {
		return Checked{}, err
	}
	place, err := AsPlace(targetChecked)
	if err != nil {
		return Checked{}, err
	}

	valueChecked, err := TypeExpr(s, n.Value)
	if err != nil {
		return Checked{}, err
	}
	value := AsValue(valueChecked)

	if n.Op != "" {
		// Compound assignment (`+=` etc) type-checks as `target = target OP value`.
		loadTarget := tast.TypedExpr{Sp: n.Target.Span(), InferredType: place.InferredType, Kind: tast.Load{Place: place}}
		if !loadTarget.InferredType.IsInt() || !value.InferredType.IsInt() {
			return Checked{}, diagnostics.Wrap(diagnostics.ExpectedGot("an integer type", value.InferredType.String(), value.Sp))
		}
		var ok bool
		loadTarget, value, _, ok = unifyOperands(loadTarget, value)
		if !ok {
			return Checked{}, diagnostics.Wrap(diagnostics.ExpectedGot(loadTarget.InferredType.String(), value.InferredType.String(), n.Span()))
		}
		value = tast.TypedExpr{
			Sp:           n.Span(),
			InferredType: place.InferredType,
			Kind:         tast.Binary{Op: n.Op, Left: loadTarget, Right: value},
		}
	} else {
		coerced, ok := TryCoerceTo(value, place.InferredType)
		if !ok {
			return Checked{}, diagnostics.Wrap(diagnostics.ExpectedGot(place.InferredType.String(), value.InferredType.String(), value.Sp))
		}
		value = coerced
	}

	return Checked{Sp: n.Span(), Type: value.InferredType, Val: tast.Assignment{Target: place, Value: value}}, nil
}

func typeCall(s *scope.Scope, n *ast.Call) (Checked, error) {
	ident, isIdent := n.Callee.(*ast.Identifier)
	if !isIdent {
		return Checked{}, diagnostics.Wrap(diagnostics.ExpectedGot("a function name", "a non-identifier callee", n.Callee.Span()))
	}
	b, ok := s.Lookup(ident.Name)
	if !ok {
		return Checked{}, diagnostics.Wrap(diagnostics.IdentifierNotFound(ident.Name, ident.Span()))
	}
	if b.Type.Kind != types.KindFn {
		return Checked{}, diagnostics.Wrap(diagnostics.ExpectedGot("a function", b.Type.String(), ident.Span()))
	}

	if b.Type.Variadic {
		if len(n.Args) < len(b.Type.Params) {
			return Checked{}, diagnostics.Wrap(diagnostics.WrongArity(len(b.Type.Params), len(n.Args), n.Span()))
		}
	} else if len(n.Args) != len(b.Type.Params) {
		return Checked{}, diagnostics.Wrap(diagnostics.WrongArity(len(b.Type.Params), len(n.Args), n.Span()))
	}

	args := make([]tast.TypedExpr, len(n.Args))
	for i, a := range n.Args {
		checked, err := TypeExpr(s, a)
		if err != nil {
			return Checked{}, err
		}
		value := AsValue(checked)
		if i < len(b.Type.Params) {
			coerced, ok := TryCoerceTo(value, b.Type.Params[i])
			if !ok {
				return Checked{}, diagnostics.Wrap(diagnostics.ExpectedGot(b.Type.Params[i].String(), value.InferredType.String(), value.Sp))
			}
			value = coerced
		}
		args[i] = value
	}

	return Checked{Sp: n.Span(), Type: *b.Type.Return, Val: tast.Call{Name: ident.Name, Args: args}}, nil
}

// typeIndex implements spec.md §4.2: `a` must be Pointer(T); `b` must be
// unsigned-integer-typed; result is a place of type T.
func typeIndex(s *scope.Scope, n *ast.Index) (Checked, error) {
	targetChecked, err := TypeExpr(s, n.Target)
	if err != nil {
		return Checked{}, err
	}
	target := AsValue(targetChecked)
	if !target.InferredType.IsPointer() {
		return Checked{}, diagnostics.Wrap(diagnostics.CannotIndexNonPointer(target.InferredType.String(), target.Sp))
	}

	idxChecked, err := TypeExpr(s, n.Idx)
	if err != nil {
		return Checked{}, err
	}
	idx := AsValue(idxChecked)
	if !idx.InferredType.IsUnsignedInt() {
		return Checked{}, diagnostics.Wrap(diagnostics.ExpectedGot("an unsigned integer type", idx.InferredType.String(), idx.Sp))
	}

	elem := *target.InferredType.Pointee
	place := tast.Place{Sp: n.Span(), InferredType: elem, Kind: tast.IndexPlace{Ptr: target, Idx: idx}}
	return Checked{Sp: n.Span(), Type: elem, Plc: &place}, nil
}

// typeDeref implements spec.md §4.2: `p` must be Pointer(T); result is a
// place of type T.
func typeDeref(s *scope.Scope, n *ast.Deref) (Checked, error) {
	targetChecked, err := TypeExpr(s, n.Target)
	if err != nil {
		return Checked{}, err
	}
	target := AsValue(targetChecked)
	if !target.InferredType.IsPointer() {
		return Checked{}, diagnostics.Wrap(diagnostics.ExpectedGot("a pointer type", target.InferredType.String(), target.Sp))
	}
	elem := *target.InferredType.Pointee
	place := tast.Place{Sp: n.Span(), InferredType: elem, Kind: tast.Deref{Pointer: target}}
	return Checked{Sp: n.Span(), Type: elem, Plc: &place}, nil
}

// typeAddressOf implements spec.md §4.2: `pl` must be a place; result
// value type Pointer(T).
func typeAddressOf(s *scope.Scope, n *ast.AddressOf) (Checked, error) {
	targetChecked, err := TypeExpr(s, n.Target)
	if err != nil {
		return Checked{}, err
	}
	place, err := AsPlace(targetChecked)
	if err != nil {
		return Checked{}, err
	}
	ptrTy := types.Pointer(place.InferredType)
	return Checked{Sp: n.Span(), Type: ptrTy, Val: tast.AddressOf{Place: place}}, nil
}

// typeDot implements spec.md §4.2: `x`'s type must be struct or union
// containing `f`; result is a place of the field's declared type.
func typeDot(s *scope.Scope, n *ast.Dot) (Checked, error) {
	targetChecked, err := TypeExpr(s, n.Target)
	if err != nil {
		return Checked{}, err
	}
	if targetChecked.Plc == nil {
		return Checked{}, diagnostics.Wrap(diagnostics.NotAPlace(n.Target.Span()))
	}
	base := *targetChecked.Plc

	if base.InferredType.Kind != types.KindStruct && base.InferredType.Kind != types.KindUnion {
		return Checked{}, diagnostics.Wrap(diagnostics.FieldNotFound(base.InferredType.String(), n.Field, n.Span()))
	}
	fieldTy, ok := base.InferredType.FieldType(n.Field)
	if !ok {
		return Checked{}, diagnostics.Wrap(diagnostics.FieldNotFound(base.InferredType.String(), n.Field, n.Span()))
	}

	place := tast.Place{Sp: n.Span(), InferredType: fieldTy, Kind: tast.DotPlace{Base: &base, Field: n.Field}}
	return Checked{Sp: n.Span(), Type: fieldTy, Plc: &place}, nil
}

// typeCast implements spec.md §4.2: integer<->integer of any width/sign,
// pointer<->pointer, integer<->pointer with explicit syntax.
func typeCast(s *scope.Scope, n *ast.Cast) (Checked, error) {
	targetChecked, err := TypeExpr(s, n.Target)
	if err != nil {
		return Checked{}, err
	}
	value := AsValue(targetChecked)

	to, err := resolveType(s, n.To)
	if err != nil {
		return Checked{}, err
	}
	if !value.InferredType.CanExplicitlyCastTo(to) {
		return Checked{}, diagnostics.Wrap(diagnostics.InvalidCast(value.InferredType.String(), to.String(), n.Span()))
	}
	return Checked{Sp: n.Span(), Type: to, Val: tast.Cast{Value: value}}, nil
}

// typeIncDec lowers `++x`/`x++`/`--x`/`x--`: Target must be a place of
// integer type (spec.md §9's pre/post increment design note).
func typeIncDec(s *scope.Scope, n *ast.IncDec) (Checked, error) {
	targetChecked, err := TypeExpr(s, n.Target)
	if err != nil {
		return Checked{}, err
	}
	place, err := AsPlace(targetChecked)
	if err != nil {
		return Checked{}, err
	}
	if !place.InferredType.IsInt() {
		return Checked{}, diagnostics.Wrap(diagnostics.ExpectedGot("an integer type", place.InferredType.String(), place.Sp))
	}
	return Checked{
		Sp:   n.Span(),
		Type: place.InferredType,
		Val:  tast.IncDec{Target: place, Op: n.Op, Postfix: n.Postfix},
	}, nil
}
