package diagnostics

import (
	"fmt"

	"github.com/zirco-lang/zircoc/internal/span"
)

// Error code constants, grouped by phase, mirroring the teacher's
// PAR###/TC###-style taxonomy (internal/errors/codes.go) but sized to
// Zirco's much smaller diagnostic surface (spec.md §7).
const (
	// Name resolution (NM###)
	NM001IdentifierNotFound    = "NM001"
	NM002FieldNotFound         = "NM002"
	NM003DuplicateDeclaration  = "NM003"

	// Typing (TY###)
	TY001ExpectedGot             = "TY001"
	TY002InvalidCast             = "TY002"
	TY003NotAPlace               = "TY003"
	TY004CannotIndexNonPointer   = "TY004"
	TY005WrongArity              = "TY005"
	TY006CannotReturnHere        = "TY006"
	TY007ExpectedABlockToReturn  = "TY007"

	// Control flow (CF###)
	CF001CannotUseBreakOutsideOfLoop    = "CF001"
	CF002CannotUseContinueOutsideOfLoop = "CF002"
	CF003NonExhaustiveMatch             = "CF003"

	// Literals (LIT###)
	LIT001IntegerOutOfRange = "LIT001"
)

// ErrorInfo records the static taxonomy metadata for a code, used for
// validation.
type ErrorInfo struct {
	Code        string
	Phase       string
	Description string
}

// Registry lists every diagnostic code this package can emit.
var Registry = map[string]ErrorInfo{
	NM001IdentifierNotFound:   {NM001IdentifierNotFound, "typecheck", "identifier not found in scope"},
	NM002FieldNotFound:        {NM002FieldNotFound, "typecheck", "struct/union has no such field"},
	NM003DuplicateDeclaration: {NM003DuplicateDeclaration, "typecheck", "name already declared in this scope"},

	TY001ExpectedGot:            {TY001ExpectedGot, "typecheck", "expression type did not match its context"},
	TY002InvalidCast:            {TY002InvalidCast, "typecheck", "`as` cast is not permitted between these types"},
	TY003NotAPlace:              {TY003NotAPlace, "typecheck", "expression is not addressable"},
	TY004CannotIndexNonPointer:  {TY004CannotIndexNonPointer, "typecheck", "indexing requires a pointer operand"},
	TY005WrongArity:             {TY005WrongArity, "typecheck", "call argument count does not match the callee"},
	TY006CannotReturnHere:       {TY006CannotReturnHere, "typecheck", "return is not permitted in this context"},
	TY007ExpectedABlockToReturn: {TY007ExpectedABlockToReturn, "typecheck", "block does not return on all paths"},

	CF001CannotUseBreakOutsideOfLoop:    {CF001CannotUseBreakOutsideOfLoop, "typecheck", "break outside of a loop"},
	CF002CannotUseContinueOutsideOfLoop: {CF002CannotUseContinueOutsideOfLoop, "typecheck", "continue outside of a loop"},
	CF003NonExhaustiveMatch:             {CF003NonExhaustiveMatch, "typecheck", "match does not cover every case"},

	LIT001IntegerOutOfRange: {LIT001IntegerOutOfRange, "typecheck", "integer literal does not fit its type"},
}

// GetErrorInfo looks up static metadata for a code.
func GetErrorInfo(code string) (ErrorInfo, bool) {
	info, ok := Registry[code]
	return info, ok
}

// IdentifierNotFound builds the NM001 diagnostic.
func IdentifierNotFound(name string, sp span.Span) *Report {
	return New(Error, NM001IdentifierNotFound, "typecheck",
		fmt.Sprintf("identifier not found: %q", name), sp, map[string]any{"name": name})
}

// FieldNotFound builds the NM002 diagnostic.
func FieldNotFound(typeName, field string, sp span.Span) *Report {
	return New(Error, NM002FieldNotFound, "typecheck",
		fmt.Sprintf("no field %q on type %s", field, typeName), sp,
		map[string]any{"type": typeName, "field": field})
}

// DuplicateDeclaration builds the NM003 diagnostic.
func DuplicateDeclaration(name string, sp span.Span) *Report {
	return New(Error, NM003DuplicateDeclaration, "typecheck",
		fmt.Sprintf("%q is already declared in this scope", name), sp, map[string]any{"name": name})
}

// ExpectedGot builds the TY001 diagnostic.
func ExpectedGot(expected, got string, sp span.Span) *Report {
	return New(Error, TY001ExpectedGot, "typecheck",
		fmt.Sprintf("expected %s, got %s", expected, got), sp,
		map[string]any{"expected": expected, "got": got})
}

// InvalidCast builds the TY002 diagnostic.
func InvalidCast(from, to string, sp span.Span) *Report {
	return New(Error, TY002InvalidCast, "typecheck",
		fmt.Sprintf("cannot cast %s as %s", from, to), sp,
		map[string]any{"from": from, "to": to})
}

// NotAPlace builds the TY003 diagnostic.
func NotAPlace(sp span.Span) *Report {
	return New(Error, TY003NotAPlace, "typecheck", "expression is not a place", sp, nil)
}

// CannotIndexNonPointer builds the TY004 diagnostic.
func CannotIndexNonPointer(got string, sp span.Span) *Report {
	return New(Error, TY004CannotIndexNonPointer, "typecheck",
		fmt.Sprintf("cannot index into %s, expected a pointer", got), sp, map[string]any{"got": got})
}

// WrongArity builds the TY005 diagnostic.
func WrongArity(expected, got int, sp span.Span) *Report {
	return New(Error, TY005WrongArity, "typecheck",
		fmt.Sprintf("expected %d argument(s), got %d", expected, got), sp,
		map[string]any{"expected": expected, "got": got})
}

// CannotReturnHere builds the TY006 diagnostic.
func CannotReturnHere(sp span.Span) *Report {
	return New(Error, TY006CannotReturnHere, "typecheck", "cannot return here", sp, nil)
}

// ExpectedABlockToReturn builds the TY007 diagnostic.
func ExpectedABlockToReturn(sp span.Span) *Report {
	return New(Error, TY007ExpectedABlockToReturn, "typecheck", "expected a block to return", sp, nil)
}

// CannotUseBreakOutsideOfLoop builds the CF001 diagnostic.
func CannotUseBreakOutsideOfLoop(sp span.Span) *Report {
	return New(Error, CF001CannotUseBreakOutsideOfLoop, "typecheck", "cannot use `break` outside of a loop", sp, nil)
}

// CannotUseContinueOutsideOfLoop builds the CF002 diagnostic.
func CannotUseContinueOutsideOfLoop(sp span.Span) *Report {
	return New(Error, CF002CannotUseContinueOutsideOfLoop, "typecheck", "cannot use `continue` outside of a loop", sp, nil)
}

// NonExhaustiveMatch builds the CF003 diagnostic.
func NonExhaustiveMatch(missing []string, sp span.Span) *Report {
	return New(Error, CF003NonExhaustiveMatch, "typecheck",
		fmt.Sprintf("match is not exhaustive, missing: %v", missing), sp, map[string]any{"missing": missing})
}

// IntegerOutOfRange builds the LIT001 diagnostic.
func IntegerOutOfRange(literal string, target string, sp span.Span) *Report {
	return New(Error, LIT001IntegerOutOfRange, "typecheck",
		fmt.Sprintf("integer literal %s does not fit in %s", literal, target), sp,
		map[string]any{"literal": literal, "target": target})
}
