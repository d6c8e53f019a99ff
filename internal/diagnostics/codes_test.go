package diagnostics

import "testing"

func TestErrorCodeTaxonomy(t *testing.T) {
	tests := []struct {
		code  string
		phase string
	}{
		{NM001IdentifierNotFound, "typecheck"},
		{TY001ExpectedGot, "typecheck"},
		{TY007ExpectedABlockToReturn, "typecheck"},
		{CF001CannotUseBreakOutsideOfLoop, "typecheck"},
		{LIT001IntegerOutOfRange, "typecheck"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			info, ok := GetErrorInfo(tt.code)
			if !ok {
				t.Fatalf("code %s missing from registry", tt.code)
			}
			if info.Code != tt.code {
				t.Errorf("code mismatch: got %s want %s", info.Code, tt.code)
			}
			if info.Phase != tt.phase {
				t.Errorf("phase mismatch for %s: got %s want %s", tt.code, info.Phase, tt.phase)
			}
			if info.Description == "" {
				t.Errorf("empty description for %s", tt.code)
			}
		})
	}
}

func TestAllConstructedCodesAreRegistered(t *testing.T) {
	allCodes := []string{
		NM001IdentifierNotFound, NM002FieldNotFound, NM003DuplicateDeclaration,
		TY001ExpectedGot, TY002InvalidCast, TY003NotAPlace, TY004CannotIndexNonPointer,
		TY005WrongArity, TY006CannotReturnHere, TY007ExpectedABlockToReturn,
		CF001CannotUseBreakOutsideOfLoop, CF002CannotUseContinueOutsideOfLoop, CF003NonExhaustiveMatch,
		LIT001IntegerOutOfRange,
	}

	for _, code := range allCodes {
		if _, ok := GetErrorInfo(code); !ok {
			t.Errorf("code %s is defined but missing from the registry", code)
		}
	}

	if len(Registry) < len(allCodes) {
		t.Errorf("registry has %d codes, expected at least %d", len(Registry), len(allCodes))
	}
}
