// Package typecheck lowers ast.Program into tast via a bidirectional-ish
// expression checker and a statement checker with control-flow return
// analysis (spec.md §4.2-§4.3).
//
// Grounded on the overall dispatch shape of the original zrc_typeck Rust
// crate (see original_source/compiler/zrc_typeck/src/typeck/block.rs),
// reworked into idiomatic Go: explicit (value, error) returns in place of
// Result, and the teacher's *diagnostics.Report in place of
// zrc_diagnostics::Diagnostic.
package typecheck

import "github.com/zirco-lang/zircoc/internal/types"

// ReturnAbilityKind distinguishes the three ways a block may relate to
// `return` (spec.md §3's return-analysis lattice).
type ReturnAbilityKind int

const (
	MustNotReturn ReturnAbilityKind = iota
	MayReturn
	MustReturn
)

// ReturnAbility pairs a ReturnAbilityKind with the expected return type,
// meaningful only when Kind != MustNotReturn.
type ReturnAbility struct {
	Kind     ReturnAbilityKind
	Expected types.Type
}

// NotReturnable is the ability of a context where `return` is forbidden
// (spec.md calls this BlockReturnAbility::MustNotReturn).
func NotReturnable() ReturnAbility { return ReturnAbility{Kind: MustNotReturn} }

// May builds a MayReturn(expected) ability.
func May(expected types.Type) ReturnAbility { return ReturnAbility{Kind: MayReturn, Expected: expected} }

// Must builds a MustReturn(expected) ability.
func Must(expected types.Type) ReturnAbility { return ReturnAbility{Kind: MustReturn, Expected: expected} }

// Demote maps MustReturn(T) -> MayReturn(T), used when entering a nested
// block of a function (spec.md §3). MayReturn and MustNotReturn are
// unaffected.
func (a ReturnAbility) Demote() ReturnAbility {
	if a.Kind == MustReturn {
		return May(a.Expected)
	}
	return a
}

// Actuality is the three-valued lattice Never < Sometimes < Always
// describing whether a block actually returns on every, some, or no
// control-flow path.
type Actuality int

const (
	NeverReturns Actuality = iota
	SometimesReturns
	AlwaysReturns
)

// Combine implements spec.md §4.3 step 4: given the actualities of every
// statement in a block (in source order, order does not matter to the
// result), produce the block's own actuality.
func Combine(actualities []Actuality) Actuality {
	might, will := false, false
	for _, a := range actualities {
		if a == SometimesReturns || a == AlwaysReturns {
			might = true
		}
		if a == AlwaysReturns {
			will = true
		}
	}
	switch {
	case will:
		return AlwaysReturns
	case might:
		return SometimesReturns
	default:
		return NeverReturns
	}
}

// CombineBranches implements the if/else branch-combination rule described
// in spec.md §4.3: both branches must always return for the if-statement
// itself to always return; an `if` with no `else` can never be
// AlwaysReturns, since the implicit empty else branch never returns.
func CombineBranches(then Actuality, hasElse bool, els Actuality) Actuality {
	if !hasElse {
		if then == NeverReturns {
			return NeverReturns
		}
		return SometimesReturns
	}
	switch {
	case then == AlwaysReturns && els == AlwaysReturns:
		return AlwaysReturns
	case then == NeverReturns && els == NeverReturns:
		return NeverReturns
	default:
		return SometimesReturns
	}
}

// CombineArms implements the switch/match arm-combination rule: every arm
// (plus the default, if present) must always return for the statement
// itself to always return. A switch/match with no default can never be
// AlwaysReturns, mirroring CombineBranches' no-else case, because no arm
// is guaranteed to run.
func CombineArms(arms []Actuality, hasDefault bool) Actuality {
	if !hasDefault {
		for _, a := range arms {
			if a != NeverReturns {
				return SometimesReturns
			}
		}
		return NeverReturns
	}
	allAlways, allNever := true, true
	for _, a := range arms {
		if a != AlwaysReturns {
			allAlways = false
		}
		if a != NeverReturns {
			allNever = false
		}
	}
	switch {
	case allAlways:
		return AlwaysReturns
	case allNever:
		return NeverReturns
	default:
		return SometimesReturns
	}
}

// LoopDowngrade implements the while/for downgrade rule: a loop that may
// execute zero times can never be guaranteed to return, so AlwaysReturns
// becomes SometimesReturns; do-while bodies always execute at least once
// and are exempt (callers simply don't apply this function to them).
func LoopDowngrade(a Actuality) Actuality {
	if a == AlwaysReturns {
		return SometimesReturns
	}
	return a
}
