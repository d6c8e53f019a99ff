package typecheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombineBranchesRequiresBothArms(t *testing.T) {
	assert.Equal(t, AlwaysReturns, CombineBranches(AlwaysReturns, true, AlwaysReturns))
	assert.Equal(t, SometimesReturns, CombineBranches(AlwaysReturns, true, NeverReturns))
	assert.Equal(t, SometimesReturns, CombineBranches(NeverReturns, true, AlwaysReturns))
	assert.Equal(t, NeverReturns, CombineBranches(NeverReturns, true, NeverReturns))
}

func TestCombineBranchesNoElseNeverAlways(t *testing.T) {
	// An `if` with no `else` can never be AlwaysReturns: the implicit empty
	// else branch never returns, so at best execution sometimes returns.
	assert.Equal(t, SometimesReturns, CombineBranches(AlwaysReturns, false, NeverReturns))
	assert.Equal(t, NeverReturns, CombineBranches(NeverReturns, false, NeverReturns))
}

func TestCombineArmsRequiresEveryArmAndDefault(t *testing.T) {
	allAlways := []Actuality{AlwaysReturns, AlwaysReturns, AlwaysReturns}
	assert.Equal(t, AlwaysReturns, CombineArms(allAlways, true))

	mixed := []Actuality{AlwaysReturns, NeverReturns}
	assert.Equal(t, SometimesReturns, CombineArms(mixed, true))

	allNever := []Actuality{NeverReturns, NeverReturns}
	assert.Equal(t, NeverReturns, CombineArms(allNever, true))
}

func TestCombineArmsNoDefaultNeverAlways(t *testing.T) {
	allAlways := []Actuality{AlwaysReturns, AlwaysReturns}
	assert.Equal(t, SometimesReturns, CombineArms(allAlways, false),
		"a switch/match with no default/wildcard arm can never be AlwaysReturns")

	allNever := []Actuality{NeverReturns, NeverReturns}
	assert.Equal(t, NeverReturns, CombineArms(allNever, false))
}
