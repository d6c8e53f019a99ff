package codegen

import "github.com/llir/llvm/ir/value"

// CgScope maps identifiers to the LLVM pointer value backing their
// storage (the alloca/GEP/function pointer each binding was lowered to).
// It mirrors internal/scope.Scope's clone-on-enter discipline (spec.md
// §5) one-for-one, kept as a separate type because it lives at codegen
// time and maps onto value.Value rather than types.Type.
type CgScope struct {
	vars map[string]value.Value
}

// NewCgScope constructs an empty codegen scope, used once per function.
func NewCgScope() *CgScope {
	return &CgScope{vars: make(map[string]value.Value)}
}

// Clone returns a scope with a shallow copy of every binding, so mutation
// through the clone is never visible to the parent it was cloned from.
func (s *CgScope) Clone() *CgScope {
	clone := &CgScope{vars: make(map[string]value.Value, len(s.vars))}
	for k, v := range s.vars {
		clone.vars[k] = v
	}
	return clone
}

// Insert binds name to ptr in this scope only.
func (s *CgScope) Insert(name string, ptr value.Value) {
	s.vars[name] = ptr
}

// Lookup resolves name, panicking (internal invariant violation) if it is
// absent: by the time codegen runs, the type-checker has already proven
// every identifier resolves, so a miss here means the two passes have
// drifted out of sync with each other.
func (s *CgScope) Lookup(name string) value.Value {
	v, ok := s.vars[name]
	if !ok {
		panic("internal invariant violation: codegen scope miss for " + name)
	}
	return v
}
