// Package scope implements the lexically nested name-to-binding mapping
// described in spec.md §3/§5: block entry clones the parent scope, block
// exit discards the clone, and the global scope additionally carries
// function signatures and declared struct/union types.
//
// Grounded on the clone-on-enter discipline the teacher applies to its own
// type environments (internal/types.Env, cloned per let-binding scope
// before this module's pruning pass removed it), generalized to Zirco's
// flat identifier->Type binding instead of a scheme-generalizing HM
// environment.
package scope

import "github.com/zirco-lang/zircoc/internal/types"

// BindingKind distinguishes why a name is bound, for diagnostics and for
// the "can this be reassigned" rules that do not otherwise affect typing.
type BindingKind int

const (
	BindingVariable BindingKind = iota
	BindingParameter
	BindingFunction
)

// Binding is one entry in a Scope.
type Binding struct {
	Type types.Type
	Kind BindingKind
}

// Scope is a clone-on-enter lexical environment: Insert mutates the
// receiver in place, and isolation from the parent comes from Clone. The
// zero value is not usable; construct with Global or clone an existing
// Scope.
type Scope struct {
	bindings map[string]Binding
	structs  map[string]types.Type
	unions   map[string]types.Type
}

// Global constructs a fresh top-level scope with no bindings.
func Global() *Scope {
	return &Scope{
		bindings: make(map[string]Binding),
		structs:  make(map[string]types.Type),
		unions:   make(map[string]types.Type),
	}
}

// Clone returns a new Scope with a shallow copy of every binding map,
// exactly spec.md §5's "shared between a parent block and its children by
// value-clone on entry" rule. Mutations made through the returned Scope
// are never visible through s.
func (s *Scope) Clone() *Scope {
	clone := &Scope{
		bindings: make(map[string]Binding, len(s.bindings)),
		structs:  s.structs,
		unions:   s.unions,
	}
	for k, v := range s.bindings {
		clone.bindings[k] = v
	}
	return clone
}

// Insert adds or shadows a binding in this scope (not visible to the
// parent this scope was cloned from).
func (s *Scope) Insert(name string, b Binding) {
	s.bindings[name] = b
}

// Lookup resolves an identifier, searching only this scope's own binding
// map (which already contains everything visible from enclosing blocks,
// thanks to clone-on-enter).
func (s *Scope) Lookup(name string) (Binding, bool) {
	b, ok := s.bindings[name]
	return b, ok
}

// DeclareStruct registers a named struct type in the global type
// namespace, shared (not cloned) across all scopes.
func (s *Scope) DeclareStruct(name string, t types.Type) {
	s.structs[name] = t
}

// DeclareUnion registers a named union type.
func (s *Scope) DeclareUnion(name string, t types.Type) {
	s.unions[name] = t
}

// LookupNamedType resolves a struct or union by name, in that order.
func (s *Scope) LookupNamedType(name string) (types.Type, bool) {
	if t, ok := s.structs[name]; ok {
		return t, ok
	}
	t, ok := s.unions[name]
	return t, ok
}
