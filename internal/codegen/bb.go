package codegen

import "github.com/llir/llvm/ir"

// BasicBlockAnd pairs a value with the basic block code generation should
// continue emitting into afterward (spec.md §9's design note): most
// expressions simply return the same block they were given, but
// short-circuit `&&`/`||` and any construct that introduces control flow
// mid-expression hands back a different, later block. Every cgExpr-family
// function therefore returns one of these instead of a bare value, in
// place of inkwell's mutable "current block" builder cursor.
type BasicBlockAnd[V any] struct {
	Block *ir.Block
	Value V
}

// and is the equivalent of the Rust original's `unpack!` macro: wraps a
// value together with the block it was produced in.
func and[V any](bb *ir.Block, v V) BasicBlockAnd[V] {
	return BasicBlockAnd[V]{Block: bb, Value: v}
}
