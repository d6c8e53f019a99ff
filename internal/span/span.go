// Package span tracks source positions that flow end-to-end from the AST
// through the TAST into diagnostics and debug info.
package span

import "fmt"

// Span is a half-open [Start, End) byte range within a single file.
type Span struct {
	Start int
	End   int
	File  string
}

// New builds a Span from a start/end byte offset pair.
func New(file string, start, end int) Span {
	return Span{Start: start, End: end, File: file}
}

// Zero reports whether s is the unset zero value.
func (s Span) Zero() bool {
	return s == Span{}
}

// Containing returns a span covering both s and other, keeping s's file.
func (s Span) Containing(other Span) Span {
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end, File: s.File}
}

// CollapseToEnd returns the one-byte span [s.End-1, s.End), used to
// anchor synthetic nodes (e.g. an implicit unit return) at the end of a
// block.
func (s Span) CollapseToEnd() Span {
	return Span{Start: s.End - 1, End: s.End, File: s.File}
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Start, s.End)
}

// Spanned pairs an arbitrary value with the source span it was parsed from.
type Spanned[T any] struct {
	Value T
	Span  Span
}

// With wraps a value with its span.
func With[T any](value T, s Span) Spanned[T] {
	return Spanned[T]{Value: value, Span: s}
}
