// Package diagnostics implements the spec's diagnostic substrate: every
// AST/TAST node carries a span (see internal/span), and every diagnostic
// carries a severity and a spanned Kind.
//
// Grounded on the teacher's internal/errors.Report / ReportError pattern
// (a schema-tagged structured error that survives errors.As, can be
// JSON-encoded, and carries a map of interpolation data), generalized from
// AILANG's "ailang.error/v1" schema to a taxonomy matching spec.md §7.
package diagnostics

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zirco-lang/zircoc/internal/span"
)

// Schema is the JSON schema tag stamped on every encoded diagnostic.
const Schema = "zirco.diagnostic/v1"

// Severity classifies a diagnostic as fatal or advisory.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Kind is one member of the taxonomy in spec.md §7, identified by a
// human-assigned code (NM001, TY001, CF001, LIT001, ...).
type Kind struct {
	Code    string
	Phase   string
	Message string
	Data    map[string]any
}

// Report is the canonical structured diagnostic type. All diagnostic
// constructors in this package return a *Report.
type Report struct {
	Schema   string         `json:"schema"`
	Code     string         `json:"code"`
	Phase    string         `json:"phase"`
	Severity string         `json:"severity"`
	Message  string         `json:"message"`
	Span     span.Span      `json:"span"`
	Data     map[string]any `json:"data,omitempty"`
}

// DiagnosticError wraps a Report so it satisfies the error interface and
// survives errors.As unwrapping, exactly like the teacher's ReportError.
type DiagnosticError struct {
	Rep *Report
}

func (e *DiagnosticError) Error() string {
	if e.Rep == nil {
		return "unknown diagnostic"
	}
	return fmt.Sprintf("%s: %s (%s)", e.Rep.Code, e.Rep.Message, e.Rep.Span)
}

// AsReport extracts a *Report from an error chain, if present.
func AsReport(err error) (*Report, bool) {
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de.Rep, true
	}
	return nil, false
}

// Wrap returns r as an error.
func Wrap(r *Report) error {
	if r == nil {
		return nil
	}
	return &DiagnosticError{Rep: r}
}

// New builds a Report of the given severity, code/phase/message and span,
// with structured interpolation data for the renderer.
func New(sev Severity, code, phase, message string, sp span.Span, data map[string]any) *Report {
	return &Report{
		Schema:   Schema,
		Code:     code,
		Phase:    phase,
		Severity: sev.String(),
		Message:  message,
		Span:     sp,
		Data:     data,
	}
}

// JSON renders the report as indented JSON, used by `--emit` debug dumps
// and the golden-file test harness.
func (r *Report) JSON() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

// Bag accumulates warnings across a compilation; errors are fatal and are
// never placed here (spec.md §7: "Errors are fatal per translation unit").
type Bag struct {
	warnings []*Report
}

// Add appends a warning-severity report to the bag.
func (b *Bag) Add(r *Report) {
	b.warnings = append(b.warnings, r)
}

// Warnings returns the accumulated warnings in emission order.
func (b *Bag) Warnings() []*Report {
	return b.warnings
}

// Empty reports whether no warnings have been collected.
func (b *Bag) Empty() bool {
	return len(b.warnings) == 0
}
