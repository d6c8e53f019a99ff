package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Renderer prints human-facing diagnostic reports with a caret underline
// under the offending span, colored the same way the teacher's CLI colors
// pass/fail output (green/red/yellow via fatih/color.SprintFunc).
type Renderer struct {
	errorLabel   func(a ...interface{}) string
	warningLabel func(a ...interface{}) string
	bold         func(a ...interface{}) string
}

// NewRenderer builds a Renderer. Pass color.NoColor = true upstream (or
// redirect to a non-tty) to disable ANSI output, matching fatih/color's own
// auto-detection convention.
func NewRenderer() *Renderer {
	return &Renderer{
		errorLabel:   color.New(color.FgRed, color.Bold).SprintFunc(),
		warningLabel: color.New(color.FgYellow, color.Bold).SprintFunc(),
		bold:         color.New(color.Bold).SprintFunc(),
	}
}

// Render writes a single diagnostic to w, given the full source text of the
// file it came from (used to compute line/column and the caret underline).
func (r *Renderer) Render(w io.Writer, rep *Report, source string) {
	label := r.errorLabel("error")
	if rep.Severity == Warning.String() {
		label = r.warningLabel("warning")
	}

	line, col, lineText := locate(source, rep.Span.Start)

	fmt.Fprintf(w, "%s[%s]: %s\n", label, rep.Code, r.bold(rep.Message))
	fmt.Fprintf(w, "  --> %s:%d:%d\n", rep.Span.File, line, col)
	if lineText != "" {
		fmt.Fprintf(w, "   |\n")
		fmt.Fprintf(w, "%3d| %s\n", line, lineText)
		fmt.Fprintf(w, "   | %s%s\n", strings.Repeat(" ", col-1), r.caretUnderline(rep, lineText, col))
	}
}

func (r *Renderer) caretUnderline(rep *Report, lineText string, col int) string {
	width := rep.Span.End - rep.Span.Start
	if width < 1 {
		width = 1
	}
	if col-1+width > len(lineText) {
		width = len(lineText) - (col - 1)
		if width < 1 {
			width = 1
		}
	}
	return r.errorLabel(strings.Repeat("^", width))
}

// locate computes the 1-based line/column of a byte offset and returns the
// full text of that line, for diagnostic rendering.
func locate(source string, offset int) (line, col int, lineText string) {
	line, col = 1, 1
	lineStart := 0
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			col = 1
			lineStart = i + 1
		} else {
			col++
		}
	}
	lineEnd := strings.IndexByte(source[lineStart:], '\n')
	if lineEnd == -1 {
		lineText = source[lineStart:]
	} else {
		lineText = source[lineStart : lineStart+lineEnd]
	}
	return line, col, lineText
}
