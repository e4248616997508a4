package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter formats pass errors for a terminal in a Rust-like "-->" caret
// convention, simplified down to the single diagnostic shape the
// lowering pass produces (it has no suggestions/notes machinery — the
// pass either succeeds or fails outright).
type Reporter struct {
	filename string
	source   string
	lines    []string
}

// NewReporter creates a Reporter for formatting errors found while
// lowering the named source.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename: filename,
		source:   source,
		lines:    strings.Split(source, "\n"),
	}
}

// Format renders err as a colored, human-readable diagnostic. Errors
// without a usable position are still rendered, just without a source
// excerpt.
func (r *Reporter) Format(err error) string {
	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", red(bold("error")), err.Error())

	switch e := err.(type) {
	case *UnsupportedExpressionError:
		r.writeExcerpt(&b, e.Pos.Line, e.Pos.Column)
	case *MalformedNodeError:
		r.writeExcerpt(&b, e.Pos.Line, e.Pos.Column)
	}

	return b.String()
}

func (r *Reporter) writeExcerpt(b *strings.Builder, line, column int) {
	if line <= 0 || line > len(r.lines) {
		return
	}
	dim := color.New(color.Faint).SprintFunc()
	hiRed := color.New(color.FgHiRed).SprintFunc()

	fmt.Fprintf(b, "  %s %s:%d:%d\n", dim("-->"), r.filename, line, column)
	fmt.Fprintf(b, "  %s\n", r.lines[line-1])
	if column > 0 {
		fmt.Fprintf(b, "  %s%s\n", strings.Repeat(" ", column-1), hiRed("^"))
	}
}
