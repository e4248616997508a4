package lsp

import (
	"github.com/alecthomas/participle/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"

	flowerrors "flowc/internal/errors"
)

// ConvertParseError transforms a grammar parse failure into an LSP
// diagnostic. The participle error already carries a line/column; this
// widens it into a small visible span since participle reports a point,
// not a range.
func ConvertParseError(err error) []protocol.Diagnostic {
	pe, ok := err.(participle.Error)
	if !ok {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("flowc-parser"),
			Message:  err.Error(),
		}}
	}

	pos := pe.Position()
	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(max0(pos.Line - 1)),
				Character: uint32(max0(pos.Column - 1)),
			},
			End: protocol.Position{
				Line:      uint32(max0(pos.Line - 1)),
				Character: uint32(max0(pos.Column + 5)),
			},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("flowc-parser"),
		Message:  pe.Message(),
	}}
}

// ConvertLoweringError transforms a lowering-pass failure into an
// LSP diagnostic. Build stops at the first error, so there is always
// exactly one to report.
func ConvertLoweringError(err error) []protocol.Diagnostic {
	diag := protocol.Diagnostic{
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("flowc-lower"),
		Message:  err.Error(),
	}

	switch e := err.(type) {
	case *flowerrors.UnsupportedExpressionError:
		diag.Range = rangeAt(e.Pos.Line, e.Pos.Column, len(e.Rendered))
	case *flowerrors.MalformedNodeError:
		diag.Range = rangeAt(e.Pos.Line, e.Pos.Column, 1)
	default:
		diag.Range = protocol.Range{}
	}

	return []protocol.Diagnostic{diag}
}

func rangeAt(line, column, length int) protocol.Range {
	if length <= 0 {
		length = 1
	}
	startLine := uint32(max0(line - 1))
	startChar := uint32(max0(column - 1))
	return protocol.Range{
		Start: protocol.Position{Line: startLine, Character: startChar},
		End:   protocol.Position{Line: startLine, Character: startChar + uint32(length)},
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
