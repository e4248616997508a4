// Package errors carries the lowering pass's error taxonomy:
// UnsupportedExpression, MalformedNode are fatal to the whole graph;
// ResourceNotFound and IoError are surfaced to the resource-extraction
// caller. Nothing here is retried — a caller that gets one of these back
// must treat any partially-built per-vertex instruction maps as invalid.
package errors

import (
	"fmt"

	"flowc/internal/exprtree"
)

// UnsupportedExpressionError reports an expression node the pass has no
// visit rule for.
type UnsupportedExpressionError struct {
	NodeKind exprtree.Kind
	Pos      exprtree.Position
	Rendered string
}

func (e *UnsupportedExpressionError) Error() string {
	return fmt.Sprintf("unsupported expression: %s (%s)", e.NodeKind, e.Rendered)
}

// NewUnsupportedExpression builds an UnsupportedExpressionError from the
// offending node, rendering it for the diagnostic.
func NewUnsupportedExpression(n exprtree.Node) *UnsupportedExpressionError {
	return &UnsupportedExpressionError{
		NodeKind: n.Kind(),
		Pos:      n.Pos(),
		Rendered: exprtree.Render(n),
	}
}

// MalformedNodeError reports a node missing a required child — e.g. a
// Binary with a nil Left or Right.
type MalformedNodeError struct {
	NodeKind exprtree.Kind
	Pos      exprtree.Position
	Reason   string
}

func (e *MalformedNodeError) Error() string {
	return fmt.Sprintf("malformed %s node: %s", e.NodeKind, e.Reason)
}

// ResourceNotFoundError reports a resource-extraction request for
// a file absent from the embedded resource bundle.
type ResourceNotFoundError struct {
	File string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.File)
}

// IoError wraps an I/O failure surfaced unchanged from resource
// extraction.
type IoError struct {
	Op   string
	File string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.File, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }
