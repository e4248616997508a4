package ir

import (
	"strings"

	"flowc/internal/exprtree"
	"flowc/internal/types"
)

// PartialEvaluator resolves a closed (target == nil) MemberAccess to a
// compile-time constant. A failure MUST be reported as
// UnsupportedExpression by the caller, never as an evaluation error — the
// interface itself enforces that by returning ok=false rather than an
// error.
//
// Compiling and invoking a nullary lambda over the expression is one
// valid strategy for this; a Go port has no general "compile an
// arbitrary node and run it" primitive, so this implementation instead
// pushes constant folding of closed member chains back to a table the
// frontend populates.
type PartialEvaluator interface {
	Evaluate(expr *exprtree.MemberAccess) (value interface{}, ok bool)
}

// Intrinsic is one closed, argument-free reference the frontend has
// pre-registered as constant-foldable, keyed by its dotted path (e.g.
// "clock.epoch").
type Intrinsic struct {
	Path  string
	Value interface{}
	Type  types.Type
}

// IntrinsicEvaluator is a PartialEvaluator backed by a fixed table of
// Intrinsics, looked up by the dotted path formed by walking a
// MemberAccess chain.
type IntrinsicEvaluator struct {
	table map[string]Intrinsic
}

// NewIntrinsicEvaluator builds an evaluator from a list of Intrinsics.
func NewIntrinsicEvaluator(intrinsics ...Intrinsic) *IntrinsicEvaluator {
	table := make(map[string]Intrinsic, len(intrinsics))
	for _, in := range intrinsics {
		table[in.Path] = in
	}
	return &IntrinsicEvaluator{table: table}
}

// Evaluate resolves expr's closed member-access chain to its registered
// constant, if any.
func (e *IntrinsicEvaluator) Evaluate(expr *exprtree.MemberAccess) (interface{}, bool) {
	path, ok := closedPath(expr)
	if !ok {
		return nil, false
	}
	in, ok := e.table[path]
	if !ok {
		return nil, false
	}
	return in.Value, true
}

// TypeOf returns the registered static type for path, or types.Any for
// an unregistered path. The builder does not call it: it types a
// resolved Constant with the MemberAccess node's own Type.
func (e *IntrinsicEvaluator) TypeOf(path string) types.Type {
	if in, ok := e.table[path]; ok {
		return in.Type
	}
	return types.Any
}

// closedPath walks a MemberAccess chain with no non-nil Target root
// (i.e. every MemberAccess from expr down to the closed root has
// Target == nil or is itself a closed MemberAccess) into a dotted path.
// A chain with a live (non-access) root is not closed and returns ok=false.
func closedPath(expr *exprtree.MemberAccess) (string, bool) {
	var parts []string
	cur := expr
	for {
		parts = append([]string{cur.Name}, parts...)
		if cur.Target == nil {
			return strings.Join(parts, "."), true
		}
		next, ok := cur.Target.(*exprtree.MemberAccess)
		if !ok {
			return "", false
		}
		cur = next
	}
}

// NopEvaluator never resolves anything; ports with no intrinsic table
// populated yet, or languages expected to pre-fold every closed member
// access in the frontend, use this.
type NopEvaluator struct{}

func (NopEvaluator) Evaluate(*exprtree.MemberAccess) (interface{}, bool) { return nil, false }
