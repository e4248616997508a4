package ir_test

import (
	"testing"

	"flowc/internal/exprtree"
	"flowc/internal/ir"
	"flowc/internal/types"
)

func TestIntrinsicEvaluatorResolvesRegisteredPath(t *testing.T) {
	eval := ir.NewIntrinsicEvaluator(ir.Intrinsic{Path: "clock.epoch", Value: int64(0), Type: &types.IntType{Bits: 64}})

	access := &exprtree.MemberAccess{
		Target: &exprtree.MemberAccess{Name: "clock", Type: types.Any},
		Name:   "epoch",
		Type:   &types.IntType{Bits: 64},
	}
	value, ok := eval.Evaluate(access)
	if !ok {
		t.Fatal("expected clock.epoch to resolve")
	}
	if value != int64(0) {
		t.Fatalf("expected resolved value int64(0), got %#v", value)
	}
	if typ := eval.TypeOf("clock.epoch"); typ.String() != "Int64" {
		t.Fatalf("expected TypeOf to report Int64, got %v", typ)
	}
}

func TestIntrinsicEvaluatorRejectsUnregisteredPath(t *testing.T) {
	eval := ir.NewIntrinsicEvaluator(ir.Intrinsic{Path: "clock.epoch", Value: int64(0), Type: types.Any})
	access := &exprtree.MemberAccess{Name: "unknown", Type: types.Any}
	_, ok := eval.Evaluate(access)
	if ok {
		t.Fatal("expected an unregistered path to not resolve")
	}
}

func TestIntrinsicEvaluatorRejectsChainWithLiveRoot(t *testing.T) {
	eval := ir.NewIntrinsicEvaluator(ir.Intrinsic{Path: "clock.epoch", Value: int64(0), Type: types.Any})
	live := &exprtree.Parameter{Name: "clock", Type: types.Any}
	access := &exprtree.MemberAccess{Target: live, Name: "epoch", Type: types.Any}
	_, ok := eval.Evaluate(access)
	if ok {
		t.Fatal("expected a chain rooted in a live (non-access) node to never resolve")
	}
}

func TestIntrinsicEvaluatorTypeOfFallsBackToAnyForUnknownPath(t *testing.T) {
	eval := ir.NewIntrinsicEvaluator()
	if typ := eval.TypeOf("nothing.here"); typ != types.Any {
		t.Fatalf("expected types.Any fallback, got %v", typ)
	}
}

func TestNopEvaluatorNeverResolves(t *testing.T) {
	var eval ir.NopEvaluator
	access := &exprtree.MemberAccess{Name: "anything", Type: types.Any}
	_, ok := eval.Evaluate(access)
	if ok {
		t.Fatal("expected NopEvaluator to never resolve anything")
	}
}

func TestBuildResolvesNestedClosedMemberAccessViaIntrinsicChain(t *testing.T) {
	eval := ir.NewIntrinsicEvaluator(ir.Intrinsic{Path: "clock.epoch", Value: int64(42), Type: &types.IntType{Bits: 64}})
	access := &exprtree.MemberAccess{
		Target: &exprtree.MemberAccess{Name: "clock", Type: types.Any},
		Name:   "epoch",
		Type:   &types.IntType{Bits: 64},
	}
	lambda := paramLambda(nil, access)

	g, v := vertexWithCall(t, quoted(lambda))
	b := ir.NewBuilder(eval)
	if err := b.Build(g); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(v.Instructions[lambda]) != 0 {
		t.Fatalf("expected a fully-resolved closed access to emit zero instructions, got %d", len(v.Instructions[lambda]))
	}
}
