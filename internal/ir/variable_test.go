package ir_test

import (
	"testing"

	"flowc/internal/exprtree"
	"flowc/internal/ir"
	"flowc/internal/types"
)

func TestBuildAssignsParameterNamesVerbatim(t *testing.T) {
	account := &exprtree.Parameter{Name: "account", Type: &types.IntType{Bits: 64}}
	amount := &exprtree.Parameter{Name: "amount", Type: &types.IntType{Bits: 64}}
	body := &exprtree.Binary{Op: exprtree.BinAdd, Left: account, Right: amount, Type: account.Type}
	lambda := paramLambda([]*exprtree.Parameter{account, amount}, body)

	g, v := vertexWithCall(t, quoted(lambda))
	b := ir.NewBuilder(ir.NopEvaluator{})
	if err := b.Build(g); err != nil {
		t.Fatalf("Build: %v", err)
	}

	instrs := v.Instructions[lambda]
	if len(instrs) != 1 {
		t.Fatalf("expected one instruction, got %d", len(instrs))
	}
	add := instrs[0]
	if len(add.Sources) != 2 {
		t.Fatalf("expected two sources, got %d", len(add.Sources))
	}
	for i, src := range add.Sources {
		if src.Kind() != ir.VarParameter {
			t.Fatalf("source %d: expected VarParameter, got %v", i, src.Kind())
		}
	}
	if add.Sources[0].String() != "account" || add.Sources[1].String() != "amount" {
		t.Fatalf("expected source names account/amount, got %s/%s", add.Sources[0].String(), add.Sources[1].String())
	}
	if add.Sources[0].Def() != nil {
		t.Fatal("a Parameter variable must never carry a defining instruction")
	}
}

func TestBuildConstantVariableRendersLiteralValue(t *testing.T) {
	left := &exprtree.Parameter{Name: "account", Type: &types.IntType{Bits: 64}}
	right := &exprtree.Constant{Type: &types.IntType{Bits: 64}, Value: 7}
	body := &exprtree.Binary{Op: exprtree.BinAdd, Left: left, Right: right, Type: left.Type}
	lambda := paramLambda([]*exprtree.Parameter{left}, body)

	g, v := vertexWithCall(t, quoted(lambda))
	b := ir.NewBuilder(ir.NopEvaluator{})
	if err := b.Build(g); err != nil {
		t.Fatalf("Build: %v", err)
	}

	add := v.Instructions[lambda][0]
	constSrc := add.Sources[1]
	if constSrc.Kind() != ir.VarConstant {
		t.Fatalf("expected VarConstant, got %v", constSrc.Kind())
	}
	if constSrc.String() != "7" {
		t.Fatalf("expected constant literal \"7\", got %q", constSrc.String())
	}
}

func TestBuildTemporaryCarriesItsDefiningInstruction(t *testing.T) {
	a := &exprtree.Parameter{Name: "a", Type: types.Any}
	bNode := &exprtree.Parameter{Name: "b", Type: types.Any}
	c := &exprtree.Parameter{Name: "c", Type: types.Any}
	inner := &exprtree.Binary{Op: exprtree.BinAdd, Left: a, Right: bNode, Type: types.Any}
	outer := &exprtree.Binary{Op: exprtree.BinMultiply, Left: inner, Right: c, Type: types.Any}
	lambda := paramLambda([]*exprtree.Parameter{a, bNode, c}, outer)

	g, v := vertexWithCall(t, quoted(lambda))
	b := ir.NewBuilder(ir.NopEvaluator{})
	if err := b.Build(g); err != nil {
		t.Fatalf("Build: %v", err)
	}

	instrs := v.Instructions[lambda]
	if len(instrs) != 2 {
		t.Fatalf("expected 2 instructions (Add then Multiply), got %d", len(instrs))
	}
	addInstr := instrs[0]
	mulInstr := instrs[1]

	temp := mulInstr.Sources[0]
	if temp.Kind() != ir.VarTemporary {
		t.Fatalf("expected the Multiply's first source to be a Temporary, got %v", temp.Kind())
	}
	if temp.Def() != addInstr {
		t.Fatal("expected the temporary's Def() to be the Add instruction that produced it")
	}
	if temp.String() == "" {
		t.Fatal("expected a non-empty t<id> rendering for a temporary")
	}
}

func TestVariableKindStringIsDistinctPerKind(t *testing.T) {
	names := map[ir.VariableKind]string{
		ir.VarParameter: "param",
		ir.VarConstant:  "const",
		ir.VarTemporary: "temp",
	}
	for kind, want := range names {
		if got := kind.String(); got != want {
			t.Fatalf("VariableKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
