package ir_test

import (
	"strings"
	"testing"

	"flowc/internal/exprtree"
	"flowc/internal/ir"
	"flowc/internal/types"
)

func TestPrintOrdersLambdasByPosition(t *testing.T) {
	x := &exprtree.Parameter{Name: "x", Type: types.Any}
	y := &exprtree.Parameter{Name: "y", Type: types.Any}
	second := paramLambda([]*exprtree.Parameter{y}, y)
	second.Position = exprtree.Position{File: "f.flow", Line: 5, Column: 1}
	first := paramLambda([]*exprtree.Parameter{x}, x)
	first.Position = exprtree.Position{File: "f.flow", Line: 1, Column: 1}

	g, v := vertexWithCall(t, quoted(first), quoted(second))
	b := ir.NewBuilder(ir.NopEvaluator{})
	if err := b.Build(g); err != nil {
		t.Fatalf("Build: %v", err)
	}

	// The headers differ only by parameter name: "lambda(x):" belongs to
	// the lambda at line 1 and must come before "lambda(y):" at line 5.
	out := ir.Print(v)
	lines := strings.Split(out, "\n")
	var headerIdx []int
	firstIdx, secondIdx := -1, -1
	for i, l := range lines {
		switch l {
		case "lambda(x):":
			firstIdx = i
			headerIdx = append(headerIdx, i)
		case "lambda(y):":
			secondIdx = i
			headerIdx = append(headerIdx, i)
		}
	}
	if len(headerIdx) != 2 {
		t.Fatalf("expected 2 lambda headers, got %d", len(headerIdx))
	}
	if firstIdx > secondIdx {
		t.Fatalf("expected the line-1 lambda before the line-5 lambda, got:\n%s", out)
	}
}

func TestPrintRendersParameterNamesAndInstructions(t *testing.T) {
	account := &exprtree.Parameter{Name: "account", Type: &types.IntType{Bits: 64}}
	amount := &exprtree.Parameter{Name: "amount", Type: &types.IntType{Bits: 64}}
	body := &exprtree.Binary{Op: exprtree.BinAdd, Left: account, Right: amount, Type: account.Type}
	lambda := paramLambda([]*exprtree.Parameter{account, amount}, body)

	g, v := vertexWithCall(t, quoted(lambda))
	b := ir.NewBuilder(ir.NopEvaluator{})
	if err := b.Build(g); err != nil {
		t.Fatalf("Build: %v", err)
	}

	out := ir.Print(v)
	if !strings.Contains(out, "lambda(account, amount):") {
		t.Fatalf("expected a header naming both parameters, got:\n%s", out)
	}
	if !strings.Contains(out, "= Add(account, amount)") {
		t.Fatalf("expected a rendered Add instruction, got:\n%s", out)
	}
}
