package exprtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flowc/internal/exprtree"
	"flowc/internal/types"
)

func TestRenderParameterAndConstant(t *testing.T) {
	p := &exprtree.Parameter{Name: "account", Type: &types.IntType{Bits: 64}}
	assert.Equal(t, "account", exprtree.Render(p))

	c := &exprtree.Constant{Type: types.Bool, Value: true}
	assert.Equal(t, "true", exprtree.Render(c))
}

func TestRenderClosedAndOpenMemberAccess(t *testing.T) {
	closed := &exprtree.MemberAccess{Name: "epoch", Type: types.Any}
	assert.Equal(t, "epoch", exprtree.Render(closed))

	target := &exprtree.Parameter{Name: "clock", Type: types.Any}
	open := &exprtree.MemberAccess{Target: target, Name: "epoch", Type: types.Any}
	assert.Equal(t, "clock.epoch", exprtree.Render(open))
}

func TestRenderBinaryAndUnary(t *testing.T) {
	left := &exprtree.Parameter{Name: "a", Type: types.Any}
	right := &exprtree.Parameter{Name: "b", Type: types.Any}
	bin := &exprtree.Binary{Op: exprtree.BinAdd, Left: left, Right: right, Type: types.Any}
	assert.Equal(t, "(a + b)", exprtree.Render(bin))

	un := &exprtree.Unary{Op: exprtree.UnaryNegate, Operand: left, Type: types.Any}
	assert.Contains(t, exprtree.Render(un), "a")
}

func TestRenderMethodCallWithAndWithoutInstance(t *testing.T) {
	instance := &exprtree.Parameter{Name: "account", Type: types.Any}
	call := &exprtree.MethodCall{Instance: instance, Method: exprtree.MethodRef{Name: "history"}, Type: types.Any}
	assert.Equal(t, "account.history()", exprtree.Render(call))

	static := &exprtree.MethodCall{Method: exprtree.MethodRef{Name: "now"}, Type: types.Any}
	assert.Equal(t, "now()", exprtree.Render(static))
}

func TestRenderQuoteWrapsOperand(t *testing.T) {
	lambda := &exprtree.Lambda{Type: types.Any}
	q := &exprtree.Quote{Operand: lambda, Type: types.Any}
	assert.Equal(t, "quote("+exprtree.Render(lambda)+")", exprtree.Render(q))
}

func TestServiceCallArgumentsReturnsArgs(t *testing.T) {
	arg := &exprtree.Parameter{Name: "amount", Type: types.Any}
	sc := &exprtree.ServiceCall{Service: "Ledger", Method: "credit", Args: []exprtree.Node{arg}}
	assert.Equal(t, []exprtree.Node{arg}, sc.Arguments())
	assert.Equal(t, exprtree.KindMethodCall, sc.Kind())
}

func TestNewUnsupportedCarriesKindAndPosition(t *testing.T) {
	pos := exprtree.Position{File: "x.flow", Line: 2, Column: 3}
	n := exprtree.NewUnsupported(exprtree.KindLoop, pos)
	assert.Equal(t, exprtree.KindLoop, n.Kind())
	assert.Equal(t, pos, n.Pos())
}
