// Package parser converts a parsed grammar.Program into the typed
// expression tree (internal/exprtree) and dataflow graph (internal/ir)
// the lowering pass consumes. It is the demonstration frontend's final
// stage — grammar does the lexing/parsing, this package does the
// desugaring into the pass's real input contract.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"flowc/grammar"
	"flowc/internal/exprtree"
	"flowc/internal/ir"
	"flowc/internal/types"
)

// ParseFile reads, parses and lowers-to-exprtree the composition DSL file
// at path, returning a graph with one vertex per top-level service call.
func ParseFile(path string) (*ir.LGraph, error) {
	prog, err := grammar.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return BuildGraph(path, prog)
}

// ParseString is ParseFile for in-memory source, attributed to filename
// for position reporting.
func ParseString(filename, source string) (*ir.LGraph, error) {
	prog, err := grammar.ParseString(filename, source)
	if err != nil {
		return nil, err
	}
	return BuildGraph(filename, prog)
}

// BuildGraph converts every parsed service-call statement into a vertex
// whose OriginExpr is the corresponding exprtree.ServiceCall.
func BuildGraph(filename string, prog *grammar.Program) (*ir.LGraph, error) {
	g := ir.NewGraph()
	for idx, call := range prog.Calls {
		sc, err := convertServiceCall(filename, call)
		if err != nil {
			return nil, err
		}
		id := ir.VertexID(fmt.Sprintf("%s.%s#%d", sc.Service, sc.Method, idx))
		g.AddVertex(ir.NewVertex(id, sc))
	}
	return g, nil
}

func convertServiceCall(filename string, call *grammar.ServiceCallStmt) (*exprtree.ServiceCall, error) {
	args := make([]exprtree.Node, 0, len(call.Args))
	for _, a := range call.Args {
		node, err := convertArg(filename, a)
		if err != nil {
			return nil, err
		}
		args = append(args, node)
	}
	return &exprtree.ServiceCall{
		Position: pos(filename, call.Pos),
		Service:  call.Service,
		Method:   call.Method,
		Args:     args,
	}, nil
}

// convertArg converts a call argument: a lambda becomes a Quote-wrapped
// Lambda (the structural marker Builder.Build scans for), anything else
// becomes its own expression tree.
func convertArg(filename string, a *grammar.Arg) (exprtree.Node, error) {
	if a.Lambda != nil {
		lambda, err := convertLambda(filename, a.Lambda)
		if err != nil {
			return nil, err
		}
		return &exprtree.Quote{Position: lambda.Position, Operand: lambda, Type: lambda.Type}, nil
	}
	return convertExpr(filename, a.Expr)
}

func convertLambda(filename string, l *grammar.LambdaExpr) (*exprtree.Lambda, error) {
	params := make([]*exprtree.Parameter, 0, len(l.Params))
	scope := map[string]*exprtree.Parameter{}
	for _, p := range l.Params {
		param := &exprtree.Parameter{Position: pos(filename, p.Pos), Name: p.Name, Type: resolveType(p.Type)}
		params = append(params, param)
		scope[p.Name] = param
	}
	body, err := convertExprScoped(filename, l.Body, scope)
	if err != nil {
		return nil, err
	}
	return &exprtree.Lambda{Position: pos(filename, l.Pos), Params: params, Body: body, Type: nodeType(body)}, nil
}

func convertExpr(filename string, e *grammar.Expr) (exprtree.Node, error) {
	return convertExprScoped(filename, e, nil)
}

func convertExprScoped(filename string, e *grammar.Expr, scope map[string]*exprtree.Parameter) (exprtree.Node, error) {
	c := &converter{filename: filename, scope: scope}
	return c.expr(e)
}

// converter carries the lambda-parameter scope active while converting
// one expression tree, so a bare identifier can resolve to its
// Parameter node instead of becoming a fresh closed MemberAccess root
// each time it is referenced.
type converter struct {
	filename string
	scope    map[string]*exprtree.Parameter
}

func (c *converter) expr(e *grammar.Expr) (exprtree.Node, error) {
	left, err := c.or(e.Cond)
	if err != nil {
		return nil, err
	}
	if e.Then == nil {
		return left, nil
	}
	then, err := c.expr(e.Then)
	if err != nil {
		return nil, err
	}
	els, err := c.expr(e.Else)
	if err != nil {
		return nil, err
	}
	return &exprtree.Conditional{Position: pos(c.filename, e.Pos), Test: left, Then: then, Else: els, Type: nodeType(then)}, nil
}

func (c *converter) or(e *grammar.OrExpr) (exprtree.Node, error) {
	left, err := c.and(e.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range e.Rest {
		right, err := c.and(r)
		if err != nil {
			return nil, err
		}
		left = &exprtree.Binary{Position: pos(c.filename, e.Pos), Op: exprtree.BinOrElse, Left: left, Right: right, Type: types.Bool}
	}
	return left, nil
}

func (c *converter) and(e *grammar.AndExpr) (exprtree.Node, error) {
	left, err := c.equality(e.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range e.Rest {
		right, err := c.equality(r)
		if err != nil {
			return nil, err
		}
		left = &exprtree.Binary{Position: pos(c.filename, e.Pos), Op: exprtree.BinAndAlso, Left: left, Right: right, Type: types.Bool}
	}
	return left, nil
}

func (c *converter) equality(e *grammar.EqualityExpr) (exprtree.Node, error) {
	left, err := c.relational(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		right, err := c.relational(op.Right)
		if err != nil {
			return nil, err
		}
		bop := exprtree.BinEqual
		if op.Op == "!=" {
			bop = exprtree.BinNotEqual
		}
		left = &exprtree.Binary{Position: pos(c.filename, e.Pos), Op: bop, Left: left, Right: right, Type: types.Bool}
	}
	return left, nil
}

func (c *converter) relational(e *grammar.RelationalExpr) (exprtree.Node, error) {
	left, err := c.additive(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		right, err := c.additive(op.Right)
		if err != nil {
			return nil, err
		}
		var bop exprtree.BinaryOp
		switch op.Op {
		case "<":
			bop = exprtree.BinLessThan
		case "<=":
			bop = exprtree.BinLessThanOrEqual
		case ">":
			bop = exprtree.BinGreaterThan
		default:
			bop = exprtree.BinGreaterThanOrEqual
		}
		left = &exprtree.Binary{Position: pos(c.filename, e.Pos), Op: bop, Left: left, Right: right, Type: types.Bool}
	}
	return left, nil
}

func (c *converter) additive(e *grammar.AdditiveExpr) (exprtree.Node, error) {
	left, err := c.multiplicative(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		right, err := c.multiplicative(op.Right)
		if err != nil {
			return nil, err
		}
		bop := exprtree.BinAdd
		if op.Op == "-" {
			bop = exprtree.BinSubtract
		}
		left = &exprtree.Binary{Position: pos(c.filename, e.Pos), Op: bop, Left: left, Right: right, Type: nodeType(left)}
	}
	return left, nil
}

func (c *converter) multiplicative(e *grammar.MultiplicativeExpr) (exprtree.Node, error) {
	left, err := c.unary(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		right, err := c.unary(op.Right)
		if err != nil {
			return nil, err
		}
		var bop exprtree.BinaryOp
		switch op.Op {
		case "*":
			bop = exprtree.BinMultiply
		case "/":
			bop = exprtree.BinDivide
		default:
			bop = exprtree.BinModulo
		}
		left = &exprtree.Binary{Position: pos(c.filename, e.Pos), Op: bop, Left: left, Right: right, Type: nodeType(left)}
	}
	return left, nil
}

func (c *converter) unary(e *grammar.UnaryExpr) (exprtree.Node, error) {
	operand, err := c.postfix(e.Value)
	if err != nil {
		return nil, err
	}
	if e.Operator == nil {
		return operand, nil
	}
	var op exprtree.UnaryOp
	switch *e.Operator {
	case "-":
		op = exprtree.UnaryNegate
	case "!":
		op = exprtree.UnaryNot
	default:
		op = exprtree.UnaryOnesComplement
	}
	return &exprtree.Unary{Position: pos(c.filename, e.Pos), Op: op, Operand: operand, Type: nodeType(operand)}, nil
}

func (c *converter) postfix(e *grammar.PostfixExpr) (exprtree.Node, error) {
	node, err := c.primary(e.Primary)
	if err != nil {
		return nil, err
	}
	for _, s := range e.Suffix {
		switch {
		case s.Member != nil:
			node, err = c.applyMember(s.Member, node)
		case s.Index != nil:
			node, err = c.applyIndex(s.Index, node)
		}
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (c *converter) applyMember(m *grammar.MemberSuffix, target exprtree.Node) (exprtree.Node, error) {
	if m.Call != nil {
		args, err := c.args(m.Call)
		if err != nil {
			return nil, err
		}
		ref := exprtree.MethodRef{Name: m.Name, DeclType: nodeType(target).String(), ReturnType: types.Any, ParamTypes: paramTypes(args)}
		return &exprtree.MethodCall{Position: pos(c.filename, m.Pos), Instance: target, Args: args, Method: ref, Type: types.Any}, nil
	}
	return &exprtree.MemberAccess{Position: pos(c.filename, m.Pos), Target: target, Name: m.Name, Type: types.Any}, nil
}

func (c *converter) applyIndex(idx *grammar.IndexSuffix, target exprtree.Node) (exprtree.Node, error) {
	arg, err := c.expr(idx.Value)
	if err != nil {
		return nil, err
	}
	return &exprtree.Index{Position: pos(c.filename, idx.Pos), Object: target, Name: "", Args: []exprtree.Node{arg}, Type: types.Any}, nil
}

func (c *converter) args(a *grammar.Args) ([]exprtree.Node, error) {
	out := make([]exprtree.Node, 0, len(a.List))
	for _, e := range a.List {
		node, err := c.expr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

func (c *converter) primary(p *grammar.PrimaryExpr) (exprtree.Node, error) {
	switch {
	case p.New != nil:
		return c.newExpr(p.New)
	case p.Float != nil:
		return &exprtree.Constant{Position: pos(c.filename, p.Pos), Type: types.Any, Value: *p.Float}, nil
	case p.Int != nil:
		return &exprtree.Constant{Position: pos(c.filename, p.Pos), Type: &types.IntType{Bits: 64}, Value: *p.Int}, nil
	case p.String != nil:
		return &exprtree.Constant{Position: pos(c.filename, p.Pos), Type: types.String, Value: unquote(*p.String)}, nil
	case p.Bool != nil:
		return &exprtree.Constant{Position: pos(c.filename, p.Pos), Type: types.Bool, Value: *p.Bool == "true"}, nil
	case p.Parens != nil:
		return c.expr(p.Parens)
	case p.Ident != nil:
		return c.ident(p.Pos, *p.Ident), nil
	default:
		return nil, fmt.Errorf("%s: empty primary expression", pos(c.filename, p.Pos))
	}
}

// ident resolves a bare identifier to its lambda Parameter when it is one
// in scope, and otherwise to the root of a closed MemberAccess chain.
func (c *converter) ident(p lexer.Position, name string) exprtree.Node {
	if param, ok := c.scope[name]; ok {
		return param
	}
	return &exprtree.MemberAccess{Position: pos(c.filename, p), Name: name, Type: types.Any}
}

func (c *converter) newExpr(n *grammar.NewExpr) (exprtree.Node, error) {
	args, err := c.args(n.Args)
	if err != nil {
		return nil, err
	}
	typ := resolveType(n.Type)
	newNode := &exprtree.New{Position: pos(c.filename, n.Pos), Args: args, Type: typ}
	if len(n.Bindings) == 0 {
		return newNode, nil
	}
	bindings := make([]exprtree.MemberBinding, 0, len(n.Bindings))
	for _, b := range n.Bindings {
		val, err := c.expr(b.Value)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, exprtree.MemberBinding{Position: pos(c.filename, b.Pos), Name: b.Name, Value: val})
	}
	if len(args) == 0 {
		newNode.Members = bindings
		return newNode, nil
	}
	return &exprtree.MemberInit{Position: pos(c.filename, n.Pos), NewExpr: newNode, Bindings: bindings, Type: typ}, nil
}

func unquote(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, `"`), `"`)
}

func nodeType(n exprtree.Node) types.Type {
	switch e := n.(type) {
	case *exprtree.Constant:
		return e.Type
	case *exprtree.Parameter:
		return e.Type
	case *exprtree.MemberAccess:
		return e.Type
	case *exprtree.Binary:
		return e.Type
	case *exprtree.Unary:
		return e.Type
	case *exprtree.Conditional:
		return e.Type
	case *exprtree.MethodCall:
		return e.Type
	case *exprtree.New:
		return e.Type
	case *exprtree.MemberInit:
		return e.Type
	case *exprtree.Index:
		return e.Type
	default:
		return types.Any
	}
}

func paramTypes(args []exprtree.Node) []types.Type {
	out := make([]types.Type, len(args))
	for i, a := range args {
		out[i] = nodeType(a)
	}
	return out
}

// resolveType maps the DSL's type names onto the shared static type
// model (internal/types). Unrecognized names become an ObjectType,
// naming a user/service-level class the demonstration frontend does not
// itself define.
func resolveType(name string) types.Type {
	switch name {
	case "Symbol":
		return types.Symbol
	case "String":
		return types.String
	case "Bool":
		return types.Bool
	case "Any":
		return types.Any
	case "Void":
		return types.Void
	}
	if strings.HasPrefix(name, "Int") || strings.HasPrefix(name, "UInt") {
		unsigned := strings.HasPrefix(name, "UInt")
		digits := strings.TrimPrefix(strings.TrimPrefix(name, "UInt"), "Int")
		if bits, err := strconv.Atoi(digits); err == nil {
			return &types.IntType{Bits: bits, Unsigned: unsigned}
		}
	}
	return &types.ObjectType{Name: name}
}

func pos(filename string, p lexer.Position) exprtree.Position {
	return exprtree.Position{File: filename, Line: p.Line, Column: p.Column}
}
