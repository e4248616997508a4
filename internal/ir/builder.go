package ir

import (
	"flowc/internal/errors"
	"flowc/internal/exprtree"
	"flowc/internal/types"
)

// Builder is the expression-tree lowering pass.
// It is single-threaded and synchronous: a single Builder lowers
// one graph at a time, but distinct Builders may lower distinct graphs
// concurrently since none of this state is shared.
type Builder struct {
	evaluator PartialEvaluator

	// Per-lambda state, all cleared by resetCaches after each lambda.
	exprCache  map[exprtree.Node]*Instruction
	constCache map[exprtree.Node]*Variable
	paramCache map[*exprtree.Parameter]*Variable
	instrs     []*Instruction
	nextVarID  int
	nextInstID int
}

// NewBuilder creates a Builder that resolves closed member accesses
// using evaluator. Pass NopEvaluator{} if no intrinsic table
// is available.
func NewBuilder(evaluator PartialEvaluator) *Builder {
	b := &Builder{evaluator: evaluator}
	b.resetCaches()
	return b
}

func (b *Builder) resetCaches() {
	b.exprCache = make(map[exprtree.Node]*Instruction)
	b.constCache = make(map[exprtree.Node]*Variable)
	b.paramCache = make(map[*exprtree.Parameter]*Variable)
	b.instrs = nil
	b.nextVarID = 0
	b.nextInstID = 0
}

// Build lowers every lowering-eligible vertex of graph in place. A vertex
// is eligible when its OriginExpr is non-nil; for each quoted-lambda
// argument of that expression not owned by another vertex, Build attaches
// the lowered instruction list to v.Instructions[lambda].
//
// On the first UnsupportedExpressionError or MalformedNodeError, Build
// returns immediately; the graph's per-vertex instruction maps must then
// be considered invalid by the caller, even for vertices that lowered
// successfully before the failing one.
func (b *Builder) Build(graph *LGraph) error {
	for _, v := range graph.Vertices {
		if v.OriginExpr == nil {
			continue
		}
		for _, arg := range v.OriginExpr.Arguments() {
			lambda, ok := quotedLambda(arg)
			if !ok {
				continue
			}
			if skipsVertex(lambda) {
				continue
			}
			instrs, err := b.lowerLambda(lambda)
			if err != nil {
				return err
			}
			v.Instructions[lambda] = instrs
		}
	}
	return nil
}

// quotedLambda reports whether arg is a Quote wrapping a Lambda. This is
// the driver's use of Quote as a structural marker, distinct from
// visit's transparent handling of Quote.
func quotedLambda(arg exprtree.Node) (*exprtree.Lambda, bool) {
	q, ok := arg.(*exprtree.Quote)
	if !ok {
		return nil, false
	}
	l, ok := q.Operand.(*exprtree.Lambda)
	return l, ok
}

// skipsVertex implements the vertex-skipping heuristic: a
// quoted lambda whose first parameter is Symbol-typed and whose body is a
// call expression belongs to another vertex.
func skipsVertex(l *exprtree.Lambda) bool {
	if len(l.Params) == 0 {
		return false
	}
	if !types.IsSymbol(l.Params[0].Type) {
		return false
	}
	switch l.Body.(type) {
	case *exprtree.MethodCall, *exprtree.ServiceCall:
		return true
	default:
		return false
	}
}

// lowerLambda lowers a single lambda body to an instruction list: visit
// parameters, visit the body, collect the emitted instructions, then
// reset the per-lambda caches.
func (b *Builder) lowerLambda(l *exprtree.Lambda) ([]*Instruction, error) {
	b.resetCaches()
	for _, p := range l.Params {
		b.visitParameter(p)
	}
	if _, err := b.visit(l.Body); err != nil {
		return nil, err
	}
	instrs := b.instrs
	b.resetCaches()
	return instrs, nil
}

// visit is the structural switch over expression kinds. It
// returns the Variable holding the expression's value, or an error for
// any node kind without a visit rule.
func (b *Builder) visit(n exprtree.Node) (*Variable, error) {
	switch e := n.(type) {
	case *exprtree.Parameter:
		return b.visitParameter(e), nil
	case *exprtree.Constant:
		return b.visitConstant(e), nil
	case *exprtree.MemberAccess:
		return b.visitMemberAccess(e)
	case *exprtree.Binary:
		return b.visitBinary(e)
	case *exprtree.Unary:
		return b.visitUnary(e)
	case *exprtree.Conditional:
		return b.visitConditional(e)
	case *exprtree.MethodCall:
		return b.visitMethodCall(e)
	case *exprtree.New:
		return b.visitNew(e)
	case *exprtree.NewArray:
		return b.visitNewArray(e)
	case *exprtree.MemberInit:
		return b.visitMemberInit(e)
	case *exprtree.ListInit:
		return b.visitListInit(e)
	case *exprtree.Lambda:
		return b.visitLambda(e)
	case *exprtree.Index:
		return b.visitIndex(e)
	case *exprtree.Quote:
		// Transparent: Quote's only meaning inside visit is "lower my
		// operand" — the driver already consumed Quote-as-marker before
		// visit ever runs.
		return b.visit(e.Operand)
	default:
		return nil, errors.NewUnsupportedExpression(n)
	}
}

func (b *Builder) visitParameter(p *exprtree.Parameter) *Variable {
	if v, ok := b.paramCache[p]; ok {
		return v
	}
	v := &Variable{id: b.nextVariableID(), kind: VarParameter, typ: p.Type, Name: p.Name}
	b.paramCache[p] = v
	return v
}

func (b *Builder) visitConstant(c *exprtree.Constant) *Variable {
	if v, ok := b.constCache[c]; ok {
		return v
	}
	v := &Variable{id: b.nextVariableID(), kind: VarConstant, typ: c.Type, Value: c.Value}
	b.constCache[c] = v
	return v
}

// newConstant synthesizes a Constant variable with no corresponding
// expression node (e.g. the member-name operand of a MemberRead). These
// are never cached — only genuine Constant nodes are deduplicated by
// node identity.
func (b *Builder) newConstant(typ types.Type, value interface{}) *Variable {
	return &Variable{id: b.nextVariableID(), kind: VarConstant, typ: typ, Value: value}
}

func (b *Builder) visitMemberAccess(e *exprtree.MemberAccess) (*Variable, error) {
	if v, ok := b.constCache[e]; ok {
		return v, nil
	}

	// Try the whole chain rooted at e for partial evaluation first: a
	// multi-level closed access (clock.epoch) must be offered to the
	// evaluator as one dotted path, not resolved node-by-node, since the
	// intrinsic table is keyed on the full path.
	if value, ok := b.evaluator.Evaluate(e); ok {
		v := &Variable{id: b.nextVariableID(), kind: VarConstant, typ: e.Type, Value: value}
		b.constCache[e] = v
		return v, nil
	}
	if e.Target == nil {
		return nil, errors.NewUnsupportedExpression(e)
	}

	host, err := b.visit(e.Target)
	if err != nil {
		return nil, err
	}
	name := b.newConstant(types.String, e.Name)
	return b.emit(e, OpMemberRead, []*Variable{host, name}, e.Type), nil
}

func (b *Builder) visitBinary(e *exprtree.Binary) (*Variable, error) {
	if e.Left == nil || e.Right == nil {
		return nil, &errors.MalformedNodeError{NodeKind: e.Kind(), Pos: e.Position, Reason: "binary expression missing an operand"}
	}
	l, err := b.visit(e.Left)
	if err != nil {
		return nil, err
	}
	r, err := b.visit(e.Right)
	if err != nil {
		return nil, err
	}
	op, ok := binaryOpcode[e.Op]
	if !ok {
		return nil, errors.NewUnsupportedExpression(e)
	}
	return b.emit(e, op, []*Variable{l, r}, e.Type), nil
}

func (b *Builder) visitUnary(e *exprtree.Unary) (*Variable, error) {
	if e.Operand == nil {
		return nil, &errors.MalformedNodeError{NodeKind: e.Kind(), Pos: e.Position, Reason: "unary expression missing an operand"}
	}
	op, ok := unaryOpcode[e.Op]
	if !ok {
		return nil, errors.NewUnsupportedExpression(e)
	}
	operand, err := b.visit(e.Operand)
	if err != nil {
		return nil, err
	}
	return b.emit(e, op, []*Variable{operand}, e.Type), nil
}

func (b *Builder) visitConditional(e *exprtree.Conditional) (*Variable, error) {
	if e.Test == nil || e.Then == nil || e.Else == nil {
		return nil, &errors.MalformedNodeError{NodeKind: e.Kind(), Pos: e.Position, Reason: "conditional expression missing a branch"}
	}
	a, err := b.visit(e.Test)
	if err != nil {
		return nil, err
	}
	then, err := b.visit(e.Then)
	if err != nil {
		return nil, err
	}
	els, err := b.visit(e.Else)
	if err != nil {
		return nil, err
	}
	return b.emit(e, OpConditional, []*Variable{a, then, els}, e.Type), nil
}

func (b *Builder) visitMethodCall(e *exprtree.MethodCall) (*Variable, error) {
	if inst, ok := b.exprCache[e]; ok {
		return inst.Result(), nil
	}
	var sources []*Variable
	if e.Instance != nil {
		instance, err := b.visit(e.Instance)
		if err != nil {
			return nil, err
		}
		sources = append(sources, instance)
	}
	for _, a := range e.Args {
		v, err := b.visit(a)
		if err != nil {
			return nil, err
		}
		sources = append(sources, v)
	}
	dest := b.newTemp(e.Type)
	inst := &Instruction{id: b.nextInstructionID(), Opcode: OpCall, Sources: sources, Destinations: []*Variable{dest}, Method: &e.Method, Effect: EffectCall}
	dest.def = inst
	b.append(inst)
	b.exprCache[e] = inst
	return dest, nil
}

func (b *Builder) visitNew(e *exprtree.New) (*Variable, error) {
	if inst, ok := b.exprCache[e]; ok {
		return inst.Result(), nil
	}

	if len(e.Members) == 0 {
		var sources []*Variable
		for _, a := range e.Args {
			v, err := b.visit(a)
			if err != nil {
				return nil, err
			}
			sources = append(sources, v)
		}
		return b.emit(e, OpNew, sources, e.Type), nil
	}

	obj := b.newTemp(e.Type)
	instNew := &Instruction{id: b.nextInstructionID(), Opcode: OpNew, Destinations: []*Variable{obj}, Effect: EffectCall}
	obj.def = instNew
	b.append(instNew)
	b.exprCache[e] = instNew

	for _, m := range e.Members {
		if err := b.writeMember(e, obj, m); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func (b *Builder) writeMember(node exprtree.Node, obj *Variable, m exprtree.MemberBinding) error {
	if m.Nested {
		return errors.NewUnsupportedExpression(node)
	}
	val, err := b.visit(m.Value)
	if err != nil {
		return err
	}
	name := b.newConstant(types.String, m.Name)
	write := &Instruction{id: b.nextInstructionID(), Opcode: OpMemberWrite, Sources: []*Variable{val}, Destinations: []*Variable{obj, name}, Effect: EffectMemberWrite}
	b.append(write)
	return nil
}

func (b *Builder) visitNewArray(e *exprtree.NewArray) (*Variable, error) {
	if len(e.Elements) > 0 {
		var sources []*Variable
		for _, el := range e.Elements {
			v, err := b.visit(el)
			if err != nil {
				return nil, err
			}
			sources = append(sources, v)
		}
		return b.emit(e, OpNewArrayInit, sources, e.Type), nil
	}
	var sources []*Variable
	for _, dim := range e.Bounds {
		v, err := b.visit(dim)
		if err != nil {
			return nil, err
		}
		sources = append(sources, v)
	}
	return b.emit(e, OpNewArrayBounds, sources, e.Type), nil
}

func (b *Builder) visitMemberInit(e *exprtree.MemberInit) (*Variable, error) {
	if inst, ok := b.exprCache[e]; ok {
		return inst.Result(), nil
	}
	obj, err := b.visit(e.NewExpr)
	if err != nil {
		return nil, err
	}
	for _, binding := range e.Bindings {
		if err := b.writeMember(e, obj, binding); err != nil {
			return nil, err
		}
	}
	// Record the MemberInit node itself in the CSE cache so a repeated
	// reference shares obj without re-running the bindings.
	b.exprCache[e] = obj.def
	return obj, nil
}

func (b *Builder) visitListInit(e *exprtree.ListInit) (*Variable, error) {
	if len(e.Elements) > 0 {
		return nil, errors.NewUnsupportedExpression(e)
	}
	return b.visit(e.NewExpr)
}

func (b *Builder) visitLambda(l *exprtree.Lambda) (*Variable, error) {
	for _, p := range l.Params {
		b.visitParameter(p)
	}
	return b.visit(l.Body)
}

func (b *Builder) visitIndex(e *exprtree.Index) (*Variable, error) {
	var object *Variable
	if e.Object != nil {
		v, err := b.visit(e.Object)
		if err != nil {
			return nil, err
		}
		object = v
	} else {
		object = b.newConstant(types.Any, nil)
	}
	name := b.newConstant(types.String, e.Name)
	sources := []*Variable{object, name}
	for _, a := range e.Args {
		v, err := b.visit(a)
		if err != nil {
			return nil, err
		}
		sources = append(sources, v)
	}
	return b.emit(e, OpIndex, sources, e.Type), nil
}

// emit is the CSE-checked instruction emitter used by every visit rule
// that produces a single-destination, value-returning instruction: it
// reuses an existing instruction's result when node has already been
// lowered earlier in this lambda, and otherwise appends a fresh
// instruction with a fresh Temporary destination.
func (b *Builder) emit(node exprtree.Node, op Opcode, sources []*Variable, resultType types.Type) *Variable {
	if inst, ok := b.exprCache[node]; ok {
		return inst.Result()
	}
	dest := b.newTemp(resultType)
	inst := &Instruction{id: b.nextInstructionID(), Opcode: op, Sources: sources, Destinations: []*Variable{dest}, Effect: effectFor(op)}
	dest.def = inst
	b.append(inst)
	b.exprCache[node] = inst
	return dest
}

func (b *Builder) newTemp(typ types.Type) *Variable {
	return &Variable{id: b.nextVariableID(), kind: VarTemporary, typ: typ}
}

func (b *Builder) append(inst *Instruction) {
	b.instrs = append(b.instrs, inst)
}

func (b *Builder) nextVariableID() int {
	b.nextVarID++
	return b.nextVarID
}

func (b *Builder) nextInstructionID() int {
	b.nextInstID++
	return b.nextInstID
}

// binaryOpcode is the static map from source binary operator to IR
// opcode").
var binaryOpcode = map[exprtree.BinaryOp]Opcode{
	exprtree.BinAdd:                OpAdd,
	exprtree.BinSubtract:           OpSubtract,
	exprtree.BinMultiply:           OpMultiply,
	exprtree.BinDivide:             OpDivide,
	exprtree.BinModulo:             OpModulo,
	exprtree.BinPower:              OpPower,
	exprtree.BinAnd:                OpAnd,
	exprtree.BinOr:                 OpOr,
	exprtree.BinExclusiveOr:        OpExclusiveOr,
	exprtree.BinLeftShift:          OpLeftShift,
	exprtree.BinRightShift:         OpRightShift,
	exprtree.BinAndAlso:            OpAndAlso,
	exprtree.BinOrElse:             OpOrElse,
	exprtree.BinEqual:              OpEqual,
	exprtree.BinNotEqual:           OpNotEqual,
	exprtree.BinLessThan:           OpLessThan,
	exprtree.BinLessThanOrEqual:    OpLessThanOrEqual,
	exprtree.BinGreaterThan:        OpGreaterThan,
	exprtree.BinGreaterThanOrEqual: OpGreaterThanOrEqual,
	exprtree.BinAssign:             OpAssign,
	exprtree.BinAddAssign:          OpAddAssign,
	exprtree.BinSubtractAssign:     OpSubtractAssign,
	exprtree.BinMultiplyAssign:     OpMultiplyAssign,
	exprtree.BinDivideAssign:       OpDivideAssign,
	exprtree.BinModuloAssign:       OpModuloAssign,
	exprtree.BinPowerAssign:        OpPowerAssign,
	exprtree.BinAndAssign:          OpAndAssign,
	exprtree.BinOrAssign:           OpOrAssign,
	exprtree.BinExclusiveOrAssign:  OpExclusiveOrAssign,
	exprtree.BinLeftShiftAssign:    OpLeftShiftAssign,
	exprtree.BinRightShiftAssign:   OpRightShiftAssign,
	exprtree.BinArrayIndex:         OpArrayIndex,
}

// unaryOpcode is the static map from source unary operator to IR opcode.
// UnaryPlus intentionally maps to OpAdd — downstream consumers must
// tolerate Add appearing with a single source here. Increment/Decrement
// and every pre/post-
// assign form collapse onto the same two opcodes — the IR has no notion
// of "pre" vs "post", only of "compute the incremented/decremented
// value"; which value a caller treats as the expression's result is a
// property of which variable visit() returns, not of the opcode.
var unaryOpcode = map[exprtree.UnaryOp]Opcode{
	exprtree.UnaryTypeAs:               OpConvert,
	exprtree.UnaryConvert:              OpConvert,
	exprtree.UnaryConvertChecked:       OpConvert,
	exprtree.UnaryNegate:               OpNegate,
	exprtree.UnaryNegateChecked:        OpNegate,
	exprtree.UnaryPlus:                 OpAdd,
	exprtree.UnaryNot:                  OpNot,
	exprtree.UnaryIncrement:            OpIncrement,
	exprtree.UnaryPreIncrementAssign:   OpIncrement,
	exprtree.UnaryPostIncrementAssign:  OpIncrement,
	exprtree.UnaryDecrement:            OpDecrement,
	exprtree.UnaryPreDecrementAssign:   OpDecrement,
	exprtree.UnaryPostDecrementAssign:  OpDecrement,
	exprtree.UnaryOnesComplement:       OpOnesComplement,
}
