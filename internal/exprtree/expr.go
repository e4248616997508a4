package exprtree

import "flowc/internal/types"

// Parameter is a bound lambda parameter. Node identity (the *Parameter
// pointer) is what the builder's parameter cache keys on — two distinct
// *Parameter values are always distinct variables even if Name/Type match.
type Parameter struct {
	Position Position
	Name     string
	Type     types.Type
}

func (*Parameter) isNode()        {}
func (*Parameter) Kind() Kind     { return KindParameter }
func (p *Parameter) Pos() Position { return p.Position }

// Constant is a frontend-produced literal. Dedup within a lambda is keyed
// on node identity, not on Value equality —
// two *Constant nodes with the same Value are still two variables unless
// the frontend reused the same node.
type Constant struct {
	Position Position
	Type     types.Type
	Value    interface{}
}

func (*Constant) isNode()        {}
func (*Constant) Kind() Kind     { return KindConstant }
func (c *Constant) Pos() Position { return c.Position }

// MemberAccess reads a named member off Target, or — when Target is nil —
// denotes a closed (static/captured) member reference the pass resolves
// by partial evaluation.
type MemberAccess struct {
	Position Position
	Target   Node // nil for a closed/static member access
	Name     string
	Type     types.Type
}

func (*MemberAccess) isNode()        {}
func (*MemberAccess) Kind() Kind     { return KindMemberAccess }
func (m *MemberAccess) Pos() Position { return m.Position }

// Binary covers ordinary binary operators, their compound-assign forms,
// and array indexing — all three share the same operand shape.
type Binary struct {
	Position Position
	Op       BinaryOp
	Left     Node
	Right    Node
	Type     types.Type
}

func (*Binary) isNode()        {}
func (*Binary) Kind() Kind     { return KindBinary }
func (b *Binary) Pos() Position { return b.Position }

// Unary covers conversions, sign/bitwise negation, logical not, and the
// increment/decrement family.
type Unary struct {
	Position Position
	Op       UnaryOp
	Operand  Node
	Type     types.Type
}

func (*Unary) isNode()        {}
func (*Unary) Kind() Kind     { return KindUnary }
func (u *Unary) Pos() Position { return u.Position }

// Conditional is the ternary `test ? then : else` expression. It is the
// only control-flow expression the pass supports.
type Conditional struct {
	Position Position
	Test     Node
	Then     Node
	Else     Node
	Type     types.Type
}

func (*Conditional) isNode()        {}
func (*Conditional) Kind() Kind     { return KindConditional }
func (c *Conditional) Pos() Position { return c.Position }

// MethodRef identifies the method a MethodCall invokes. It is carried
// through to the emitted Call instruction unchanged.
type MethodRef struct {
	Name       string
	DeclType   string
	ReturnType types.Type
	ParamTypes []types.Type
}

// MethodCall is `instance.Name(args...)`, or a static call when Instance
// is nil.
type MethodCall struct {
	Position Position
	Instance Node // nil for a static method call
	Args     []Node
	Method   MethodRef
	Type     types.Type
}

func (*MethodCall) isNode()        {}
func (*MethodCall) Kind() Kind     { return KindMethodCall }
func (m *MethodCall) Pos() Position { return m.Position }

// MemberBinding is one `Name = Value` pair inside an object initializer
// shorthand (New.Members) or a MemberInit.Bindings list.
type MemberBinding struct {
	Position Position
	Name     string
	Value    Node
	// Nested is set for MemberListBinding/MemberMemberBinding-shaped
	// bindings (a binding whose right-hand side is itself a nested
	// initializer list rather than a plain value expression). The pass
	// always rejects these.
	Nested bool
}

// New constructs an instance of Type. When Members is non-empty it is
// the object-initializer shorthand `new T { A = a, B = b }`; otherwise
// it is a plain constructor call `new T(args...)`.
type New struct {
	Position Position
	Args     []Node
	Members  []MemberBinding
	Type     types.Type
}

func (*New) isNode()        {}
func (*New) Kind() Kind     { return KindNew }
func (n *New) Pos() Position { return n.Position }

// NewArray is either a bounds-form array creation (`new T[n]`, Bounds
// set) or an initializer-list form (`new T[]{a, b, c}`, Elements set).
// Exactly one of the two is populated.
type NewArray struct {
	Position Position
	Bounds   []Node
	Elements []Node
	ElemType types.Type
	Type     types.Type
}

func (*NewArray) isNode()        {}
func (*NewArray) Kind() Kind     { return KindNewArray }
func (n *NewArray) Pos() Position { return n.Position }

// MemberInit is `new T(args...) { A = a, B = b }` with an explicit
// bindings list (as opposed to New.Members, the inline shorthand with no
// constructor arguments).
type MemberInit struct {
	Position Position
	NewExpr  *New
	Bindings []MemberBinding
	Type     types.Type
}

func (*MemberInit) isNode()        {}
func (*MemberInit) Kind() Kind     { return KindMemberInit }
func (m *MemberInit) Pos() Position { return m.Position }

// ListInit is `new T(args...) {a, b, c}`, a collection initializer. The
// pass only accepts the empty-list form.
type ListInit struct {
	Position Position
	NewExpr  *New
	Elements []Node
	Type     types.Type
}

func (*ListInit) isNode()        {}
func (*ListInit) Kind() Kind     { return KindListInit }
func (l *ListInit) Pos() Position { return l.Position }

// Lambda is a parameterized expression body. The driver (ir.Build) finds
// lambdas by unwrapping Quote nodes among a vertex's originating call
// arguments; Lambda also appears as an ordinary Node kind for
// the rarer case of a lambda value used without invocation.
type Lambda struct {
	Position Position
	Params   []*Parameter
	Body     Node
	Type     types.Type
}

func (*Lambda) isNode()        {}
func (*Lambda) Kind() Kind     { return KindLambda }
func (l *Lambda) Pos() Position { return l.Position }

// Index is `object[args...]`, generalized to cover indexer properties
// (Name non-empty) and raw array/collection indexing (Name empty).
// Object may be nil, denoting a static indexer.
type Index struct {
	Position Position
	Object   Node // nil for a static indexer
	Name     string
	Args     []Node
	Type     types.Type
}

func (*Index) isNode()        {}
func (*Index) Kind() Kind     { return KindIndex }
func (i *Index) Pos() Position { return i.Position }

// Quote wraps a Lambda as an un-evaluated fragment to be lowered rather
// than invoked. Quote is transparent inside the visitor (it returns its
// operand's variable with no instruction emitted) but is also the
// structural marker the driver scans for among a vertex's call arguments.
// These two uses stay distinct on purpose — Build's argument scan and
// Builder.visit's Quote case are two separate code paths rather than one.
type Quote struct {
	Position Position
	Operand  Node
	Type     types.Type
}

func (*Quote) isNode()        {}
func (*Quote) Kind() Kind     { return KindQuote }
func (q *Quote) Pos() Position { return q.Position }

// ServiceCall is the originating expression an LVertex carries: a call
// whose arguments are a mix of ordinary values and quoted lambdas, each
// possibly owned by a different vertex.
type ServiceCall struct {
	Position Position
	Service  string
	Method   string
	Args     []Node
}

func (*ServiceCall) isNode()        {}
func (*ServiceCall) Kind() Kind     { return KindMethodCall }
func (s *ServiceCall) Pos() Position { return s.Position }

// Arguments returns the call's argument list, the set Build
// scans for quoted lambdas.
func (s *ServiceCall) Arguments() []Node { return s.Args }

// unsupportedNode is the shared shape of every node kind the pass
// rejects outright. A single struct covers Block, TryCatch, Goto, Label,
// Loop, Switch, Dynamic, TypeBinary, InvocationOfNonLambda, DebugInfo and
// Default — the pass never inspects their fields, only their Kind.
type unsupportedNode struct {
	Position Position
	NodeKind Kind
}

func (*unsupportedNode) isNode()         {}
func (n *unsupportedNode) Kind() Kind     { return n.NodeKind }
func (n *unsupportedNode) Pos() Position  { return n.Position }

// NewUnsupported builds a node of one of the kinds the pass always
// rejects, for driving the UnsupportedExpression error path in tests
// without a real frontend.
func NewUnsupported(kind Kind, pos Position) Node {
	return &unsupportedNode{Position: pos, NodeKind: kind}
}
