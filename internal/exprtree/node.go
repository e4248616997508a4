// Package exprtree defines the typed expression tree schema the lowering
// pass (internal/ir) consumes: every node presents a kind tag, a static
// type, and kind-specific children. Producing this tree from user source
// is the frontend's job and stays out of scope — this package only gives
// the schema a concrete Go shape, so the pass and its tests have
// something to walk.
package exprtree

// Position locates a node in its originating source, when one exists.
// Synthetic nodes (built directly by tests or by the demonstration
// parser's desugaring) may leave it zero.
type Position struct {
	File   string
	Line   int
	Column int
}

// Kind is the closed tag set a Node presents. The lowering pass switches
// on Kind (or, equivalently, on the Go type via a type switch) to decide
// how to visit a node.
type Kind int

const (
	KindParameter Kind = iota
	KindConstant
	KindMemberAccess
	KindBinary
	KindUnary
	KindConditional
	KindMethodCall
	KindNew
	KindNewArray
	KindMemberInit
	KindListInit
	KindLambda
	KindIndex
	KindQuote

	// Unsupported kinds. The pass rejects every node of these kinds with
	// UnsupportedExpression — they exist here only so tests can
	// construct rejection scenarios without a real frontend.
	KindBlock
	KindTryCatch
	KindGoto
	KindLabel
	KindLoop
	KindSwitch
	KindDynamic
	KindTypeBinary
	KindInvocationOfNonLambda
	KindDebugInfo
	KindDefault
)

var kindNames = map[Kind]string{
	KindParameter:             "Parameter",
	KindConstant:              "Constant",
	KindMemberAccess:          "MemberAccess",
	KindBinary:                "Binary",
	KindUnary:                 "Unary",
	KindConditional:           "Conditional",
	KindMethodCall:            "MethodCall",
	KindNew:                   "New",
	KindNewArray:              "NewArray",
	KindMemberInit:            "MemberInit",
	KindListInit:              "ListInit",
	KindLambda:                "Lambda",
	KindIndex:                 "Index",
	KindQuote:                 "Quote",
	KindBlock:                 "Block",
	KindTryCatch:              "TryCatch",
	KindGoto:                  "Goto",
	KindLabel:                 "Label",
	KindLoop:                  "Loop",
	KindSwitch:                "Switch",
	KindDynamic:               "Dynamic",
	KindTypeBinary:            "TypeBinary",
	KindInvocationOfNonLambda: "InvocationOfNonLambda",
	KindDebugInfo:             "DebugInfo",
	KindDefault:               "Default",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is implemented by every expression tree node kind.
type Node interface {
	Kind() Kind
	Pos() Position
	isNode()
}
