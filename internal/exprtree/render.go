package exprtree

import (
	"fmt"
	"strings"
)

// Render produces a short, best-effort textual rendering of a node, for
// diagnostics.
// It is not a parser round-trip and never needs to be — it exists purely
// so an UnsupportedExpression diagnostic points at something readable.
func Render(n Node) string {
	if n == nil {
		return "<nil>"
	}
	switch e := n.(type) {
	case *Parameter:
		return e.Name
	case *Constant:
		return fmt.Sprintf("%v", e.Value)
	case *MemberAccess:
		if e.Target == nil {
			return e.Name
		}
		return Render(e.Target) + "." + e.Name
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", Render(e.Left), binaryOpSymbol(e.Op), Render(e.Right))
	case *Unary:
		return fmt.Sprintf("%s(%s)", unaryOpName(e.Op), Render(e.Operand))
	case *Conditional:
		return fmt.Sprintf("(%s ? %s : %s)", Render(e.Test), Render(e.Then), Render(e.Else))
	case *MethodCall:
		args := renderAll(e.Args)
		if e.Instance != nil {
			return fmt.Sprintf("%s.%s(%s)", Render(e.Instance), e.Method.Name, args)
		}
		return fmt.Sprintf("%s(%s)", e.Method.Name, args)
	case *ServiceCall:
		return fmt.Sprintf("%s.%s(%s)", e.Service, e.Method, renderAll(e.Args))
	case *New:
		if len(e.Members) > 0 {
			parts := make([]string, len(e.Members))
			for i, m := range e.Members {
				parts[i] = fmt.Sprintf("%s = %s", m.Name, Render(m.Value))
			}
			return fmt.Sprintf("new %s { %s }", typeName(e), strings.Join(parts, ", "))
		}
		return fmt.Sprintf("new %s(%s)", typeName(e), renderAll(e.Args))
	case *NewArray:
		if len(e.Elements) > 0 {
			return fmt.Sprintf("new %s[]{%s}", e.ElemType, renderAll(e.Elements))
		}
		return fmt.Sprintf("new %s[%s]", e.ElemType, renderAll(e.Bounds))
	case *MemberInit:
		return fmt.Sprintf("%s { %d bindings }", Render(e.NewExpr), len(e.Bindings))
	case *ListInit:
		return fmt.Sprintf("%s { %d elements }", Render(e.NewExpr), len(e.Elements))
	case *Lambda:
		names := make([]string, len(e.Params))
		for i, p := range e.Params {
			names[i] = p.Name
		}
		return fmt.Sprintf("(%s) => %s", strings.Join(names, ", "), Render(e.Body))
	case *Index:
		return fmt.Sprintf("%s[%s]", Render(e.Object), renderAll(e.Args))
	case *Quote:
		return "quote(" + Render(e.Operand) + ")"
	default:
		return fmt.Sprintf("<%s>", n.Kind())
	}
}

func renderAll(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = Render(n)
	}
	return strings.Join(parts, ", ")
}

func typeName(n *New) string {
	if n.Type != nil {
		return n.Type.String()
	}
	return "?"
}

func binaryOpSymbol(op BinaryOp) string {
	switch op {
	case BinAdd:
		return "+"
	case BinSubtract:
		return "-"
	case BinMultiply:
		return "*"
	case BinDivide:
		return "/"
	case BinModulo:
		return "%"
	case BinPower:
		return "**"
	case BinAnd:
		return "&"
	case BinOr:
		return "|"
	case BinExclusiveOr:
		return "^"
	case BinLeftShift:
		return "<<"
	case BinRightShift:
		return ">>"
	case BinAndAlso:
		return "&&"
	case BinOrElse:
		return "||"
	case BinEqual:
		return "=="
	case BinNotEqual:
		return "!="
	case BinLessThan:
		return "<"
	case BinLessThanOrEqual:
		return "<="
	case BinGreaterThan:
		return ">"
	case BinGreaterThanOrEqual:
		return ">="
	case BinAssign:
		return "="
	case BinArrayIndex:
		return "[]"
	default:
		return "?="
	}
}

func unaryOpName(op UnaryOp) string {
	switch op {
	case UnaryTypeAs:
		return "as"
	case UnaryConvert, UnaryConvertChecked:
		return "convert"
	case UnaryNegate, UnaryNegateChecked:
		return "-"
	case UnaryPlus:
		return "+"
	case UnaryNot:
		return "!"
	case UnaryIncrement, UnaryPreIncrementAssign, UnaryPostIncrementAssign:
		return "++"
	case UnaryDecrement, UnaryPreDecrementAssign, UnaryPostDecrementAssign:
		return "--"
	case UnaryOnesComplement:
		return "~"
	default:
		return "?unary?"
	}
}
