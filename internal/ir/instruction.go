package ir

import (
	"strings"

	"flowc/internal/exprtree"
)

// Instruction is a three-address operation: an opcode plus ordered source
// and destination operands, with an optional method reference populated
// only when Opcode == OpCall.
type Instruction struct {
	id           int
	Opcode       Opcode
	Sources      []*Variable
	Destinations []*Variable
	Method       *exprtree.MethodRef
	Effect       Effect
}

// ID is the instruction's per-lambda sequence number, used only for
// readable ordering in the printer.
func (i *Instruction) ID() int { return i.id }

// Result returns the instruction's first destination, the variable that
// holds the expression's value for opcodes that produce one. It is nil
// only for an instruction with no destinations; every instruction the
// builder emits has at least one (a MemberWrite's first destination is
// the host object).
func (i *Instruction) Result() *Variable {
	if len(i.Destinations) == 0 {
		return nil
	}
	return i.Destinations[0]
}

// String renders the instruction as three-address text, e.g.
// "t3 = Add(x, 1)" or "MemberWrite(t1, "X") = a".
func (i *Instruction) String() string {
	var b strings.Builder
	if i.Opcode == OpMemberWrite {
		b.WriteString("MemberWrite(")
		for idx, d := range i.Destinations {
			if idx > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.String())
		}
		b.WriteString(") = ")
		for idx, s := range i.Sources {
			if idx > 0 {
				b.WriteString(", ")
			}
			b.WriteString(s.String())
		}
		return b.String()
	}

	if dest := i.Result(); dest != nil {
		b.WriteString(dest.String())
		b.WriteString(" = ")
	}
	b.WriteString(string(i.Opcode))
	b.WriteString("(")
	for idx, s := range i.Sources {
		if idx > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.String())
	}
	b.WriteString(")")
	if i.Method != nil {
		b.WriteString(" method=")
		b.WriteString(i.Method.Name)
	}
	return b.String()
}
