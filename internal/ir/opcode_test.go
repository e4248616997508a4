package ir_test

import "testing"

import "flowc/internal/ir"

func TestIsBinaryArithBitwiseCompareCoversArithmeticBitwiseAndComparison(t *testing.T) {
	members := []ir.Opcode{
		ir.OpAdd, ir.OpSubtract, ir.OpMultiply, ir.OpDivide, ir.OpModulo, ir.OpPower,
		ir.OpAnd, ir.OpOr, ir.OpExclusiveOr, ir.OpLeftShift, ir.OpRightShift,
		ir.OpAndAlso, ir.OpOrElse,
		ir.OpEqual, ir.OpNotEqual, ir.OpLessThan, ir.OpLessThanOrEqual,
		ir.OpGreaterThan, ir.OpGreaterThanOrEqual,
	}
	for _, op := range members {
		if !ir.IsBinaryArithBitwiseCompare(op) {
			t.Errorf("expected %s to be in the binary arith/bitwise/compare set", op)
		}
	}
}

func TestIsBinaryArithBitwiseCompareExcludesUnaryAndControlOpcodes(t *testing.T) {
	nonMembers := []ir.Opcode{
		ir.OpNegate, ir.OpIncrement, ir.OpNot, ir.OpOnesComplement,
		ir.OpAssign, ir.OpConditional, ir.OpConvert, ir.OpCall, ir.OpNew,
		ir.OpMemberRead, ir.OpMemberWrite, ir.OpIndex, ir.OpArrayIndex,
	}
	for _, op := range nonMembers {
		if ir.IsBinaryArithBitwiseCompare(op) {
			t.Errorf("expected %s to NOT be in the binary arith/bitwise/compare set", op)
		}
	}
}

func TestOpcodeStringValuesMatchTheirWireNames(t *testing.T) {
	cases := map[ir.Opcode]string{
		ir.OpAdd:          "Add",
		ir.OpMemberWrite:  "MemberWrite",
		ir.OpCall:         "Call",
		ir.OpConditional:  "Conditional",
	}
	for op, want := range cases {
		if string(op) != want {
			t.Errorf("Opcode %v: want string %q, got %q", op, want, string(op))
		}
	}
}
