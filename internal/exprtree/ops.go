package exprtree

// BinaryOp is the closed set of node-level binary operator tags a Binary
// node can carry, including the compound-assign and indexing forms that
// share the Binary visit rule.
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSubtract
	BinMultiply
	BinDivide
	BinModulo
	BinPower
	BinAnd
	BinOr
	BinExclusiveOr
	BinLeftShift
	BinRightShift
	BinAndAlso
	BinOrElse
	BinEqual
	BinNotEqual
	BinLessThan
	BinLessThanOrEqual
	BinGreaterThan
	BinGreaterThanOrEqual
	BinAssign
	BinAddAssign
	BinSubtractAssign
	BinMultiplyAssign
	BinDivideAssign
	BinModuloAssign
	BinPowerAssign
	BinAndAssign
	BinOrAssign
	BinExclusiveOrAssign
	BinLeftShiftAssign
	BinRightShiftAssign
	BinArrayIndex
)

// UnaryOp is the closed set of node-level unary operator tags a Unary
// node can carry.
type UnaryOp int

const (
	UnaryTypeAs UnaryOp = iota
	UnaryConvert
	UnaryConvertChecked
	UnaryNegate
	UnaryNegateChecked
	UnaryPlus
	UnaryNot
	UnaryIncrement
	UnaryDecrement
	UnaryPreIncrementAssign
	UnaryPostIncrementAssign
	UnaryPreDecrementAssign
	UnaryPostDecrementAssign
	UnaryOnesComplement
	// Everything else (e.g. a hypothetical address-of) is unsupported and
	// falls through to UnsupportedExpression.
	UnaryOther
)
