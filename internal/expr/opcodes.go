package expr

// Op is an expression-tree operator ordinal, decoded from a NaN payload as
// payload - 0x310000. The exact numeric values only need to be
// internally consistent with AsNaN/Classify; nothing external depends on them.
type Op int

const (
	OpValue Op = iota // not a real stream opcode; used for literal leaves
	OpVariable
	OpVar1
	OpVar2
	OpVar3
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulus
	OpMin
	OpMax
	OpPow
	OpSqrt
	OpAbs
	OpSign
	OpExp
	OpFloor
	OpLog
	OpLn
	OpRound
	OpSin
	OpCos
	OpTan
	OpAsin
	OpAcos
	OpAtan
	OpAtan2
	OpMad
	OpIfElse
	OpClamp
	OpCbrt
	OpDeg
	OpRad
	OpCeil
	OpRand
	OpRandSeed
	OpNoiseFrom
	OpRandInRange
	OpSquareSum
	OpStep
	OpSquare
	OpHypot
	OpLerp
	OpSmoothStep
	OpLog2
	OpInv
	OpFract
	OpPingPong
	OpNop
	OpStoreR0
	OpStoreR1
	OpStoreR2
	OpStoreR3
	OpLoadR0
	OpLoadR1
	OpLoadR2
	OpLoadR3
	OpChangeSign
	OpCubic
	OpDup
	OpSwap
)

// arity reports how many operands an operator of this kind pops: 0 for the
// zero-arity leaves (which the parser pushes directly), and -1 for Dup/Swap
// (which the parser handles without constructing a node) and for any
// ordinal not listed here.
func (o Op) arity() int {
	switch o {
	case OpVariable, OpVar1, OpVar2, OpVar3, OpRand, OpNop,
		OpLoadR0, OpLoadR1, OpLoadR2, OpLoadR3, OpValue:
		return 0
	case OpSqrt, OpAbs, OpSign, OpExp, OpFloor, OpLog, OpLn, OpRound,
		OpSin, OpCos, OpTan, OpAsin, OpAcos, OpAtan, OpCbrt, OpDeg, OpRad,
		OpCeil, OpRandSeed, OpNoiseFrom, OpSquare, OpLog2, OpInv, OpFract,
		OpChangeSign, OpStoreR0, OpStoreR1, OpStoreR2, OpStoreR3:
		return 1
	case OpAdd, OpSubtract, OpMultiply, OpDivide, OpModulus, OpMin, OpMax,
		OpPow, OpAtan2, OpRandInRange, OpSquareSum, OpStep, OpHypot, OpPingPong:
		return 2
	case OpIfElse, OpClamp, OpLerp, OpSmoothStep, OpMad:
		return 3
	case OpCubic:
		return 5
	default:
		return -1
	}
}
