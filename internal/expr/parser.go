package expr

import "remotecompose/internal/rcerrors"

// ParseToTree re-parses an RPN-encoded float sequence into an expression
// tree. Binary operators pop their second operand then their first;
// n-ary operators pop in the documented order noted per case below. Dup and
// Swap manipulate the parse stack without constructing a node.
func ParseToTree(words []float32) (*FloatExpression, error) {
	var stack []*FloatExpression

	pop := func(opName, argName string) (*FloatExpression, error) {
		if len(stack) == 0 {
			return nil, rcerrors.Arity(-1, opName, argName)
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top, nil
	}

	for i, w := range words {
		kind, id := Classify(w)
		switch kind {
		case KindLiteral:
			stack = append(stack, Value(w))
			continue
		case KindSystemVariable, KindNormalVariable, KindDataVariable:
			stack = append(stack, Variable(id))
			continue
		}

		op := Op(id)
		switch op {
		case OpVar1, OpVar2, OpVar3, OpRand, OpNop,
			OpLoadR0, OpLoadR1, OpLoadR2, OpLoadR3:
			stack = append(stack, zeroArgNode(op))
			continue
		case OpDup:
			a, err := pop("Dup", "operand")
			if err != nil {
				return nil, err
			}
			stack = append(stack, a, a)
			continue
		case OpSwap:
			b, err := pop("Swap", "second operand")
			if err != nil {
				return nil, err
			}
			a, err := pop("Swap", "first operand")
			if err != nil {
				return nil, err
			}
			stack = append(stack, b, a)
			continue
		}

		node, err := buildOperator(op, pop)
		if err != nil {
			return nil, err
		}
		if node == nil {
			return nil, rcerrors.New(rcerrors.UnknownExpressionOpcode, i, "unknown expression opcode %d", id)
		}
		stack = append(stack, node)
	}

	switch len(stack) {
	case 0:
		return nil, rcerrors.New(rcerrors.StructuralError, -1, "empty expression")
	case 1:
		return stack[0], nil
	default:
		return &FloatExpression{Op: OpSequence, Items: stack}, nil
	}
}

func zeroArgNode(op Op) *FloatExpression {
	switch op {
	case OpLoadR0:
		return &FloatExpression{Op: op, Reg: 0}
	case OpLoadR1:
		return &FloatExpression{Op: op, Reg: 1}
	case OpLoadR2:
		return &FloatExpression{Op: op, Reg: 2}
	case OpLoadR3:
		return &FloatExpression{Op: op, Reg: 3}
	default:
		return leaf(op)
	}
}

type popFn func(opName, argName string) (*FloatExpression, error)

func opName(op Op) string {
	if n, ok := opNames[op]; ok {
		return n
	}
	return "Op"
}

// buildOperator pops operands for op in its documented order and constructs
// the node. Returns (nil, nil) for an operator ordinal this engine does not
// recognize so the caller can report UnknownExpressionOpcode.
func buildOperator(op Op, pop popFn) (*FloatExpression, error) {
	name := opName(op)
	switch op.arity() {
	case 1:
		reg := registerOf(op)
		if reg >= 0 {
			a, err := pop(name, "argument")
			if err != nil {
				return nil, err
			}
			return &FloatExpression{Op: op, Reg: reg, Args: []*FloatExpression{a}}, nil
		}
		a, err := pop(name, "argument")
		if err != nil {
			return nil, err
		}
		return nary(op, a), nil
	case 2:
		switch op {
		case OpStep:
			edge, err := pop(name, "edge")
			if err != nil {
				return nil, err
			}
			val, err := pop(name, "value")
			if err != nil {
				return nil, err
			}
			return nary(op, val, edge), nil
		default:
			b, err := pop(name, "second")
			if err != nil {
				return nil, err
			}
			a, err := pop(name, "first")
			if err != nil {
				return nil, err
			}
			return nary(op, a, b), nil
		}
	case 3:
		switch op {
		case OpMad:
			c, err := pop(name, "'c'")
			if err != nil {
				return nil, err
			}
			b, err := pop(name, "'b'")
			if err != nil {
				return nil, err
			}
			a, err := pop(name, "'a'")
			if err != nil {
				return nil, err
			}
			return nary(op, a, b, c), nil
		case OpIfElse:
			cond, err := pop(name, "condition")
			if err != nil {
				return nil, err
			}
			t, err := pop(name, "'true'")
			if err != nil {
				return nil, err
			}
			f, err := pop(name, "'false'")
			if err != nil {
				return nil, err
			}
			return nary(op, f, t, cond), nil
		case OpClamp:
			max, err := pop(name, "'max'")
			if err != nil {
				return nil, err
			}
			min, err := pop(name, "'min'")
			if err != nil {
				return nil, err
			}
			val, err := pop(name, "'value'")
			if err != nil {
				return nil, err
			}
			return nary(op, val, min, max), nil
		case OpSmoothStep:
			edge1, err := pop(name, "edge1")
			if err != nil {
				return nil, err
			}
			edge0, err := pop(name, "edge0")
			if err != nil {
				return nil, err
			}
			val, err := pop(name, "value")
			if err != nil {
				return nil, err
			}
			return nary(op, val, edge0, edge1), nil
		case OpLerp:
			t, err := pop(name, "'t'")
			if err != nil {
				return nil, err
			}
			b, err := pop(name, "'b'")
			if err != nil {
				return nil, err
			}
			a, err := pop(name, "'a'")
			if err != nil {
				return nil, err
			}
			return nary(op, a, b, t), nil
		}
	case 5:
		if op == OpCubic {
			t, err := pop(name, "'t'")
			if err != nil {
				return nil, err
			}
			y2, err := pop(name, "'y2'")
			if err != nil {
				return nil, err
			}
			x2, err := pop(name, "'x2'")
			if err != nil {
				return nil, err
			}
			y1, err := pop(name, "'y1'")
			if err != nil {
				return nil, err
			}
			x1, err := pop(name, "'x1'")
			if err != nil {
				return nil, err
			}
			return nary(op, x1, y1, x2, y2, t), nil
		}
	}
	return nil, nil
}

func registerOf(op Op) int {
	switch op {
	case OpStoreR0:
		return 0
	case OpStoreR1:
		return 1
	case OpStoreR2:
		return 2
	case OpStoreR3:
		return 3
	default:
		return -1
	}
}

var opNames = map[Op]string{
	OpAdd: "Add", OpSubtract: "Subtract", OpMultiply: "Multiply", OpDivide: "Divide",
	OpModulus: "Modulus", OpMin: "Min", OpMax: "Max", OpPow: "Pow", OpSqrt: "Sqrt",
	OpAbs: "Abs", OpSign: "Sign", OpExp: "Exp", OpFloor: "Floor", OpLog: "Log",
	OpLn: "Ln", OpRound: "Round", OpSin: "Sin", OpCos: "Cos", OpTan: "Tan",
	OpAsin: "Asin", OpAcos: "Acos", OpAtan: "Atan", OpAtan2: "Atan2", OpMad: "Mad",
	OpIfElse: "IfElse", OpClamp: "Clamp", OpCbrt: "Cbrt", OpDeg: "Deg", OpRad: "Rad",
	OpCeil: "Ceil", OpRandSeed: "RandSeed", OpNoiseFrom: "NoiseFrom",
	OpRandInRange: "RandInRange", OpSquareSum: "SquareSum", OpStep: "Step",
	OpSquare: "Square", OpHypot: "Hypot", OpLerp: "Lerp", OpSmoothStep: "SmoothStep",
	OpLog2: "Log2", OpInv: "Inv", OpFract: "Fract", OpPingPong: "PingPong",
	OpChangeSign: "ChangeSign", OpCubic: "Cubic",
	OpStoreR0: "StoreR0", OpStoreR1: "StoreR1", OpStoreR2: "StoreR2", OpStoreR3: "StoreR3",
}
