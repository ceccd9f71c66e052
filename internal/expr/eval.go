package expr

import (
	"math"

	"remotecompose/internal/rcerrors"
)

// Context is the evaluation environment for one FloatExpression tree: the
// variable map supplied by the caller, the 4-slot register file, and the
// seedable generator backing Rand/RandInRange (reseeded by RandSeed).
type Context struct {
	Vars      map[uint32]float32
	Registers [4]float32
	rng       *generator
}

// NewContext builds an evaluation context seeded at 0, the documented
// default.
func NewContext(vars map[uint32]float32) *Context {
	return &Context{Vars: vars, rng: newGenerator(0)}
}

// Evaluate walks the tree depth-first.
// Division by zero and similar degeneracies are left to IEEE-754 (inf/NaN),
// never trapped.
func (c *Context) Evaluate(n *FloatExpression) (float32, error) {
	switch n.Op {
	case OpValue:
		return n.Value, nil
	case OpVariable:
		return c.Vars[n.VarID], nil
	case OpVar1, OpVar2, OpVar3:
		return c.Vars[uint32(n.Op-OpVar1)], nil
	case OpNop:
		return 0, nil
	case OpRand:
		return c.rng.float01(), nil
	case OpLoadR0, OpLoadR1, OpLoadR2, OpLoadR3:
		return c.Registers[n.Reg], nil
	case OpSequence:
		var last float32
		for _, item := range n.Items {
			v, err := c.Evaluate(item)
			if err != nil {
				return 0, err
			}
			last = v
		}
		return last, nil
	}

	if reg := registerOf(n.Op); reg >= 0 {
		v, err := c.Evaluate(n.Args[0])
		if err != nil {
			return 0, err
		}
		c.Registers[reg] = v
		return v, nil
	}

	args := make([]float32, len(n.Args))
	for i, a := range n.Args {
		v, err := c.Evaluate(a)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	switch n.Op {
	case OpAdd:
		return args[0] + args[1], nil
	case OpSubtract:
		return args[0] - args[1], nil
	case OpMultiply:
		return args[0] * args[1], nil
	case OpDivide:
		return args[0] / args[1], nil
	case OpModulus:
		return float32(math.Mod(float64(args[0]), float64(args[1]))), nil
	case OpMin:
		return min32(args[0], args[1]), nil
	case OpMax:
		return max32(args[0], args[1]), nil
	case OpPow:
		return float32(math.Pow(float64(args[0]), float64(args[1]))), nil
	case OpSqrt:
		return float32(math.Sqrt(float64(args[0]))), nil
	case OpAbs:
		return float32(math.Abs(float64(args[0]))), nil
	case OpSign:
		return float32(sign(args[0])), nil
	case OpExp:
		return float32(math.Exp(float64(args[0]))), nil
	case OpFloor:
		return float32(math.Floor(float64(args[0]))), nil
	case OpLog:
		return float32(math.Log10(float64(args[0]))), nil
	case OpLn:
		return float32(math.Log(float64(args[0]))), nil
	case OpRound:
		return float32(math.Round(float64(args[0]))), nil
	case OpSin:
		return float32(math.Sin(float64(args[0]))), nil
	case OpCos:
		return float32(math.Cos(float64(args[0]))), nil
	case OpTan:
		return float32(math.Tan(float64(args[0]))), nil
	case OpAsin:
		return float32(math.Asin(float64(args[0]))), nil
	case OpAcos:
		return float32(math.Acos(float64(args[0]))), nil
	case OpAtan:
		return float32(math.Atan(float64(args[0]))), nil
	case OpAtan2:
		return float32(math.Atan2(float64(args[0]), float64(args[1]))), nil
	case OpMad:
		return args[0]*args[1] + args[2], nil
	case OpIfElse:
		if args[2] > 0.0 {
			return args[1], nil
		}
		return args[0], nil
	case OpClamp:
		return min32(max32(args[0], args[1]), args[2]), nil
	case OpCbrt:
		return float32(math.Cbrt(float64(args[0]))), nil
	case OpDeg:
		return args[0] * (180.0 / math.Pi), nil
	case OpRad:
		return args[0] * (math.Pi / 180.0), nil
	case OpCeil:
		return float32(math.Ceil(float64(args[0]))), nil
	case OpRandSeed:
		c.rng = newGenerator(uint64(math.Float32bits(args[0])))
		return 0, nil
	case OpNoiseFrom:
		return noiseFrom(args[0]), nil
	case OpRandInRange:
		return c.rng.rangeF(args[0], args[1]), nil
	case OpSquareSum:
		return args[0]*args[0] + args[1]*args[1], nil
	case OpStep:
		if args[0] < args[1] {
			return 0, nil
		}
		return 1, nil
	case OpSquare:
		return args[0] * args[0], nil
	case OpHypot:
		return float32(math.Hypot(float64(args[0]), float64(args[1]))), nil
	case OpLerp:
		return args[0] + (args[1]-args[0])*args[2], nil
	case OpSmoothStep:
		val, edge0, edge1 := args[0], args[1], args[2]
		t := clamp01((val - edge0) / (edge1 - edge0))
		return t * t * (3 - 2*t), nil
	case OpLog2:
		return float32(math.Log2(float64(args[0]))), nil
	case OpInv:
		return 1.0 / args[0], nil
	case OpFract:
		return args[0] - float32(math.Trunc(float64(args[0]))), nil
	case OpPingPong:
		a, b := args[0], args[1]
		max2 := b * 2.0
		tmp := float32(math.Mod(float64(a), float64(max2)))
		if tmp < b {
			return tmp, nil
		}
		return max2 - tmp, nil
	case OpChangeSign:
		return -args[0], nil
	case OpCubic:
		return cubicEasing(args[0], args[1], args[2], args[3], args[4]), nil
	}

	return 0, rcerrors.New(rcerrors.UnknownExpressionOpcode, -1, "unhandled expression op %d", n.Op)
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clamp01(v float32) float32 {
	return min32(max32(v, 0), 1)
}

func sign(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// noiseFrom is a bit-fixed integer hash of x's bit pattern, including the
// x = (x<<13)^x pre-step the distilled formula omits (see original_source).
func noiseFrom(v float32) float32 {
	x := int32(math.Float32bits(v))
	x = (x << 13) ^ x
	y := x*(x*x*15731+789221) + 1376312589
	masked := uint32(y) & 0x7fffffff
	return 1.0 - float32(masked)/1.0737418e9
}

func bezierCoord(p1, p2, t float32) float32 {
	u := 1 - t
	return 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t
}

// cubicEasing binary-searches (12 iterations) for the Bezier parameter u
// such that Bx(u) = t, then returns By(u).
func cubicEasing(x1, y1, x2, y2, t float32) float32 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	lo, hi := float32(0), float32(1)
	for i := 0; i < 12; i++ {
		mid := (lo + hi) / 2
		if bezierCoord(x1, x2, mid) < t {
			lo = mid
		} else {
			hi = mid
		}
	}
	return bezierCoord(y1, y2, lo)
}
