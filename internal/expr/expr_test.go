package expr

import (
	"math"
	"testing"
)

func TestClassifyLiteral(t *testing.T) {
	tests := []struct {
		name string
		f    float32
	}{
		{"zero", 0.0},
		{"one", 1.0},
		{"negative one", -1.0},
		{"pi", float32(math.Pi)},
		{"inf", float32(math.Inf(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, _ := Classify(tt.f)
			if kind != KindLiteral {
				t.Fatalf("Classify(%v) kind = %v, want KindLiteral", tt.f, kind)
			}
		})
	}
}

func TestClassifyVariable(t *testing.T) {
	for _, u := range []uint32{0, 1, 42, 1<<20 - 1} {
		for _, kindBits := range []uint32{0, 1 << 20} {
			bits := 0xFF800000 | kindBits | u
			f := math.Float32frombits(bits)
			node, n, err := ReadSingle(beBytes(bits))
			if err != nil {
				t.Fatalf("ReadSingle: %v", err)
			}
			if n != 4 {
				t.Fatalf("ReadSingle consumed %d bytes, want 4", n)
			}
			if node.Op != OpVariable || node.VarID != u {
				t.Fatalf("ReadSingle(%v) = %+v, want Variable(%d)", f, node, u)
			}
		}
	}
}

func TestReadSingleValue(t *testing.T) {
	node, n, err := ReadSingle(beBytes(math.Float32bits(358.0)))
	if err != nil {
		t.Fatalf("ReadSingle: %v", err)
	}
	if n != 4 || node.Op != OpValue || node.Value != 358.0 {
		t.Fatalf("got %+v, want Value(358.0)", node)
	}
}

func TestParseToTreeArithmetic(t *testing.T) {
	words := []float32{10, 2, AsNaN(uint32(OpSubtract)), 3, AsNaN(uint32(OpMultiply))}
	tree, err := ParseToTree(words)
	if err != nil {
		t.Fatalf("ParseToTree: %v", err)
	}
	if tree.Op != OpMultiply {
		t.Fatalf("root op = %v, want OpMultiply", tree.Op)
	}
	sub := tree.Args[0]
	if sub.Op != OpSubtract || sub.Args[0].Value != 10 || sub.Args[1].Value != 2 {
		t.Fatalf("left arg = %+v, want Subtract(10,2)", sub)
	}
	if tree.Args[1].Value != 3 {
		t.Fatalf("right arg = %+v, want 3", tree.Args[1])
	}

	ctx := NewContext(nil)
	v, err := ctx.Evaluate(tree)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if v != 24.0 {
		t.Fatalf("Evaluate() = %v, want 24.0", v)
	}
}

func TestParseToTreeSequenceWithRegister(t *testing.T) {
	words := []float32{
		5,
		AsNaN(uint32(OpStoreR0)),
		AsNaN(uint32(OpLoadR0)),
		2,
		AsNaN(uint32(OpAdd)),
	}
	tree, err := ParseToTree(words)
	if err != nil {
		t.Fatalf("ParseToTree: %v", err)
	}
	if tree.Op != OpSequence || len(tree.Items) != 2 {
		t.Fatalf("got %+v, want a 2-item Sequence", tree)
	}

	ctx := NewContext(nil)
	v, err := ctx.Evaluate(tree)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if v != 7.0 {
		t.Fatalf("Evaluate() = %v, want 7.0", v)
	}
	if ctx.Registers[0] != 5.0 {
		t.Fatalf("Registers[0] = %v, want 5.0", ctx.Registers[0])
	}
}

func TestParseToTreeDeterministic(t *testing.T) {
	words := []float32{10, 2, AsNaN(uint32(OpSubtract)), 3, AsNaN(uint32(OpMultiply))}
	a, err := ParseToTree(words)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseToTree(words)
	if err != nil {
		t.Fatal(err)
	}
	ctxA, ctxB := NewContext(nil), NewContext(nil)
	va, _ := ctxA.Evaluate(a)
	vb, _ := ctxB.Evaluate(b)
	if va != vb {
		t.Fatalf("non-deterministic parse/eval: %v != %v", va, vb)
	}
}

func TestParseToTreeArityError(t *testing.T) {
	// ADD with only one value on the stack: arity error.
	words := []float32{1, AsNaN(uint32(OpAdd))}
	_, err := ParseToTree(words)
	if err == nil {
		t.Fatal("expected an arity error, got nil")
	}
}

func beBytes(bits uint32) []byte {
	return []byte{byte(bits >> 24), byte(bits >> 16), byte(bits >> 8), byte(bits)}
}
