package opcode

import (
	"testing"

	"remotecompose/internal/expr"
)

func TestDispatchLayoutRoot(t *testing.T) {
	data := []byte{0xc8, 0xff, 0xff, 0xff, 0xfe}
	op, n, err := Dispatch(data, 0)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if n != 5 {
		t.Fatalf("consumed %d bytes, want 5", n)
	}
	if op.Code != LayoutRoot || op.Int[0] != -2 {
		t.Fatalf("got %+v, want LayoutRoot{component_id=-2}", op)
	}
}

func TestDispatchMatrixTranslate(t *testing.T) {
	data := []byte{0x7f, 0x43, 0xb3, 0x00, 0x00, 0x43, 0xce, 0x80, 0x00}
	op, n, err := Dispatch(data, 0)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if n != 9 {
		t.Fatalf("consumed %d bytes, want 9", n)
	}
	if op.Code != MatrixTranslate {
		t.Fatalf("code = %v, want MatrixTranslate", op.Code)
	}
	if op.Expr[0].Op != expr.OpValue || op.Expr[0].Value != 358.0 {
		t.Fatalf("tx = %+v, want Value(358.0)", op.Expr[0])
	}
	if op.Expr[1].Op != expr.OpValue || op.Expr[1].Value != 413.0 {
		t.Fatalf("ty = %+v, want Value(413.0)", op.Expr[1])
	}
}

func TestDispatchDrawRect(t *testing.T) {
	data := []byte{
		0x2a,
		0x41, 0x20, 0x00, 0x00, // 10.0
		0x41, 0xa0, 0x00, 0x00, // 20.0
		0x41, 0xf0, 0x00, 0x00, // 30.0
		0x42, 0x20, 0x00, 0x00, // 40.0
	}
	op, n, err := Dispatch(data, 0)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if n != 17 {
		t.Fatalf("consumed %d bytes, want 17", n)
	}
	want := [4]float32{10, 20, 30, 40}
	for i, e := range op.Expr {
		if e.Value != want[i] {
			t.Fatalf("Expr[%d] = %v, want %v", i, e.Value, want[i])
		}
	}
}

func TestDispatchDrawLineMixedLiteralAndVariable(t *testing.T) {
	data := []byte{
		0x2f,
		0x00, 0x00, 0x00, 0x00, // x1 = Value(0.0)
		0x00, 0x00, 0x00, 0x00, // y1 = Value(0.0)
		0xff, 0x80, 0x00, 0x2a, // x2 = Variable(42)
		0xff, 0x80, 0x00, 0x2b, // y2 = Variable(43)
	}
	op, n, err := Dispatch(data, 0)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if n != 17 {
		t.Fatalf("consumed %d bytes, want 17", n)
	}
	if op.Expr[0].Op != expr.OpValue || op.Expr[0].Value != 0 {
		t.Fatalf("x1 = %+v, want Value(0)", op.Expr[0])
	}
	if op.Expr[2].Op != expr.OpVariable || op.Expr[2].VarID != 42 {
		t.Fatalf("x2 = %+v, want Variable(42)", op.Expr[2])
	}
	if op.Expr[3].Op != expr.OpVariable || op.Expr[3].VarID != 43 {
		t.Fatalf("y2 = %+v, want Variable(43)", op.Expr[3])
	}
}

func TestDispatchComponentValue(t *testing.T) {
	data := []byte{
		0x96,
		0x00, 0x00, 0x00, 0x00, // type = 0
		0xff, 0xff, 0xff, 0xf9, // component_id = -7
		0x00, 0x00, 0x00, 0x2a, // value_id = 42
	}
	op, n, err := Dispatch(data, 0)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if n != 13 {
		t.Fatalf("consumed %d bytes, want 13", n)
	}
	if op.Int[0] != 0 || op.Int[1] != -7 || op.Int[2] != 42 {
		t.Fatalf("got %+v, want {type=0, component_id=-7, value_id=42}", op)
	}
}

func TestDispatchUnknownOpcode(t *testing.T) {
	_, _, err := Dispatch([]byte{0x01}, 0)
	if err == nil {
		t.Fatal("expected an error for an unknown opcode byte")
	}
}

func TestDispatchTruncated(t *testing.T) {
	_, _, err := Dispatch([]byte{byte(DrawRect), 0x00, 0x00}, 0)
	if err == nil {
		t.Fatal("expected a truncation error")
	}
}
