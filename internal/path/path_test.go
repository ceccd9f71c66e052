package path

import (
	"math"
	"testing"
)

func nanWord(id uint32) []byte {
	bits := nanPrefixMask | id
	return []byte{byte(bits >> 24), byte(bits >> 16), byte(bits >> 8), byte(bits)}
}

func floatWord(f float32) []byte {
	bits := math.Float32bits(f)
	return []byte{byte(bits >> 24), byte(bits >> 16), byte(bits >> 8), byte(bits)}
}

func TestDecodeMoveLineClose(t *testing.T) {
	var data []byte
	data = append(data, nanWord(cmdMove)...)
	data = append(data, floatWord(1)...)
	data = append(data, floatWord(2)...)
	data = append(data, nanWord(cmdLine)...)
	data = append(data, floatWord(1)...)
	data = append(data, floatWord(2)...)
	data = append(data, floatWord(3)...)
	data = append(data, floatWord(4)...)
	data = append(data, nanWord(cmdClose)...)
	data = append(data, nanWord(cmdDone)...)

	ops, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(ops) != 4 {
		t.Fatalf("got %d ops, want 4", len(ops))
	}
	if ops[0].Kind != Move || ops[0].Floats[0] != 1 || ops[0].Floats[1] != 2 {
		t.Fatalf("ops[0] = %+v", ops[0])
	}
	if ops[1].Kind != Line || ops[1].Floats[0] != 3 || ops[1].Floats[1] != 4 {
		t.Fatalf("ops[1] = %+v, want Line(3,4)", ops[1])
	}
	if ops[2].Kind != Close {
		t.Fatalf("ops[2] = %+v, want Close", ops[2])
	}
	if ops[3].Kind != Done {
		t.Fatalf("ops[3] = %+v, want Done", ops[3])
	}
}

func TestDecodeUnknownCommand(t *testing.T) {
	data := nanWord(99)
	_, err := Decode(data)
	if err == nil {
		t.Fatal("expected an unknown-command error")
	}
}

func TestDecodeTruncatedOperands(t *testing.T) {
	data := nanWord(cmdMove)
	data = append(data, floatWord(1)...) // only one of two required floats
	_, err := Decode(data)
	if err == nil {
		t.Fatal("expected a truncation error")
	}
}

func TestDecodeNonNaNWord(t *testing.T) {
	_, err := Decode([]byte{0, 0, 0, 0})
	if err == nil {
		t.Fatal("expected a not-NaN-tagged error")
	}
}
