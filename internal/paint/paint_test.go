package paint

import "testing"

func beI32(v int32) []byte {
	u := uint32(v)
	return []byte{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
}

func wordsToPayload(words []int32) []byte {
	data := beI32(int32(len(words)))
	for _, w := range words {
		data = append(data, beI32(w)...)
	}
	return data
}

func TestDecodeColorAndAntiAlias(t *testing.T) {
	words := []int32{
		typeColorID, 0x11223344,
		typeAntiAlias | (1 << 16),
	}
	changes, n, err := Decode(wordsToPayload(words))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != 4+len(words)*4 {
		t.Fatalf("consumed %d bytes, want %d", n, 4+len(words)*4)
	}
	if len(changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(changes))
	}
	if changes[0].Kind != Color || changes[0].Int != 0x11223344 {
		t.Fatalf("changes[0] = %+v, want Color(0x11223344)", changes[0])
	}
	if changes[1].Kind != AntiAlias || !changes[1].Bool {
		t.Fatalf("changes[1] = %+v, want AntiAlias(true)", changes[1])
	}
}

func TestDecodeStrokeCapHighBits(t *testing.T) {
	words := []int32{typeStrokeCap | (2 << 16)}
	changes, _, err := Decode(wordsToPayload(words))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(changes) != 1 || changes[0].Kind != StrokeCap || changes[0].Int != 2 {
		t.Fatalf("got %+v, want StrokeCap(2)", changes)
	}
}

func TestDecodeTypeface(t *testing.T) {
	high := int32(700) | (1 << 10) // weight 700, italic
	words := []int32{typeTypeface | (high << 16), 3}
	changes, _, err := Decode(wordsToPayload(words))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	ch := changes[0]
	if ch.Kind != Typeface || ch.TypefaceWeight != 700 || !ch.TypefaceItalic || ch.TypefaceFontType != 3 {
		t.Fatalf("got %+v, want Typeface{weight=700, italic=true, fontType=3}", ch)
	}
}

func TestDecodeUnknownPaintType(t *testing.T) {
	words := []int32{0x7FFF}
	_, _, err := Decode(wordsToPayload(words))
	if err == nil {
		t.Fatal("expected an unknown-paint-type error")
	}
}

func TestDecodeTruncatedCount(t *testing.T) {
	_, _, err := Decode([]byte{0, 0, 0})
	if err == nil {
		t.Fatal("expected a truncation error")
	}
}
