package header

import "testing"

func beBytesU32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func TestDecodeLegacyHeader(t *testing.T) {
	var data []byte
	data = append(data, beBytesU32(1)...)   // major
	data = append(data, beBytesU32(2)...)   // minor
	data = append(data, beBytesU32(3)...)   // patch
	data = append(data, beBytesU32(1920)...) // width
	data = append(data, beBytesU32(1080)...) // height
	data = append(data, beBytesU32(0)...)    // capabilities hi
	data = append(data, beBytesU32(7)...)    // capabilities lo

	h, n, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(data) {
		t.Fatalf("consumed %d bytes, want %d", n, len(data))
	}
	if h.Major != 1 || h.Minor != 2 || h.Patch != 3 {
		t.Fatalf("version = %d.%d.%d, want 1.2.3", h.Major, h.Minor, h.Patch)
	}
	if h.Metadata[widthID].Int != 1920 || h.Metadata[heightID].Int != 1080 {
		t.Fatalf("width/height = %+v", h.Metadata)
	}
	if h.Metadata[capabilitiesID].Long != 7 {
		t.Fatalf("capabilities = %+v, want 7", h.Metadata[capabilitiesID])
	}
}

func TestDecodeLegacyHeaderTruncated(t *testing.T) {
	_, _, err := Decode([]byte{0, 0, 0, 1})
	if err == nil {
		t.Fatal("expected a truncation error")
	}
}

func TestDecodeModernHeaderWithMetadata(t *testing.T) {
	var data []byte
	data = append(data, beBytesU32(magicNumber|2)...) // major carries magic + version 2
	data = append(data, beBytesU32(5)...)              // minor
	data = append(data, beBytesU32(0)...)              // patch
	data = append(data, beBytesU32(2)...)              // metadata count

	// entry 0: int32 value under key 9
	tag0 := uint16(9)
	data = append(data, byte(tag0>>8), byte(tag0))
	data = append(data, 0, 0) // item_len, skipped
	data = append(data, beBytesU32(42)...)

	// entry 1: string value under key 20, dataType 3 packed into tag's top bits
	tag1 := uint16(3<<10) | 20
	data = append(data, byte(tag1>>8), byte(tag1))
	data = append(data, 0, 0)
	data = append(data, beBytesU32(5)...)
	data = append(data, []byte("hello")...)

	h, n, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(data) {
		t.Fatalf("consumed %d bytes, want %d", n, len(data))
	}
	if h.Major != 2 || h.Minor != 5 {
		t.Fatalf("version = %d.%d, want 2.5", h.Major, h.Minor)
	}
	if h.Metadata[9].Kind != MetaInt || h.Metadata[9].Int != 42 {
		t.Fatalf("metadata[9] = %+v, want Int(42)", h.Metadata[9])
	}
	if h.Metadata[20].Kind != MetaString || h.Metadata[20].String != "hello" {
		t.Fatalf("metadata[20] = %+v, want String(hello)", h.Metadata[20])
	}
}

func TestDecodeModernHeaderBadMagic(t *testing.T) {
	var data []byte
	data = append(data, beBytesU32(0x12340002)...)
	data = append(data, beBytesU32(0)...)
	data = append(data, beBytesU32(0)...)
	data = append(data, beBytesU32(0)...)

	_, _, err := Decode(data)
	if err == nil {
		t.Fatal("expected a bad-magic error")
	}
}

func TestDecodeModernHeaderUnknownMetadataType(t *testing.T) {
	var data []byte
	data = append(data, beBytesU32(magicNumber|1)...)
	data = append(data, beBytesU32(0)...)
	data = append(data, beBytesU32(0)...)
	data = append(data, beBytesU32(1)...)

	tag := uint16(7<<10) | 1 // dataType 7 is unused
	data = append(data, byte(tag>>8), byte(tag))
	data = append(data, 0, 0)
	data = append(data, beBytesU32(0)...)

	_, _, err := Decode(data)
	if err == nil {
		t.Fatal("expected an unknown-metadata-type error")
	}
}
