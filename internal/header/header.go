// Package header decodes the two RemoteCompose header framings:
// legacy fixed-field and modern magic-tagged/metadata-list.
package header

import (
	"math"

	"remotecompose/internal/rcerrors"
)

const (
	magicNumber    uint32 = 0x048C0000
	widthID        uint16 = 5
	heightID       uint16 = 6
	rootIDID       uint16 = 9
	capabilitiesID uint16 = 14
)

// MetadataKind tags the dynamic type of a Metadata value.
type MetadataKind int

const (
	MetaInt MetadataKind = iota
	MetaFloat
	MetaLong
	MetaString
)

// Metadata is a single tagged header value.
type Metadata struct {
	Kind   MetadataKind
	Int    int32
	Float  float32
	Long   int64
	String string
}

// Header is the decoded document header.
type Header struct {
	Major, Minor, Patch uint32
	Metadata            map[uint16]Metadata
}

// Decode reads a Header from the start of data, returning the header and the
// number of bytes consumed.
func Decode(data []byte) (*Header, int, error) {
	if len(data) < 12 {
		return nil, 0, rcerrors.Truncated(0, "major/minor/patch", "Header")
	}
	major := beU32(data[0:4])
	minor := beU32(data[4:8])
	patch := beU32(data[8:12])
	offset := 12

	h := &Header{Metadata: map[uint16]Metadata{}}

	if major < 0x10000 {
		h.Major, h.Minor, h.Patch = major, minor, patch
		if len(data) < offset+16 {
			return nil, 0, rcerrors.Truncated(offset, "legacy width/height/capabilities", "Header")
		}
		width := int32(beU32(data[offset : offset+4]))
		height := int32(beU32(data[offset+4 : offset+8]))
		capabilities := int64(beU32(data[offset+8:offset+12]))<<32 | int64(beU32(data[offset+12:offset+16]))
		offset += 16
		h.Metadata[widthID] = Metadata{Kind: MetaInt, Int: width}
		h.Metadata[heightID] = Metadata{Kind: MetaInt, Int: height}
		h.Metadata[capabilitiesID] = Metadata{Kind: MetaLong, Long: capabilities}
		return h, offset, nil
	}

	if major&0xFFFF0000 != magicNumber {
		return nil, 0, rcerrors.New(rcerrors.StructuralError, 0, "header major word does not carry the expected magic")
	}
	h.Major = major & 0xFFFF
	h.Minor = minor
	h.Patch = patch

	if len(data) < offset+4 {
		return nil, 0, rcerrors.Truncated(offset, "metadata count", "Header")
	}
	count := beU32(data[offset : offset+4])
	offset += 4

	for i := uint32(0); i < count; i++ {
		if len(data) < offset+4 {
			return nil, 0, rcerrors.Truncated(offset, "metadata tag/len", "Header")
		}
		tag := beU16(data[offset : offset+2])
		key := tag & 0x03FF
		dataType := tag >> 10
		offset += 2
		offset += 2 // item_len, implied by dataType, skipped

		switch dataType {
		case 0:
			if len(data) < offset+4 {
				return nil, 0, rcerrors.Truncated(offset, "int32 metadata value", "Header")
			}
			h.Metadata[key] = Metadata{Kind: MetaInt, Int: int32(beU32(data[offset : offset+4]))}
			offset += 4
		case 1:
			if len(data) < offset+4 {
				return nil, 0, rcerrors.Truncated(offset, "float32 metadata value", "Header")
			}
			h.Metadata[key] = Metadata{Kind: MetaFloat, Float: math.Float32frombits(beU32(data[offset : offset+4]))}
			offset += 4
		case 2:
			if len(data) < offset+8 {
				return nil, 0, rcerrors.Truncated(offset, "int64 metadata value", "Header")
			}
			v := int64(beU32(data[offset:offset+4]))<<32 | int64(beU32(data[offset+4:offset+8]))
			h.Metadata[key] = Metadata{Kind: MetaLong, Long: v}
			offset += 8
		case 3:
			if len(data) < offset+4 {
				return nil, 0, rcerrors.Truncated(offset, "string length", "Header")
			}
			strLen := int(beU32(data[offset : offset+4]))
			offset += 4
			if len(data) < offset+strLen {
				return nil, 0, rcerrors.Truncated(offset, "string bytes", "Header")
			}
			h.Metadata[key] = Metadata{Kind: MetaString, String: string(data[offset : offset+strLen])}
			offset += strLen
		default:
			return nil, 0, rcerrors.New(rcerrors.UnknownMetadataType, offset, "unknown metadata type %d", dataType)
		}
	}

	return h, offset, nil
}

func beU32(b []byte) uint32 { return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]) }
func beU16(b []byte) uint16 { return uint16(b[0])<<8 | uint16(b[1]) }
