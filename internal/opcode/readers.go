package opcode

import (
	"math"
	"unicode/utf8"

	"remotecompose/internal/expr"
	"remotecompose/internal/header"
	"remotecompose/internal/paint"
	"remotecompose/internal/path"
	"remotecompose/internal/rcerrors"
)

func utf8String(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", rcerrors.New(rcerrors.Utf8Error, 0, "invalid UTF-8 text payload")
	}
	return string(b), nil
}

func beU32(b []byte) uint32 { return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]) }
func beI32(b []byte) int32  { return int32(beU32(b)) }
func beI16(b []byte) int16  { return int16(b[0])<<8 | int16(b[1]) }

func needBytes(data []byte, n int, offset int, field, op string) error {
	if len(data) < n {
		return rcerrors.Truncated(offset, field, op)
	}
	return nil
}

func readSingle(data []byte, offset int, field, op string) (*expr.FloatExpression, int, error) {
	if err := needBytes(data, 4, offset, field, op); err != nil {
		return nil, 0, err
	}
	e, n, err := expr.ReadSingle(data)
	if err != nil {
		return nil, 0, err
	}
	return e, n, nil
}

func readHeader(data []byte, offset int) (*Operation, int, error) {
	h, n, err := header.Decode(data)
	if err != nil {
		return nil, 0, err
	}
	return &Operation{Code: Header, Header: h}, n, nil
}

func readComponentStart(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 8, offset, "component_type/component_id", "ComponentStart"); err != nil {
		return nil, 0, err
	}
	n := 0
	componentType := beI32(data[0:4])
	componentID := beI32(data[4:8])
	n += 8
	width, w, err := readSingle(data[n:], offset+n, "width", "ComponentStart")
	if err != nil {
		return nil, 0, err
	}
	n += w
	height, h, err := readSingle(data[n:], offset+n, "height", "ComponentStart")
	if err != nil {
		return nil, 0, err
	}
	n += h
	return &Operation{Code: ComponentStart, Int: [5]int32{componentType, componentID}, Expr: [4]*expr.FloatExpression{width, height}}, n, nil
}

func readZero(code Code) func([]byte, int) (*Operation, int, error) {
	return func(data []byte, offset int) (*Operation, int, error) {
		return &Operation{Code: code}, 0, nil
	}
}

func readModifierDimension(code Code, name string) func([]byte, int) (*Operation, int, error) {
	return func(data []byte, offset int) (*Operation, int, error) {
		if err := needBytes(data, 4, offset, "type", name); err != nil {
			return nil, 0, err
		}
		typ := beI32(data[0:4])
		value, n, err := readSingle(data[4:], offset+4, "value", name)
		if err != nil {
			return nil, 0, err
		}
		return &Operation{Code: code, DimensionType: dimensionTypeFrom(typ), Expr: [4]*expr.FloatExpression{value}}, 4 + n, nil
	}
}

func readPaintValues(data []byte, offset int) (*Operation, int, error) {
	changes, n, err := paint.Decode(data)
	if err != nil {
		return nil, 0, err
	}
	return &Operation{Code: PaintValues, Paint: changes}, n, nil
}

func readFloats(code Code, names ...string) func([]byte, int) (*Operation, int, error) {
	return func(data []byte, offset int) (*Operation, int, error) {
		var exprs [4]*expr.FloatExpression
		n := 0
		for i, field := range names {
			e, w, err := readSingle(data[n:], offset+n, field, code.Name())
			if err != nil {
				return nil, 0, err
			}
			exprs[i] = e
			n += w
		}
		return &Operation{Code: code, Expr: exprs}, n, nil
	}
}

func readModifierBackground(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 16, offset, "flags/color_id/reserved", "ModifierBackground"); err != nil {
		return nil, 0, err
	}
	flags := beI32(data[0:4])
	colorID := beI32(data[4:8])
	n := 16 // flags, color_id, two reserved i32 fields skipped
	r, w, err := readSingle(data[n:], offset+n, "r", "ModifierBackground")
	if err != nil {
		return nil, 0, err
	}
	n += w
	g, w, err := readSingle(data[n:], offset+n, "g", "ModifierBackground")
	if err != nil {
		return nil, 0, err
	}
	n += w
	b, w, err := readSingle(data[n:], offset+n, "b", "ModifierBackground")
	if err != nil {
		return nil, 0, err
	}
	n += w
	a, w, err := readSingle(data[n:], offset+n, "a", "ModifierBackground")
	if err != nil {
		return nil, 0, err
	}
	n += w
	if err := needBytes(data[n:], 4, offset+n, "shape_type", "ModifierBackground"); err != nil {
		return nil, 0, err
	}
	shapeType := beI32(data[n : n+4])
	n += 4
	return &Operation{
		Code:      ModifierBackground,
		Int:       [5]int32{flags, colorID},
		Expr:      [4]*expr.FloatExpression{r, g, b, a},
		ShapeType: shapeTypeFrom(shapeType),
	}, n, nil
}

func readRootContentBehavior(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 16, offset, "scroll/alignment/sizing/mode", "RootContentBehavior"); err != nil {
		return nil, 0, err
	}
	return &Operation{
		Code: RootContentBehavior,
		Int:  [5]int32{beI32(data[0:4]), beI32(data[4:8]), beI32(data[8:12]), beI32(data[12:16])},
	}, 16, nil
}

func readDataFloat(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 8, offset, "id/value", "DataFloat"); err != nil {
		return nil, 0, err
	}
	id := beI32(data[0:4])
	v := expr.Value(float32FromBits(beU32(data[4:8])))
	return &Operation{Code: DataFloat, Int: [5]int32{id}, Expr: [4]*expr.FloatExpression{v}}, 8, nil
}

func readAnimatedFloat(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 8, offset, "id/len", "AnimatedFloat"); err != nil {
		return nil, 0, err
	}
	id := beI32(data[0:4])
	lenWord := beI32(data[4:8])
	valueLen := int(lenWord & 0xFFFF)
	animLen := int((lenWord >> 16) & 0xFFFF)
	n := 8
	if err := needBytes(data[n:], valueLen*4, offset+n, "values", "AnimatedFloat"); err != nil {
		return nil, 0, err
	}
	values, _, err := expr.Read(data[n : n+valueLen*4])
	if err != nil {
		return nil, 0, err
	}
	n += valueLen * 4
	var anim *expr.FloatExpression
	if animLen > 0 {
		if err := needBytes(data[n:], animLen*4, offset+n, "animation", "AnimatedFloat"); err != nil {
			return nil, 0, err
		}
		anim, _, err = expr.Read(data[n : n+animLen*4])
		if err != nil {
			return nil, 0, err
		}
		n += animLen * 4
	}
	return &Operation{Code: AnimatedFloat, Int: [5]int32{id}, AnimValues: values, AnimAnimation: anim}, n, nil
}

func readDataBitmap(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 16, offset, "id/width/height/len", "DataBitmap"); err != nil {
		return nil, 0, err
	}
	id := beI32(data[0:4])
	width := beI32(data[4:8])
	height := beI32(data[8:12])
	dataLen := int(beI32(data[12:16]))
	n := 16
	if err := needBytes(data[n:], dataLen, offset+n, "bitmap bytes", "DataBitmap"); err != nil {
		return nil, 0, err
	}
	bytes := append([]byte(nil), data[n:n+dataLen]...)
	n += dataLen
	return &Operation{Code: DataBitmap, Int: [5]int32{id, width, height}, Bytes: bytes}, n, nil
}

func readDataText(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 8, offset, "id/len", "DataText"); err != nil {
		return nil, 0, err
	}
	id := beI32(data[0:4])
	strLen := int(beI32(data[4:8]))
	n := 8
	if err := needBytes(data[n:], strLen, offset+n, "text bytes", "DataText"); err != nil {
		return nil, 0, err
	}
	str, err := utf8String(data[n : n+strLen])
	if err != nil {
		return nil, 0, err
	}
	n += strLen
	return &Operation{Code: DataText, Int: [5]int32{id}, Str: str}, n, nil
}

func readDataInt(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 8, offset, "id/value", "DataInt"); err != nil {
		return nil, 0, err
	}
	return &Operation{Code: DataInt, Int: [5]int32{beI32(data[0:4]), beI32(data[4:8])}}, 8, nil
}

func readDataPath(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 8, offset, "id/len", "DataPath"); err != nil {
		return nil, 0, err
	}
	fullID := beI32(data[0:4])
	winding := fullID >> 24
	id := fullID & 0xFFFFFF
	cmdLen := int(beI32(data[4:8]))
	n := 8
	if err := needBytes(data[n:], cmdLen*4, offset+n, "path command words", "DataPath"); err != nil {
		return nil, 0, err
	}
	ops, err := path.Decode(data[n : n+cmdLen*4])
	if err != nil {
		return nil, 0, err
	}
	n += cmdLen * 4
	return &Operation{Code: DataPath, Int: [5]int32{id, winding}, Path: ops}, n, nil
}

func readDrawPath(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 4, offset, "path_id", "DrawPath"); err != nil {
		return nil, 0, err
	}
	return &Operation{Code: DrawPath, Int: [5]int32{beI32(data[0:4])}}, 4, nil
}

func readComponentValue(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 12, offset, "type/component_id/value_id", "ComponentValue"); err != nil {
		return nil, 0, err
	}
	return &Operation{Code: ComponentValue, Int: [5]int32{beI32(data[0:4]), beI32(data[4:8]), beI32(data[8:12])}}, 12, nil
}

func readHostNamedAction(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 12, offset, "text_id/type/value_id", "HostNamedAction"); err != nil {
		return nil, 0, err
	}
	return &Operation{Code: HostNamedAction, Int: [5]int32{beI32(data[0:4]), beI32(data[4:8]), beI32(data[8:12])}}, 12, nil
}

func readValueIntegerChangeAction(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 8, offset, "value_id/value", "ValueIntegerChangeAction"); err != nil {
		return nil, 0, err
	}
	return &Operation{Code: ValueIntegerChangeAction, Int: [5]int32{beI32(data[0:4]), beI32(data[4:8])}}, 8, nil
}

func readLayoutRoot(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 4, offset, "component_id", "LayoutRoot"); err != nil {
		return nil, 0, err
	}
	return &Operation{Code: LayoutRoot, Int: [5]int32{beI32(data[0:4])}}, 4, nil
}

func readLayoutContent(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 4, offset, "component_id", "LayoutContent"); err != nil {
		return nil, 0, err
	}
	return &Operation{Code: LayoutContent, Int: [5]int32{beI32(data[0:4])}}, 4, nil
}

func readLayoutCanvasContent(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 4, offset, "component_id", "LayoutCanvasContent"); err != nil {
		return nil, 0, err
	}
	return &Operation{Code: LayoutCanvasContent, Int: [5]int32{beI32(data[0:4])}}, 4, nil
}

func readLayoutCanvas(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 8, offset, "component_id/animation_id", "LayoutCanvas"); err != nil {
		return nil, 0, err
	}
	return &Operation{Code: LayoutCanvas, Int: [5]int32{beI32(data[0:4]), beI32(data[4:8])}}, 8, nil
}

func readLayoutBox(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 16, offset, "component_id/animation_id/alignments", "LayoutBox"); err != nil {
		return nil, 0, err
	}
	return &Operation{
		Code:         LayoutBox,
		Int:          [5]int32{beI32(data[0:4]), beI32(data[4:8])},
		LayoutAlignH: layoutAlignmentFrom(beI32(data[8:12])),
		LayoutAlignV: layoutAlignmentFrom(beI32(data[12:16])),
	}, 16, nil
}

func readLayoutRowColumn(code Code) func([]byte, int) (*Operation, int, error) {
	return func(data []byte, offset int) (*Operation, int, error) {
		if err := needBytes(data, 16, offset, "component_id/animation_id/alignments", "LayoutRow/LayoutColumn"); err != nil {
			return nil, 0, err
		}
		componentID := beI32(data[0:4])
		animationID := beI32(data[4:8])
		h := beI32(data[8:12])
		v := beI32(data[12:16])
		n := 16
		spacedBy, w, err := readSingle(data[n:], offset+n, "spaced_by", "LayoutRow/LayoutColumn")
		if err != nil {
			return nil, 0, err
		}
		n += w
		return &Operation{
			Code:         code,
			Int:          [5]int32{componentID, animationID},
			LayoutAlignH: layoutAlignmentFrom(h),
			LayoutAlignV: layoutAlignmentFrom(v),
			Expr:         [4]*expr.FloatExpression{spacedBy},
		}, n, nil
	}
}

func readLayoutText(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 16, offset, "component_id/animation_id/text_id/color", "LayoutText"); err != nil {
		return nil, 0, err
	}
	componentID := beI32(data[0:4])
	animationID := beI32(data[4:8])
	textID := beI32(data[8:12])
	color := beI32(data[12:16])
	n := 16
	fontSize, w, err := readSingle(data[n:], offset+n, "font_size", "LayoutText")
	if err != nil {
		return nil, 0, err
	}
	n += w
	if err := needBytes(data[n:], 4, offset+n, "font_style", "LayoutText"); err != nil {
		return nil, 0, err
	}
	fontStyle := beI32(data[n : n+4])
	n += 4
	fontWeight, w, err := readSingle(data[n:], offset+n, "font_weight", "LayoutText")
	if err != nil {
		return nil, 0, err
	}
	n += w
	if err := needBytes(data[n:], 12, offset+n, "font_family_id/text_align/overflow", "LayoutText"); err != nil {
		return nil, 0, err
	}
	fontFamilyID := beI32(data[n : n+4])
	textAlign := beI32(data[n+4 : n+8])
	overflow := beI32(data[n+8 : n+12])
	n += 12
	if err := needBytes(data[n:], 4, offset+n, "max_lines", "LayoutText"); err != nil {
		return nil, 0, err
	}
	maxLines := beI32(data[n : n+4])
	n += 4
	return &Operation{
		Code:         LayoutText,
		Int:          [5]int32{componentID, animationID, textID, color, fontFamilyID},
		Expr:         [4]*expr.FloatExpression{fontSize, fontWeight},
		FontStyle:    fontStyleFrom(fontStyle),
		TextAlign:    textAlignFrom(textAlign),
		TextOverflow: textOverflowFrom(overflow),
		Long:         int64(maxLines),
	}, n, nil
}

func readLayoutImage(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 16, offset, "component_id/animation_id/bitmap_id/scale_type", "LayoutImage"); err != nil {
		return nil, 0, err
	}
	componentID := beI32(data[0:4])
	animationID := beI32(data[4:8])
	bitmapID := beI32(data[8:12])
	scaleType := beI32(data[12:16])
	n := 16
	alpha, w, err := readSingle(data[n:], offset+n, "alpha", "LayoutImage")
	if err != nil {
		return nil, 0, err
	}
	n += w
	return &Operation{
		Code: LayoutImage,
		Int:  [5]int32{componentID, animationID, bitmapID, scaleType},
		Expr: [4]*expr.FloatExpression{alpha},
	}, n, nil
}

func readLayoutState(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 20, offset, "component_id/animation_id/positioning/index_id", "LayoutState"); err != nil {
		return nil, 0, err
	}
	componentID := beI32(data[0:4])
	animationID := beI32(data[4:8])
	// data[8:16] is horizontal/vertical positioning, unused by this decoder.
	indexID := beI32(data[16:20])
	return &Operation{Code: LayoutState, Int: [5]int32{componentID, animationID, indexID}}, 20, nil
}

func readCoreText(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 6, offset, "text_id/params_length", "CoreText"); err != nil {
		return nil, 0, err
	}
	textID := beI32(data[0:4])
	paramsLength := int(beI16(data[4:6]))
	n := 6
	params := make([]CoreTextParam, 0, paramsLength)
	for i := 0; i < paramsLength; i++ {
		if err := needBytes(data[n:], 1, offset+n, "param id", "CoreText"); err != nil {
			return nil, 0, err
		}
		id := data[n]
		n++
		switch {
		case isCoreTextIntParam(id):
			if err := needBytes(data[n:], 4, offset+n, "int param", "CoreText"); err != nil {
				return nil, 0, err
			}
			params = append(params, CoreTextParam{ID: id, Kind: ParamInt, Int: beI32(data[n : n+4])})
			n += 4
		case isCoreTextFloatParam(id):
			v, w, err := readSingle(data[n:], offset+n, "float param", "CoreText")
			if err != nil {
				return nil, 0, err
			}
			params = append(params, CoreTextParam{ID: id, Kind: ParamFloat, Float: v})
			n += w
		case id >= 18 && id <= 20:
			if err := needBytes(data[n:], 1, offset+n, "boolean param", "CoreText"); err != nil {
				return nil, 0, err
			}
			params = append(params, CoreTextParam{ID: id, Kind: ParamBoolean, Bool: data[n] != 0})
			n++
		case id == 22:
			if err := needBytes(data[n:], 2, offset+n, "int array count", "CoreText"); err != nil {
				return nil, 0, err
			}
			count := int(beI16(data[n : n+2]))
			n += 2
			vals := make([]int32, count)
			for k := 0; k < count; k++ {
				if err := needBytes(data[n:], 4, offset+n, "int array value", "CoreText"); err != nil {
					return nil, 0, err
				}
				vals[k] = beI32(data[n : n+4])
				n += 4
			}
			params = append(params, CoreTextParam{ID: id, Kind: ParamIntArray, IntArray: vals})
		case id == 23:
			if err := needBytes(data[n:], 2, offset+n, "float array count", "CoreText"); err != nil {
				return nil, 0, err
			}
			count := int(beI16(data[n : n+2]))
			n += 2
			vals := make([]*expr.FloatExpression, count)
			for k := 0; k < count; k++ {
				v, w, err := readSingle(data[n:], offset+n, "float array value", "CoreText")
				if err != nil {
					return nil, 0, err
				}
				vals[k] = v
				n += w
			}
			params = append(params, CoreTextParam{ID: id, Kind: ParamFloatArray, FloatArray: vals})
		default:
			return nil, 0, rcerrors.New(rcerrors.StructuralError, offset+n-1, "unknown CoreText parameter id %d", id)
		}
	}
	return &Operation{Code: CoreText, Int: [5]int32{textID}, CoreTextParams: params}, n, nil
}

func isCoreTextIntParam(id byte) bool {
	switch {
	case id >= 1 && id <= 4:
		return true
	case id == 6:
		return true
	case id >= 8 && id <= 11:
		return true
	case id >= 15 && id <= 17:
		return true
	case id == 21:
		return true
	}
	return false
}

func isCoreTextFloatParam(id byte) bool {
	if id == 5 || id == 7 {
		return true
	}
	return id >= 12 && id <= 14
}

func readAccessibilitySemantics(data []byte, offset int) (*Operation, int, error) {
	if err := needBytes(data, 16, offset, "semantics", "AccessibilitySemantics"); err != nil {
		return nil, 0, err
	}
	sem := CoreSemantics{
		ContentDescriptionID: beI32(data[0:4]),
		Role:                 int8(data[4]),
		TextID:               beI32(data[5:9]),
		StateDescriptionID:   beI32(data[9:13]),
		Mode:                 int8(data[13]),
		Enabled:              data[14] != 0,
		Clickable:            data[15] != 0,
	}
	return &Operation{Code: AccessibilitySemantics, Semantics: sem}, 16, nil
}

func float32FromBits(bits uint32) float32 {
	return math.Float32frombits(bits)
}
