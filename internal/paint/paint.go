// Package paint implements the paint-values micro-decoder: a
// count-prefixed word stream encoding paint-state changes.
package paint

import (
	"remotecompose/internal/expr"
	"remotecompose/internal/rcerrors"
)

type ChangeKind int

const (
	TextSize ChangeKind = iota
	Color
	Typeface
	StrokeWidth
	StrokeMiter
	StrokeCap
	StrokeJoin
	Style
	Alpha
	BlendMode
	Shader
	ColorFilter
	FilterQuality
	LinearGradient
	RadialGradient
	SweepGradient
	AntiAlias
	FilterBitmap
	ShaderMatrix
	ClearColorFilter
	Unknown
)

// Change is a single decoded paint-state change.
type Change struct {
	Kind ChangeKind

	Int     int32   // Color, ColorId, Shader, StrokeCap/Join/Style/BlendMode/FilterQuality high bits
	Expr    *expr.FloatExpression // TextSize, StrokeWidth, StrokeMiter, Alpha, ShaderMatrix
	Bool    bool    // AntiAlias, FilterBitmap

	TypefaceWeight   int32
	TypefaceItalic   bool
	TypefaceFontData bool
	TypefaceFontType int32

	ColorFilterColor int32
	ColorFilterMode  int32

	GradientColors []int32
	GradientStops  []*expr.FloatExpression
	GradientTail   []*expr.FloatExpression // subtype-specific coordinate tail
	TileMode       int32

	UnknownType int32
	UnknownHigh int32
}

const (
	typeTextSize         = 1
	typeColor            = 4
	typeStrokeWidth      = 5
	typeStrokeMiter      = 6
	typeStrokeCap        = 7
	typeStyle            = 8
	typeShader           = 9
	typeFilterQuality    = 10
	typeGradient         = 11
	typeAlpha            = 12
	typeColorFilter      = 13
	typeAntiAlias        = 14
	typeStrokeJoin       = 15
	typeTypeface         = 16
	typeFilterBitmap     = 17
	typeBlendMode        = 18
	typeColorID          = 19
	typeColorFilterID    = 20
	typeClearColorFilter = 21
	typeShaderMatrix     = 22
)

const (
	gradientLinear = 0
	gradientRadial = 1
	gradientSweep  = 2
)

// Decode reads a PaintValues payload: an i32 count, then count big-endian
// i32 words interpreted as an operand stream.
func Decode(data []byte) ([]Change, int, error) {
	if len(data) < 4 {
		return nil, 0, rcerrors.Truncated(0, "count", "PaintValues")
	}
	count := int(beU32(data[0:4]))
	dataStart := 4
	need := dataStart + count*4
	if len(data) < need {
		return nil, 0, rcerrors.Truncated(dataStart, "operand words", "PaintValues")
	}
	words := make([]int32, count)
	for i := 0; i < count; i++ {
		words[i] = int32(beU32(data[dataStart+i*4:]))
	}

	var changes []Change
	i := 0
	readFloatAt := func(wordIndex int) (*expr.FloatExpression, error) {
		off := dataStart + wordIndex*4
		e, _, err := expr.ReadSingle(data[off:])
		return e, err
	}

	for i < count {
		cmd := words[i]
		i++
		typ := cmd & 0xFFFF
		high := (cmd >> 16) & 0xFFFF

		switch typ {
		case typeTextSize:
			e, err := readFloatAt(i)
			if err != nil {
				return nil, 0, err
			}
			i++
			changes = append(changes, Change{Kind: TextSize, Expr: e})
		case typeColor, typeColorID:
			v := words[i]
			i++
			changes = append(changes, Change{Kind: Color, Int: v})
		case typeStrokeWidth:
			e, err := readFloatAt(i)
			if err != nil {
				return nil, 0, err
			}
			i++
			changes = append(changes, Change{Kind: StrokeWidth, Expr: e})
		case typeStrokeMiter:
			e, err := readFloatAt(i)
			if err != nil {
				return nil, 0, err
			}
			i++
			changes = append(changes, Change{Kind: StrokeMiter, Expr: e})
		case typeStrokeCap:
			changes = append(changes, Change{Kind: StrokeCap, Int: high})
		case typeStyle:
			changes = append(changes, Change{Kind: Style, Int: high})
		case typeShader:
			v := words[i]
			i++
			changes = append(changes, Change{Kind: Shader, Int: v})
		case typeFilterQuality:
			changes = append(changes, Change{Kind: FilterQuality, Int: high})
		case typeGradient:
			ch, consumed, err := decodeGradient(data, dataStart, words, i, high)
			if err != nil {
				return nil, 0, err
			}
			i = consumed
			changes = append(changes, ch)
		case typeAlpha:
			e, err := readFloatAt(i)
			if err != nil {
				return nil, 0, err
			}
			i++
			changes = append(changes, Change{Kind: Alpha, Expr: e})
		case typeColorFilter, typeColorFilterID:
			v := words[i]
			i++
			changes = append(changes, Change{Kind: ColorFilter, ColorFilterColor: v, ColorFilterMode: high})
		case typeAntiAlias:
			changes = append(changes, Change{Kind: AntiAlias, Bool: high != 0})
		case typeStrokeJoin:
			changes = append(changes, Change{Kind: StrokeJoin, Int: high})
		case typeTypeface:
			v := words[i]
			i++
			changes = append(changes, Change{
				Kind:             Typeface,
				TypefaceWeight:   high & 0x3FF,
				TypefaceItalic:   (high>>10)&1 != 0,
				TypefaceFontData: high&1024 != 0,
				TypefaceFontType: v,
			})
		case typeFilterBitmap:
			changes = append(changes, Change{Kind: FilterBitmap, Bool: high != 0})
		case typeBlendMode:
			changes = append(changes, Change{Kind: BlendMode, Int: high})
		case typeClearColorFilter:
			changes = append(changes, Change{Kind: ClearColorFilter})
		case typeShaderMatrix:
			e, err := readFloatAt(i)
			if err != nil {
				return nil, 0, err
			}
			i++
			changes = append(changes, Change{Kind: ShaderMatrix, Expr: e})
		default:
			return nil, 0, rcerrors.New(rcerrors.UnknownPaintType, dataStart+(i-1)*4, "unknown paint type %d", typ)
		}
	}

	return changes, dataStart + count*4, nil
}

func decodeGradient(data []byte, dataStart int, words []int32, i int, subtype int32) (Change, int, error) {
	colorsLen := int(words[i] & 0xFF)
	i++
	colors := make([]int32, colorsLen)
	for k := 0; k < colorsLen; k++ {
		colors[k] = words[i]
		i++
	}

	stopsLen := words[i]
	i++
	var stops []*expr.FloatExpression
	if stopsLen > 0 {
		// quirk preserved from the original: the number of stop floats read
		// is colorsLen, not the separately-encoded stopsLen word.
		for k := 0; k < colorsLen; k++ {
			off := dataStart + i*4
			e, _, err := expr.ReadSingle(data[off:])
			if err != nil {
				return Change{}, 0, err
			}
			stops = append(stops, e)
			i++
		}
	}

	readF := func() (*expr.FloatExpression, error) {
		off := dataStart + i*4
		e, _, err := expr.ReadSingle(data[off:])
		i++
		return e, err
	}

	ch := Change{GradientColors: colors, GradientStops: stops}
	switch subtype {
	case gradientLinear:
		tail := make([]*expr.FloatExpression, 4)
		for k := range tail {
			v, err := readF()
			if err != nil {
				return Change{}, 0, err
			}
			tail[k] = v
		}
		ch.Kind = LinearGradient
		ch.GradientTail = tail
		ch.TileMode = words[i]
		i++
	case gradientRadial:
		tail := make([]*expr.FloatExpression, 3)
		for k := range tail {
			v, err := readF()
			if err != nil {
				return Change{}, 0, err
			}
			tail[k] = v
		}
		ch.Kind = RadialGradient
		ch.GradientTail = tail
		ch.TileMode = words[i]
		i++
	case gradientSweep:
		tail := make([]*expr.FloatExpression, 2)
		for k := range tail {
			v, err := readF()
			if err != nil {
				return Change{}, 0, err
			}
			tail[k] = v
		}
		ch.Kind = SweepGradient
		ch.GradientTail = tail
	default:
		ch.Kind = Unknown
		ch.UnknownType = typeGradient
		ch.UnknownHigh = subtype
	}

	return ch, i, nil
}

func beU32(b []byte) uint32 { return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]) }
