package opcode

import (
	"remotecompose/internal/expr"
	"remotecompose/internal/header"
	"remotecompose/internal/paint"
	"remotecompose/internal/path"
)

// Operation is the tagged sum over every opcode this decoder knows.
// One struct carries every variant's fields rather than one Go type per
// opcode — the same flattened-enum shape used for expr.FloatExpression —
// because the tree builder needs to treat any Operation uniformly as
// container/action-list/leaf without a type switch per opcode.
type Operation struct {
	Code Code

	// generic scalar slots, populated per-opcode; see each reader for which
	// are meaningful for a given Code.
	Int        [5]int32
	I8         [2]int8
	Bool       [2]bool
	Long       int64
	Expr       [4]*expr.FloatExpression
	Str        string
	Bytes      []byte

	Header *header.Header
	Path   []path.Op
	Paint  []paint.Change

	AnimValues    *expr.FloatExpression
	AnimAnimation *expr.FloatExpression

	CoreTextParams []CoreTextParam
	Semantics      CoreSemantics

	DimensionType    int32
	ShapeType        int32
	FontStyle        int32
	TextAlign        int32
	TextOverflow     int32
	LayoutAlignH     int32
	LayoutAlignV     int32

	// Container/action-list child lists. Containers without modifiers
	// never get anything appended to Modifiers; the builder knows which
	// from opcode.HasModifiers, not from whether this slice is empty.
	Modifiers []*Operation
	Children  []*Operation
	Actions   []*Operation
}

// CoreTextParam is one decoded CoreText parameter.
type CoreTextParam struct {
	ID         byte
	Kind       CoreTextParamKind
	Int        int32
	Float      *expr.FloatExpression
	Bool       bool
	IntArray   []int32
	FloatArray []*expr.FloatExpression
}

type CoreTextParamKind int

const (
	ParamInt CoreTextParamKind = iota
	ParamFloat
	ParamBoolean
	ParamIntArray
	ParamFloatArray
)

// CoreSemantics is the AccessibilitySemantics payload — note the two
// i8 fields sit between 4-byte fields and do not re-align the stream.
type CoreSemantics struct {
	ContentDescriptionID int32
	Role                 int8
	TextID               int32
	StateDescriptionID   int32
	Mode                 int8
	Enabled              bool
	Clickable            bool
}

// Integer-enum fields that fall back to a documented default on an
// unrecognized value rather than erroring.

type TextAlignV int32

const (
	TextAlignLeft TextAlignV = 1 + iota
	TextAlignRight
	TextAlignCenter
	TextAlignJustify
	TextAlignStart
	TextAlignEnd
)

func textAlignFrom(v int32) int32 {
	if v >= int32(TextAlignLeft) && v <= int32(TextAlignEnd) {
		return v
	}
	return int32(TextAlignLeft)
}

type TextOverflowV int32

const (
	TextOverflowClip TextOverflowV = 1 + iota
	TextOverflowVisible
	TextOverflowEllipsis
	TextOverflowStartEllipsis
	TextOverflowMiddleEllipsis
)

func textOverflowFrom(v int32) int32 {
	if v >= int32(TextOverflowClip) && v <= int32(TextOverflowMiddleEllipsis) {
		return v
	}
	return int32(TextOverflowClip)
}

type FontStyleV int32

const (
	FontStyleNormal FontStyleV = iota
	FontStyleItalic
)

func fontStyleFrom(v int32) int32 {
	if v == int32(FontStyleNormal) || v == int32(FontStyleItalic) {
		return v
	}
	return int32(FontStyleNormal)
}

type LayoutAlignmentV int32

const (
	LayoutAlignStart LayoutAlignmentV = 1 + iota
	LayoutAlignCenter
	LayoutAlignEnd
	LayoutAlignTop
	LayoutAlignBottom
	LayoutAlignSpaceBetween
	LayoutAlignSpaceEvenly
	LayoutAlignSpaceAround
)

func layoutAlignmentFrom(v int32) int32 {
	if v >= int32(LayoutAlignStart) && v <= int32(LayoutAlignSpaceAround) {
		return v
	}
	return int32(LayoutAlignStart)
}

type DimensionTypeV int32

const (
	DimensionExact DimensionTypeV = iota
	DimensionFill
	DimensionWrap
	DimensionWeight
	DimensionIntrinsicMin
	DimensionIntrinsicMax
	DimensionExactDp
)

func dimensionTypeFrom(v int32) int32 {
	if v >= int32(DimensionExact) && v <= int32(DimensionExactDp) {
		return v
	}
	return int32(DimensionExact)
}

type ShapeTypeV int32

const (
	ShapeRectangle ShapeTypeV = iota
	ShapeCircle
)

func shapeTypeFrom(v int32) int32 {
	if v == int32(ShapeRectangle) || v == int32(ShapeCircle) {
		return v
	}
	return int32(ShapeRectangle)
}
