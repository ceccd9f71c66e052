package opcode

import "remotecompose/internal/rcerrors"

type readerFunc func(data []byte, offset int) (*Operation, int, error)

var readers map[Code]readerFunc

func init() {
	readers = map[Code]readerFunc{
		Header:                  readHeader,
		ComponentStart:          readComponentStart,
		AnimationSpec:           readZero(AnimationSpec),
		ModifierWidth:           readModifierDimension(ModifierWidth, "ModifierWidth"),
		ClipPath:                readZero(ClipPath),
		ClipRect:                readZero(ClipRect),
		PaintValues:             readPaintValues,
		DrawRect:                readFloats(DrawRect, "left", "top", "right", "bottom"),
		DrawTextRun:             readZero(DrawTextRun),
		DrawBitmap:              readZero(DrawBitmap),
		DataShader:              readZero(DataShader),
		DrawCircle:              readZero(DrawCircle),
		DrawLine:                readFloats(DrawLine, "x1", "y1", "x2", "y2"),
		DrawRoundRect:           readZero(DrawRoundRect),
		ModifierRoundedClipRect: readZero(ModifierRoundedClipRect),
		ModifierBackground:      readModifierBackground,
		ModifierPadding:         readFloats(ModifierPadding, "left", "top", "right", "bottom"),
		ModifierClick:           readZero(ModifierClick),
		RootContentBehavior:     readRootContentBehavior,
		ModifierHeight:          readModifierDimension(ModifierHeight, "ModifierHeight"),
		DataFloat:               readDataFloat,
		AnimatedFloat:           readAnimatedFloat,
		DataBitmap:              readDataBitmap,
		DataText:                readDataText,
		DataPath:                readDataPath,
		DrawPath:                readDrawPath,
		MatrixScale:             readFloats(MatrixScale, "sx", "sy"),
		MatrixTranslate:         readFloats(MatrixTranslate, "tx", "ty"),
		MatrixRotate:            readFloats(MatrixRotate, "angle", "cx", "cy"),
		MatrixSave:              readZero(MatrixSave),
		MatrixRestore:           readZero(MatrixRestore),
		DrawContent:             readZero(DrawContent),
		DataInt:                 readDataInt,
		IntegerExpression:       readZero(IntegerExpression),
		ComponentValue:          readComponentValue,
		CanvasOperations:        readZero(CanvasOperations),
		ModifierDrawContent:     readZero(ModifierDrawContent),
		LayoutFitBox:            readZero(LayoutFitBox),
		ConditionalOperations:   readZero(ConditionalOperations),
		LayoutRoot:              readLayoutRoot,
		LayoutContent:           readLayoutContent,
		LayoutBox:               readLayoutBox,
		LayoutRow:               readLayoutRowColumn(LayoutRow),
		LayoutColumn:            readLayoutRowColumn(LayoutColumn),
		LayoutCanvas:            readLayoutCanvas,
		LayoutCanvasContent:     readLayoutCanvasContent,
		LayoutText:              readLayoutText,
		HostAction:              readZero(HostAction),
		HostNamedAction:         readHostNamedAction,
		ValueIntegerChangeAction: readValueIntegerChangeAction,
		ContainerEnd:            readZero(ContainerEnd),
		LoopStart:               readZero(LoopStart),
		LayoutState:             readLayoutState,
		ModifierTouchDown:       readZero(ModifierTouchDown),
		ModifierTouchUp:         readZero(ModifierTouchUp),
		ModifierTouchCancel:     readZero(ModifierTouchCancel),
		LayoutCollapsibleRow:    readZero(LayoutCollapsibleRow),
		LayoutCollapsibleColumn: readZero(LayoutCollapsibleColumn),
		LayoutImage:             readLayoutImage,
		RunAction:               readZero(RunAction),
		LayoutCompute:           readZero(LayoutCompute),
		CoreText:                readCoreText,
		AccessibilitySemantics:  readAccessibilitySemantics,
		ExtendedOpcode:          readZero(ExtendedOpcode),
	}
}

// Dispatch reads one opcode-tagged operation starting at the head of data:
// a one-byte opcode prefix followed by that opcode's payload. It returns the
// decoded Operation and the total number of bytes consumed (1 + payload).
func Dispatch(data []byte, offset int) (*Operation, int, error) {
	if len(data) < 1 {
		return nil, 0, rcerrors.Truncated(offset, "opcode byte", "")
	}
	code, ok := Known(data[0])
	if !ok {
		return nil, 0, rcerrors.New(rcerrors.UnknownOpcode, offset, "unknown opcode byte %d", data[0])
	}
	reader := readers[code]
	if reader == nil {
		return nil, 0, rcerrors.New(rcerrors.UnknownOpcode, offset, "opcode %s has no registered reader", code.Name())
	}
	op, n, err := reader(data[1:], offset+1)
	if err != nil {
		return nil, 0, err
	}
	op.Code = code
	return op, 1 + n, nil
}
