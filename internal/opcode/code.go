// Package opcode holds the opcode table and per-opcode payload readers:
// the byte-to-symbol bijection, the reader dispatch, and the
// typed Operation a reader produces.
package opcode

// Code is a one-byte opcode tag. Only the opcodes named in the externally
// visible table plus those whose exact payload is otherwise documented
// have named constants and readers; any other byte is UnknownOpcode.
type Code byte

const (
	Header                Code = 0
	ComponentStart         Code = 2
	AnimationSpec          Code = 14
	ModifierWidth          Code = 16
	ClipPath               Code = 38
	ClipRect               Code = 39
	PaintValues            Code = 40
	DrawRect               Code = 42
	DrawTextRun            Code = 43
	DrawBitmap             Code = 44
	DataShader             Code = 45
	DrawCircle             Code = 46
	DrawLine               Code = 47
	DrawRoundRect          Code = 51
	ModifierRoundedClipRect Code = 54
	ModifierBackground     Code = 55
	ModifierPadding        Code = 58
	ModifierClick          Code = 59
	RootContentBehavior    Code = 65
	ModifierHeight         Code = 67
	DataFloat              Code = 80
	AnimatedFloat          Code = 81
	DataBitmap             Code = 101
	DataText               Code = 102
	DataPath               Code = 123
	DrawPath               Code = 124
	MatrixScale            Code = 126
	MatrixTranslate        Code = 127
	MatrixRotate           Code = 129
	MatrixSave             Code = 130
	MatrixRestore          Code = 131
	DrawContent            Code = 139
	DataInt                Code = 140
	IntegerExpression      Code = 144
	ComponentValue         Code = 150
	CanvasOperations       Code = 173
	ModifierDrawContent    Code = 174
	LayoutFitBox           Code = 176
	ConditionalOperations  Code = 178
	LayoutRoot             Code = 200
	LayoutContent          Code = 201
	LayoutBox              Code = 202
	LayoutRow              Code = 203
	LayoutColumn           Code = 204
	LayoutCanvas           Code = 205
	LayoutCanvasContent    Code = 207
	LayoutText             Code = 208
	HostAction             Code = 209
	HostNamedAction        Code = 210
	ValueIntegerChangeAction Code = 212
	ContainerEnd           Code = 214
	LoopStart              Code = 215
	LayoutState            Code = 217
	ModifierTouchDown      Code = 219
	ModifierTouchUp        Code = 220
	ModifierTouchCancel    Code = 225
	LayoutCollapsibleRow   Code = 230
	LayoutCollapsibleColumn Code = 233
	LayoutImage            Code = 234
	RunAction              Code = 236
	LayoutCompute          Code = 238
	CoreText               Code = 239
	AccessibilitySemantics Code = 250
	ExtendedOpcode         Code = 255
)

var names = map[Code]string{
	Header: "Header", ComponentStart: "ComponentStart", AnimationSpec: "AnimationSpec",
	ModifierWidth: "ModifierWidth", ClipPath: "ClipPath", ClipRect: "ClipRect",
	PaintValues: "PaintValues", DrawRect: "DrawRect", DrawTextRun: "DrawTextRun",
	DrawBitmap: "DrawBitmap", DataShader: "DataShader", DrawCircle: "DrawCircle",
	DrawLine: "DrawLine", DrawRoundRect: "DrawRoundRect",
	ModifierRoundedClipRect: "ModifierRoundedClipRect", ModifierBackground: "ModifierBackground",
	ModifierPadding: "ModifierPadding", ModifierClick: "ModifierClick",
	RootContentBehavior: "RootContentBehavior", ModifierHeight: "ModifierHeight",
	DataFloat: "DataFloat", AnimatedFloat: "AnimatedFloat", DataBitmap: "DataBitmap",
	DataText: "DataText", DataPath: "DataPath", DrawPath: "DrawPath",
	MatrixScale: "MatrixScale", MatrixTranslate: "MatrixTranslate", MatrixRotate: "MatrixRotate",
	MatrixSave: "MatrixSave", MatrixRestore: "MatrixRestore", DrawContent: "DrawContent",
	DataInt: "DataInt", IntegerExpression: "IntegerExpression", ComponentValue: "ComponentValue",
	CanvasOperations: "CanvasOperations", ModifierDrawContent: "ModifierDrawContent",
	LayoutFitBox: "LayoutFitBox", ConditionalOperations: "ConditionalOperations",
	LayoutRoot: "LayoutRoot", LayoutContent: "LayoutContent", LayoutBox: "LayoutBox",
	LayoutRow: "LayoutRow", LayoutColumn: "LayoutColumn", LayoutCanvas: "LayoutCanvas",
	LayoutCanvasContent: "LayoutCanvasContent", LayoutText: "LayoutText",
	HostAction: "HostAction", HostNamedAction: "HostNamedAction",
	ValueIntegerChangeAction: "ValueIntegerChangeAction", ContainerEnd: "ContainerEnd",
	LoopStart: "LoopStart", LayoutState: "LayoutState", ModifierTouchDown: "ModifierTouchDown",
	ModifierTouchUp: "ModifierTouchUp", ModifierTouchCancel: "ModifierTouchCancel",
	LayoutCollapsibleRow: "LayoutCollapsibleRow", LayoutCollapsibleColumn: "LayoutCollapsibleColumn",
	LayoutImage: "LayoutImage", RunAction: "RunAction", LayoutCompute: "LayoutCompute",
	CoreText: "CoreText", AccessibilitySemantics: "AccessibilitySemantics",
	ExtendedOpcode: "ExtendedOpcode",
}

// Name returns the symbolic opcode name, or "" if byte b is not one of the
// opcodes this decoder recognizes.
func (c Code) Name() string { return names[c] }

// Known reports whether byte b is a recognized opcode.
func Known(b byte) (Code, bool) {
	c := Code(b)
	_, ok := names[c]
	return c, ok
}
