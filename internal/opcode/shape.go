package opcode

// The container/modifier/action-list split is a static property of the
// opcode, never dynamic state — three lookup tables, not
// fields recomputed per instance.

var containersWithModifiers = map[Code]bool{
	LayoutRoot: true, LayoutBox: true, LayoutRow: true, LayoutColumn: true,
	LayoutCanvas: true, LayoutCanvasContent: true, LayoutText: true,
	LayoutImage: true, LayoutState: true, ComponentStart: true,
	LayoutFitBox: true, LayoutCollapsibleRow: true, LayoutCollapsibleColumn: true,
	ModifierDrawContent: true,
}

var containersWithoutModifiers = map[Code]bool{
	LayoutCompute: true, CanvasOperations: true, ConditionalOperations: true,
	LoopStart: true,
}

var actionListOpeners = map[Code]bool{
	ModifierClick: true, ModifierTouchDown: true, ModifierTouchUp: true,
	ModifierTouchCancel: true,
}

// IsContainer reports whether c opens a container (has a modifiers and/or
// content child list).
func IsContainer(c Code) bool {
	return containersWithModifiers[c] || containersWithoutModifiers[c]
}

// HasModifiers reports whether a container opcode has a modifiers slot
// at all. Only meaningful when IsContainer(c) is true.
func HasModifiers(c Code) bool {
	return containersWithModifiers[c]
}

// IsActionList reports whether c opens an action list.
func IsActionList(c Code) bool {
	return actionListOpeners[c]
}
