// Package builder implements the operation-stream-to-tree state machine:
// a stack machine that turns a flat sequence of opcode.Operation
// values into a nested Container/ActionList/ContentMarker tree.
package builder

import (
	"fmt"
	"strings"

	"remotecompose/internal/header"
	"remotecompose/internal/opcode"
	"remotecompose/internal/rcerrors"
)

// Document is the finished parse result: the header plus the root-level
// operation forest.
type Document struct {
	Header *header.Header
	Root   []*opcode.Operation
}

type itemKind int

const (
	itemRoot itemKind = iota
	itemContainer
	itemActionList
	itemContentMarker
)

type stackItem struct {
	kind      itemKind
	op        *opcode.Operation
	isContent bool
	rootNodes []*opcode.Operation
}

func (it stackItem) name() string {
	switch it.kind {
	case itemRoot:
		return "Root"
	case itemContentMarker:
		return "ContentMarker"
	default:
		return it.op.Code.Name()
	}
}

func (it stackItem) id() (int32, bool) {
	if it.kind != itemContainer {
		return 0, false
	}
	switch it.op.Code {
	case opcode.LayoutFitBox, opcode.LayoutCollapsibleRow, opcode.LayoutCollapsibleColumn, opcode.LayoutCompute:
		return 0, false
	default:
		return it.op.Int[0], true
	}
}

// Builder is a stack machine: pushing a container or
// action-list opcode opens a new stack frame; ContainerEnd closes the
// innermost one and attaches the finished operation to its parent.
type Builder struct {
	header  *header.Header
	stack   []stackItem
	lenient bool
}

// New returns a Builder ready to accept operations via Push.
func New() *Builder {
	return &Builder{stack: []stackItem{{kind: itemRoot}}}
}

// WithLenient enables lenient mode: Finish will force-close any still-open
// containers/action-lists instead of erroring.
func (b *Builder) WithLenient(lenient bool) *Builder {
	b.lenient = lenient
	return b
}

// Push feeds one decoded operation into the builder. index is the
// 0-based operation count, used only for error messages.
func (b *Builder) Push(op *opcode.Operation, index int) error {
	if op.Code == opcode.Header {
		if b.header != nil {
			return rcerrors.New(rcerrors.StructuralError, index, "duplicate Header at op index %d", index)
		}
		b.header = op.Header
		return nil
	}

	if b.header == nil {
		return rcerrors.New(rcerrors.StructuralError, index, "first operation must be Header, found %s at op index %d", op.Code.Name(), index)
	}

	switch op.Code {
	case opcode.LayoutContent:
		top := &b.stack[len(b.stack)-1]
		if top.kind != itemContainer {
			return b.errorf(index, "LayoutContent must be inside a container")
		}
		top.isContent = true
		b.stack = append(b.stack, stackItem{kind: itemContentMarker})
		return nil

	case opcode.ContainerEnd:
		if len(b.stack) == 0 {
			return b.errorf(index, "stack underflow")
		}
		top := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		switch top.kind {
		case itemContentMarker:
			return nil
		case itemRoot:
			return b.errorf(index, "cannot pop root")
		default:
			return b.addToCurrent(top.op, index)
		}

	default:
		if opcode.IsContainer(op.Code) {
			b.stack = append(b.stack, stackItem{kind: itemContainer, op: op, isContent: !opcode.HasModifiers(op.Code)})
			return nil
		}
		if opcode.IsActionList(op.Code) {
			b.stack = append(b.stack, stackItem{kind: itemActionList, op: op})
			return nil
		}
		return b.addToCurrent(op, index)
	}
}

func (b *Builder) addToCurrent(op *opcode.Operation, index int) error {
	if len(b.stack) == 0 {
		return b.errorf(index, "stack empty")
	}
	top := &b.stack[len(b.stack)-1]
	switch top.kind {
	case itemRoot:
		top.rootNodes = append(top.rootNodes, op)
		return nil
	case itemContentMarker:
		if len(b.stack) < 2 {
			return b.errorf(index, "content marker without container parent")
		}
		parent := &b.stack[len(b.stack)-2]
		if parent.kind != itemContainer {
			return b.errorf(index, "content marker not below a container")
		}
		parent.op.Children = append(parent.op.Children, op)
		return nil
	case itemContainer:
		if top.isContent {
			top.op.Children = append(top.op.Children, op)
		} else {
			top.op.Modifiers = append(top.op.Modifiers, op)
		}
		return nil
	case itemActionList:
		top.op.Actions = append(top.op.Actions, op)
		return nil
	default:
		return b.errorf(index, "unreachable stack item")
	}
}

// Finish closes the builder and returns the parsed Document. In strict mode
// any still-open container or action list is an error; in lenient mode the
// stack is force-unwound instead.
func (b *Builder) Finish() (*Document, error) {
	if b.header == nil {
		return nil, rcerrors.New(rcerrors.StructuralError, 0, "missing header")
	}

	if b.lenient {
		for len(b.stack) > 1 {
			top := b.stack[len(b.stack)-1]
			b.stack = b.stack[:len(b.stack)-1]
			if top.kind == itemContainer || top.kind == itemActionList {
				_ = b.addToCurrent(top.op, 0)
			}
		}
	}

	if len(b.stack) != 1 {
		return nil, b.errorf(0, "unclosed blocks")
	}
	root := b.stack[0]
	if root.kind != itemRoot {
		return nil, rcerrors.New(rcerrors.StructuralError, 0, "root item missing or corrupted")
	}
	return &Document{Header: b.header, Root: root.rootNodes}, nil
}

func (b *Builder) errorf(index int, msg string) error {
	var out strings.Builder
	fmt.Fprintf(&out, "%s at op index %d.\n", msg, index)
	out.WriteString("current stack ids: [")
	for i, item := range b.stack {
		if i > 0 {
			out.WriteString(", ")
		}
		if id, ok := item.id(); ok {
			fmt.Fprintf(&out, "%d", id)
		} else {
			out.WriteString("none")
		}
	}
	out.WriteString("]\n")
	out.WriteString(b.dumpStack())
	return rcerrors.New(rcerrors.StructuralError, index, "%s", out.String())
}

func (b *Builder) dumpStack() string {
	var out strings.Builder
	out.WriteString("stack:\n")
	for _, item := range b.stack {
		idStr := ""
		if id, ok := item.id(); ok {
			idStr = fmt.Sprintf(" (%d)", id)
		}
		fmt.Fprintf(&out, "- %s%s\n", item.name(), idStr)
	}
	return out.String()
}
