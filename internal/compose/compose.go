// Package compose is the public façade over the RemoteCompose decoder: it
// drives opcode.Dispatch across a byte stream and feeds the results into a
// builder.Builder to produce a builder.Document.
package compose

import (
	"remotecompose/internal/builder"
	"remotecompose/internal/opcode"
)

// Document is re-exported from builder so callers only need this package.
type Document = builder.Document

// Parse decodes data into a Document, erroring on any structural problem
// (unclosed containers, a Header that isn't first, truncated payloads).
func Parse(data []byte) (*Document, error) {
	return parse(data, false)
}

// ParseLenient behaves like Parse but force-closes any containers or
// action lists still open when the stream ends, instead of erroring.
func ParseLenient(data []byte) (*Document, error) {
	return parse(data, true)
}

func parse(data []byte, lenient bool) (*Document, error) {
	b := builder.New().WithLenient(lenient)
	offset := 0
	index := 0
	for offset < len(data) {
		op, n, err := opcode.Dispatch(data[offset:], offset)
		if err != nil {
			return nil, err
		}
		if err := b.Push(op, index); err != nil {
			return nil, err
		}
		offset += n
		index++
	}
	return b.Finish()
}

// ParseFlat decodes data into the flat sequence of top-level operations as
// they appear on the wire, without building the container tree. Useful for
// inspection tools that want every opcode in stream order.
func ParseFlat(data []byte) ([]*opcode.Operation, error) {
	var ops []*opcode.Operation
	offset := 0
	for offset < len(data) {
		op, n, err := opcode.Dispatch(data[offset:], offset)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		offset += n
	}
	return ops, nil
}
