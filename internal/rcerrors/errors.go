// Package rcerrors defines the single error type produced by every decoder
// in this module.
package rcerrors

import "fmt"

// Kind classifies why a decode failed.
type Kind string

const (
	Truncation              Kind = "Truncation"
	UnknownOpcode            Kind = "UnknownOpcode"
	UnknownPaintType         Kind = "UnknownPaintType"
	UnknownGradientType      Kind = "UnknownGradientType"
	UnknownMetadataType      Kind = "UnknownMetadataType"
	UnknownExpressionOpcode  Kind = "UnknownExpressionOpcode"
	StructuralError          Kind = "StructuralError"
	Utf8Error                Kind = "Utf8Error"
	ExpressionArityError     Kind = "ExpressionArityError"
)

// DecodeError is the one error type every package in this module returns.
// Offset is the byte position within the slice being decoded at the point
// of failure, -1 when not meaningful (e.g. expression arity errors, which
// are positioned within a float array rather than a byte stream). Two
// producers store a different position here: the tree builder stores the
// 0-based operation index, and the expression parser stores the index of
// the float word holding an unknown operator.
type DecodeError struct {
	Kind    Kind
	Message string
	Offset  int
}

func (e *DecodeError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: %s (at offset %d)", e.Kind, e.Message, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, offset int, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: kind, Message: fmt.Sprintf(format, args...), Offset: offset}
}

func Truncated(offset int, field, opcode string) *DecodeError {
	return New(Truncation, offset, "data too short for %s in %s", field, opcode)
}

func Arity(offset int, op, argName string) *DecodeError {
	return New(ExpressionArityError, offset, "%s: missing %s argument", op, argName)
}
