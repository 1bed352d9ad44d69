package schema

import (
	"strings"

	"github.com/reoring/validators/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType    = "invalid_type"
	CodeRequired       = "required"
	CodeUnknownKey     = "unknown_key"
	CodeTooShort       = "too_short"
	CodeTooLong        = "too_long"
	CodePattern        = "pattern"
	CodeInvalidFormat  = "invalid_format"
	CodeTooSmall       = "too_small"
	CodeNotGreater     = "not_greater"
	CodeTooBig         = "too_big"
	CodeNotLess        = "not_less"
	CodeNotMultipleOf  = "not_multiple_of"
	CodeTooFewItems    = "too_few_items"
	CodeTooManyItems   = "too_many_items"
	CodeDuplicateItems = "duplicate_items"
	CodeInvalidLiteral = "invalid_literal"
	// CodeUnionNoMatch is reported when a value matches no union member.
	CodeUnionNoMatch = "union_no_match"
)

// ValueError is a single validation failure.
type ValueError struct {
	Code string
	// Path is a JSON Pointer from the validation root (for example
	// /items/2/price); "" is the root itself.
	Path string
	// Schema is the node that rejected the value.
	Schema Schema
	// Value is the offending value; nil for a missing property.
	Value   any
	Message string
	// Params carries the structured parameters of the message (for example
	// {"min": "1"}).
	Params map[string]string
}

// Field returns the path without its leading separator.
func (e ValueError) Field() string { return strings.TrimPrefix(e.Path, "/") }

// String renders the error as "field: message", or just the message at the
// root.
func (e ValueError) String() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Field() + ": " + e.Message
}

// NewError builds a ValueError whose message is the translated default for
// code.
func NewError(code, path string, s Schema, v any, params map[string]string) ValueError {
	return ValueError{Code: code, Path: path, Schema: s, Value: v, Message: i18n.T(code, params), Params: params}
}

// TypeError builds an invalid_type error for the named expected type.
func TypeError(path string, s Schema, v any, expected string) ValueError {
	return NewError(CodeInvalidType, path, s, v, map[string]string{"expected": expected})
}

// UnionError builds the error reported when v matches no member of u. The
// union's custom message is used verbatim when declared.
func UnionError(path string, u *UnionSchema, v any) ValueError {
	e := NewError(CodeUnionNoMatch, path, u, v, nil)
	if msg := u.ErrorMessage(); msg != "" {
		e.Message = msg
	}
	return e
}
