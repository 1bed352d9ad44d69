package schema

import (
	js "github.com/reoring/validators/jsonschema"
)

// Kind names the shape a schema node describes.
type Kind string

const (
	KindObject  Kind = "Object"
	KindString  Kind = "String"
	KindInteger Kind = "Integer"
	KindNumber  Kind = "Number"
	KindBoolean Kind = "Boolean"
	KindNull    Kind = "Null"
	KindLiteral Kind = "Literal"
	KindArray   Kind = "Array"
	KindUnion   Kind = "Union"
	KindAny     Kind = "Any"
	KindUnknown Kind = "Unknown"
)

// Schema is an immutable description of an expected value shape.
//
// The set of implementations is closed: *ObjectSchema, *StringSchema,
// *IntegerSchema, *NumberSchema, *BooleanSchema, *NullSchema, *LiteralSchema,
// *ArraySchema, *UnionSchema, *AnySchema and *UnknownSchema. Checking engines
// (packages value and compiler) switch on these types.
type Schema interface {
	Kind() Kind
	// ErrorMessage returns the custom message declared for this node, or "".
	ErrorMessage() string
	// Description returns the free-form description, or "".
	Description() string
	// JSONSchema projects the node into a JSON Schema representation.
	JSONSchema() *js.Schema

	meta() *annotations
}

// annotations holds the metadata shared by every schema node.
type annotations struct {
	errorMessage string
	description  string
}

func (a *annotations) ErrorMessage() string { return a.errorMessage }
func (a *annotations) Description() string  { return a.description }
func (a *annotations) meta() *annotations   { return a }

func (a *annotations) export(out *js.Schema) *js.Schema {
	out.ErrorMessage = a.errorMessage
	out.Description = a.description
	return out
}

// AcceptsAnything reports whether s accepts every value, including a missing
// one. Only such nodes can report nothing but a "required" error for an
// absent property.
func AcceptsAnything(s Schema) bool {
	switch t := s.(type) {
	case *AnySchema, *UnknownSchema:
		return true
	case *UnionSchema:
		for _, m := range t.members {
			if AcceptsAnything(m) {
				return true
			}
		}
	}
	return false
}

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }
