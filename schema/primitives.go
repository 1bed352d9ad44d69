package schema

import (
	"fmt"
	"regexp"

	"github.com/reoring/validators/internal/primitive"
	js "github.com/reoring/validators/jsonschema"
)

// StringSchema describes a string with optional length, format and pattern
// constraints.
type StringSchema struct {
	annotations
	minLength *int
	maxLength *int
	format    string
	pattern   *regexp.Regexp
}

// String returns an unconstrained string schema.
func String() *StringSchema { return &StringSchema{} }

func (s *StringSchema) Kind() Kind { return KindString }

// MinLength sets the minimum length in runes (inclusive).
func (s *StringSchema) MinLength(n int) *StringSchema { s.minLength = intPtr(n); return s }

// MaxLength sets the maximum length in runes (inclusive).
func (s *StringSchema) MaxLength(n int) *StringSchema { s.maxLength = intPtr(n); return s }

// Format requires the string to match a named format (see KnownFormat).
// It panics on an unknown format name.
func (s *StringSchema) Format(name string) *StringSchema {
	if !primitive.KnownFormat(name) {
		panic(fmt.Sprintf("schema: unknown string format %q", name))
	}
	s.format = name
	return s
}

// Pattern requires the string to match the regular expression expr.
// It panics if expr does not compile.
func (s *StringSchema) Pattern(expr string) *StringSchema {
	s.pattern = regexp.MustCompile(expr)
	return s
}

// PatternRegexp is like Pattern for an already compiled expression.
func (s *StringSchema) PatternRegexp(re *regexp.Regexp) *StringSchema { s.pattern = re; return s }

// Message sets a custom error message; "{field}" expands to the property name.
func (s *StringSchema) Message(msg string) *StringSchema { s.errorMessage = msg; return s }

// Describe sets the description.
func (s *StringSchema) Describe(d string) *StringSchema { s.description = d; return s }

// Bounds returns the length constraints; nil means unconstrained.
func (s *StringSchema) Bounds() (minLength, maxLength *int) { return s.minLength, s.maxLength }

// FormatName returns the required format, or "".
func (s *StringSchema) FormatName() string { return s.format }

// Regexp returns the required pattern, or nil.
func (s *StringSchema) Regexp() *regexp.Regexp { return s.pattern }

func (s *StringSchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "string", MinLength: s.minLength, MaxLength: s.maxLength, Format: s.format}
	if s.pattern != nil {
		out.Pattern = s.pattern.String()
	}
	return s.export(out)
}

// NumericBounds holds the range constraints shared by integer and number
// schemas. Nil fields are unconstrained.
type NumericBounds struct {
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	MultipleOf       *float64
}

func (b NumericBounds) export(out *js.Schema) *js.Schema {
	out.Minimum = b.Minimum
	out.Maximum = b.Maximum
	out.ExclusiveMinimum = b.ExclusiveMinimum
	out.ExclusiveMaximum = b.ExclusiveMaximum
	out.MultipleOf = b.MultipleOf
	return out
}

// IntegerSchema describes an integral number.
type IntegerSchema struct {
	annotations
	bounds NumericBounds
}

// Integer returns an unconstrained integer schema.
func Integer() *IntegerSchema { return &IntegerSchema{} }

func (s *IntegerSchema) Kind() Kind { return KindInteger }

func (s *IntegerSchema) Minimum(f float64) *IntegerSchema { s.bounds.Minimum = floatPtr(f); return s }
func (s *IntegerSchema) Maximum(f float64) *IntegerSchema { s.bounds.Maximum = floatPtr(f); return s }
func (s *IntegerSchema) ExclusiveMinimum(f float64) *IntegerSchema {
	s.bounds.ExclusiveMinimum = floatPtr(f)
	return s
}
func (s *IntegerSchema) ExclusiveMaximum(f float64) *IntegerSchema {
	s.bounds.ExclusiveMaximum = floatPtr(f)
	return s
}
func (s *IntegerSchema) MultipleOf(f float64) *IntegerSchema {
	s.bounds.MultipleOf = floatPtr(f)
	return s
}
func (s *IntegerSchema) Message(msg string) *IntegerSchema { s.errorMessage = msg; return s }
func (s *IntegerSchema) Describe(d string) *IntegerSchema  { s.description = d; return s }

// Bounds returns the range constraints.
func (s *IntegerSchema) Bounds() NumericBounds { return s.bounds }

func (s *IntegerSchema) JSONSchema() *js.Schema {
	return s.export(s.bounds.export(&js.Schema{Type: "integer"}))
}

// NumberSchema describes any finite number.
type NumberSchema struct {
	annotations
	bounds NumericBounds
}

// Number returns an unconstrained number schema.
func Number() *NumberSchema { return &NumberSchema{} }

func (s *NumberSchema) Kind() Kind { return KindNumber }

func (s *NumberSchema) Minimum(f float64) *NumberSchema { s.bounds.Minimum = floatPtr(f); return s }
func (s *NumberSchema) Maximum(f float64) *NumberSchema { s.bounds.Maximum = floatPtr(f); return s }
func (s *NumberSchema) ExclusiveMinimum(f float64) *NumberSchema {
	s.bounds.ExclusiveMinimum = floatPtr(f)
	return s
}
func (s *NumberSchema) ExclusiveMaximum(f float64) *NumberSchema {
	s.bounds.ExclusiveMaximum = floatPtr(f)
	return s
}
func (s *NumberSchema) MultipleOf(f float64) *NumberSchema {
	s.bounds.MultipleOf = floatPtr(f)
	return s
}
func (s *NumberSchema) Message(msg string) *NumberSchema { s.errorMessage = msg; return s }
func (s *NumberSchema) Describe(d string) *NumberSchema  { s.description = d; return s }

// Bounds returns the range constraints.
func (s *NumberSchema) Bounds() NumericBounds { return s.bounds }

func (s *NumberSchema) JSONSchema() *js.Schema {
	return s.export(s.bounds.export(&js.Schema{Type: "number"}))
}

// BooleanSchema describes true or false.
type BooleanSchema struct{ annotations }

func Boolean() *BooleanSchema { return &BooleanSchema{} }

func (s *BooleanSchema) Kind() Kind                        { return KindBoolean }
func (s *BooleanSchema) Message(msg string) *BooleanSchema { s.errorMessage = msg; return s }
func (s *BooleanSchema) Describe(d string) *BooleanSchema  { s.description = d; return s }
func (s *BooleanSchema) JSONSchema() *js.Schema            { return s.export(&js.Schema{Type: "boolean"}) }

// NullSchema describes an explicit null (a present nil value).
type NullSchema struct{ annotations }

func Null() *NullSchema { return &NullSchema{} }

func (s *NullSchema) Kind() Kind                     { return KindNull }
func (s *NullSchema) Message(msg string) *NullSchema { s.errorMessage = msg; return s }
func (s *NullSchema) Describe(d string) *NullSchema  { s.description = d; return s }
func (s *NullSchema) JSONSchema() *js.Schema         { return s.export(&js.Schema{Type: "null"}) }

// AnySchema accepts every value, including a missing one.
type AnySchema struct{ annotations }

func Any() *AnySchema { return &AnySchema{} }

func (s *AnySchema) Kind() Kind                    { return KindAny }
func (s *AnySchema) Message(msg string) *AnySchema { s.errorMessage = msg; return s }
func (s *AnySchema) Describe(d string) *AnySchema  { s.description = d; return s }
func (s *AnySchema) JSONSchema() *js.Schema        { return s.export(&js.Schema{}) }

// UnknownSchema accepts every value like AnySchema; it documents that the
// value is opaque to the caller.
type UnknownSchema struct{ annotations }

func Unknown() *UnknownSchema { return &UnknownSchema{} }

func (s *UnknownSchema) Kind() Kind                        { return KindUnknown }
func (s *UnknownSchema) Message(msg string) *UnknownSchema { s.errorMessage = msg; return s }
func (s *UnknownSchema) Describe(d string) *UnknownSchema  { s.description = d; return s }
func (s *UnknownSchema) JSONSchema() *js.Schema            { return s.export(&js.Schema{Type: "unknown"}) }

// LiteralSchema describes exactly one string, number or boolean value.
type LiteralSchema struct {
	annotations
	value any
}

// Literal returns a schema matching exactly v. Numbers compare by value, so
// Literal(1) matches 1.0 and json.Number("1").
func Literal(v any) *LiteralSchema {
	if !primitive.IsLiteral(v) {
		panic(fmt.Sprintf("schema: unsupported literal type %T", v))
	}
	return &LiteralSchema{value: v}
}

func (s *LiteralSchema) Kind() Kind                        { return KindLiteral }
func (s *LiteralSchema) Value() any                        { return s.value }
func (s *LiteralSchema) Message(msg string) *LiteralSchema { s.errorMessage = msg; return s }
func (s *LiteralSchema) Describe(d string) *LiteralSchema  { s.description = d; return s }
func (s *LiteralSchema) JSONSchema() *js.Schema            { return s.export(&js.Schema{Const: s.value}) }
