// Package checks implements the per-node constraint checks shared by the
// direct and compiled engines. Each node has a boolean form (short-circuit)
// and an error form that yields every violated constraint in a fixed order:
// sizes and ranges first, formats and patterns last.
package checks

import (
	"strconv"

	"github.com/reoring/validators/internal/primitive"
	"github.com/reoring/validators/schema"
)

// Yield receives errors; returning false stops the walk.
type Yield = func(schema.ValueError) bool

// StringOK reports whether str satisfies every constraint of s.
func StringOK(s *schema.StringSchema, str string) bool {
	minLen, maxLen := s.Bounds()
	if minLen != nil || maxLen != nil {
		n := primitive.Length(str)
		if minLen != nil && n < *minLen {
			return false
		}
		if maxLen != nil && n > *maxLen {
			return false
		}
	}
	if f := s.FormatName(); f != "" && !primitive.MatchFormat(f, str) {
		return false
	}
	if re := s.Regexp(); re != nil && !re.MatchString(str) {
		return false
	}
	return true
}

// StringErrors yields the violated constraints of s for str.
func StringErrors(path string, s *schema.StringSchema, str string, yield Yield) bool {
	minLen, maxLen := s.Bounds()
	if minLen != nil || maxLen != nil {
		n := primitive.Length(str)
		if minLen != nil && n < *minLen {
			if !yield(schema.NewError(schema.CodeTooShort, path, s, str, map[string]string{"min": strconv.Itoa(*minLen)})) {
				return false
			}
		}
		if maxLen != nil && n > *maxLen {
			if !yield(schema.NewError(schema.CodeTooLong, path, s, str, map[string]string{"max": strconv.Itoa(*maxLen)})) {
				return false
			}
		}
	}
	if f := s.FormatName(); f != "" && !primitive.MatchFormat(f, str) {
		if !yield(schema.NewError(schema.CodeInvalidFormat, path, s, str, map[string]string{"format": f})) {
			return false
		}
	}
	if re := s.Regexp(); re != nil && !re.MatchString(str) {
		if !yield(schema.NewError(schema.CodePattern, path, s, str, map[string]string{"pattern": re.String()})) {
			return false
		}
	}
	return true
}

// NumericOK reports whether f satisfies the bounds b.
func NumericOK(b schema.NumericBounds, f float64) bool {
	if b.Minimum != nil && f < *b.Minimum {
		return false
	}
	if b.ExclusiveMinimum != nil && f <= *b.ExclusiveMinimum {
		return false
	}
	if b.Maximum != nil && f > *b.Maximum {
		return false
	}
	if b.ExclusiveMaximum != nil && f >= *b.ExclusiveMaximum {
		return false
	}
	if b.MultipleOf != nil && !primitive.MultipleOf(f, *b.MultipleOf) {
		return false
	}
	return true
}

// NumericErrors yields the violated bounds of s for the number v (already
// converted to f). expected names the type in messages.
func NumericErrors(path string, s schema.Schema, b schema.NumericBounds, expected string, v any, f float64, yield Yield) bool {
	emit := func(code, key string, bound float64) bool {
		return yield(schema.NewError(code, path, s, v, map[string]string{"expected": expected, key: primitive.FormatNumber(bound)}))
	}
	if b.Minimum != nil && f < *b.Minimum {
		if !emit(schema.CodeTooSmall, "min", *b.Minimum) {
			return false
		}
	}
	if b.ExclusiveMinimum != nil && f <= *b.ExclusiveMinimum {
		if !emit(schema.CodeNotGreater, "min", *b.ExclusiveMinimum) {
			return false
		}
	}
	if b.Maximum != nil && f > *b.Maximum {
		if !emit(schema.CodeTooBig, "max", *b.Maximum) {
			return false
		}
	}
	if b.ExclusiveMaximum != nil && f >= *b.ExclusiveMaximum {
		if !emit(schema.CodeNotLess, "max", *b.ExclusiveMaximum) {
			return false
		}
	}
	if b.MultipleOf != nil && !primitive.MultipleOf(f, *b.MultipleOf) {
		if !emit(schema.CodeNotMultipleOf, "multipleOf", *b.MultipleOf) {
			return false
		}
	}
	return true
}

// ArraySizeOK reports whether arr satisfies the item count and uniqueness
// constraints of s. Elements are checked by the engines.
func ArraySizeOK(s *schema.ArraySchema, arr []any) bool {
	minItems, maxItems := s.Bounds()
	if minItems != nil && len(arr) < *minItems {
		return false
	}
	if maxItems != nil && len(arr) > *maxItems {
		return false
	}
	if s.Unique() && !primitive.Unique(arr) {
		return false
	}
	return true
}

// ArraySizeErrors yields the violated item count and uniqueness constraints.
func ArraySizeErrors(path string, s *schema.ArraySchema, arr []any, yield Yield) bool {
	minItems, maxItems := s.Bounds()
	if minItems != nil && len(arr) < *minItems {
		if !yield(schema.NewError(schema.CodeTooFewItems, path, s, arr, map[string]string{"min": strconv.Itoa(*minItems)})) {
			return false
		}
	}
	if maxItems != nil && len(arr) > *maxItems {
		if !yield(schema.NewError(schema.CodeTooManyItems, path, s, arr, map[string]string{"max": strconv.Itoa(*maxItems)})) {
			return false
		}
	}
	if s.Unique() && !primitive.Unique(arr) {
		if !yield(schema.NewError(schema.CodeDuplicateItems, path, s, arr, nil)) {
			return false
		}
	}
	return true
}

// LiteralError builds the error for a value that does not equal lit.
func LiteralError(path string, s *schema.LiteralSchema, v any) schema.ValueError {
	return schema.NewError(schema.CodeInvalidLiteral, path, s, v, map[string]string{"literal": primitive.FormatLiteral(s.Value())})
}

// Join appends a property name or index to a JSON Pointer path.
func Join(path, name string) string { return path + "/" + name }
