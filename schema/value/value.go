// Package value checks values against schemas by walking the schema tree on
// every call. It needs no preparation, which makes it the cheapest choice for
// validators used a handful of times; package compiler trades a one-time
// compilation for faster repeated checks.
package value

import (
	"iter"
	"sort"
	"strconv"

	"github.com/reoring/validators/internal/checks"
	"github.com/reoring/validators/internal/primitive"
	"github.com/reoring/validators/schema"
)

// Checker binds a schema to the direct engine.
type Checker struct{ s schema.Schema }

// For returns a Checker for s.
func For(s schema.Schema) Checker { return Checker{s: s} }

func (c Checker) Check(v any) bool                         { return Check(c.s, v) }
func (c Checker) Errors(v any) iter.Seq[schema.ValueError] { return Errors(c.s, v) }
func (c Checker) Schema() schema.Schema                    { return c.s }

// Check reports whether v satisfies s, stopping at the first violation.
func Check(s schema.Schema, v any) bool { return check(s, v, true) }

// Errors returns the raw errors of v against s in schema order. The
// sequence is lazy: stopping early skips the rest of the walk.
func Errors(s schema.Schema, v any) iter.Seq[schema.ValueError] {
	return func(yield func(schema.ValueError) bool) {
		visit(s, "", v, true, yield)
	}
}

// First returns the first raw error of v against s.
func First(s schema.Schema, v any) (schema.ValueError, bool) {
	for e := range Errors(s, v) {
		return e, true
	}
	return schema.ValueError{}, false
}

func check(s schema.Schema, v any, present bool) bool {
	switch t := s.(type) {
	case *schema.AnySchema, *schema.UnknownSchema:
		return true
	case *schema.UnionSchema:
		for _, m := range t.Members() {
			if check(m, v, present) {
				return true
			}
		}
		return false
	}
	if !present {
		return false
	}
	switch t := s.(type) {
	case *schema.ObjectSchema:
		return checkObject(t, v)
	case *schema.StringSchema:
		str, ok := v.(string)
		return ok && checks.StringOK(t, str)
	case *schema.IntegerSchema:
		f, ok := primitive.Integer(v)
		return ok && checks.NumericOK(t.Bounds(), f)
	case *schema.NumberSchema:
		f, ok := primitive.Number(v)
		return ok && checks.NumericOK(t.Bounds(), f)
	case *schema.BooleanSchema:
		_, ok := v.(bool)
		return ok
	case *schema.NullSchema:
		return v == nil
	case *schema.LiteralSchema:
		return primitive.LiteralEqual(v, t.Value())
	case *schema.ArraySchema:
		arr, ok := v.([]any)
		if !ok || !checks.ArraySizeOK(t, arr) {
			return false
		}
		if items := t.Items(); items != nil {
			for _, e := range arr {
				if !check(items, e, true) {
					return false
				}
			}
		}
		return true
	}
	return false
}

func checkObject(o *schema.ObjectSchema, v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for _, p := range o.Properties() {
		pv, has := m[p.Name]
		if !has {
			if p.Optional {
				continue
			}
			return false
		}
		if !check(p.Schema, pv, true) {
			return false
		}
	}
	if !o.AdditionalProperties() {
		for k := range m {
			if !o.Declares(k) {
				return false
			}
		}
	}
	return true
}

func visit(s schema.Schema, path string, v any, present bool, yield checks.Yield) bool {
	switch t := s.(type) {
	case *schema.AnySchema, *schema.UnknownSchema:
		return true
	case *schema.UnionSchema:
		for _, m := range t.Members() {
			if check(m, v, present) {
				return true
			}
		}
		return yield(schema.NewError(schema.CodeUnionNoMatch, path, t, v, nil))
	case *schema.ObjectSchema:
		return visitObject(t, path, v, yield)
	case *schema.StringSchema:
		str, ok := v.(string)
		if !ok {
			return yield(schema.TypeError(path, t, v, "string"))
		}
		return checks.StringErrors(path, t, str, yield)
	case *schema.IntegerSchema:
		f, ok := primitive.Integer(v)
		if !ok {
			return yield(schema.TypeError(path, t, v, "integer"))
		}
		return checks.NumericErrors(path, t, t.Bounds(), "integer", v, f, yield)
	case *schema.NumberSchema:
		f, ok := primitive.Number(v)
		if !ok {
			return yield(schema.TypeError(path, t, v, "number"))
		}
		return checks.NumericErrors(path, t, t.Bounds(), "number", v, f, yield)
	case *schema.BooleanSchema:
		if _, ok := v.(bool); !ok {
			return yield(schema.TypeError(path, t, v, "boolean"))
		}
	case *schema.NullSchema:
		if !present || v != nil {
			return yield(schema.TypeError(path, t, v, "null"))
		}
	case *schema.LiteralSchema:
		if !present || !primitive.LiteralEqual(v, t.Value()) {
			return yield(checks.LiteralError(path, t, v))
		}
	case *schema.ArraySchema:
		arr, ok := v.([]any)
		if !ok {
			return yield(schema.TypeError(path, t, v, "array"))
		}
		if !checks.ArraySizeErrors(path, t, arr, yield) {
			return false
		}
		if items := t.Items(); items != nil {
			for i, e := range arr {
				if !visit(items, checks.Join(path, strconv.Itoa(i)), e, true, yield) {
					return false
				}
			}
		}
	}
	return true
}

func visitObject(o *schema.ObjectSchema, path string, v any, yield checks.Yield) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return yield(schema.TypeError(path, o, v, "object"))
	}
	for _, p := range o.Properties() {
		pp := checks.Join(path, p.Name)
		pv, has := m[p.Name]
		if has {
			if !visit(p.Schema, pp, pv, true, yield) {
				return false
			}
			continue
		}
		if p.Optional {
			continue
		}
		// The property's own errors for the missing value come first; the
		// required error follows so that it can be dropped as noise.
		if !visit(p.Schema, pp, nil, false, yield) {
			return false
		}
		if !yield(schema.NewError(schema.CodeRequired, pp, p.Schema, nil, nil)) {
			return false
		}
	}
	if o.AdditionalProperties() {
		return true
	}
	var extra []string
	for k := range m {
		if !o.Declares(k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		if !yield(schema.NewError(schema.CodeUnknownKey, checks.Join(path, k), o, m[k], nil)) {
			return false
		}
	}
	return true
}
