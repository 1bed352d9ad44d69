// Package compiler turns a schema into a tree of closures so that repeated
// checks skip schema dispatch, property lookups and literal normalization.
// A compiled Checker reports exactly the errors of package value, in the
// same order.
package compiler

import (
	"iter"
	"sort"
	"strconv"

	"github.com/reoring/validators/internal/checks"
	"github.com/reoring/validators/internal/primitive"
	"github.com/reoring/validators/schema"
)

type node struct {
	check  func(v any, present bool) bool
	errors func(path string, v any, present bool, yield checks.Yield) bool
}

// Checker is a compiled, reusable checker for one schema. It is safe for
// concurrent use.
type Checker struct {
	schema schema.Schema
	root   *node
}

// Compile compiles s. Subschemas shared between several parents are
// compiled once.
func Compile(s schema.Schema) *Checker {
	c := &compiler{seen: map[schema.Schema]*node{}}
	return &Checker{schema: s, root: c.compile(s)}
}

func (c *Checker) Schema() schema.Schema { return c.schema }

// Check reports whether v satisfies the schema, stopping at the first
// violation.
func (c *Checker) Check(v any) bool { return c.root.check(v, true) }

// Errors returns the raw errors of v in schema order, lazily.
func (c *Checker) Errors(v any) iter.Seq[schema.ValueError] {
	return func(yield func(schema.ValueError) bool) {
		c.root.errors("", v, true, yield)
	}
}

type compiler struct {
	seen map[schema.Schema]*node
}

func (c *compiler) compile(s schema.Schema) *node {
	if n, ok := c.seen[s]; ok {
		return n
	}
	// Register before descending so the node is shared by later references.
	n := &node{}
	c.seen[s] = n
	switch t := s.(type) {
	case *schema.AnySchema, *schema.UnknownSchema:
		n.check = func(any, bool) bool { return true }
		n.errors = func(string, any, bool, checks.Yield) bool { return true }
	case *schema.UnionSchema:
		c.union(n, t)
	case *schema.ObjectSchema:
		c.object(n, t)
	case *schema.StringSchema:
		stringNode(n, t)
	case *schema.IntegerSchema:
		numericNode(n, t, t.Bounds(), "integer", primitive.Integer)
	case *schema.NumberSchema:
		numericNode(n, t, t.Bounds(), "number", primitive.Number)
	case *schema.BooleanSchema:
		n.check = func(v any, present bool) bool {
			_, ok := v.(bool)
			return present && ok
		}
		n.errors = func(path string, v any, present bool, yield checks.Yield) bool {
			if _, ok := v.(bool); !present || !ok {
				return yield(schema.TypeError(path, t, v, "boolean"))
			}
			return true
		}
	case *schema.NullSchema:
		n.check = func(v any, present bool) bool { return present && v == nil }
		n.errors = func(path string, v any, present bool, yield checks.Yield) bool {
			if !present || v != nil {
				return yield(schema.TypeError(path, t, v, "null"))
			}
			return true
		}
	case *schema.LiteralSchema:
		literalNode(n, t)
	case *schema.ArraySchema:
		c.array(n, t)
	default:
		n.check = func(any, bool) bool { return false }
		n.errors = func(string, any, bool, checks.Yield) bool { return true }
	}
	return n
}

func (c *compiler) union(n *node, u *schema.UnionSchema) {
	members := make([]*node, len(u.Members()))
	for i, m := range u.Members() {
		members[i] = c.compile(m)
	}
	n.check = func(v any, present bool) bool {
		for _, m := range members {
			if m.check(v, present) {
				return true
			}
		}
		return false
	}
	n.errors = func(path string, v any, present bool, yield checks.Yield) bool {
		if n.check(v, present) {
			return true
		}
		return yield(schema.NewError(schema.CodeUnionNoMatch, path, u, v, nil))
	}
}

type compiledProperty struct {
	name     string
	suffix   string
	optional bool
	schema   schema.Schema
	node     *node
}

func (c *compiler) object(n *node, o *schema.ObjectSchema) {
	props := make([]compiledProperty, len(o.Properties()))
	declared := make(map[string]struct{}, len(props))
	for i, p := range o.Properties() {
		props[i] = compiledProperty{
			name:     p.Name,
			suffix:   "/" + p.Name,
			optional: p.Optional,
			schema:   p.Schema,
			node:     c.compile(p.Schema),
		}
		declared[p.Name] = struct{}{}
	}
	strict := !o.AdditionalProperties()

	n.check = func(v any, present bool) bool {
		m, ok := v.(map[string]any)
		if !present || !ok {
			return false
		}
		for i := range props {
			p := &props[i]
			pv, has := m[p.name]
			if !has {
				if p.optional {
					continue
				}
				return false
			}
			if !p.node.check(pv, true) {
				return false
			}
		}
		if strict {
			for k := range m {
				if _, ok := declared[k]; !ok {
					return false
				}
			}
		}
		return true
	}
	n.errors = func(path string, v any, present bool, yield checks.Yield) bool {
		m, ok := v.(map[string]any)
		if !present || !ok {
			return yield(schema.TypeError(path, o, v, "object"))
		}
		for i := range props {
			p := &props[i]
			pp := path + p.suffix
			pv, has := m[p.name]
			if has {
				if !p.node.errors(pp, pv, true, yield) {
					return false
				}
				continue
			}
			if p.optional {
				continue
			}
			if !p.node.errors(pp, nil, false, yield) {
				return false
			}
			if !yield(schema.NewError(schema.CodeRequired, pp, p.schema, nil, nil)) {
				return false
			}
		}
		if !strict {
			return true
		}
		var extra []string
		for k := range m {
			if _, ok := declared[k]; !ok {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		for _, k := range extra {
			if !yield(schema.NewError(schema.CodeUnknownKey, path+"/"+k, o, m[k], nil)) {
				return false
			}
		}
		return true
	}
}

func stringNode(n *node, s *schema.StringSchema) {
	minLen, maxLen := s.Bounds()
	plain := minLen == nil && maxLen == nil && s.FormatName() == "" && s.Regexp() == nil
	n.check = func(v any, present bool) bool {
		str, ok := v.(string)
		if !present || !ok {
			return false
		}
		return plain || checks.StringOK(s, str)
	}
	n.errors = func(path string, v any, present bool, yield checks.Yield) bool {
		str, ok := v.(string)
		if !present || !ok {
			return yield(schema.TypeError(path, s, v, "string"))
		}
		if plain {
			return true
		}
		return checks.StringErrors(path, s, str, yield)
	}
}

func numericNode(n *node, s schema.Schema, b schema.NumericBounds, expected string, conv func(any) (float64, bool)) {
	plain := b == (schema.NumericBounds{})
	n.check = func(v any, present bool) bool {
		f, ok := conv(v)
		if !present || !ok {
			return false
		}
		return plain || checks.NumericOK(b, f)
	}
	n.errors = func(path string, v any, present bool, yield checks.Yield) bool {
		f, ok := conv(v)
		if !present || !ok {
			return yield(schema.TypeError(path, s, v, expected))
		}
		if plain {
			return true
		}
		return checks.NumericErrors(path, s, b, expected, v, f, yield)
	}
}

func literalNode(n *node, l *schema.LiteralSchema) {
	switch lit := l.Value().(type) {
	case string:
		n.check = func(v any, present bool) bool {
			s, ok := v.(string)
			return present && ok && s == lit
		}
	case bool:
		n.check = func(v any, present bool) bool {
			b, ok := v.(bool)
			return present && ok && b == lit
		}
	default:
		want, _ := primitive.Number(lit)
		n.check = func(v any, present bool) bool {
			f, ok := primitive.Number(v)
			return present && ok && f == want
		}
	}
	n.errors = func(path string, v any, present bool, yield checks.Yield) bool {
		if n.check(v, present) {
			return true
		}
		return yield(checks.LiteralError(path, l, v))
	}
}

func (c *compiler) array(n *node, a *schema.ArraySchema) {
	var items *node
	if a.Items() != nil {
		items = c.compile(a.Items())
	}
	n.check = func(v any, present bool) bool {
		arr, ok := v.([]any)
		if !present || !ok || !checks.ArraySizeOK(a, arr) {
			return false
		}
		if items != nil {
			for _, e := range arr {
				if !items.check(e, true) {
					return false
				}
			}
		}
		return true
	}
	n.errors = func(path string, v any, present bool, yield checks.Yield) bool {
		arr, ok := v.([]any)
		if !present || !ok {
			return yield(schema.TypeError(path, a, v, "array"))
		}
		if !checks.ArraySizeErrors(path, a, arr, yield) {
			return false
		}
		if items != nil {
			for i, e := range arr {
				if !items.errors(path+"/"+strconv.Itoa(i), e, true, yield) {
					return false
				}
			}
		}
		return true
	}
}
