// Package load builds schemas from JSON or YAML schema documents.
//
// Documents use a JSON-Schema-like vocabulary: type, properties, required,
// additionalProperties, const, anyOf, items, minLength, maxLength, pattern,
// format, minimum, maximum, exclusiveMinimum, exclusiveMaximum, multipleOf,
// minItems, maxItems, uniqueItems and description. The annotations
// errorMessage, typeIdentifyingKey, uniqueKey, discriminantKey and brandKey
// map to the corresponding schema options. Unlike JSON Schema, a property
// is optional only when required is given and does not list it; without
// required every declared property is required. Property order follows the
// document.
package load

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/validators/internal/primitive"
	"github.com/reoring/validators/schema"
)

// ErrInvalidSchema is wrapped by every error about document content.
var ErrInvalidSchema = errors.New("load: invalid schema document")

// FromJSON builds a schema from a JSON document.
func FromJSON(data []byte) (schema.Schema, error) {
	tree, err := decodeJSONTree(data)
	if err != nil {
		return nil, fmt.Errorf("load: decode JSON: %w", err)
	}
	return build(tree, "")
}

// FromYAML builds a schema from the first document of a YAML stream.
func FromYAML(data []byte) (schema.Schema, error) {
	tree, err := decodeYAMLTree(data)
	if err != nil {
		return nil, fmt.Errorf("load: decode YAML: %w", err)
	}
	return build(tree, "")
}

// FromFile builds a schema from a file, choosing the decoder by extension:
// .json is JSON, anything else is YAML (a superset of JSON).
func FromFile(path string) (schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if IsJSON(path) {
		return FromJSON(data)
	}
	return FromYAML(data)
}

// IsJSON reports whether path names a JSON file.
func IsJSON(path string) bool { return strings.EqualFold(filepath.Ext(path), ".json") }

func invalid(path, format string, args ...any) error {
	if path == "" {
		path = "/"
	}
	return fmt.Errorf("%w at %s: %s", ErrInvalidSchema, path, fmt.Sprintf(format, args...))
}

func build(tree any, path string) (schema.Schema, error) {
	doc, ok := tree.(*object)
	if !ok {
		return nil, invalid(path, "expected a mapping, got %T", tree)
	}
	if raw, ok := doc.get("anyOf"); ok {
		return buildUnion(doc, raw, path)
	}
	if lit, ok := doc.get("const"); ok {
		return buildLiteral(doc, lit, path)
	}
	typ, err := stringKey(doc, "type", path)
	if err != nil {
		return nil, err
	}
	msg, err := stringKey(doc, "errorMessage", path)
	if err != nil {
		return nil, err
	}
	desc, err := stringKey(doc, "description", path)
	if err != nil {
		return nil, err
	}
	switch typ {
	case "object":
		return buildObject(doc, path, msg, desc)
	case "array":
		return buildArray(doc, path, msg, desc)
	case "string":
		return buildString(doc, path, msg, desc)
	case "integer":
		s := schema.Integer().Message(msg).Describe(desc)
		b, err := numericBounds(doc, path)
		if err != nil {
			return nil, err
		}
		applyInteger(s, b)
		return s, nil
	case "number":
		s := schema.Number().Message(msg).Describe(desc)
		b, err := numericBounds(doc, path)
		if err != nil {
			return nil, err
		}
		applyNumber(s, b)
		return s, nil
	case "boolean":
		return schema.Boolean().Message(msg).Describe(desc), nil
	case "null":
		return schema.Null().Message(msg).Describe(desc), nil
	case "unknown":
		return schema.Unknown().Message(msg).Describe(desc), nil
	case "", "any":
		return schema.Any().Message(msg).Describe(desc), nil
	}
	return nil, invalid(path, "unsupported type %q", typ)
}

func buildUnion(doc *object, raw any, path string) (schema.Schema, error) {
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return nil, invalid(path, "anyOf must be a non-empty list")
	}
	members := make([]schema.Schema, len(list))
	for i, m := range list {
		s, err := build(m, fmt.Sprintf("%s/anyOf/%d", path, i))
		if err != nil {
			return nil, err
		}
		members[i] = s
	}
	u := schema.Union(members...)
	for _, a := range []struct {
		key string
		set func(string) *schema.UnionSchema
	}{
		{"discriminantKey", u.Discriminant},
		{"brandKey", u.Brand},
		{"errorMessage", u.Message},
		{"description", u.Describe},
	} {
		v, err := stringKey(doc, a.key, path)
		if err != nil {
			return nil, err
		}
		if v != "" {
			a.set(v)
		}
	}
	return u, nil
}

func buildLiteral(doc *object, lit any, path string) (schema.Schema, error) {
	if n, ok := lit.(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return nil, invalid(path, "const: %v", err)
		}
		lit = f
	}
	if !primitive.IsLiteral(lit) {
		return nil, invalid(path, "const must be a string, number or boolean")
	}
	msg, err := stringKey(doc, "errorMessage", path)
	if err != nil {
		return nil, err
	}
	desc, err := stringKey(doc, "description", path)
	if err != nil {
		return nil, err
	}
	return schema.Literal(lit).Message(msg).Describe(desc), nil
}

func buildObject(doc *object, path, msg, desc string) (schema.Schema, error) {
	b := schema.Object().Message(msg).Describe(desc)

	var required map[string]bool
	if raw, ok := doc.get("required"); ok {
		list, ok := raw.([]any)
		if !ok {
			return nil, invalid(path, "required must be a list")
		}
		required = make(map[string]bool, len(list))
		for _, r := range list {
			name, ok := r.(string)
			if !ok {
				return nil, invalid(path, "required entries must be strings")
			}
			required[name] = true
		}
	}

	if raw, ok := doc.get("properties"); ok {
		props, ok := raw.(*object)
		if !ok {
			return nil, invalid(path, "properties must be a mapping")
		}
		for _, name := range props.keys {
			pp := path + "/properties/" + name
			ps, err := build(props.vals[name], pp)
			if err != nil {
				return nil, err
			}
			step := b.Field(name, ps)
			if required != nil && !required[name] {
				step.Optional()
			}
			identifying, err := boolKey(props.vals[name].(*object), "typeIdentifyingKey", pp)
			if err != nil {
				return nil, err
			}
			if identifying {
				step.Identifying()
			}
		}
	}
	for name := range required {
		if props, _ := doc.get("properties"); props == nil || !declares(props, name) {
			return nil, invalid(path, "required property %q is not declared", name)
		}
	}

	if raw, ok := doc.get("additionalProperties"); ok {
		allowed, ok := raw.(bool)
		if !ok {
			return nil, invalid(path, "additionalProperties must be a boolean")
		}
		if !allowed {
			b.Strict()
		}
	}
	key, err := stringKey(doc, "uniqueKey", path)
	if err != nil {
		return nil, err
	}
	if key != "" {
		b.UniqueKey(key)
	}
	o, err := b.Build()
	if err != nil {
		return nil, invalid(path, "%v", err)
	}
	return o, nil
}

func declares(props any, name string) bool {
	o, ok := props.(*object)
	if !ok {
		return false
	}
	_, ok = o.get(name)
	return ok
}

func buildArray(doc *object, path, msg, desc string) (schema.Schema, error) {
	var items schema.Schema
	if raw, ok := doc.get("items"); ok {
		s, err := build(raw, path+"/items")
		if err != nil {
			return nil, err
		}
		items = s
	}
	a := schema.Array(items).Message(msg).Describe(desc)
	minItems, err := intKey(doc, "minItems", path)
	if err != nil {
		return nil, err
	}
	if minItems != nil {
		a.MinItems(*minItems)
	}
	maxItems, err := intKey(doc, "maxItems", path)
	if err != nil {
		return nil, err
	}
	if maxItems != nil {
		a.MaxItems(*maxItems)
	}
	unique, err := boolKey(doc, "uniqueItems", path)
	if err != nil {
		return nil, err
	}
	if unique {
		a.UniqueItems()
	}
	return a, nil
}

func buildString(doc *object, path, msg, desc string) (schema.Schema, error) {
	s := schema.String().Message(msg).Describe(desc)
	minLen, err := intKey(doc, "minLength", path)
	if err != nil {
		return nil, err
	}
	if minLen != nil {
		s.MinLength(*minLen)
	}
	maxLen, err := intKey(doc, "maxLength", path)
	if err != nil {
		return nil, err
	}
	if maxLen != nil {
		s.MaxLength(*maxLen)
	}
	format, err := stringKey(doc, "format", path)
	if err != nil {
		return nil, err
	}
	if format != "" {
		if !primitive.KnownFormat(format) {
			return nil, invalid(path, "unknown format %q", format)
		}
		s.Format(format)
	}
	pattern, err := stringKey(doc, "pattern", path)
	if err != nil {
		return nil, err
	}
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, invalid(path, "pattern: %v", err)
		}
		s.PatternRegexp(re)
	}
	return s, nil
}

func numericBounds(doc *object, path string) (schema.NumericBounds, error) {
	var b schema.NumericBounds
	for key, dst := range map[string]**float64{
		"minimum":          &b.Minimum,
		"maximum":          &b.Maximum,
		"exclusiveMinimum": &b.ExclusiveMinimum,
		"exclusiveMaximum": &b.ExclusiveMaximum,
		"multipleOf":       &b.MultipleOf,
	} {
		f, err := floatKey(doc, key, path)
		if err != nil {
			return b, err
		}
		*dst = f
	}
	return b, nil
}

func applyInteger(s *schema.IntegerSchema, b schema.NumericBounds) {
	if b.Minimum != nil {
		s.Minimum(*b.Minimum)
	}
	if b.Maximum != nil {
		s.Maximum(*b.Maximum)
	}
	if b.ExclusiveMinimum != nil {
		s.ExclusiveMinimum(*b.ExclusiveMinimum)
	}
	if b.ExclusiveMaximum != nil {
		s.ExclusiveMaximum(*b.ExclusiveMaximum)
	}
	if b.MultipleOf != nil {
		s.MultipleOf(*b.MultipleOf)
	}
}

func applyNumber(s *schema.NumberSchema, b schema.NumericBounds) {
	if b.Minimum != nil {
		s.Minimum(*b.Minimum)
	}
	if b.Maximum != nil {
		s.Maximum(*b.Maximum)
	}
	if b.ExclusiveMinimum != nil {
		s.ExclusiveMinimum(*b.ExclusiveMinimum)
	}
	if b.ExclusiveMaximum != nil {
		s.ExclusiveMaximum(*b.ExclusiveMaximum)
	}
	if b.MultipleOf != nil {
		s.MultipleOf(*b.MultipleOf)
	}
}

func stringKey(doc *object, key, path string) (string, error) {
	raw, ok := doc.get(key)
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", invalid(path, "%s must be a string", key)
	}
	return s, nil
}

func boolKey(doc *object, key, path string) (bool, error) {
	raw, ok := doc.get(key)
	if !ok || raw == nil {
		return false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, invalid(path, "%s must be a boolean", key)
	}
	return b, nil
}

func floatKey(doc *object, key, path string) (*float64, error) {
	raw, ok := doc.get(key)
	if !ok || raw == nil {
		return nil, nil
	}
	if n, ok := raw.(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return nil, invalid(path, "%s: %v", key, err)
		}
		return &f, nil
	}
	f, ok := primitive.Number(raw)
	if !ok {
		return nil, invalid(path, "%s must be a number", key)
	}
	return &f, nil
}

func intKey(doc *object, key, path string) (*int, error) {
	f, err := floatKey(doc, key, path)
	if err != nil || f == nil {
		return nil, err
	}
	n := int(*f)
	if float64(n) != *f || n < 0 {
		return nil, invalid(path, "%s must be a non-negative integer", key)
	}
	return &n, nil
}
