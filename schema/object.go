package schema

import (
	"errors"
	"fmt"

	js "github.com/reoring/validators/jsonschema"
)

// Property is a declared object property.
type Property struct {
	Name   string
	Schema Schema
	// Optional properties may be absent; all others are required.
	Optional bool
	// Identifying marks the property as the type identifying key of its
	// object when the object is a union member.
	Identifying bool
}

// ObjectSchema describes a map[string]any with declared properties. The
// declaration order of properties is preserved and drives error order.
type ObjectSchema struct {
	annotations
	props      []Property
	index      map[string]int
	additional bool
	uniqueKey  string
}

func (o *ObjectSchema) Kind() Kind { return KindObject }

// Properties returns the declared properties in declaration order. The
// returned slice must not be modified.
func (o *ObjectSchema) Properties() []Property { return o.props }

// Property returns the declared property called name.
func (o *ObjectSchema) Property(name string) (Property, bool) {
	i, ok := o.index[name]
	if !ok {
		return Property{}, false
	}
	return o.props[i], true
}

// Declares reports whether name is a declared property.
func (o *ObjectSchema) Declares(name string) bool {
	_, ok := o.index[name]
	return ok
}

// AdditionalProperties reports whether undeclared properties are accepted.
func (o *ObjectSchema) AdditionalProperties() bool { return o.additional }

// UniqueKey returns the key-brand property declared for this object, or "".
func (o *ObjectSchema) UniqueKey() string { return o.uniqueKey }

func (o *ObjectSchema) JSONSchema() *js.Schema {
	props := make(map[string]*js.Schema, len(o.props))
	var req []string
	for _, p := range o.props {
		ps := p.Schema.JSONSchema()
		if p.Identifying {
			ps.TypeIdentifyingKey = true
		}
		props[p.Name] = ps
		if !p.Optional {
			req = append(req, p.Name)
		}
	}
	out := &js.Schema{Type: "object", Properties: props, Required: req, UniqueKey: o.uniqueKey}
	if !o.additional {
		out.AdditionalProperties = false
	}
	return o.export(out)
}

type objectBuilder struct {
	props      []Property
	index      map[string]int
	additional bool
	uniqueKey  string
	message    string
	desc       string
}

type fieldStep struct {
	*objectBuilder
	name string
}

// Object creates a new object builder. Properties are required unless
// marked Optional, and undeclared properties are accepted unless Strict is
// called.
func Object() *objectBuilder {
	return &objectBuilder{index: map[string]int{}, additional: true}
}

// Field declares a property. Declaring the same name again replaces the
// schema but keeps the original position.
func (b *objectBuilder) Field(name string, s Schema) *fieldStep {
	if i, ok := b.index[name]; ok {
		b.props[i] = Property{Name: name, Schema: s}
	} else {
		b.index[name] = len(b.props)
		b.props = append(b.props, Property{Name: name, Schema: s})
	}
	return &fieldStep{objectBuilder: b, name: name}
}

// Optional marks the current field as optional.
func (f *fieldStep) Optional() *fieldStep {
	f.props[f.index[f.name]].Optional = true
	return f
}

// Identifying marks the current field as the type identifying key.
func (f *fieldStep) Identifying() *fieldStep {
	f.props[f.index[f.name]].Identifying = true
	return f
}

// Strict rejects undeclared properties.
func (b *objectBuilder) Strict() *objectBuilder {
	b.additional = false
	return b
}

// UniqueKey declares the key-brand property of this object.
func (b *objectBuilder) UniqueKey(name string) *objectBuilder {
	b.uniqueKey = name
	return b
}

// Message sets a custom error message for the object node.
func (b *objectBuilder) Message(msg string) *objectBuilder {
	b.message = msg
	return b
}

// Describe sets the description.
func (b *objectBuilder) Describe(d string) *objectBuilder {
	b.desc = d
	return b
}

// ErrUnknownUniqueKey is returned by Build when UniqueKey names an
// undeclared property.
var ErrUnknownUniqueKey = errors.New("schema: unique key is not a declared property")

// Build validates the builder and returns the object schema.
func (b *objectBuilder) Build() (*ObjectSchema, error) {
	for _, p := range b.props {
		if p.Schema == nil {
			return nil, fmt.Errorf("schema: property %q has no schema", p.Name)
		}
	}
	if b.uniqueKey != "" {
		if _, ok := b.index[b.uniqueKey]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownUniqueKey, b.uniqueKey)
		}
	}
	props := append([]Property(nil), b.props...)
	index := make(map[string]int, len(props))
	for i, p := range props {
		index[p.Name] = i
	}
	return &ObjectSchema{
		annotations: annotations{errorMessage: b.message, description: b.desc},
		props:       props,
		index:       index,
		additional:  b.additional,
		uniqueKey:   b.uniqueKey,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() *ObjectSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
