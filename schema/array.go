package schema

import (
	js "github.com/reoring/validators/jsonschema"
)

// ArraySchema describes a []any whose elements all satisfy one schema.
type ArraySchema struct {
	annotations
	items    Schema
	minItems *int
	maxItems *int
	unique   bool
}

// Array returns an array schema with the given element schema.
func Array(items Schema) *ArraySchema { return &ArraySchema{items: items} }

func (a *ArraySchema) Kind() Kind    { return KindArray }
func (a *ArraySchema) Items() Schema { return a.items }

func (a *ArraySchema) MinItems(n int) *ArraySchema       { a.minItems = intPtr(n); return a }
func (a *ArraySchema) MaxItems(n int) *ArraySchema       { a.maxItems = intPtr(n); return a }
func (a *ArraySchema) UniqueItems() *ArraySchema         { a.unique = true; return a }
func (a *ArraySchema) Message(msg string) *ArraySchema   { a.errorMessage = msg; return a }
func (a *ArraySchema) Describe(d string) *ArraySchema    { a.description = d; return a }
func (a *ArraySchema) Bounds() (minItems, maxItems *int) { return a.minItems, a.maxItems }
func (a *ArraySchema) Unique() bool                      { return a.unique }

func (a *ArraySchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "array", MinItems: a.minItems, MaxItems: a.maxItems, UniqueItems: a.unique}
	if a.items != nil {
		out.Items = a.items.JSONSchema()
	}
	return a.export(out)
}
