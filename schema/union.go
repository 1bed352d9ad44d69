package schema

import (
	js "github.com/reoring/validators/jsonschema"
)

// UnionSchema describes a value matching one of several members. Unions
// validated by a union validator are expected to have object members; the
// member order is the resolution order.
type UnionSchema struct {
	annotations
	members         []Schema
	discriminantKey string
	brandKey        string
}

// Union returns a union of the given members.
func Union(members ...Schema) *UnionSchema {
	return &UnionSchema{members: append([]Schema(nil), members...)}
}

func (u *UnionSchema) Kind() Kind { return KindUnion }

// Members returns the members in declaration order. The returned slice must
// not be modified.
func (u *UnionSchema) Members() []Schema { return u.members }

// DiscriminantKey returns the declared discriminant property, or "".
func (u *UnionSchema) DiscriminantKey() string { return u.discriminantKey }

// BrandKey returns the declared value-brand property, or "".
func (u *UnionSchema) BrandKey() string { return u.brandKey }

// Discriminant declares the property whose literal value identifies a member.
func (u *UnionSchema) Discriminant(key string) *UnionSchema { u.discriminantKey = key; return u }

// Brand declares a literal-valued property shared by members that brands
// each of them. Unlike Discriminant, members lacking it simply never match.
func (u *UnionSchema) Brand(key string) *UnionSchema { u.brandKey = key; return u }

// Message sets the message reported when a value matches no member.
func (u *UnionSchema) Message(msg string) *UnionSchema { u.errorMessage = msg; return u }

func (u *UnionSchema) Describe(d string) *UnionSchema { u.description = d; return u }

func (u *UnionSchema) JSONSchema() *js.Schema {
	out := &js.Schema{DiscriminantKey: u.discriminantKey, BrandKey: u.brandKey}
	out.AnyOf = make([]*js.Schema, 0, len(u.members))
	for _, m := range u.members {
		out.AnyOf = append(out.AnyOf, m.JSONSchema())
	}
	return u.export(out)
}
