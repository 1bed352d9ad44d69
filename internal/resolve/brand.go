package resolve

import (
	"github.com/reoring/validators/internal/primitive"
	"github.com/reoring/validators/schema"
)

// valueBrandResolver reads its index straight from the schema: member i
// matches when its literal at key equals the value's.
type valueBrandResolver struct {
	union *schema.UnionSchema
	key   string
}

func (r *valueBrandResolver) Strategy() Strategy { return ValueBrand }
func (r *valueBrandResolver) Key() string        { return r.key }
func (r *valueBrandResolver) Check() error       { return nil }

func (r *valueBrandResolver) Resolve(v any) (int, *schema.ValueError, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return -1, NoMatch(r.union, v), nil
	}
	got, ok := m[r.key]
	if !ok {
		return -1, NoMatch(r.union, v), nil
	}
	for i, member := range r.union.Members() {
		if lit, ok := literalAt(member, r.key); ok && primitive.LiteralEqual(got, lit.Value()) {
			return i, nil, nil
		}
	}
	return -1, NoMatch(r.union, v), nil
}

// keyBrandResolver matches the first member whose declared unique key is
// present on the value.
type keyBrandResolver struct {
	union *schema.UnionSchema
}

func (r *keyBrandResolver) Strategy() Strategy { return KeyBrand }
func (r *keyBrandResolver) Key() string        { return "" }
func (r *keyBrandResolver) Check() error       { return nil }

func (r *keyBrandResolver) Resolve(v any) (int, *schema.ValueError, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return -1, NoMatch(r.union, v), nil
	}
	for i, member := range r.union.Members() {
		o, ok := object(member)
		if !ok || o.UniqueKey() == "" {
			continue
		}
		if _, ok := m[o.UniqueKey()]; ok {
			return i, nil, nil
		}
	}
	return -1, NoMatch(r.union, v), nil
}
