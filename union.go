package validators

import (
	"github.com/reoring/validators/internal/resolve"
	"github.com/reoring/validators/metrics"
	"github.com/reoring/validators/schema"
)

// UnionValidator resolves the union member a value targets and validates the
// value against that member only. A value matching no member fails with a
// single error at the root whose message is the union's custom message, or
// "not a type the union recognizes".
//
// Nothing about the union is checked at construction. A malformed union is
// reported by the first call that needs resolution, and by every call after
// it; Check reports it eagerly.
type UnionValidator struct {
	facade
	union    *schema.UnionSchema
	resolver resolve.Resolver
	members  []*lazyChecker
}

var _ Validator = (*UnionValidator)(nil)

// NewUnionValidator picks the resolution strategy from the options and the
// union's declarations: an explicit Options.Strategy, then a declared brand
// key, then a discriminant key (declared or given in Options), then per
// member unique keys, and finally structural unique keys.
func NewUnionValidator(u *schema.UnionSchema, opts ...Options) *UnionValidator {
	opt := pickOptions(opts)
	return newUnionValidator(u, opt, opt.Strategy)
}

// NewDiscriminatedUnionValidator resolves members by the literal value of a
// discriminant property: Options.DiscriminantKey, else the union's declared
// discriminant, else "kind".
func NewDiscriminatedUnionValidator(u *schema.UnionSchema, opts ...Options) *UnionValidator {
	return newUnionValidator(u, pickOptions(opts), StrategyDiscriminant)
}

// NewHeterogeneousUnionValidator resolves members by a property only that
// member declares: the member's Identifying property, or else its first
// required property no other member declares.
func NewHeterogeneousUnionValidator(u *schema.UnionSchema, opts ...Options) *UnionValidator {
	return newUnionValidator(u, pickOptions(opts), StrategyUniqueKey)
}

// NewValueBrandedUnionValidator resolves members by the literal value of the
// union's brand key (or Options.DiscriminantKey).
func NewValueBrandedUnionValidator(u *schema.UnionSchema, opts ...Options) *UnionValidator {
	return newUnionValidator(u, pickOptions(opts), StrategyValueBrand)
}

// NewKeyBrandedUnionValidator resolves members by the presence of each
// member's declared unique key.
func NewKeyBrandedUnionValidator(u *schema.UnionSchema, opts ...Options) *UnionValidator {
	return newUnionValidator(u, pickOptions(opts), StrategyKeyBrand)
}

func newUnionValidator(u *schema.UnionSchema, opt Options, strategy Strategy) *UnionValidator {
	uv := &UnionValidator{union: u}
	uv.opt = opt
	uv.resolver = resolve.New(u, strategy, opt.DiscriminantKey, opt.Logger)

	// Members sharing a schema share a checker.
	shared := map[schema.Schema]*lazyChecker{}
	uv.members = make([]*lazyChecker, len(u.Members()))
	for i, m := range u.Members() {
		c, ok := shared[m]
		if !ok {
			c = newLazyChecker(m, &uv.opt)
			shared[m] = c
		}
		uv.members[i] = c
	}
	uv.pick = uv.resolve
	return uv
}

func (uv *UnionValidator) resolve(v any) (target, error) {
	strategy := uv.resolver.Strategy().String()
	i, noMatch, err := uv.resolver.Resolve(v)
	switch {
	case err != nil:
		uv.opt.Metrics.RecordResolution(uv.opt.Name, strategy, metrics.ResultConfigError)
		return target{}, err
	case noMatch != nil:
		uv.opt.Metrics.RecordResolution(uv.opt.Name, strategy, metrics.ResultNoMatch)
		return target{schema: uv.union, noMatch: noMatch}, nil
	}
	uv.opt.Metrics.RecordResolution(uv.opt.Name, strategy, metrics.ResultMatched)
	return target{schema: uv.union.Members()[i], checker: uv.members[i]}, nil
}

func (uv *UnionValidator) Schema() schema.Schema { return uv.union }

// Strategy returns the resolution strategy in use.
func (uv *UnionValidator) Strategy() Strategy { return uv.resolver.Strategy() }

// Key returns the discriminant or brand key in use, or "" for strategies
// that identify members by per-member keys.
func (uv *UnionValidator) Key() string { return uv.resolver.Key() }

// Check reports a malformed union without validating a value, for callers
// that want configuration errors at startup.
func (uv *UnionValidator) Check() error { return uv.resolver.Check() }

// Resolve returns the member schema v targets, or nil when none matches.
func (uv *UnionValidator) Resolve(v any) (schema.Schema, error) {
	t, err := uv.resolve(v)
	if err != nil || t.noMatch != nil {
		return nil, err
	}
	return t.schema, nil
}
