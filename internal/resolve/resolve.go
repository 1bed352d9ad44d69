// Package resolve decides which member of a union a value is meant to
// satisfy. Four strategies are supported; each resolver is built once per
// validator and is safe for concurrent use.
package resolve

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/reoring/validators/schema"
)

// Strategy names a member resolution strategy.
type Strategy int

const (
	// Auto selects a strategy from the schema's declared options.
	Auto Strategy = iota
	// Discriminant matches the literal value of a shared property.
	Discriminant
	// UniqueKey matches the presence of a property owned by a single member.
	UniqueKey
	// ValueBrand matches the literal value of the union's declared brand key.
	ValueBrand
	// KeyBrand matches the presence of each member's declared unique key.
	KeyBrand
)

// DefaultDiscriminantKey is the discriminant used when none is declared.
const DefaultDiscriminantKey = "kind"

func (s Strategy) String() string {
	switch s {
	case Auto:
		return "auto"
	case Discriminant:
		return "discriminant"
	case UniqueKey:
		return "unique_key"
	case ValueBrand:
		return "value_brand"
	case KeyBrand:
		return "key_brand"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy parses the String form of a strategy.
func ParseStrategy(name string) (Strategy, error) {
	for s := Auto; s <= KeyBrand; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return Auto, fmt.Errorf("resolve: unknown strategy %q", name)
}

// Configuration errors. They are wrapped by *ConfigError.
var (
	ErrDiscriminantKeyMissing     = errors.New("discriminant key not present in all members")
	ErrOptionalTypeIdentifyingKey = errors.New("type identifying key is optional")
	ErrMemberWithMultipleKeys     = errors.New("member with multiple identifying keys")
	ErrMembersWithSameKey         = errors.New("members with same identifying key")
	ErrMemberWithNoUniqueKey      = errors.New("member with no unique key")
)

// ConfigError reports a malformed union schema. It is a programming error,
// distinct from a value failing validation.
type ConfigError struct {
	// Kind is one of the Err* sentinels.
	Kind error
	// Member is the position of the offending member, or -1.
	Member  int
	Key     string
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

func (e *ConfigError) Unwrap() error { return e.Kind }

func newConfigError(kind error, member int, key, msg string) *ConfigError {
	return &ConfigError{Kind: kind, Member: member, Key: key, Message: msg}
}

// Resolver maps a value to the position of the union member it targets.
type Resolver interface {
	// Resolve returns the member position, or a union error when nothing
	// matches. err is non-nil only for a malformed union and is returned on
	// every call once detected.
	Resolve(v any) (member int, noMatch *schema.ValueError, err error)
	// Check builds whatever the resolver needs and reports configuration
	// errors without resolving a value.
	Check() error
	Strategy() Strategy
	// Key is the discriminant or brand property, or "" for strategies that
	// use one key per member.
	Key() string
}

// Select picks the strategy and key for u. An explicit strategy or key wins
// over the schema's own declarations.
func Select(u *schema.UnionSchema, strategy Strategy, key string) (Strategy, string) {
	if strategy == Auto {
		switch {
		case u.BrandKey() != "":
			strategy = ValueBrand
		case key != "" || u.DiscriminantKey() != "":
			strategy = Discriminant
		case allKeyBranded(u):
			strategy = KeyBrand
		default:
			strategy = UniqueKey
		}
	}
	switch strategy {
	case Discriminant:
		if key == "" {
			key = u.DiscriminantKey()
		}
		if key == "" {
			key = DefaultDiscriminantKey
		}
	case ValueBrand:
		if key == "" {
			key = u.BrandKey()
		}
	default:
		key = ""
	}
	return strategy, key
}

func allKeyBranded(u *schema.UnionSchema) bool {
	if len(u.Members()) == 0 {
		return false
	}
	for _, m := range u.Members() {
		o, ok := m.(*schema.ObjectSchema)
		if !ok || o.UniqueKey() == "" {
			return false
		}
	}
	return true
}

// New returns a resolver for u. Nothing is validated until the resolver is
// first used. A nil logger discards.
func New(u *schema.UnionSchema, strategy Strategy, key string, logger *slog.Logger) Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	strategy, key = Select(u, strategy, key)
	logger = logger.With(slog.String("strategy", strategy.String()))
	switch strategy {
	case Discriminant:
		return &discriminantResolver{union: u, key: key, log: logger}
	case ValueBrand:
		return &valueBrandResolver{union: u, key: key}
	case KeyBrand:
		return &keyBrandResolver{union: u}
	default:
		return &uniqueKeyResolver{union: u, log: logger}
	}
}

// NoMatch builds the union error reported when no member matches.
func NoMatch(u *schema.UnionSchema, v any) *schema.ValueError {
	e := schema.UnionError("", u, v)
	return &e
}

func object(m schema.Schema) (*schema.ObjectSchema, bool) {
	o, ok := m.(*schema.ObjectSchema)
	return o, ok
}

func literalAt(m schema.Schema, key string) (*schema.LiteralSchema, bool) {
	o, ok := object(m)
	if !ok {
		return nil, false
	}
	p, ok := o.Property(key)
	if !ok {
		return nil, false
	}
	lit, ok := p.Schema.(*schema.LiteralSchema)
	return lit, ok
}
