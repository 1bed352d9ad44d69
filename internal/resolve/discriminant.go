package resolve

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/reoring/validators/internal/primitive"
	"github.com/reoring/validators/schema"
)

type discriminantResolver struct {
	union *schema.UnionSchema
	key   string
	log   *slog.Logger

	once sync.Once
	// literals[i] is the value member i expects at key; nil when the member
	// declares the key with a non-literal schema and so never matches.
	literals []*schema.LiteralSchema
	err      error
}

func (r *discriminantResolver) Strategy() Strategy { return Discriminant }
func (r *discriminantResolver) Key() string        { return r.key }

func (r *discriminantResolver) build() {
	literals := make([]*schema.LiteralSchema, len(r.union.Members()))
	for i, m := range r.union.Members() {
		o, ok := object(m)
		if !ok || !o.Declares(r.key) {
			r.err = newConfigError(ErrDiscriminantKeyMissing, i, r.key,
				fmt.Sprintf("Discriminant key '%s' not present in all members of discriminated union", r.key))
			r.log.Error("union configuration error", slog.Int("member", i), slog.Any("error", r.err))
			return
		}
		literals[i], _ = literalAt(m, r.key)
	}
	r.literals = literals
	r.log.Debug("discriminant index built", slog.String("key", r.key), slog.Int("members", len(literals)))
}

func (r *discriminantResolver) Check() error {
	r.once.Do(r.build)
	return r.err
}

func (r *discriminantResolver) Resolve(v any) (int, *schema.ValueError, error) {
	if err := r.Check(); err != nil {
		return -1, nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return -1, NoMatch(r.union, v), nil
	}
	got, ok := m[r.key]
	if !ok {
		return -1, NoMatch(r.union, v), nil
	}
	for i, lit := range r.literals {
		if lit != nil && primitive.LiteralEqual(got, lit.Value()) {
			return i, nil, nil
		}
	}
	return -1, NoMatch(r.union, v), nil
}
