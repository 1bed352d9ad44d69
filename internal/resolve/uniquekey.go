package resolve

import (
	"log/slog"
	"sync"

	"github.com/reoring/validators/schema"
)

type uniqueKeyResolver struct {
	union *schema.UnionSchema
	log   *slog.Logger

	once sync.Once
	keys []string
	err  error
}

func (r *uniqueKeyResolver) Strategy() Strategy { return UniqueKey }
func (r *uniqueKeyResolver) Key() string        { return "" }

func (r *uniqueKeyResolver) build() {
	keys, err := UniqueKeys(r.union)
	if err != nil {
		r.err = err
		r.log.Error("union configuration error", slog.Any("error", err))
		return
	}
	r.keys = keys
	r.log.Debug("unique key index built", slog.Any("keys", keys))
}

func (r *uniqueKeyResolver) Check() error {
	r.once.Do(r.build)
	return r.err
}

func (r *uniqueKeyResolver) Resolve(v any) (int, *schema.ValueError, error) {
	if err := r.Check(); err != nil {
		return -1, nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return -1, NoMatch(r.union, v), nil
	}
	for i, k := range r.keys {
		if _, ok := m[k]; ok {
			return i, nil, nil
		}
	}
	return -1, NoMatch(r.union, v), nil
}

// UniqueKeys computes the identifying key of each member of u. A property
// marked Identifying is the member's key; otherwise the key is the first
// required property that no other member requires.
func UniqueKeys(u *schema.UnionSchema) ([]string, error) {
	members := u.Members()
	requiredBy := map[string]int{}
	for _, m := range members {
		o, ok := object(m)
		if !ok {
			continue
		}
		for _, p := range o.Properties() {
			if !p.Optional {
				requiredBy[p.Name]++
			}
		}
	}

	keys := make([]string, len(members))
	owner := map[string]int{}
	for i, m := range members {
		o, ok := object(m)
		if !ok {
			return nil, newConfigError(ErrMemberWithNoUniqueKey, i, "", "Union has member with no unique keys")
		}
		key := ""
		for _, p := range o.Properties() {
			if !p.Identifying {
				continue
			}
			if key != "" {
				return nil, newConfigError(ErrMemberWithMultipleKeys, i, p.Name, "Union has member with multiple identifying keys")
			}
			if p.Optional {
				return nil, newConfigError(ErrOptionalTypeIdentifyingKey, i, p.Name, "Type identifying key cannot be optional")
			}
			key = p.Name
		}
		if key == "" {
			for _, p := range o.Properties() {
				if !p.Optional && requiredBy[p.Name] == 1 {
					key = p.Name
					break
				}
			}
		}
		if key == "" {
			return nil, newConfigError(ErrMemberWithNoUniqueKey, i, "", "Union has member with no unique keys")
		}
		if _, dup := owner[key]; dup {
			return nil, newConfigError(ErrMembersWithSameKey, i, key, "Union has multiple members with same identifying key")
		}
		owner[key] = i
		keys[i] = key
	}
	return keys, nil
}
