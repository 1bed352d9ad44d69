package resolve_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/validators/internal/resolve"
	"github.com/reoring/validators/schema"
)

func kindUnion() *schema.UnionSchema {
	s := schema.Object().
		Field("kind", schema.Literal("s")).
		Field("str1", schema.String()).
		MustBuild()
	i := schema.Object().
		Field("kind", schema.Literal("i")).
		Field("int1", schema.Integer()).
		MustBuild()
	return schema.Union(s, i)
}

func TestSelect(t *testing.T) {
	keyed := schema.Union(
		schema.Object().Field("a", schema.String()).UniqueKey("a").MustBuild(),
		schema.Object().Field("b", schema.String()).UniqueKey("b").MustBuild(),
	)
	tests := []struct {
		name         string
		u            *schema.UnionSchema
		strategy     resolve.Strategy
		key          string
		wantStrategy resolve.Strategy
		wantKey      string
	}{
		{"structural by default", kindUnion(), resolve.Auto, "", resolve.UniqueKey, ""},
		{"explicit key", kindUnion(), resolve.Auto, "type", resolve.Discriminant, "type"},
		{"declared discriminant", kindUnion().Discriminant("kind"), resolve.Auto, "", resolve.Discriminant, "kind"},
		{"option key wins", kindUnion().Discriminant("kind"), resolve.Auto, "type", resolve.Discriminant, "type"},
		{"default discriminant", kindUnion(), resolve.Discriminant, "", resolve.Discriminant, "kind"},
		{"brand", kindUnion().Brand("kind"), resolve.Auto, "", resolve.ValueBrand, "kind"},
		{"key brand", keyed, resolve.Auto, "", resolve.KeyBrand, ""},
		{"forced unique key", kindUnion().Discriminant("kind"), resolve.UniqueKey, "", resolve.UniqueKey, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, k := resolve.Select(tt.u, tt.strategy, tt.key)
			assert.Equal(t, tt.wantStrategy, s)
			assert.Equal(t, tt.wantKey, k)
		})
	}
}

func TestParseStrategy(t *testing.T) {
	for s := resolve.Auto; s <= resolve.KeyBrand; s++ {
		got, err := resolve.ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := resolve.ParseStrategy("nope")
	assert.Error(t, err)
}

func TestDiscriminant(t *testing.T) {
	r := resolve.New(kindUnion(), resolve.Discriminant, "", nil)
	require.NoError(t, r.Check())
	assert.Equal(t, "kind", r.Key())

	i, noMatch, err := r.Resolve(map[string]any{"kind": "i", "int1": 1.0})
	require.NoError(t, err)
	assert.Nil(t, noMatch)
	assert.Equal(t, 1, i)

	for _, v := range []any{nil, "i", []any{}, map[string]any{}, map[string]any{"kind": "x"}} {
		i, noMatch, err := r.Resolve(v)
		require.NoError(t, err)
		require.NotNil(t, noMatch, "value %v", v)
		assert.Equal(t, -1, i)
		assert.Equal(t, schema.CodeUnionNoMatch, noMatch.Code)
		assert.Equal(t, "", noMatch.Path)
		assert.Equal(t, "not a type the union recognizes", noMatch.Message)
	}
}

func TestDiscriminant_NumericLiterals(t *testing.T) {
	u := schema.Union(
		schema.Object().Field("v", schema.Literal(1)).MustBuild(),
		schema.Object().Field("v", schema.Literal(2)).MustBuild(),
	)
	r := resolve.New(u, resolve.Discriminant, "v", nil)
	i, _, err := r.Resolve(map[string]any{"v": 2.0})
	require.NoError(t, err)
	assert.Equal(t, 1, i)
}

func TestDiscriminant_MissingKeyIsStable(t *testing.T) {
	u := schema.Union(
		schema.Object().Field("kind", schema.Literal("a")).MustBuild(),
		schema.Object().Field("type", schema.Literal("b")).MustBuild(),
	)
	r := resolve.New(u, resolve.Discriminant, "", nil)
	for range 3 {
		_, noMatch, err := r.Resolve(map[string]any{"kind": "a"})
		require.Error(t, err)
		assert.Nil(t, noMatch)
		assert.True(t, errors.Is(err, resolve.ErrDiscriminantKeyMissing))
		assert.Equal(t, "Discriminant key 'kind' not present in all members of discriminated union", err.Error())
		var ce *resolve.ConfigError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, 1, ce.Member)
	}
	assert.Error(t, r.Check())
}

func TestUniqueKeys(t *testing.T) {
	a := schema.Object().Field("name", schema.String()).Field("a", schema.String()).MustBuild()
	b := schema.Object().Field("name", schema.String()).Field("b", schema.String()).Optional().Field("c", schema.Integer()).MustBuild()
	keys, err := resolve.UniqueKeys(schema.Union(a, b))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, keys)

	explicit := schema.Object().Field("x", schema.String()).Field("name", schema.String()).Identifying().MustBuild()
	keys, err = resolve.UniqueKeys(schema.Union(explicit, a))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "a"}, keys)

	// a is optional on the second member, so it still identifies the first.
	optA := schema.Object().
		Field("name", schema.String()).
		Field("a", schema.String()).Optional().
		Field("b", schema.String()).
		MustBuild()
	keys, err = resolve.UniqueKeys(schema.Union(a, optA))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestUniqueKeys_ConfigErrors(t *testing.T) {
	str := schema.String()
	tests := []struct {
		name string
		u    *schema.UnionSchema
		kind error
		msg  string
	}{
		{
			"optional identifying key",
			schema.Union(schema.Object().Field("a", str).Optional().Identifying().MustBuild()),
			resolve.ErrOptionalTypeIdentifyingKey,
			"Type identifying key cannot be optional",
		},
		{
			"multiple identifying keys",
			schema.Union(schema.Object().Field("a", str).Identifying().Field("b", str).Identifying().MustBuild()),
			resolve.ErrMemberWithMultipleKeys,
			"Union has member with multiple identifying keys",
		},
		{
			"same identifying key",
			schema.Union(
				schema.Object().Field("a", str).Identifying().MustBuild(),
				schema.Object().Field("a", str).Identifying().Field("b", str).MustBuild(),
			),
			resolve.ErrMembersWithSameKey,
			"Union has multiple members with same identifying key",
		},
		{
			"no unique key",
			schema.Union(
				schema.Object().Field("a", str).MustBuild(),
				schema.Object().Field("a", str).Field("b", str).Optional().MustBuild(),
			),
			resolve.ErrMemberWithNoUniqueKey,
			"Union has member with no unique keys",
		},
		{
			"non-object member",
			schema.Union(schema.String()),
			resolve.ErrMemberWithNoUniqueKey,
			"Union has member with no unique keys",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := resolve.New(tt.u, resolve.UniqueKey, "", nil)
			for range 2 {
				_, _, err := r.Resolve(map[string]any{"a": "x"})
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.kind)
				assert.Equal(t, tt.msg, err.Error())
			}
		})
	}
}

func TestUniqueKey_Resolve(t *testing.T) {
	u := schema.Union(
		schema.Object().Field("str1", schema.String()).MustBuild(),
		schema.Object().Field("int1", schema.Integer()).MustBuild(),
	).Message("unsupported payload")
	r := resolve.New(u, resolve.Auto, "", nil)
	assert.Equal(t, resolve.UniqueKey, r.Strategy())

	i, _, err := r.Resolve(map[string]any{"int1": "not checked here"})
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, noMatch, err := r.Resolve(map[string]any{})
	require.NoError(t, err)
	require.NotNil(t, noMatch)
	assert.Equal(t, "unsupported payload", noMatch.Message)
}

func TestBrands(t *testing.T) {
	u := schema.Union(
		schema.Object().Field("brand", schema.Literal("cat")).Field("lives", schema.Integer()).UniqueKey("lives").MustBuild(),
		schema.Object().Field("brand", schema.Literal("dog")).Field("bark", schema.String()).UniqueKey("bark").MustBuild(),
	)

	vb := resolve.New(u, resolve.ValueBrand, "brand", nil)
	require.NoError(t, vb.Check())
	i, _, err := vb.Resolve(map[string]any{"brand": "dog"})
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	_, noMatch, _ := vb.Resolve(map[string]any{"brand": "cow"})
	assert.NotNil(t, noMatch)

	kb := resolve.New(u, resolve.Auto, "", nil)
	assert.Equal(t, resolve.KeyBrand, kb.Strategy())
	i, _, err = kb.Resolve(map[string]any{"lives": 9.0})
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	_, noMatch, _ = kb.Resolve(42)
	assert.NotNil(t, noMatch)
}

// Every resolved member must actually carry its key on the value.
func TestResolve_Soundness(t *testing.T) {
	u := kindUnion()
	r := resolve.New(u, resolve.Discriminant, "kind", nil)
	values := []any{
		map[string]any{"kind": "s"}, map[string]any{"kind": "i"},
		map[string]any{"kind": 1.0}, map[string]any{"str1": "x"},
	}
	for _, v := range values {
		i, _, err := r.Resolve(v)
		require.NoError(t, err)
		if i < 0 {
			continue
		}
		o := u.Members()[i].(*schema.ObjectSchema)
		p, ok := o.Property("kind")
		require.True(t, ok)
		assert.Equal(t, p.Schema.(*schema.LiteralSchema).Value(), v.(map[string]any)["kind"])
	}
}

func TestResolve_Concurrent(t *testing.T) {
	r := resolve.New(kindUnion(), resolve.Auto, "", nil)
	var wg sync.WaitGroup
	for n := 0; n < 16; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			i, _, err := r.Resolve(map[string]any{"str1": "x"})
			assert.NoError(t, err)
			assert.Equal(t, 0, i)
		}()
	}
	wg.Wait()
}
