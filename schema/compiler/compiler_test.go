package compiler_test

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/reoring/validators/schema"
	"github.com/reoring/validators/schema/compiler"
	"github.com/reoring/validators/schema/value"
)

func collect(seq func(func(schema.ValueError) bool)) []string {
	var out []string
	seq(func(e schema.ValueError) bool {
		out = append(out, e.Code+"@"+e.Path+":"+e.Message)
		return true
	})
	return out
}

// The compiled engine must agree with the direct one on every value,
// including error order and messages.
func TestCompile_MatchesDirectEngine(t *testing.T) {
	address := schema.Object().
		Field("city", schema.String().MinLength(1)).
		Field("zip", schema.String().Pattern(`^\d{5}$`)).Optional().
		MustBuild()
	person := schema.Object().
		Field("kind", schema.Literal("person")).
		Field("name", schema.String().MaxLength(8).Message("{field} is invalid")).
		Field("age", schema.Integer().Minimum(0).Maximum(150)).
		Field("email", schema.String().Format("email")).Optional().
		Field("home", address).Optional().
		Field("work", address).Optional().
		Field("tags", schema.Array(schema.String()).MaxItems(2).UniqueItems()).Optional().
		Field("score", schema.Number().ExclusiveMinimum(0).MultipleOf(0.5)).Optional().
		Field("extra", schema.Unknown()).
		Field("flag", schema.Union(schema.Boolean(), schema.Null())).Optional().
		Strict().
		MustBuild()

	values := []any{
		nil,
		"person",
		[]any{},
		map[string]any{},
		map[string]any{"kind": "person", "name": "Ada", "age": 36.0, "extra": nil},
		map[string]any{"kind": "robot", "name": "a-very-long-name", "age": -1.0},
		map[string]any{"kind": "person", "name": 1, "age": 1.5, "extra": 1, "zzz": true, "aaa": false},
		map[string]any{"kind": "person", "name": "x", "age": json.Number("200"), "extra": 0,
			"home": map[string]any{"city": "", "zip": "123"}, "work": "office"},
		map[string]any{"kind": "person", "name": "x", "age": 3, "extra": 0,
			"tags": []any{"a", "a", 1.0}, "score": 0.3, "email": "bad", "flag": "yes"},
		map[string]any{"kind": "person", "name": "x", "age": 3, "extra": 0,
			"tags": []any{"a"}, "score": 1.5, "email": "x@example.com", "flag": nil},
	}

	compiled := compiler.Compile(person)
	if compiled.Schema() != schema.Schema(person) {
		t.Fatalf("Schema() does not return the compiled schema")
	}
	for i, v := range values {
		want := collect(value.Errors(person, v))
		got := collect(compiled.Errors(v))
		if !slices.Equal(got, want) {
			t.Fatalf("value %d: compiled errors\n%q\nwant\n%q", i, got, want)
		}
		if compiled.Check(v) != value.Check(person, v) {
			t.Fatalf("value %d: Check disagrees", i)
		}
		if compiled.Check(v) != (len(got) == 0) {
			t.Fatalf("value %d: Check=%v with %d errors", i, compiled.Check(v), len(got))
		}
	}
}

func TestCompile_Primitives(t *testing.T) {
	cases := []struct {
		s schema.Schema
		v any
	}{
		{schema.Literal(2), 2.0},
		{schema.Literal(2), "2"},
		{schema.Literal(true), true},
		{schema.Literal(true), false},
		{schema.Null(), nil},
		{schema.Any(), 1},
		{schema.Number().Maximum(1), 2},
		{schema.Array(nil).MinItems(1), []any{}},
		{schema.Union(schema.Literal("a"), schema.Literal("b")).Message("a or b"), "c"},
	}
	for i, tc := range cases {
		c := compiler.Compile(tc.s)
		if c.Check(tc.v) != value.Check(tc.s, tc.v) {
			t.Fatalf("case %d: Check disagrees", i)
		}
		if got, want := collect(c.Errors(tc.v)), collect(value.Errors(tc.s, tc.v)); !slices.Equal(got, want) {
			t.Fatalf("case %d: got %q want %q", i, got, want)
		}
	}
}

func TestCompile_StopsEarly(t *testing.T) {
	obj := schema.Object().Field("a", schema.String()).Field("b", schema.String()).MustBuild()
	n := 0
	for range compiler.Compile(obj).Errors(map[string]any{}) {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("expected to stop after one error")
	}
}

func TestCompile_SharedSubschema(t *testing.T) {
	shared := schema.String().MinLength(2)
	obj := schema.Object().Field("a", shared).Field("b", shared).MustBuild()
	got := collect(compiler.Compile(obj).Errors(map[string]any{"a": "x", "b": "y"}))
	if len(got) != 2 {
		t.Fatalf("got %q", got)
	}
}
