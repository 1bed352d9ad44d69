package benchmarks_test

import (
	"testing"

	json "github.com/goccy/go-json"

	validators "github.com/reoring/validators"
	"github.com/reoring/validators/schema"
)

// --- Fixtures: a three-member event union ---

func eventUnion() *schema.UnionSchema {
	click := schema.Object().
		Field("kind", schema.Literal("click")).
		Field("x", schema.Integer().Minimum(0)).
		Field("y", schema.Integer().Minimum(0)).
		MustBuild()
	key := schema.Object().
		Field("kind", schema.Literal("key")).
		Field("code", schema.String().MaxLength(16).Pattern(`^[A-Za-z0-9]+$`)).
		Field("repeat", schema.Boolean()).Optional().
		MustBuild()
	scroll := schema.Object().
		Field("kind", schema.Literal("scroll")).
		Field("delta", schema.Number()).
		Field("tags", schema.Array(schema.String()).MaxItems(8)).Optional().
		MustBuild()
	return schema.Union(click, key, scroll).Discriminant("kind")
}

func decode(tb testing.TB, data string) any {
	tb.Helper()
	var v any
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		tb.Fatalf("decode fixture: %v", err)
	}
	return v
}

const (
	validScroll   = `{"kind":"scroll","delta":-3.5,"tags":["a","b","c"]}`
	invalidScroll = `{"kind":"scroll","delta":"down","tags":["a",1,2,3,4,5,6,7,8,9]}`
)

func benchTest(b *testing.B, opt validators.Options, data string) {
	v := validators.NewUnionValidator(eventUnion(), opt)
	val := decode(b, data)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v.Test(val)
	}
}

func benchValidate(b *testing.B, opt validators.Options, data string) {
	v := validators.NewUnionValidator(eventUnion(), opt)
	val := decode(b, data)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v.Validate(val)
	}
}

func benchAssert(b *testing.B, opt validators.Options, data string) {
	v := validators.NewUnionValidator(eventUnion(), opt)
	val := decode(b, data)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v.Assert(val)
	}
}

// --- Compiled ---

func Benchmark_Compiled_Test_Valid(b *testing.B) {
	benchTest(b, validators.Options{Compile: true}, validScroll)
}

func Benchmark_Compiled_Assert_Invalid(b *testing.B) {
	benchAssert(b, validators.Options{Compile: true}, invalidScroll)
}

func Benchmark_Compiled_Validate_Invalid(b *testing.B) {
	benchValidate(b, validators.Options{Compile: true}, invalidScroll)
}

// --- Direct ---

func Benchmark_Direct_Test_Valid(b *testing.B) {
	benchTest(b, validators.Options{}, validScroll)
}

func Benchmark_Direct_Assert_Invalid(b *testing.B) {
	benchAssert(b, validators.Options{}, invalidScroll)
}

func Benchmark_Direct_Validate_Invalid(b *testing.B) {
	benchValidate(b, validators.Options{}, invalidScroll)
}

// --- Resolution cost by strategy ---

func Benchmark_Resolve_Discriminant(b *testing.B) {
	v := validators.NewDiscriminatedUnionValidator(eventUnion())
	val := decode(b, validScroll)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := v.Resolve(val); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Resolve_UniqueKey(b *testing.B) {
	v := validators.NewHeterogeneousUnionValidator(eventUnion())
	val := decode(b, validScroll)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := v.Resolve(val); err != nil {
			b.Fatal(err)
		}
	}
}
