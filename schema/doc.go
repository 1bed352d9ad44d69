// Package schema defines the immutable schema model validated by the
// validators package and checked by the engines in schema/value and
// schema/compiler.
//
// Schemas are built once, outside the hot path, with small fluent builders:
//
//	str := schema.Object().
//	    Field("kind", schema.Literal("s")).
//	    Field("str1", schema.String().MaxLength(64)).
//	    MustBuild()
//	num := schema.Object().
//	    Field("kind", schema.Literal("i")).
//	    Field("int1", schema.Integer()).
//	    Field("int2", schema.Integer().Message("must be an int")).Optional().
//	    MustBuild()
//	u := schema.Union(str, num).Discriminant("kind")
//
// Object properties keep their declaration order; checking engines report
// errors in that order, and within a node they check sizes (length, item
// counts, ranges) before patterns and formats.
//
// Annotations understood by the validators:
//   - ErrorMessage: replaces the default message of errors raised at the node
//     ("{field}" expands to the property name).
//   - Property.Identifying: the type identifying key of a union member.
//   - ObjectSchema.UniqueKey: the key-brand property of a union member.
//   - UnionSchema.DiscriminantKey / BrandKey: literal-valued member keys.
package schema
