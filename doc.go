package validators

// Package validators validates runtime values against schemas, with first
// class support for tagged unions of object shapes:
//
// - StandardValidator checks a value against any schema
// - UnionValidator resolves which union member a value targets, then checks it against that member only
// - Errors are normalized (custom messages, required-property noise removed) and reported lazily
// - Assert stops at the first error; Validate reports all of them
//
// Design policy:
// - Schemas live in schema/, checking engines in schema/value (direct) and schema/compiler (compiled).
// - Member resolution and error normalization are implemented under internal/.
// - Configuration mistakes in a union schema surface as *ConfigError, never as *ValidationError.
//
// Typical usage:
//
//	v := validators.NewDiscriminatedUnionValidator(u, validators.Options{Compile: true})
//	if err := v.Assert(payload); err != nil {
//	    if ve, ok := validators.AsValidationError(err); ok {
//	        log.Println(ve.Details)
//	    }
//	}
//	cleaned, err := v.ValidateAndCleanCopy(payload, "Invalid order: {error}")
