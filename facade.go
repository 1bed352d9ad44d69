package validators

import (
	"iter"
	"log/slog"

	"github.com/reoring/validators/internal/normalize"
	"github.com/reoring/validators/metrics"
	"github.com/reoring/validators/schema"
)

// target is the outcome of picking the schema a value is checked against.
type target struct {
	schema  schema.Schema
	checker *lazyChecker
	// noMatch is set when a union has no member for the value.
	noMatch *schema.ValueError
}

// facade implements the operations shared by every validator on top of a
// pick function supplied by the concrete validator.
type facade struct {
	opt  Options
	pick func(v any) (target, error)
}

const (
	opTest     = "test"
	opAssert   = "assert"
	opValidate = "validate"
)

func (f *facade) mustPick(v any) target {
	t, err := f.pick(v)
	if err != nil {
		panic(err)
	}
	return t
}

// Test reports whether v is valid. It panics with a *ConfigError when the
// union schema is malformed.
func (f *facade) Test(v any) bool {
	t, err := f.pick(v)
	if err != nil {
		f.opt.Metrics.RecordValidation(f.opt.Name, opTest, metrics.ResultConfigError)
		panic(err)
	}
	ok := t.noMatch == nil && t.checker.get().Check(v)
	f.opt.Metrics.RecordValidation(f.opt.Name, opTest, result(ok))
	return ok
}

// Errors yields the normalized errors of v. Resolution happens before
// Errors returns, so a malformed union panics here rather than while
// iterating; the checker runs only as the sequence is consumed.
func (f *facade) Errors(v any) iter.Seq[schema.ValueError] {
	t := f.mustPick(v)
	if t.noMatch != nil {
		e := *t.noMatch
		return func(yield func(schema.ValueError) bool) { yield(e) }
	}
	return normalize.Seq(t.checker.get().Errors(v))
}

// FirstError returns the first normalized error of v.
func (f *facade) FirstError(v any) (schema.ValueError, bool) {
	t := f.mustPick(v)
	if t.noMatch != nil {
		return *t.noMatch, true
	}
	return normalize.First(t.checker.get().Errors(v))
}

func (f *facade) Assert(v any, overall ...string) error {
	_, err := f.run(opAssert, v, false, overall)
	return err
}

func (f *facade) AssertReturningSchema(v any, overall ...string) (schema.Schema, error) {
	return f.run(opAssert, v, false, overall)
}

func (f *facade) AssertAndClean(v any, overall ...string) (schema.Schema, error) {
	s, err := f.run(opAssert, v, false, overall)
	if err != nil {
		return nil, err
	}
	clean(s, v)
	return s, nil
}

func (f *facade) AssertAndCleanCopy(v any, overall ...string) (any, error) {
	s, err := f.run(opAssert, v, false, overall)
	if err != nil {
		return nil, err
	}
	return cleanCopy(s, v), nil
}

func (f *facade) Validate(v any, overall ...string) error {
	_, err := f.run(opValidate, v, true, overall)
	return err
}

func (f *facade) ValidateReturningSchema(v any, overall ...string) (schema.Schema, error) {
	return f.run(opValidate, v, true, overall)
}

func (f *facade) ValidateAndClean(v any, overall ...string) (schema.Schema, error) {
	s, err := f.run(opValidate, v, true, overall)
	if err != nil {
		return nil, err
	}
	clean(s, v)
	return s, nil
}

func (f *facade) ValidateAndCleanCopy(v any, overall ...string) (any, error) {
	s, err := f.run(opValidate, v, true, overall)
	if err != nil {
		return nil, err
	}
	return cleanCopy(s, v), nil
}

// run resolves v, checks it and, on failure, collects the first or every
// normalized error into a ValidationError. It returns the schema v was
// checked against.
func (f *facade) run(op string, v any, exhaustive bool, overall []string) (schema.Schema, error) {
	t, err := f.pick(v)
	if err != nil {
		f.opt.Metrics.RecordValidation(f.opt.Name, op, metrics.ResultConfigError)
		return nil, err
	}
	var details []schema.ValueError
	switch {
	case t.noMatch != nil:
		details = []schema.ValueError{*t.noMatch}
	case t.checker.get().Check(v):
		f.opt.Metrics.RecordValidation(f.opt.Name, op, metrics.ResultOK)
		return t.schema, nil
	case exhaustive:
		details = normalize.All(t.checker.get().Errors(v))
	default:
		if e, ok := normalize.First(t.checker.get().Errors(v)); ok {
			details = []schema.ValueError{e}
		}
	}
	f.opt.Metrics.RecordValidation(f.opt.Name, op, metrics.ResultInvalid)
	for _, d := range details {
		f.opt.Metrics.RecordError(f.opt.Name, d.Code)
	}
	f.opt.Logger.Debug("validation failed", slog.String("operation", op), slog.Int("errors", len(details)))
	return nil, newValidationError(overall, details)
}

func result(ok bool) string {
	if ok {
		return metrics.ResultOK
	}
	return metrics.ResultInvalid
}

// clean deletes the top-level properties of v that s does not declare.
// Nested values and non-object schemas are left alone.
func clean(s schema.Schema, v any) {
	o, ok := s.(*schema.ObjectSchema)
	if !ok {
		return
	}
	m, ok := v.(map[string]any)
	if !ok {
		return
	}
	for k := range m {
		if !o.Declares(k) {
			delete(m, k)
		}
	}
}

// cleanCopy returns v when it has nothing to clean, and otherwise a new map
// holding only the declared properties of v.
func cleanCopy(s schema.Schema, v any) any {
	o, ok := s.(*schema.ObjectSchema)
	if !ok {
		return v
	}
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	extraneous := false
	for k := range m {
		if !o.Declares(k) {
			extraneous = true
			break
		}
	}
	if !extraneous {
		return v
	}
	out := make(map[string]any, len(o.Properties()))
	for _, p := range o.Properties() {
		if pv, has := m[p.Name]; has {
			out[p.Name] = pv
		}
	}
	return out
}
