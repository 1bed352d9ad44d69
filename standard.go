package validators

import "github.com/reoring/validators/schema"

// StandardValidator validates values against a single schema of any kind.
// It is safe for concurrent use.
type StandardValidator struct {
	facade
	schema  schema.Schema
	checker *lazyChecker
}

var _ Validator = (*StandardValidator)(nil)

// NewStandardValidator returns a validator for s. With Options.Compile the
// schema is compiled on first use.
func NewStandardValidator(s schema.Schema, opts ...Options) *StandardValidator {
	sv := &StandardValidator{schema: s}
	sv.opt = pickOptions(opts)
	sv.checker = newLazyChecker(s, &sv.opt)
	sv.pick = func(any) (target, error) {
		return target{schema: sv.schema, checker: sv.checker}, nil
	}
	return sv
}

func (sv *StandardValidator) Schema() schema.Schema { return sv.schema }
