package validators

import (
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/reoring/validators/internal/resolve"
	"github.com/reoring/validators/metrics"
	"github.com/reoring/validators/schema"
	"github.com/reoring/validators/schema/compiler"
	"github.com/reoring/validators/schema/value"
)

// Checker is the checking engine capability validators delegate to.
// value.For and compiler.Compile both satisfy it.
type Checker interface {
	// Check reports whether v satisfies the schema, stopping early.
	Check(v any) bool
	// Errors yields the raw errors of v in schema order, lazily.
	Errors(v any) iter.Seq[schema.ValueError]
}

// Validator is the uniform contract of StandardValidator and UnionValidator.
//
// The optional overall argument of the assert and validate families sets
// the ValidationError message; the last one wins and "{error}", "{detail}"
// and "{field}" are expanded from the first detail.
type Validator interface {
	Schema() schema.Schema

	// Test reports whether v is valid, stopping at the first violation.
	Test(v any) bool
	// Errors yields the normalized errors of v lazily.
	Errors(v any) iter.Seq[schema.ValueError]
	// FirstError returns the first normalized error of v.
	FirstError(v any) (schema.ValueError, bool)

	// Assert fails with exactly the first error.
	Assert(v any, overall ...string) error
	// AssertAndClean is Assert followed by removing, in place, the top-level
	// properties of v the resolved schema does not declare.
	AssertAndClean(v any, overall ...string) (schema.Schema, error)
	// AssertAndCleanCopy is like AssertAndClean but leaves v untouched and
	// returns v itself when nothing had to be removed.
	AssertAndCleanCopy(v any, overall ...string) (any, error)
	AssertReturningSchema(v any, overall ...string) (schema.Schema, error)

	// Validate fails with every error.
	Validate(v any, overall ...string) error
	ValidateAndClean(v any, overall ...string) (schema.Schema, error)
	ValidateAndCleanCopy(v any, overall ...string) (any, error)
	ValidateReturningSchema(v any, overall ...string) (schema.Schema, error)
}

// Strategy selects how a UnionValidator resolves members.
type Strategy = resolve.Strategy

const (
	StrategyAuto         = resolve.Auto
	StrategyDiscriminant = resolve.Discriminant
	StrategyUniqueKey    = resolve.UniqueKey
	StrategyValueBrand   = resolve.ValueBrand
	StrategyKeyBrand     = resolve.KeyBrand
)

// ParseStrategy parses a strategy name such as "discriminant" or
// "unique_key".
func ParseStrategy(name string) (Strategy, error) { return resolve.ParseStrategy(name) }

// Options configures a validator. Constructors take options variadically;
// when several are given the last one wins.
type Options struct {
	// Compile enables lazy compilation of checkers on first use.
	Compile bool
	// DiscriminantKey overrides the union's declared discriminant (or brand)
	// key.
	DiscriminantKey string
	// Strategy forces a union resolution strategy; constructors named after
	// a strategy ignore it.
	Strategy Strategy
	// Name labels metrics and log records. Defaults to "default".
	Name string
	// Logger receives debug records on lazy builds and error records on
	// configuration errors. Defaults to discarding.
	Logger *slog.Logger
	// Metrics records activity when set.
	Metrics *metrics.Recorder
}

func pickOptions(opts []Options) Options {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.Name == "" {
		opt.Name = "default"
	}
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.DiscardHandler)
	}
	opt.Logger = opt.Logger.With(slog.String("validator", opt.Name))
	return opt
}

// New returns a UnionValidator for union schemas and a StandardValidator
// for anything else.
func New(s schema.Schema, opts ...Options) Validator {
	if u, ok := s.(*schema.UnionSchema); ok {
		return NewUnionValidator(u, opts...)
	}
	return NewStandardValidator(s, opts...)
}

// lazyChecker holds the checker of one schema. Direct checkers are ready
// immediately; compiled ones are built on first use, at most once.
type lazyChecker struct {
	schema  schema.Schema
	compile bool
	opt     *Options

	once    sync.Once
	checker Checker
}

func newLazyChecker(s schema.Schema, opt *Options) *lazyChecker {
	l := &lazyChecker{schema: s, compile: opt.Compile, opt: opt}
	if !opt.Compile {
		l.checker = value.For(s)
	}
	return l
}

func (l *lazyChecker) get() Checker {
	if !l.compile {
		return l.checker
	}
	l.once.Do(func() {
		start := time.Now()
		l.checker = compiler.Compile(l.schema)
		elapsed := time.Since(start)
		l.opt.Metrics.RecordCompile(l.opt.Name, elapsed)
		l.opt.Logger.Debug("schema compiled", slog.String("kind", string(l.schema.Kind())), slog.Duration("elapsed", elapsed))
	})
	return l.checker
}
