// Package metrics exposes Prometheus instrumentation for validators.
//
// Metrics:
//   - validators_validations_total: validation calls by validator, operation and result
//   - validators_errors_total: reported errors by validator and error code
//   - validators_resolutions_total: union member resolutions by validator, strategy and result
//   - validators_compile_duration_seconds: lazy compilation time per validator
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Validation results.
const (
	ResultOK          = "ok"
	ResultInvalid     = "invalid"
	ResultConfigError = "config_error"
	ResultMatched     = "matched"
	ResultNoMatch     = "no_match"
)

// Namespace prefixes every metric name.
const Namespace = "validators"

// Recorder records validator activity. A nil *Recorder is valid and records
// nothing, so validators can call it unconditionally.
type Recorder struct {
	validations     *prometheus.CounterVec
	errors          *prometheus.CounterVec
	resolutions     *prometheus.CounterVec
	compileDuration *prometheus.HistogramVec
}

// NewRecorder creates a Recorder and registers its collectors with reg.
// Registering twice on the same registry panics, as with any collector.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		validations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "validations_total",
				Help:      "Total number of validation calls",
			},
			[]string{"validator", "operation", "result"},
		),
		errors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "errors_total",
				Help:      "Total number of reported validation errors",
			},
			[]string{"validator", "code"},
		),
		resolutions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "resolutions_total",
				Help:      "Total number of union member resolutions",
			},
			[]string{"validator", "strategy", "result"},
		),
		compileDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "compile_duration_seconds",
				Help:      "Duration of lazy schema compilation in seconds",
				// Compiling a schema is a one-off cost well under a second.
				Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10), // 1µs to 262ms
			},
			[]string{"validator"},
		),
	}
}

// RecordValidation records one validation call.
//
// Example:
//
//	r.RecordValidation("order", "assert", metrics.ResultInvalid)
func (r *Recorder) RecordValidation(validator, operation, result string) {
	if r == nil {
		return
	}
	r.validations.WithLabelValues(validator, operation, result).Inc()
}

// RecordError records one reported error by code.
func (r *Recorder) RecordError(validator, code string) {
	if r == nil {
		return
	}
	r.errors.WithLabelValues(validator, code).Inc()
}

// RecordResolution records the outcome of a union member resolution.
func (r *Recorder) RecordResolution(validator, strategy, result string) {
	if r == nil {
		return
	}
	r.resolutions.WithLabelValues(validator, strategy, result).Inc()
}

// RecordCompile records the time spent compiling a checker.
func (r *Recorder) RecordCompile(validator string, d time.Duration) {
	if r == nil {
		return
	}
	r.compileDuration.WithLabelValues(validator).Observe(d.Seconds())
}
