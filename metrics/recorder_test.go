package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.RecordValidation("order", "assert", ResultOK)
	r.RecordValidation("order", "assert", ResultInvalid)
	r.RecordValidation("order", "assert", ResultInvalid)
	r.RecordError("order", "invalid_type")
	r.RecordResolution("order", "discriminant", ResultMatched)
	r.RecordCompile("order", 250*time.Microsecond)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"ok", r.validations.WithLabelValues("order", "assert", ResultOK), 1},
		{"invalid", r.validations.WithLabelValues("order", "assert", ResultInvalid), 2},
		{"errors", r.errors.WithLabelValues("order", "invalid_type"), 1},
		{"resolutions", r.resolutions.WithLabelValues("order", "discriminant", ResultMatched), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if n := testutil.CollectAndCount(r.compileDuration); n != 1 {
		t.Fatalf("expected one compile histogram series, got %d", n)
	}
	if n, err := testutil.GatherAndCount(reg); err != nil || n != 5 {
		t.Fatalf("GatherAndCount = %d, %v", n, err)
	}
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	r.RecordValidation("v", "test", ResultOK)
	r.RecordError("v", "required")
	r.RecordResolution("v", "unique_key", ResultNoMatch)
	r.RecordCompile("v", time.Millisecond)
}
