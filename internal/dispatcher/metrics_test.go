package dispatcher

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestDispatchRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	d := New(newTestQueue(t), WithMetrics(NewMetrics(reg)))
	d.Register("ping", func(ctx context.Context, params json.RawMessage) (any, error) {
		return "pong", nil
	})

	if _, err := d.Dispatch(context.Background(), "ping", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count := testutil.ToFloat64(d.metrics.calls.WithLabelValues("ping", "ok"))
	if count != 1 {
		t.Errorf("calls counter = %v, want 1", count)
	}
}

func TestDispatchRecordsMetricsOnError(t *testing.T) {
	reg := prometheus.NewRegistry()
	d := New(newTestQueue(t), WithMetrics(NewMetrics(reg)))

	if _, err := d.Dispatch(context.Background(), "missing", nil); err == nil {
		t.Fatal("expected an UnknownToolError")
	}

	count := testutil.ToFloat64(d.metrics.calls.WithLabelValues("missing", "error"))
	if count != 1 {
		t.Errorf("calls counter = %v, want 1", count)
	}
}
