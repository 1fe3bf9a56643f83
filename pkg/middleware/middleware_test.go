package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gridbind-dev/gridbind/pkg/grid"
)

func TestPrometheusObserverRecords(t *testing.T) {
	registry := prometheus.NewRegistry()
	observer := Prometheus(WithRegistry(registry))

	ctx := observer.UpdateStarted(context.Background(), 2)
	observer.UpdateApplied(ctx, grid.UpdateStats{
		Sections:     2,
		RowsInserted: 3,
		RowsDeleted:  1,
		Duration:     5 * time.Millisecond,
	})
	observer.UpdateApplied(ctx, grid.UpdateStats{
		Reloaded: true,
		Sections: 4,
	})

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}

	for _, name := range []string{
		"gridbind_updates_total",
		"gridbind_rows_inserted_total",
		"gridbind_rows_deleted_total",
		"gridbind_update_duration_seconds",
		"gridbind_sections",
	} {
		if !found[name] {
			t.Errorf("metric %s not registered (have %v)", name, found)
		}
	}

	for _, mf := range families {
		switch mf.GetName() {
		case "gridbind_rows_inserted_total":
			if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 3 {
				t.Errorf("rows_inserted_total = %v, want 3", got)
			}
		case "gridbind_sections":
			if got := mf.GetMetric()[0].GetGauge().GetValue(); got != 4 {
				t.Errorf("sections = %v, want 4", got)
			}
		case "gridbind_updates_total":
			if got := len(mf.GetMetric()); got != 2 {
				t.Errorf("updates_total has %d label values, want 2 (batch, reload)", got)
			}
		}
	}
}

func TestPrometheusCustomNamespace(t *testing.T) {
	registry := prometheus.NewRegistry()
	observer := Prometheus(WithRegistry(registry), WithNamespace("myapp"))

	observer.UpdateApplied(context.Background(), grid.UpdateStats{Sections: 1})

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if name := mf.GetName(); len(name) < 6 || name[:6] != "myapp_" {
			t.Errorf("metric %s not namespaced under myapp", name)
		}
	}
}

func TestOTelObserverSmoke(t *testing.T) {
	observer := OTel(WithTracerName("test"))

	ctx := observer.UpdateStarted(context.Background(), 3)
	if ctx == nil {
		t.Fatal("UpdateStarted returned nil context")
	}

	// No SDK installed: spans are no-ops, but the observer must still be
	// safe to drive through a full update cycle.
	observer.UpdateApplied(ctx, grid.UpdateStats{
		Sections:     3,
		RowsInserted: 1,
	})
}
