package metrics

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNewMetrics(t *testing.T) {
	t.Run("initializes all metric instruments successfully", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		meter := mp.Meter("test")

		metrics, err := NewMetrics(meter)
		if err != nil {
			t.Fatalf("NewMetrics() failed: %v", err)
		}

		if metrics.ordersPlacedTotal == nil {
			t.Error("ordersPlacedTotal is nil")
		}
		if metrics.checkoutDuration == nil {
			t.Error("checkoutDuration is nil")
		}
		if metrics.stockConflictsTotal == nil {
			t.Error("stockConflictsTotal is nil")
		}
		if metrics.loginAttemptsTotal == nil {
			t.Error("loginAttemptsTotal is nil")
		}
	})
}

func TestRecordOrderPlaced(t *testing.T) {
	t.Run("records placements with status label", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		meter := mp.Meter("test")

		metrics, err := NewMetrics(meter)
		if err != nil {
			t.Fatalf("NewMetrics() failed: %v", err)
		}

		ctx := context.Background()
		metrics.RecordOrderPlaced(ctx, true)
		metrics.RecordOrderPlaced(ctx, false)

		var rm metricdata.ResourceMetrics
		if err := reader.Collect(ctx, &rm); err != nil {
			t.Fatalf("failed to collect metrics: %v", err)
		}

		found := false
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				if m.Name == "orders_placed_total" {
					found = true
					sum, ok := m.Data.(metricdata.Sum[int64])
					if !ok {
						t.Fatal("expected Sum[int64] data type")
					}
					if len(sum.DataPoints) != 2 {
						t.Errorf("expected 2 data points, got %d", len(sum.DataPoints))
					}
				}
			}
		}

		if !found {
			t.Error("orders_placed_total metric not found")
		}
	})
}

func TestRecordCheckoutDuration(t *testing.T) {
	t.Run("records duration histogram", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		meter := mp.Meter("test")

		metrics, err := NewMetrics(meter)
		if err != nil {
			t.Fatalf("NewMetrics() failed: %v", err)
		}

		ctx := context.Background()
		metrics.RecordCheckoutDuration(ctx, 0.25)

		var rm metricdata.ResourceMetrics
		if err := reader.Collect(ctx, &rm); err != nil {
			t.Fatalf("failed to collect metrics: %v", err)
		}

		found := false
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				if m.Name == "checkout_duration_seconds" {
					found = true
					if _, ok := m.Data.(metricdata.Histogram[float64]); !ok {
						t.Fatal("expected Histogram[float64] data type")
					}
				}
			}
		}

		if !found {
			t.Error("checkout_duration_seconds metric not found")
		}
	})
}
