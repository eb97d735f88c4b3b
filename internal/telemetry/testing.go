package telemetry

import (
	"context"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Discarding exporters for tests that need a wired pipeline without a
// collector endpoint.

type discardTraceExporter struct{}

func (discardTraceExporter) ExportSpans(_ context.Context, _ []sdktrace.ReadOnlySpan) error {
	return nil
}

func (discardTraceExporter) Shutdown(_ context.Context) error {
	return nil
}

type discardMetricExporter struct{}

func (discardMetricExporter) Temporality(_ sdkmetric.InstrumentKind) metricdata.Temporality {
	return metricdata.CumulativeTemporality
}

func (discardMetricExporter) Aggregation(_ sdkmetric.InstrumentKind) sdkmetric.Aggregation {
	return sdkmetric.AggregationDefault{}
}

func (discardMetricExporter) Export(_ context.Context, _ *metricdata.ResourceMetrics) error {
	return nil
}

func (discardMetricExporter) ForceFlush(_ context.Context) error {
	return nil
}

func (discardMetricExporter) Shutdown(_ context.Context) error {
	return nil
}

func NewNoopTraceExporter() sdktrace.SpanExporter {
	return discardTraceExporter{}
}

func NewNoopMetricExporter() sdkmetric.Exporter {
	return discardMetricExporter{}
}
