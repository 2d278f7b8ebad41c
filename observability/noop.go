package observability

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// disabledProvider backs runs with observability switched off, so the
// generator and schema server can always start spans and record metrics.
type disabledProvider struct{}

func (disabledProvider) TracerProvider() trace.TracerProvider { return noop.NewTracerProvider() }

func (disabledProvider) MeterProvider() metric.MeterProvider { return metricnoop.NewMeterProvider() }

func (disabledProvider) Shutdown(context.Context) error { return nil }
