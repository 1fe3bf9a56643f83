package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gridbind-dev/gridbind/pkg/grid"
)

// defaultTracerName is the tracer name used when none is configured.
const defaultTracerName = "gridbind"

// OTelConfig configures the OpenTelemetry observer.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "gridbind").
	TracerName string

	// TracerProvider supplies the tracer. Default: the global provider.
	TracerProvider trace.TracerProvider
}

// OTelOption configures the OpenTelemetry observer.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(provider trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = provider
	}
}

// otelObserver implements grid.Observer with one span per update.
type otelObserver struct {
	tracer trace.Tracer
}

// OTel creates a grid.Observer that traces collection updates. Each update
// becomes one span carrying the section count, the reload/batch decision
// and the row-edit totals.
func OTel(opts ...OTelOption) grid.Observer {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	var tracer trace.Tracer
	if config.TracerProvider != nil {
		tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		tracer = otel.Tracer(config.TracerName)
	}

	return &otelObserver{tracer: tracer}
}

// UpdateStarted implements grid.Observer.
func (o *otelObserver) UpdateStarted(ctx context.Context, sections int) context.Context {
	ctx, _ = o.tracer.Start(ctx, "grid.update",
		trace.WithAttributes(attribute.Int("grid.sections", sections)))
	return ctx
}

// UpdateApplied implements grid.Observer.
func (o *otelObserver) UpdateApplied(ctx context.Context, stats grid.UpdateStats) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.Bool("grid.reloaded", stats.Reloaded),
		attribute.Int("grid.rows_inserted", stats.RowsInserted),
		attribute.Int("grid.rows_deleted", stats.RowsDeleted),
	)
	span.End()
}
