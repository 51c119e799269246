package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability records page render and job outcomes through an OpenTelemetry meter.
// The zero value is a no-op.
type Observability struct {
	meterProvider  *metric.MeterProvider
	renderCounter  otelmetric.Int64Counter
	renderDuration otelmetric.Float64Histogram
	jobCounter     otelmetric.Int64Counter
	jobDuration    otelmetric.Float64Histogram
}

// New exports through the Prometheus registry served on /metrics.
func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return &Observability{}, err
	}
	o, err := NewWithReader(serviceName, exporter)
	if err != nil {
		return o, err
	}
	otel.SetMeterProvider(o.meterProvider)
	return o, nil
}

// NewWithReader builds on any reader; tests pass a manual reader.
func NewWithReader(serviceName string, reader metric.Reader) (*Observability, error) {
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	meter := provider.Meter(serviceName)

	o := &Observability{meterProvider: provider}
	var err error

	if o.renderCounter, err = meter.Int64Counter(
		"storefront.pages.rendered",
		otelmetric.WithDescription("Number of storefront pages rendered"),
	); err != nil {
		return o, err
	}
	if o.renderDuration, err = meter.Float64Histogram(
		"storefront.pages.duration",
		otelmetric.WithDescription("Page render duration including data fetches"),
		otelmetric.WithUnit("ms"),
	); err != nil {
		return o, err
	}
	if o.jobCounter, err = meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	); err != nil {
		return o, err
	}
	if o.jobDuration, err = meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	); err != nil {
		return o, err
	}

	return o, nil
}

func (o *Observability) RecordRender(ctx context.Context, templateID, status string, duration time.Duration) {
	if o == nil || o.renderCounter == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("template_id", templateID),
		attribute.String("status", status),
	)
	o.renderCounter.Add(ctx, 1, attrs)
	o.renderDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}

func (o *Observability) RecordJob(ctx context.Context, taskType, status string, duration time.Duration) {
	if o == nil || o.jobCounter == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	)
	o.jobCounter.Add(ctx, 1, attrs)
	o.jobDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.meterProvider == nil {
		return nil
	}
	return o.meterProvider.Shutdown(ctx)
}
