package observability

import (
	"context"
	"log"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability records pipeline metrics through the OpenTelemetry SDK.
// A nil or zero value is valid and records nothing.
type Observability struct {
	meterProvider *metric.MeterProvider
	requests      otelmetric.Int64Counter
	duration      otelmetric.Float64Histogram
}

// New exports to the default Prometheus registry, next to the promauto
// collectors.
func New(serviceName string) *Observability {
	return NewWithRegisterer(serviceName, promclient.DefaultRegisterer)
}

func NewWithRegisterer(serviceName string, reg promclient.Registerer) *Observability {
	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	requests, _ := meter.Int64Counter(
		"recommendations_processed",
		otelmetric.WithDescription("Number of recommendation requests processed"),
	)

	duration, _ := meter.Float64Histogram(
		"recommendations_duration",
		otelmetric.WithDescription("Recommendation pipeline duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		requests:      requests,
		duration:      duration,
	}
}

func (o *Observability) RecordRequest(ctx context.Context, persona, status string) {
	if o == nil || o.requests == nil {
		return
	}
	o.requests.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("persona", persona),
		attribute.String("status", status),
	))
}

func (o *Observability) RecordDuration(ctx context.Context, d time.Duration, status string) {
	if o == nil || o.duration == nil {
		return
	}
	o.duration.Record(ctx, float64(d.Microseconds())/1000, otelmetric.WithAttributes(
		attribute.String("status", status),
	))
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.meterProvider == nil {
		return nil
	}
	return o.meterProvider.Shutdown(ctx)
}
