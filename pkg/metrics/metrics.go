// Package metrics wires OpenTelemetry instruments to a Prometheus registry and
// defines the instruments recorded by the resolver.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides histogram buckets in seconds for probe latencies.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30} //nolint: gochecknoglobals

const meterName = "domainstatus/resolver"

// NewMeterProvider returns a MeterProvider whose instruments are exported on reg.
// Histograms use DefaultBuckets.
func NewMeterProvider(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	view := sdkmetric.NewView(
		sdkmetric.Instrument{Kind: sdkmetric.InstrumentKindHistogram},
		sdkmetric.Stream{Aggregation: sdkmetric.AggregationExplicitBucketHistogram{Boundaries: DefaultBuckets}},
	)

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp), sdkmetric.WithView(view)), nil
}

// Instruments records probe latencies and outcomes.
type Instruments struct {
	probeDuration metric.Float64Histogram
	probeOutcomes metric.Int64Counter
	unitsDone     metric.Int64Counter
}

// NewInstruments creates the resolver instruments on mp. A nil mp yields
// instruments that record nothing.
func NewInstruments(mp metric.MeterProvider) (*Instruments, error) {
	if mp == nil {
		mp = noop.NewMeterProvider()
	}
	meter := mp.Meter(meterName)

	probeDuration, err := meter.Float64Histogram("domainstatus_probe_duration_seconds",
		metric.WithDescription("Duration of a single signal probe."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("could not create probe duration histogram: %w", err)
	}
	probeOutcomes, err := meter.Int64Counter("domainstatus_probe_outcomes",
		metric.WithDescription("Probe results by signal and outcome."))
	if err != nil {
		return nil, fmt.Errorf("could not create probe outcome counter: %w", err)
	}
	unitsDone, err := meter.Int64Counter("domainstatus_domains_analyzed",
		metric.WithDescription("Domains whose unit of work finished, by reconciled status."))
	if err != nil {
		return nil, fmt.Errorf("could not create analyzed counter: %w", err)
	}

	return &Instruments{probeDuration: probeDuration, probeOutcomes: probeOutcomes, unitsDone: unitsDone}, nil
}

// ObserveProbe records one probe call.
func (i *Instruments) ObserveProbe(ctx context.Context, signal, outcome string, took time.Duration) {
	attrs := metric.WithAttributes(attribute.String("signal", signal), attribute.String("outcome", outcome))
	i.probeDuration.Record(ctx, took.Seconds(), metric.WithAttributes(attribute.String("signal", signal)))
	i.probeOutcomes.Add(ctx, 1, attrs)
}

// ObserveDomain records a finished unit of work.
func (i *Instruments) ObserveDomain(ctx context.Context, status string, failed bool) {
	i.unitsDone.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
		attribute.Bool("failed", failed)))
}
