package symkey

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName identifies this library to OpenTelemetry providers.
const instrumentationName = "github.com/rbaliyan/symkey"

var (
	meter  = otel.Meter(instrumentationName)
	tracer = otel.Tracer(instrumentationName)

	deriveCount metric.Int64Counter
	parseCount  metric.Int64Counter
)

func init() {
	var err error
	deriveCount, err = meter.Int64Counter("symkey.derive.count",
		metric.WithDescription("Key derivations, by entry path and outcome."))
	if err != nil {
		otel.Handle(err)
	}
	parseCount, err = meter.Int64Counter("symkey.parse.count",
		metric.WithDescription("Raw key parses, by outcome."))
	if err != nil {
		otel.Handle(err)
	}
}

// recordDerive counts one derivation through the named entry path. With the
// default no-op global meter provider this costs nothing.
func recordDerive(path string, err error) {
	deriveCount.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("symkey.path", path),
		attribute.Bool("symkey.error", err != nil),
	))
}

func recordParse(err error) {
	parseCount.Add(context.Background(), 1, metric.WithAttributes(
		attribute.Bool("symkey.error", err != nil),
	))
}

// startSpan opens a root span for a locally heavy operation such as key
// stretching. The library takes no context arguments, so spans do not
// attach to a caller trace.
func startSpan(name string, attrs ...attribute.KeyValue) trace.Span {
	_, span := tracer.Start(context.Background(), name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...))
	return span
}
