package mq

import (
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

var (
	tracer = otel.Tracer("internal/storage/mq")

	// kTracer injects the trace context into produced record headers and
	// starts a span per fetched record.
	kTracer = kotel.NewTracer(
		kotel.TracerPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		)),
	)
)
