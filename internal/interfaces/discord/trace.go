package discord

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var discordTracer = otel.Tracer("cmr-bot/internal/interfaces/discord")

// startEventSpan opens the root span for one gateway event. Discord delivers
// events without any trace context, so every trace begins here; downstream
// layers attach their spans to this one.
func startEventSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return discordTracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
	)
}
