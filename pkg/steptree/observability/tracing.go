package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the steptree tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("steptree")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartExpandSpan starts a span for one expansion attempt.
	StartExpandSpan(ctx context.Context, sessionID, path string) (context.Context, trace.Span)

	// StartDecomposeSpan starts a span for the external service call.
	// It should be a child of the expand span.
	StartDecomposeSpan(ctx context.Context, path string) (context.Context, trace.Span)

	// StartSaveSpan starts a span for the durable session write.
	StartSaveSpan(ctx context.Context, sessionID string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartExpandSpan starts a span for one expansion attempt.
func (m *otelSpanManager) StartExpandSpan(ctx context.Context, sessionID, path string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "steptree.expand",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.String("step.path", path),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartDecomposeSpan starts a span for the external service call.
func (m *otelSpanManager) StartDecomposeSpan(ctx context.Context, path string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "steptree.decompose",
		trace.WithAttributes(
			attribute.String("step.path", path),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// StartSaveSpan starts a span for the durable session write.
func (m *otelSpanManager) StartSaveSpan(ctx context.Context, sessionID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "steptree.session.save",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
