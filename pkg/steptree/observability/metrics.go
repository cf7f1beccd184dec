package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records step expansion metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordExpansion records an expansion attempt with its duration and
	// error status.
	RecordExpansion(ctx context.Context, topic string, duration time.Duration, err error)

	// RecordStop records a terminal expansion outcome by reason.
	RecordStop(ctx context.Context, reason string)

	// RecordSessionSave records a durable session write.
	RecordSessionSave(ctx context.Context, sizeBytes int64, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	expansions      metric.Int64Counter
	expansionLat    metric.Float64Histogram
	expansionErrors metric.Int64Counter
	stops           metric.Int64Counter
	sessionSize     metric.Int64Histogram
	saveErrors      metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("steptree")

	expansions, err := meter.Int64Counter("steptree.expansion.attempts",
		metric.WithDescription("Number of expansion attempts"),
	)
	if err != nil {
		return nil, err
	}

	expansionLat, err := meter.Float64Histogram("steptree.expansion.latency_ms",
		metric.WithDescription("Expansion latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	expansionErrors, err := meter.Int64Counter("steptree.expansion.errors",
		metric.WithDescription("Number of failed expansion attempts"),
	)
	if err != nil {
		return nil, err
	}

	stops, err := meter.Int64Counter("steptree.expansion.stops",
		metric.WithDescription("Number of terminal expansion outcomes by reason"),
	)
	if err != nil {
		return nil, err
	}

	sessionSize, err := meter.Int64Histogram("steptree.session.size_bytes",
		metric.WithDescription("Serialized session size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	saveErrors, err := meter.Int64Counter("steptree.session.save_errors",
		metric.WithDescription("Number of failed durable session writes"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		expansions:      expansions,
		expansionLat:    expansionLat,
		expansionErrors: expansionErrors,
		stops:           stops,
		sessionSize:     sessionSize,
		saveErrors:      saveErrors,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordExpansion records an expansion attempt.
func (m *otelMetrics) RecordExpansion(ctx context.Context, topic string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("topic", topic),
	}

	m.expansions.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.expansionLat.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.expansionErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordStop records a terminal expansion outcome.
func (m *otelMetrics) RecordStop(ctx context.Context, reason string) {
	m.stops.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

// RecordSessionSave records a durable session write.
func (m *otelMetrics) RecordSessionSave(ctx context.Context, sizeBytes int64, err error) {
	if err != nil {
		m.saveErrors.Add(ctx, 1)
		return
	}
	m.sessionSize.Record(ctx, sizeBytes)
}
