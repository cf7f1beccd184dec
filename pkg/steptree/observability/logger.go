// Package observability provides structured logging, metrics, and tracing
// for the step expansion core.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds expansion context to a logger.
// Returns a new logger with session_id and path fields.
func EnrichLogger(logger *slog.Logger, sessionID, path string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("session_id", sessionID),
		slog.String("path", path),
	)
}

// LogExpandStart logs the start of an expansion attempt.
func LogExpandStart(logger *slog.Logger, sessionID, path string, depth int) {
	if logger == nil {
		return
	}
	logger.Debug("expansion starting",
		slog.String("session_id", sessionID),
		slog.String("path", path),
		slog.Int("depth", depth),
	)
}

// LogExpandChildren logs a successful expansion into sub-steps.
func LogExpandChildren(logger *slog.Logger, sessionID, path string, childCount int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("expansion produced sub-steps",
		slog.String("session_id", sessionID),
		slog.String("path", path),
		slog.Int("children", childCount),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogExpandStop logs a terminal expansion outcome.
func LogExpandStop(logger *slog.Logger, sessionID, path, reason string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("expansion stopped",
		slog.String("session_id", sessionID),
		slog.String("path", path),
		slog.String("stop_reason", reason),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogExpandError logs an expansion failure. The path stays retryable.
func LogExpandError(logger *slog.Logger, sessionID, path string, err error) {
	if logger == nil {
		return
	}
	logger.Error("expansion failed",
		slog.String("session_id", sessionID),
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
}

// LogSessionSaved logs a successful durable write.
func LogSessionSaved(logger *slog.Logger, sessionID string, sizeBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("session saved",
		slog.String("session_id", sessionID),
		slog.Int("size_bytes", sizeBytes),
	)
}

// LogSessionSaveError logs a durable-write failure (non-fatal: the
// in-memory tree is retained).
func LogSessionSaveError(logger *slog.Logger, sessionID string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("session save failed",
		slog.String("session_id", sessionID),
		slog.String("error", err.Error()),
	)
}

// LogStaleResponse logs a decomposition result discarded because its
// session is no longer active.
func LogStaleResponse(logger *slog.Logger, sessionID, path string) {
	if logger == nil {
		return
	}
	logger.Warn("stale decomposition response discarded",
		slog.String("session_id", sessionID),
		slog.String("path", path),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
