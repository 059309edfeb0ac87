package graphql

import (
	"context"
	"log/slog"
	"time"

	apierrors "github.com/dbouwman/graphql-api/errors"
	"github.com/dbouwman/graphql-api/metric"
)

// Recorder implements MetricsRecorder on top of the prometheus registry.
type Recorder struct {
	metrics *metric.Metrics
	logger  *slog.Logger
}

// NewRecorder creates a metrics recorder bound to a registry
func NewRecorder(registry *metric.Registry, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		metrics: registry.Metrics,
		logger:  logger.With("component", "graphql"),
	}
}

// RecordMetrics wraps a GraphQL operation to record metrics
func (rec *Recorder) RecordMetrics(ctx context.Context, operation string, fn func() error) error {
	start := time.Now()

	err := fn()
	duration := time.Since(start)

	rec.metrics.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())

	logger := requestLogger(ctx, rec.logger)
	if err != nil {
		rec.metrics.OperationsTotal.WithLabelValues(operation, "error").Inc()
		rec.metrics.ResolverErrorsTotal.WithLabelValues(operation, errorClassLabel(err)).Inc()
		logger.Warn("GraphQL operation failed",
			"operation", operation,
			"duration", duration,
			"error", err)
	} else {
		rec.metrics.OperationsTotal.WithLabelValues(operation, "success").Inc()
		logger.Debug("GraphQL operation succeeded",
			"operation", operation,
			"duration", duration)
	}

	return err
}

// RecordCall implements portal.CallRecorder: one entry per backend call,
// labeled by call name and outcome.
func (rec *Recorder) RecordCall(call, status string, duration time.Duration) {
	rec.metrics.BackendCallsTotal.WithLabelValues(call, status).Inc()
	rec.metrics.BackendCallDuration.WithLabelValues(call).Observe(duration.Seconds())
}

// errorClassLabel maps an error to its metric class label
func errorClassLabel(err error) string {
	switch {
	case apierrors.IsNotFound(err):
		return "not_found"
	case apierrors.IsTransient(err):
		return "transient"
	case apierrors.IsInvalid(err):
		return "invalid"
	case apierrors.IsFatal(err):
		return "fatal"
	default:
		return "unknown"
	}
}
