package logger

import (
	"context"

	"go.uber.org/zap"

	"schedule-service/pkg/trace"
)

// NewLogger builds the production zap logger used by every binary.
func NewLogger() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return l
}

// WithTrace returns a logger carrying the request's trace_id, if any.
func WithTrace(ctx context.Context, logger *zap.Logger) *zap.Logger {
	traceID := trace.FromContext(ctx)
	if traceID != "" {
		return logger.With(zap.String("trace_id", traceID))
	}
	return logger
}
