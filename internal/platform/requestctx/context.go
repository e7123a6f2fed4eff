package requestctx

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	loggerContextKey    contextKey = "github.com/launchpage/api/internal/platform/requestctx/logger"
	operationContextKey contextKey = "github.com/launchpage/api/internal/platform/requestctx/operation"
)

var noopLogger = zap.NewNop()

// WithLogger stores the logger in context for downstream consumers.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = noopLogger
	}
	return context.WithValue(ctx, loggerContextKey, logger)
}

// Logger retrieves the zap logger from context or returns a no-op logger.
// When the context carries an operation tag the returned logger includes it
// as an "operation" field.
func Logger(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return noopLogger
	}
	logger, ok := ctx.Value(loggerContextKey).(*zap.Logger)
	if !ok || logger == nil {
		return noopLogger
	}
	if op := Operation(ctx); op != "" {
		return logger.With(zap.String("operation", op))
	}
	return logger
}

// NoopLogger exposes the shared noop logger instance used across the package.
func NoopLogger() *zap.Logger { return noopLogger }

// WithOperation tags the context with the user-level operation being handled
// (for example "import" or "upload") so store and uploader logs can be
// correlated back to the CLI action that triggered them.
func WithOperation(ctx context.Context, op string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if op == "" {
		return ctx
	}
	return context.WithValue(ctx, operationContextKey, op)
}

// Operation returns the operation tag stored on the context, if any.
func Operation(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	op, _ := ctx.Value(operationContextKey).(string)
	return op
}
