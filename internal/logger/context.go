package logger

import (
	"context"

	"go.uber.org/zap"
)

// loggerKey is unexported so only this package can attach loggers.
type loggerKey struct{}

// ContextWithLogger returns a child context carrying the given logger,
// typically the base logger enriched with request-scoped fields.
func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the logger attached to ctx. Callers always get a
// usable logger: contexts without one yield a no-op instance.
func FromContext(ctx context.Context) *zap.Logger {
	l, ok := ctx.Value(loggerKey{}).(*zap.Logger)
	if !ok {
		return zap.NewNop()
	}
	return l
}
