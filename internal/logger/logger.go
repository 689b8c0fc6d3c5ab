package logger

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey string

const batchIDKey ctxKey = AttrKeyBatchID

// InitLoggerWithWriter installs the process-wide slog logger writing to w.
func InitLoggerWithWriter(config Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     config.LogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if config.isJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	handler = handler.WithAttrs(config.baseAttributes())

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// Debug logs at debug level on the default logger.
func Debug(msg string, args ...any) { slog.Default().Debug(msg, args...) }

// Info logs at info level on the default logger.
func Info(msg string, args ...any) { slog.Default().Info(msg, args...) }

// Warn logs at warn level on the default logger.
func Warn(msg string, args ...any) { slog.Default().Warn(msg, args...) }

// Error logs at error level on the default logger.
func Error(msg string, args ...any) { slog.Default().Error(msg, args...) }

// GenerateBatchID creates a new UUID correlating the log lines of one
// generation batch (a loot resolution or a preview run).
func GenerateBatchID() string {
	return uuid.NewString()
}

// WithBatchID returns a new context containing the batch ID.
func WithBatchID(ctx context.Context, batchID string) context.Context {
	return context.WithValue(ctx, batchIDKey, batchID)
}

// EnsureBatchID returns ctx unchanged when it already carries a batch ID,
// otherwise a child context with a fresh one.
func EnsureBatchID(ctx context.Context) context.Context {
	if _, ok := BatchIDFromContext(ctx); ok {
		return ctx
	}
	return WithBatchID(ctx, GenerateBatchID())
}

// BatchIDFromContext extracts the batch ID from the context, if present.
func BatchIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(batchIDKey)
	if v == nil {
		return "", false
	}
	if id, ok := v.(string); ok {
		return id, true
	}
	return "", false
}

// FromContext returns a logger that includes the batch_id attribute when present.
func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := BatchIDFromContext(ctx); ok {
		return slog.Default().With(AttrKeyBatchID, id)
	}
	return slog.Default()
}
