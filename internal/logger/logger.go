package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

var globalLogger = slog.Default()

// Init configures the global structured logger. Format is "json" or "text".
func Init(level, format string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Debug(ctx context.Context, msg string, args ...any) {
	log(ctx, slog.LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	log(ctx, slog.LevelInfo, msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	log(ctx, slog.LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg string, err error, args ...any) {
	log(ctx, slog.LevelError, msg, append([]any{"error", err}, args...)...)
}

// log enriches records with the active trace and span ids when a valid span
// is on the context.
func log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		args = append([]any{
			"trace_id", sc.TraceID().String(),
			"span_id", sc.SpanID().String(),
		}, args...)
	}
	globalLogger.Log(ctx, level, msg, args...)
}
