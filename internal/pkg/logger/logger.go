package logger

import (
	"context"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const traceIDKey contextKey = "trace_id"

const defaultServiceName = "pawn-ledger"

var (
	mu          sync.RWMutex
	log         = zap.NewNop()
	serviceName = defaultServiceName
)

// getTraceID retrieves trace_id from context, returns empty string if missing
func getTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v := ctx.Value(traceIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithTraceID returns a new context with the given trace ID
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext exposes the request trace id to handlers.
func TraceIDFromContext(ctx context.Context) string {
	return getTraceID(ctx)
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// Init sets up the global JSON logger writing to stdout.
func Init(level string) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))
	config.Encoding = "json"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "log_level"
	config.EncoderConfig.MessageKey = "msg"
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.StacktraceKey = ""
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.OutputPaths = []string{"stdout"}

	built, err := config.Build(zap.AddCallerSkip(2))
	if err != nil {
		return
	}
	SetLogger(built)
}

// SetLogger replaces the global logger. Tests use it with an observer core.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// SetServiceName sets the service_name field attached to context logs.
func SetServiceName(name string) {
	mu.Lock()
	defer mu.Unlock()
	if name == "" {
		name = defaultServiceName
	}
	serviceName = name
}

func current() (*zap.Logger, string) {
	mu.RLock()
	defer mu.RUnlock()
	return log, serviceName
}

func contextFields(ctx context.Context, name string, fields []zap.Field) []zap.Field {
	if traceID := getTraceID(ctx); traceID != "" {
		fields = append(fields, zap.String("trace_id", traceID))
	}
	if ctx != nil {
		spanContext := trace.SpanFromContext(ctx).SpanContext()
		if spanContext.HasTraceID() {
			fields = append(fields, zap.String("otel_trace_id", spanContext.TraceID().String()))
		}
	}
	return append(fields, zap.String("service_name", name))
}

func write(level zapcore.Level, msg string, fields []zap.Field) {
	l, _ := current()
	if ce := l.Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}

// CONTEXT-AWARE LOGGING //

// CtxInfo logs an info message with the request trace id
func CtxInfo(ctx context.Context, msg string, fields ...zap.Field) {
	_, name := current()
	write(zap.InfoLevel, msg, contextFields(ctx, name, fields))
}

func CtxError(ctx context.Context, msg string, err error, fields ...zap.Field) {
	_, name := current()
	fields = append(fields, zap.Error(err))
	write(zap.ErrorLevel, msg, contextFields(ctx, name, fields))
}

// CtxDebug logs debug messages
func CtxDebug(ctx context.Context, msg string, fields ...zap.Field) {
	_, name := current()
	write(zap.DebugLevel, msg, contextFields(ctx, name, fields))
}

// CtxWarn logs warnings
func CtxWarn(ctx context.Context, msg string, fields ...zap.Field) {
	_, name := current()
	write(zap.WarnLevel, msg, contextFields(ctx, name, fields))
}

// NON-CONTEXT LOGGING //

func Info(msg string, fields ...zap.Field) {
	write(zap.InfoLevel, msg, fields)
}

func Debug(msg string, fields ...zap.Field) {
	write(zap.DebugLevel, msg, fields)
}

func Warn(msg string, fields ...zap.Field) {
	write(zap.WarnLevel, msg, fields)
}

func Error(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	write(zap.ErrorLevel, msg, fields)
}
