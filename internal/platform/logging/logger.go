package logging

import (
	"context"
	"os"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// Logger is a thin key/value facade over zap. The *Context variants stamp
// trace and span ids onto the entry when the context carries a live span.
type Logger struct {
	zap    *zap.Logger
	synced atomic.Bool
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewNop())
}

// NewJSON builds the production logger: JSON to stdout, caller annotations,
// stacktraces from error level up.
func NewJSON(level Level) *Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.MessageKey = "msg"
	enc.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(os.Stdout), level)
	return FromZap(zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))
}

func NewNop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		return NewNop()
	}
	return &Logger{zap: z}
}

func Default() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	return NewNop()
}

func SetDefault(l *Logger) {
	if l == nil {
		l = NewNop()
	}
	defaultLogger.Store(l)
}

// Sync flushes buffered entries. Safe to call more than once.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	if !l.synced.CompareAndSwap(false, true) {
		return nil
	}
	return l.zap.Sync()
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return NewNop()
	}
	return &Logger{zap: l.zap.With(kvFields(args)...)}
}

func (l *Logger) Debug(msg string, args ...any) { l.write(nil, zap.DebugLevel, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.write(nil, zap.InfoLevel, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.write(nil, zap.WarnLevel, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.write(nil, zap.ErrorLevel, msg, args) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, zap.DebugLevel, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, zap.InfoLevel, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, zap.WarnLevel, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, zap.ErrorLevel, msg, args)
}

func (l *Logger) write(ctx context.Context, level zapcore.Level, msg string, args []any) {
	logger := l
	if logger == nil {
		logger = Default()
	}

	ce := logger.zap.Check(level, msg)
	if ce == nil {
		return
	}

	fields := kvFields(args)
	if ctx != nil {
		if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
			fields = append(fields,
				zap.String("trace_id", spanCtx.TraceID().String()),
				zap.String("span_id", spanCtx.SpanID().String()),
			)
		}
	}
	ce.Write(fields...)
}

// kvFields converts alternating key/value args into zap fields. A trailing
// key without a value is kept with a nil value rather than dropped.
func kvFields(args []any) []zap.Field {
	if len(args) == 0 {
		return nil
	}

	fields := make([]zap.Field, 0, (len(args)+1)/2)
	for len(args) > 0 {
		key, ok := args[0].(string)
		if !ok || key == "" {
			key = "arg"
		}
		if len(args) == 1 {
			fields = append(fields, zap.Any(key, nil))
			break
		}

		switch value := args[1].(type) {
		case error:
			fields = append(fields, zap.NamedError(key, value))
		default:
			fields = append(fields, zap.Any(key, value))
		}
		args = args[2:]
	}

	return fields
}
