package logger

import (
	"fmt"
	"sync"
	"time"

	"github.com/leandrodaf/midi2/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements contracts.Logger on top of zap. Fields are passed to
// zap as native typed fields.
type ZapLogger struct {
	mu     sync.RWMutex
	logger *zap.Logger
	level  zap.AtomicLevel
}

// NewZapLogger returns a production zap logger writing JSON to stderr.
func NewZapLogger() contracts.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	l, err := buildLogger(level, "stderr")
	if err != nil {
		l = zap.NewNop()
	}
	return &ZapLogger{logger: l, level: level}
}

// NewFromZap wraps an existing zap logger. SetLevel filters on top of the
// wrapped logger's own level.
func NewFromZap(l *zap.Logger) *ZapLogger {
	return &ZapLogger{
		logger: l.WithOptions(zap.AddCallerSkip(1)),
		level:  zap.NewAtomicLevelAt(zapcore.DebugLevel),
	}
}

func buildLogger(level zap.AtomicLevel, output string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.OutputPaths = []string{output}
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	return cfg.Build(zap.AddCallerSkip(1))
}

func (z *ZapLogger) zap() *zap.Logger {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.logger
}

// Info logs a message at the INFO level.
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	if z.level.Enabled(zapcore.InfoLevel) {
		z.zap().Info(msg, toZap(fields)...)
	}
}

// Error logs a message at the ERROR level.
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	if z.level.Enabled(zapcore.ErrorLevel) {
		z.zap().Error(msg, toZap(fields)...)
	}
}

// Debug logs a message at the DEBUG level.
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	if z.level.Enabled(zapcore.DebugLevel) {
		z.zap().Debug(msg, toZap(fields)...)
	}
}

// Warn logs a message at the WARN level.
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	if z.level.Enabled(zapcore.WarnLevel) {
		z.zap().Warn(msg, toZap(fields)...)
	}
}

// Fatal logs a message at the FATAL level and terminates the application.
func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	z.zap().Fatal(msg, toZap(fields)...)
}

// Field returns a field factory.
func (z *ZapLogger) Field() contracts.Field {
	return zapField{}
}

// SetLevel sets the minimum level that is written.
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level.SetLevel(zapLevel(level))
}

// SetDestination switches output to the console (stderr) or to a file. The
// previous logger is synced; on failure the current destination is kept.
func (z *ZapLogger) SetDestination(dest contracts.LogDestination, filePath ...string) {
	output := "stderr"
	if dest == contracts.FileLog {
		if len(filePath) == 0 || filePath[0] == "" {
			z.Warn("file log destination without a path; keeping current output")
			return
		}
		output = filePath[0]
	}

	l, err := buildLogger(z.level, output)
	if err != nil {
		z.Error("failed to switch log destination", zapField{zap.Error(err)}, zapField{zap.String("output", output)})
		return
	}

	z.mu.Lock()
	old := z.logger
	z.logger = l
	z.mu.Unlock()
	_ = old.Sync()
}

// Sync flushes buffered log entries.
func (z *ZapLogger) Sync() error { return z.zap().Sync() }

func zapLevel(level contracts.LogLevel) zapcore.Level {
	switch level {
	case contracts.DebugLevel:
		return zapcore.DebugLevel
	case contracts.WarnLevel:
		return zapcore.WarnLevel
	case contracts.ErrorLevel:
		return zapcore.ErrorLevel
	case contracts.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZap(fields []contracts.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		if zf, ok := f.(zapField); ok && zf.field.Key != "" {
			out = append(out, zf.field)
		}
	}
	return out
}

// zapField implements contracts.Field around a zap.Field.
type zapField struct {
	field zap.Field
}

func (zapField) Bool(key string, val bool) contracts.Field       { return zapField{zap.Bool(key, val)} }
func (zapField) Int(key string, val int) contracts.Field         { return zapField{zap.Int(key, val)} }
func (zapField) Float64(key string, val float64) contracts.Field { return zapField{zap.Float64(key, val)} }
func (zapField) String(key string, val string) contracts.Field   { return zapField{zap.String(key, val)} }
func (zapField) Time(key string, val time.Time) contracts.Field  { return zapField{zap.Time(key, val)} }
func (zapField) Int64(key string, val int64) contracts.Field     { return zapField{zap.Int64(key, val)} }
func (zapField) Error(key string, val error) contracts.Field     { return zapField{zap.NamedError(key, val)} }
func (zapField) Uint64(key string, val uint64) contracts.Field   { return zapField{zap.Uint64(key, val)} }
func (zapField) Uint8(key string, val uint8) contracts.Field     { return zapField{zap.Uint8(key, val)} }
func (zapField) Uint32(key string, val uint32) contracts.Field   { return zapField{zap.Uint32(key, val)} }

func (zapField) Stringer(key string, val fmt.Stringer) contracts.Field {
	return zapField{zap.Stringer(key, val)}
}
