// Package logs wraps zap with the domain's own call sites: one helper
// per event family (fill, risk transition, skipped tick, malformed
// record) rather than one generic log call sprinkled through the core.
package logs

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects level and encoding.
type Config struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// DefaultConfig returns sane production defaults.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json"}
}

// Logger wraps *zap.Logger with the simulator's structured call sites.
type Logger struct {
	*zap.Logger
}

// New builds a Logger writing to stdout, JSON- or console-encoded per
// cfg.Format, at cfg.Level.
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", cfg.Level, err)
	}

	var encoderConfig zapcore.EncoderConfig
	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewTee(zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
	zapLogger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return &Logger{Logger: zapLogger}, nil
}

// LogFill records a fill routed through accounting, tagging whether it
// came from an external aggressor or from our own crossing quote.
func (l *Logger) LogFill(fields map[string]interface{}) {
	l.emit("fill", levelInfo, fields)
}

// LogRiskTransition records a risk_off flip (either direction).
func (l *Logger) LogRiskTransition(riskOff bool, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["risk_off"] = riskOff
	l.emit("risk_transition", levelWarn, fields)
}

// LogSkippedTick records a tick skipped because a book side was empty.
func (l *Logger) LogSkippedTick(fields map[string]interface{}) {
	l.emit("skipped_tick", levelDebug, fields)
}

// LogMalformedRecord records a record the feed could not parse.
func (l *Logger) LogMalformedRecord(err error, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["error"] = err.Error()
	l.emit("malformed_record", levelWarn, fields)
}

// LogDuplicateID records an ADD rejected for reusing a resting id.
func (l *Logger) LogDuplicateID(id string) {
	l.emit("duplicate_id", levelDebug, map[string]interface{}{"order_id": id})
}

type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

func (l *Logger) emit(event string, level logLevel, fields map[string]interface{}) {
	if err := Validate(event, fields); err != nil {
		fields["schema_error"] = err.Error()
	}
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	switch level {
	case levelDebug:
		l.Debug(event, zapFields...)
	case levelWarn:
		l.Warn(event, zapFields...)
	case levelError:
		l.Error(event, zapFields...)
	default:
		l.Info(event, zapFields...)
	}
}

// Close flushes buffered log entries.
func (l *Logger) Close() error {
	return l.Sync()
}
