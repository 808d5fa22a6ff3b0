package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger instance
	Logger *SafeLogger
)

// SafeLogger wraps a zap logger and tolerates use before initialization,
// which keeps early startup failures printable.
type SafeLogger struct {
	l *zap.Logger
}

// NewSafeLogger wraps an existing zap logger
func NewSafeLogger(l *zap.Logger) *SafeLogger {
	return &SafeLogger{l: l}
}

// With returns a child logger with the given fields attached
func (s *SafeLogger) With(fields ...zap.Field) *SafeLogger {
	return &SafeLogger{l: s.logger().With(fields...)}
}

// Named returns a named child logger
func (s *SafeLogger) Named(name string) *SafeLogger {
	return &SafeLogger{l: s.logger().Named(name)}
}

func (s *SafeLogger) Debug(msg string, fields ...zap.Field) { s.logger().Debug(msg, fields...) }
func (s *SafeLogger) Info(msg string, fields ...zap.Field)  { s.logger().Info(msg, fields...) }
func (s *SafeLogger) Warn(msg string, fields ...zap.Field)  { s.logger().Warn(msg, fields...) }
func (s *SafeLogger) Error(msg string, fields ...zap.Field) { s.logger().Error(msg, fields...) }
func (s *SafeLogger) Fatal(msg string, fields ...zap.Field) { s.logger().Fatal(msg, fields...) }

func (s *SafeLogger) logger() *zap.Logger {
	if s == nil || s.l == nil {
		return zap.NewNop()
	}
	return s.l
}

// InitLogger initializes the global logger
func InitLogger() error {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Set log level from environment
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(logLevel)); err == nil {
			config.Level = zap.NewAtomicLevelAt(level)
		}
	}

	logger, err := config.Build(
		zap.Fields(
			zap.String("service", "app-directory"),
			zap.String("version", "v1"),
		),
	)
	if err != nil {
		return err
	}

	Logger = NewSafeLogger(logger)
	zap.ReplaceGlobals(logger)

	return nil
}
