package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/5afe/safe-notification-service/config"
)

// Logger is a thin wrapper over a zap sugared logger. The zero value discards
// everything, which keeps tests free from logging setup.
type Logger struct {
	sugar *zap.SugaredLogger
}

func NewLogger(cfg *config.Config) (*Logger, error) {
	var zcfg zap.Config
	if cfg.LoggerMode.Prod {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.LoggerMode.Level))
	zcfg.Development = cfg.LoggerMode.Development

	l, err := zcfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{sugar: l.Sugar()}, nil
}

// Nop returns a logger that discards every entry.
func Nop() Logger {
	return Logger{sugar: zap.NewNop().Sugar()}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l Logger) s() *zap.SugaredLogger {
	if l.sugar == nil {
		return zap.NewNop().Sugar()
	}
	return l.sugar
}

// With returns a child logger carrying the given key/value pairs.
func (l Logger) With(keysAndValues ...any) Logger {
	return Logger{sugar: l.s().With(keysAndValues...)}
}

func (l Logger) Debug(msg string, keysAndValues ...any) {
	l.s().Debugw(msg, keysAndValues...)
}

func (l Logger) Info(msg string, keysAndValues ...any) {
	l.s().Infow(msg, keysAndValues...)
}

func (l Logger) Warn(msg string, keysAndValues ...any) {
	l.s().Warnw(msg, keysAndValues...)
}

func (l Logger) Error(msg string, keysAndValues ...any) {
	l.s().Errorw(msg, keysAndValues...)
}

func (l Logger) Infof(template string, args ...any) {
	l.s().Infof(template, args...)
}

func (l Logger) Warnf(template string, args ...any) {
	l.s().Warnf(template, args...)
}

func (l Logger) Errorf(template string, args ...any) {
	l.s().Errorf(template, args...)
}

func (l Logger) Sync() error {
	return l.s().Sync()
}
