// Package log provides structured logger used across the module.
package log

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface accepted by the components.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Warning(args ...interface{})
	Warningf(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	With(args ...interface{}) Logger
	Sync() error
}

// DefaultLogger writes nothing and can be used when logger is not provided.
var DefaultLogger Logger = &zapLogger{sugar: zap.NewNop().Sugar()}

var levels = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"fatal": zapcore.FatalLevel,
}

// ParseLevel converts level name to zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	lvl, exist := levels[strings.ToLower(level)]
	if !exist {
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
	return lvl, nil
}

// NewDefaultProductionLogger returns json logger with info level.
func NewDefaultProductionLogger() (Logger, error) {
	return NewLogger("info", false)
}

// NewLogger returns a logger with the level.
// If development is true, human readable console encoding is used.
func NewLogger(level string, development bool) (Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	if development {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &zapLogger{sugar: logger.Sugar()}, nil
}

// NewFromZap wraps existing zap logger.
func NewFromZap(logger *zap.Logger) Logger {
	return &zapLogger{sugar: logger.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

func (l *zapLogger) Debug(args ...interface{}) {
	l.sugar.Debug(args...)
}

func (l *zapLogger) Debugf(template string, args ...interface{}) {
	l.sugar.Debugf(template, args...)
}

func (l *zapLogger) Info(args ...interface{}) {
	l.sugar.Info(args...)
}

func (l *zapLogger) Infof(template string, args ...interface{}) {
	l.sugar.Infof(template, args...)
}

func (l *zapLogger) Warning(args ...interface{}) {
	l.sugar.Warn(args...)
}

func (l *zapLogger) Warningf(template string, args ...interface{}) {
	l.sugar.Warnf(template, args...)
}

func (l *zapLogger) Error(args ...interface{}) {
	l.sugar.Error(args...)
}

func (l *zapLogger) Errorf(template string, args ...interface{}) {
	l.sugar.Errorf(template, args...)
}

// With adds key value pairs to the context of the returned logger.
func (l *zapLogger) With(args ...interface{}) Logger {
	return &zapLogger{sugar: l.sugar.With(args...)}
}

func (l *zapLogger) Sync() error {
	return l.sugar.Sync()
}
