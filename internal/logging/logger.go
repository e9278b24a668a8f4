package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin key/value wrapper over a zap sugared logger.
type Logger struct {
	SugaredLogger *zap.SugaredLogger
	level         *zap.AtomicLevel
	base          zapcore.Level
}

// New builds a logger. "prod"/"production" gives JSON output at info level;
// anything else gives console output at warn level, which keeps terminal
// commands quiet. verbose lowers either to debug.
func New(mode string, verbose bool) (*Logger, error) {
	var cfg zap.Config
	base := zapcore.InfoLevel
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		base = zapcore.WarnLevel
		cfg.Level = zap.NewAtomicLevelAt(base)
		cfg.DisableStacktrace = true
	}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: zapLogger.Sugar(), level: &cfg.Level, base: base}, nil
}

// SetVerbose switches a logger built by New between debug and its mode's level.
// It is a no-op for loggers from Nop or FromZap.
func (l *Logger) SetVerbose(verbose bool) {
	if l.level == nil {
		return
	}
	if verbose {
		l.level.SetLevel(zapcore.DebugLevel)
	} else {
		l.level.SetLevel(l.base)
	}
}

// EnableInfo lowers a quieter logger to info level. serve calls it so
// request logs show in console mode too.
func (l *Logger) EnableInfo() {
	if l.level == nil || l.level.Level() <= zapcore.InfoLevel {
		return
	}
	l.level.SetLevel(zapcore.InfoLevel)
	l.base = zapcore.InfoLevel
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// FromZap wraps an existing zap logger, e.g. an observer core in tests.
func FromZap(l *zap.Logger) *Logger {
	return &Logger{SugaredLogger: l.Sugar()}
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Debugw(msg, keysAndValues...)
}
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Infow(msg, keysAndValues...)
}
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Warnw(msg, keysAndValues...)
}
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Errorw(msg, keysAndValues...)
}
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(keysAndValues...), level: l.level, base: l.base}
}
