package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// global is the shared logger instance used throughout the installer.
	global *zap.SugaredLogger
	// defaultLevel is the minimum level for messages to be processed.
	defaultLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
)

func init() {
	global = New(defaultLevel)
}

// New creates a *zap.SugaredLogger with console output on stderr. Standard
// output is reserved for user-facing progress lines, so diagnostics go to
// the error stream.
func New(level zapcore.LevelEnabler, options ...zap.Option) *zap.SugaredLogger {
	if level == nil {
		level = defaultLevel
	}

	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "message",
		LevelKey:         "level",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalColorLevelEncoder,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: ", ",
	})

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), level)

	return zap.New(core, options...).Sugar()
}

// ParseLevel converts string input to a zap log level.
func ParseLevel(s string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// SetLevel sets the log level for the global logger.
func SetLevel(level zapcore.Level) {
	defaultLevel.SetLevel(level)
}

// Debugf writes a formatted debug level message.
func Debugf(format string, args ...any) {
	global.Debugf(format, args...)
}

// Infof writes a formatted information level message.
func Infof(format string, args ...any) {
	global.Infof(format, args...)
}

// Warnf writes a formatted warning level message.
func Warnf(format string, args ...any) {
	global.Warnf(format, args...)
}

// Errorf writes a formatted error level message.
func Errorf(format string, args ...any) {
	global.Errorf(format, args...)
}
