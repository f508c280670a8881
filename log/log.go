// Package log provides the package-level structured logging facade used
// throughout the agent: a zap.SugaredLogger backed by lumberjack for
// long-running dispatcher processes, or a plain console encoder for
// interactive tools.
package log

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger. agent.Initialize replaces it with
// one built from its log file/level options; defaults to an info-level
// console logger so packages that log before Initialize (tests, for
// example) never hit a nil pointer.
var Logger = CreateLogger(zap.NewAtomicLevelAt(zap.InfoLevel), "")

// ParseLogLevel maps the verbosity option (spec §6.1) onto a zap level.
func ParseLogLevel(s string) (zap.AtomicLevel, error) {
	if s == "" {
		return zap.NewAtomicLevelAt(zap.InfoLevel), nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return zap.NewAtomicLevelAt(lvl), nil
}

// CreateLogger builds a SugaredLogger. When logFile is non-empty, output
// is routed through lumberjack for rotation; otherwise a console encoder
// writes to stderr.
func CreateLogger(level zap.AtomicLevel, logFile string) *zap.SugaredLogger {
	if logFile != "" {
		return CreateLoggerWithLumberjack(logFile, 100, level.Level())
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stderr), level)
	return zap.New(core, zap.AddCaller()).Sugar()
}

// CreateLoggerWithLumberjack wraps a lumberjack.Logger as the zap core's
// write syncer so the dispatcher's log file is size-rotated rather than
// growing without bound.
func CreateLoggerWithLumberjack(path string, maxSizeMB int, level zapcore.Level) *zap.SugaredLogger {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: 5,
		MaxAge:     28,
		Compress:   true,
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(lj), level)
	return zap.New(core, zap.AddCaller()).Sugar()
}

// Errorw logs err at error level, except context.Canceled which is
// expected during shutdown drain and only warrants a warning.
func Errorw(logger *zap.SugaredLogger, msg string, err error, kv ...any) {
	args := append([]any{"error", err}, kv...)
	if errors.Is(err, context.Canceled) {
		logger.Warnw(msg, args...)
		return
	}
	logger.Errorw(msg, args...)
}
