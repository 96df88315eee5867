package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LogFilePermissions = 0600
	InfoLogLevel       = "info"
	DebugLogLevel      = "debug"
	LoggerName         = "start-cluster"
)

var (
	globalLogger *zap.Logger
	loggerMutex  sync.RWMutex

	GlobalLogFile *os.File
)

// Logger wraps a zap logger with the printf-style helpers used across the repo.
type Logger struct {
	*zap.Logger
}

func (l *Logger) log(level zapcore.Level, msg string, fields ...zap.Field) {
	if l.Logger == nil {
		return
	}
	if ce := l.Logger.Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}

func (l *Logger) Debug(msg string) { l.log(zapcore.DebugLevel, msg) }

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Debug(fmt.Sprintf(format, args...))
}

// Field logging methods
func (l *Logger) DebugWithFields(msg string, fields ...zap.Field) {
	l.log(zapcore.DebugLevel, msg, fields...)
}

func (l *Logger) InfoWithFields(msg string, fields ...zap.Field) {
	l.log(zapcore.InfoLevel, msg, fields...)
}

func (l *Logger) WarnWithFields(msg string, fields ...zap.Field) {
	l.log(zapcore.WarnLevel, msg, fields...)
}

func (l *Logger) ErrorWithFields(msg string, fields ...zap.Field) {
	l.log(zapcore.ErrorLevel, msg, fields...)
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func (l *Logger) Sync() {
	if l.Logger != nil {
		_ = l.Logger.Sync()
	}
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(fmt.Sprintf("[%s]", t.Format("2006-01-02 15:04:05")))
}

func getZapLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Get returns the global logger, falling back to a warn-level console
// logger when Initialize has not been called yet.
func Get() *Logger {
	loggerMutex.RLock()
	if globalLogger != nil {
		defer loggerMutex.RUnlock()
		return &Logger{Logger: globalLogger}
	}
	loggerMutex.RUnlock()

	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	if globalLogger == nil {
		globalLogger = zap.New(
			newConsoleCore(zap.NewAtomicLevelAt(zapcore.WarnLevel), os.Stderr),
		).Named(LoggerName)
	}
	return &Logger{Logger: globalLogger}
}

func SetGlobalLogger(l *Logger) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	globalLogger = l.Logger
}

func NewNopLogger() *Logger {
	return &Logger{Logger: zap.NewNop()}
}
