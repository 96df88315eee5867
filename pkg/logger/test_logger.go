package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// TestLogger writes to the test output and keeps every entry for assertions.
type TestLogger struct {
	*Logger
	observed *observer.ObservedLogs
}

// NewTestLogger creates a debug-level logger bound to tb.
func NewTestLogger(tb zaptest.TestingT) *TestLogger {
	observedCore, observed := observer.New(zapcore.DebugLevel)
	testCore := zaptest.NewLogger(tb, zaptest.Level(zapcore.DebugLevel)).Core()

	return &TestLogger{
		Logger: &Logger{
			Logger: zap.New(zapcore.NewTee(testCore, observedCore)).Named(LoggerName),
		},
		observed: observed,
	}
}

// GetLogs returns the captured messages in order.
func (tl *TestLogger) GetLogs() []string {
	entries := tl.observed.All()
	logs := make([]string, 0, len(entries))
	for _, e := range entries {
		logs = append(logs, e.Message)
	}
	return logs
}

// Entries exposes the captured entries with their levels and fields.
func (tl *TestLogger) Entries() []observer.LoggedEntry {
	return tl.observed.All()
}
