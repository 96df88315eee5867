package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestGetZapLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, getZapLevel(tc.input))
		})
	}
}

func TestInitializeConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Initialize(Config{
		Level:         "info",
		EnableConsole: true,
		Console:       &buf,
	}))
	t.Cleanup(func() { SetGlobalLogger(NewNopLogger()) })

	l := Get()
	l.Debug("hidden debug line")
	l.InfoWithFields("creating cluster foo")
	l.Sync()

	out := buf.String()
	assert.Contains(t, out, "creating cluster foo")
	assert.NotContains(t, out, "hidden debug line")
}

func TestInitializeFileLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "start-cluster.log")
	require.NoError(t, Initialize(Config{
		Level:    "debug",
		FilePath: logPath,
		Format:   "json",
	}))
	t.Cleanup(func() {
		Close()
		SetGlobalLogger(NewNopLogger())
	})

	Get().DebugWithFields("built command", zap.String("cluster", "foo"))
	Get().Sync()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"built command"`)
	assert.Contains(t, string(data), `"cluster":"foo"`)
}

func TestInitializeBadFilePath(t *testing.T) {
	err := Initialize(Config{FilePath: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.Error(t, err)
}

func TestContextRoundTrip(t *testing.T) {
	tl := NewTestLogger(t)
	ctx := IntoContext(context.Background(), tl.Logger)

	FromContext(ctx).Debugf("from %s", "context")
	assert.Equal(t, []string{"from context"}, tl.GetLogs())

	//nolint:staticcheck
	assert.NotNil(t, FromContext(nil))
	assert.NotNil(t, FromContext(context.Background()))
}

func TestWithFieldsKeepsLevelAndFields(t *testing.T) {
	tl := NewTestLogger(t)
	tl.InfoWithFields("created", zap.String("zone", "us-central1-b"))
	tl.WarnWithFields("already exists", zap.String("cluster", "foo"))

	entries := tl.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "us-central1-b", entries[0].ContextMap()["zone"])
	assert.Equal(t, "already exists", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "foo", entries[1].ContextMap()["cluster"])
}
