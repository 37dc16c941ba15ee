// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/phrazzld/vocaexam/internal/config"
	"github.com/phrazzld/vocaexam/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestSetupWithWriterLevels(t *testing.T) {
	restoreDefault(t)

	testCases := []struct {
		level       string
		debugLogged bool
		infoLogged  bool
		warnLogged  bool
	}{
		{level: "debug", debugLogged: true, infoLogged: true, warnLogged: true},
		{level: "INFO", debugLogged: false, infoLogged: true, warnLogged: true},
		{level: "warn", debugLogged: false, infoLogged: false, warnLogged: true},
		{level: "error", debugLogged: false, infoLogged: false, warnLogged: false},
		{level: "bogus", debugLogged: false, infoLogged: true, warnLogged: true},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			buf := &logger.TestLogBuffer{}
			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tc.level}, buf)
			require.NoError(t, err)
			require.NotNil(t, l)

			l.Debug("debug message")
			l.Info("info message")
			l.Warn("warn message")

			out := buf.String()
			assert.Equal(t, tc.debugLogged, strings.Contains(out, "debug message"))
			assert.Equal(t, tc.infoLogged, strings.Contains(out, "info message"))
			assert.Equal(t, tc.warnLogged, strings.Contains(out, "warn message"))
		})
	}
}

func TestSetupSetsDefaultJSONLogger(t *testing.T) {
	restoreDefault(t)

	buf := &logger.TestLogBuffer{}
	_, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "info"}, buf)
	require.NoError(t, err)

	slog.Info("through default", "component", "test")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "through default", entries[0]["msg"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "test", entries[0]["component"])
}

func TestSetupWritesToStdout(t *testing.T) {
	restoreDefault(t)

	l, err := logger.Setup(config.ServerConfig{LogLevel: "error"})
	require.NoError(t, err)
	assert.NotNil(t, l)
	assert.NotNil(t, os.Stdout)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, ok := logger.ParseLevel(" Warn ")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, level)

	level, ok = logger.ParseLevel("fatal")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	buf := &logger.TestLogBuffer{}
	base := slog.New(slog.NewJSONHandler(buf, nil)).With("trace_id", "abc")
	fallback := slog.New(slog.NewJSONHandler(&logger.TestLogBuffer{}, nil))

	ctx := logger.WithLogger(context.Background(), base)
	assert.Same(t, base, logger.FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.NotNil(t, logger.FromContext(context.Background()))

	logger.FromContext(ctx).Info("scoped")
	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "abc", entries[0]["trace_id"])
}
