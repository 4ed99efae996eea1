package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got, s)
	}

	got, ok := ParseLogLevel("verbose")
	require.False(t, ok)
	require.Equal(t, zapcore.InfoLevel, got)
}

// TestContextHelpers checks that named and annotated loggers travel through the context.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)

	ctx := ToContext(context.Background(), zap.New(core).Sugar())
	ctx = WithName(ctx, "installer")
	ctx = WithKV(ctx, "package", "pandas")

	InfoKV(ctx, "Installing package", "attempt", 1)

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "installer", entries[0].LoggerName)
	require.Equal(t, "Installing package", entries[0].Message)

	fields := entries[0].ContextMap()
	require.Equal(t, "pandas", fields["package"])
	require.EqualValues(t, 1, fields["attempt"])
}

// TestFromContextFallsBackToGlobal ensures an empty context yields the global logger.
func TestFromContextFallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}
