package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":  zapcore.DebugLevel,
		" INFO ": zapcore.InfoLevel,
		"warn":   zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
		"panic":  zapcore.PanicLevel,
		"fatal":  zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("loud")
	require.False(t, ok)
}

// TestContextLogger checks that named loggers travel through the context.
func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := New(zapcore.DebugLevel, zapcore.AddSync(&buf))

	ctx := ToContext(context.Background(), l)
	ctx = WithName(ctx, "engine")
	ctx = WithKV(ctx, "label", "07:00:00")

	InfoKV(ctx, "Alarm fired", "repetitions", 5)

	out := buf.String()
	require.Contains(t, out, "engine")
	require.Contains(t, out, "Alarm fired")
	require.Contains(t, out, "07:00:00")
	require.NotContains(t, out, "\x1b[", "non-terminal sinks must not be colored")

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestFormattedHelpers checks the printf-style helpers and level filtering.
func TestFormattedHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := ToContext(context.Background(), New(zapcore.InfoLevel, zapcore.AddSync(&buf)))

	Debugf(ctx, "Connecting to daemon at %s", "127.0.0.1:1")
	Infof(ctx, "Alarm %s queued behind the sounding one (%d waiting)", "07:00:00", 2)
	Warnf(ctx, "Watch interrupted, retrying: %v", "eof")
	Errorf(ctx, "Unexpected failure while serving request: %v", "boom")

	out := buf.String()
	require.NotContains(t, out, "Connecting to daemon")
	require.Contains(t, out, "Alarm 07:00:00 queued behind the sounding one (2 waiting)")
	require.Contains(t, out, "Watch interrupted, retrying: eof")
	require.Contains(t, out, "Unexpected failure while serving request: boom")
}

// TestFileSyncer ensures the rotating sink creates its file on first write.
func TestFileSyncer(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "alarm-clock.log")
	l := New(zapcore.InfoLevel, FileSyncer(path))

	l.Infow("hello", "k", "v")
	require.NoError(t, l.Sync())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), "hello")
}
