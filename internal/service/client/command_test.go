package client

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/repository/pidfile"
	"github.com/oshokin/alarm-clock/internal/service/engine"
)

// TestParseTimeArgs covers the accepted argument shapes.
func TestParseTimeArgs(t *testing.T) {
	t.Parallel()

	got, err := ParseTimeArgs([]string{"07:05:09"})
	require.NoError(t, err)
	require.Equal(t, alarm.TimeOfDay{Hour: 7, Minute: 5, Second: 9}, got)

	got, err = ParseTimeArgs([]string{"7", "5", "9"})
	require.NoError(t, err)
	require.Equal(t, alarm.TimeOfDay{Hour: 7, Minute: 5, Second: 9}, got)

	got, err = ParseTimeArgs([]string{"23:59"})
	require.NoError(t, err)
	require.Equal(t, alarm.TimeOfDay{Hour: 23, Minute: 59}, got)

	_, err = ParseTimeArgs([]string{"24", "0", "0"})
	require.ErrorIs(t, err, alarm.ErrValidation)

	_, err = ParseTimeArgs([]string{"7", "5"})
	require.ErrorIs(t, err, errTimeArgs)
}

// TestFormatEvent checks the readable event line.
func TestFormatEvent(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 10, 18, 7, 0, 3, 0, time.UTC)

	line := FormatEvent(engine.Event{Kind: engine.EventFired, Entry: alarm.Entry{Label: "07:00:00"}, At: at})
	require.Equal(t, "07:00:03 fired          07:00:00", line)

	line = FormatEvent(engine.Event{
		Kind:    engine.EventSoundingEnded,
		Entry:   alarm.Entry{Label: "07:00:00"},
		At:      at,
		Stopped: true,
	})
	require.Contains(t, line, "(stopped)")
}

// TestPrintEntries renders the list table and the empty case.
func TestPrintEntries(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, printEntries(&buf, nil))
	require.Equal(t, "No alarms\n", buf.String())

	buf.Reset()

	at := time.Date(2026, 10, 19, 7, 0, 0, 0, time.UTC)
	require.NoError(t, printEntries(&buf, []alarm.Entry{{ID: "abc", Label: "07:00:00", ScheduledAt: at}}))
	require.Contains(t, buf.String(), "TIME")
	require.Contains(t, buf.String(), "07:00:00  2026-10-19  abc")
}

// TestResolveAddress covers the override, a live daemon and a missing one.
func TestResolveAddress(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := config.Default()
	cfg.PIDFile = filepath.Join(t.TempDir(), "alarm-clock.pid")

	address, err := resolveAddress(ctx, cfg, "10.0.0.1:1")
	require.NoError(t, err)
	require.Equal(t, "10.0.0.1:1", address)

	_, err = resolveAddress(ctx, cfg, "")
	require.ErrorIs(t, err, ErrDaemonNotRunning)

	pid := pidfile.New(cfg.PIDFile)
	require.NoError(t, pid.Save(ctx, &pidfile.Record{PID: os.Getpid(), ListenAddress: "127.0.0.1:4444"}))

	address, err = resolveAddress(ctx, cfg, "")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:4444", address)

	require.NoError(t, pid.Save(ctx, &pidfile.Record{PID: os.Getpid()}))

	address, err = resolveAddress(ctx, cfg, "")
	require.NoError(t, err)
	require.Equal(t, cfg.ListenAddress, address)
}

// TestCommands_DaemonNotRunning makes every command fail clearly without a daemon.
func TestCommands_DaemonNotRunning(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.PIDFile = filepath.Join(dir, "alarm-clock.pid")

	configPath := filepath.Join(dir, "alarm-clock.yaml")
	require.NoError(t, config.Save(configPath, cfg))

	opts := &Options{ConfigPath: configPath, Out: new(bytes.Buffer)}
	ctx := context.Background()

	require.ErrorIs(t, Add(ctx, opts, []string{"07:00:00"}), ErrDaemonNotRunning)
	require.ErrorIs(t, List(ctx, opts), ErrDaemonNotRunning)
	require.ErrorIs(t, Remove(ctx, opts, "07:00:00"), ErrDaemonNotRunning)
	require.ErrorIs(t, Stop(ctx, opts), ErrDaemonNotRunning)

	// Bad input is rejected before any connection attempt.
	require.ErrorIs(t, Add(ctx, opts, []string{"25:00:00"}), alarm.ErrValidation)
}

// TestWatch_ReturnsOnCancel keeps retrying without a daemon and exits on cancel.
func TestWatch_ReturnsOnCancel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.PIDFile = filepath.Join(dir, "alarm-clock.pid")

	configPath := filepath.Join(dir, "alarm-clock.yaml")
	require.NoError(t, config.Save(configPath, cfg))

	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()

	require.NoError(t, Watch(ctx, &Options{ConfigPath: configPath, Out: new(bytes.Buffer)}))
}
