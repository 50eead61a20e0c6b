package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaults and format validations for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Empty config gets every default.
	settings := new(Config)
	require.NoError(t, Validate(settings))
	require.Equal(t, DefaultListenAddress, settings.ListenAddress)
	require.Equal(t, DefaultTimeout, settings.Timeout)
	require.Equal(t, DefaultTickInterval, settings.TickInterval)
	require.Equal(t, DefaultRepetitions, settings.Sound.Repetitions)
	require.Equal(t, DefaultPause, settings.Sound.Pause)
	require.InDelta(t, DefaultFrequencyHz, settings.Sound.FrequencyHz, 0)
	require.Equal(t, "auto", settings.Sound.Player)

	// Bad socket.
	require.Error(t, Validate(&Config{ListenAddress: "bad:address"}))

	// Unknown player.
	require.ErrorIs(t, Validate(&Config{Sound: Sound{Player: "trumpet"}}), errUnknownPlayer)

	// Command player without a command.
	require.ErrorIs(t, Validate(&Config{Sound: Sound{Player: "command"}}), errCommandRequired)

	// Inaudible frequency.
	require.ErrorIs(t, Validate(&Config{Sound: Sound{FrequencyHz: 5}}), errOutOfRange)

	// Ticks slower than the matching granularity.
	require.ErrorIs(t, Validate(&Config{TickInterval: 2 * time.Second}), errOutOfRange)

	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)
}

// TestLoad_MissingFileYieldsDefaults ensures a fresh install works without a config file.
func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultListenAddress, cfg.ListenAddress)
	require.True(t, cfg.Notify.Desktop)
}

// TestLoad_PartialFile keeps defaults for omitted fields and parses durations.
func TestLoad_PartialFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	contents := []byte("listen_addr: 127.0.0.1:6000\nsound:\n  pause: 250ms\n  repetitions: 3\nnotify:\n  desktop: false\n")
	require.NoError(t, os.WriteFile(path, contents, DefaultFilePermissions))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:6000", cfg.ListenAddress)
	require.Equal(t, 250*time.Millisecond, cfg.Sound.Pause)
	require.Equal(t, 3, cfg.Sound.Repetitions)
	require.Equal(t, DefaultBeepDuration, cfg.Sound.Duration)
	require.False(t, cfg.Notify.Desktop)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	settings := &Config{
		ListenAddress: "127.0.0.1:50999",
		Sound: Sound{
			Player:  "command",
			Command: []string{"paplay", "/usr/share/sounds/alarm.oga"},
		},
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings.ListenAddress, loaded.ListenAddress)
	require.Equal(t, settings.Sound.Command, loaded.Sound.Command)
	require.Equal(t, settings.Sound.Duration, loaded.Sound.Duration)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.ErrorIs(t, Save(path, nil), errConfigIsNotSet)
}
