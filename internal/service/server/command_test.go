package server

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/repository/pidfile"
)

// TestResolveListenAddress covers override forms and the configured fallback.
func TestResolveListenAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   string
		override string
		want     string
		wantErr  error
	}{
		{name: "config", config: "127.0.0.1:50515", want: "127.0.0.1:50515"},
		{name: "full override", config: "127.0.0.1:50515", override: "0.0.0.0:9090", want: "0.0.0.0:9090"},
		{name: "bare port", config: "127.0.0.1:50515", override: "9090", want: "127.0.0.1:9090"},
		{name: "colon port", config: "localhost:50515", override: ":9090", want: "localhost:9090"},
		{name: "nothing", wantErr: ErrNoListenAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveListenAddress(tt.config, tt.override)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

// TestRun_StartsAndStops runs the daemon on an ephemeral port and cancels it.
func TestRun_StartsAndStops(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	settings := config.Default()
	settings.PIDFile = filepath.Join(dir, "alarm-clock.pid")
	settings.Sound.Player = "none"
	settings.Notify.Desktop = false

	configPath := filepath.Join(dir, "alarm-clock.yaml")
	require.NoError(t, config.Save(configPath, settings))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- Run(ctx, &Options{ConfigPath: configPath, ListenAddress: "127.0.0.1:0"})
	}()

	pid := pidfile.New(settings.PIDFile)

	var rec *pidfile.Record

	require.Eventually(t, func() bool {
		var err error

		rec, err = pid.Load(context.Background())

		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	require.Equal(t, os.Getpid(), rec.PID)
	require.NotEqual(t, "127.0.0.1:0", rec.ListenAddress)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not stop")
	}

	_, err := pid.Load(context.Background())
	require.True(t, errors.Is(err, pidfile.ErrNotFound))
}
