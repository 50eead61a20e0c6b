package sound

import (
	"bytes"
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
)

// TestNewPlayer maps configuration names to strategies.
func TestNewPlayer(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	cases := map[string]Player{
		"beeep": BeeepPlayer{},
		"bell":  BellPlayer{Out: &out},
		"none":  NopPlayer{},
		" NONE": NopPlayer{},
	}

	for name, want := range cases {
		got, err := NewPlayer(name, nil, &out)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}

	got, err := NewPlayer("command", []string{"true"}, nil)
	require.NoError(t, err)
	require.Equal(t, CommandPlayer{Args: []string{"true"}}, got)

	_, err = NewPlayer("trumpet", nil, nil)
	require.ErrorIs(t, err, ErrUnknownPlayer)
}

// TestPlatformDefault never fails on unknown platforms.
func TestPlatformDefault(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.Equal(t, BeeepPlayer{}, platformDefault("linux", &out))
	require.Equal(t, BeeepPlayer{}, platformDefault("windows", &out))
	require.Equal(t, BellPlayer{Out: &out}, platformDefault("plan9", &out))
	require.Equal(t, NopPlayer{}, platformDefault("plan9", nil))
}

// TestBellPlayer rings once and keeps the beep rhythm.
func TestBellPlayer(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		var out bytes.Buffer

		start := time.Now()
		require.NoError(t, BellPlayer{Out: &out}.Beep(context.Background(), 1000, time.Second))
		require.Equal(t, "\a", out.String())
		require.Equal(t, time.Second, time.Since(start))
	})
}

// TestCommandPlayer_Empty rejects a missing command.
func TestCommandPlayer_Empty(t *testing.T) {
	t.Parallel()

	err := CommandPlayer{}.Beep(context.Background(), 1000, time.Millisecond)
	require.ErrorIs(t, err, errEmptyCommand)
}
