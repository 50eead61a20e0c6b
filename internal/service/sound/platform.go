package sound

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
)

// ErrUnknownPlayer indicates an unsupported player name.
var ErrUnknownPlayer = errors.New("unknown sound player")

// NewPlayer returns the player strategy for name.
//
// "auto" picks the native tone on linux, macOS and windows and falls back to
// the terminal bell elsewhere, so an unsupported platform never fails hard.
//
//nolint:ireturn // Strategy selection returns the interface by design of the caller.
func NewPlayer(name string, command []string, out io.Writer) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return platformDefault(runtime.GOOS, out), nil
	case "beeep":
		return BeeepPlayer{}, nil
	case "bell":
		return BellPlayer{Out: out}, nil
	case "command":
		return CommandPlayer{Args: command}, nil
	case "none":
		return NopPlayer{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, name)
	}
}

// platformDefault chooses a player for the given GOOS.
//
//nolint:ireturn // See NewPlayer.
func platformDefault(goos string, out io.Writer) Player {
	switch strings.ToLower(goos) {
	case "linux", "darwin", "windows":
		return BeeepPlayer{}
	default:
		if out == nil {
			return NopPlayer{}
		}

		return BellPlayer{Out: out}
	}
}
