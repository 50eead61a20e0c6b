package sound

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/gen2brain/beeep"
)

// commandGrace is how long an external command may outlive the beep duration.
const commandGrace = 5 * time.Second

// errEmptyCommand is returned when the command player has nothing to run.
var errEmptyCommand = errors.New("empty sound command")

// Player produces a single beep.
type Player interface {
	Beep(ctx context.Context, frequencyHz float64, duration time.Duration) error
}

// BeeepPlayer plays a tone through the platform audio API.
type BeeepPlayer struct{}

// Beep plays a tone and blocks for its duration.
func (BeeepPlayer) Beep(_ context.Context, frequencyHz float64, duration time.Duration) error {
	if err := beeep.Beep(frequencyHz, int(duration.Milliseconds())); err != nil {
		return fmt.Errorf("beep: %w", err)
	}

	return nil
}

// BellPlayer rings the terminal bell. It waits for the beep duration so the
// sequence keeps the same rhythm as a real tone.
type BellPlayer struct {
	// Out is where the bell character is written.
	Out io.Writer
}

// Beep writes BEL and waits for duration or cancellation.
func (p BellPlayer) Beep(ctx context.Context, _ float64, duration time.Duration) error {
	if _, err := io.WriteString(p.Out, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}

	sleep(ctx, duration)

	return nil
}

// CommandPlayer runs an external program per beep, e.g. ["paplay", "alarm.oga"].
type CommandPlayer struct {
	// Args is the program followed by its arguments.
	Args []string
}

// Beep runs the command and waits for it to exit.
func (p CommandPlayer) Beep(ctx context.Context, _ float64, duration time.Duration) error {
	if len(p.Args) == 0 {
		return errEmptyCommand
	}

	cmdCtx, cancel := context.WithTimeout(ctx, duration+commandGrace)
	defer cancel()

	//nolint:gosec // The command comes from the user's own configuration file.
	if err := exec.CommandContext(cmdCtx, p.Args[0], p.Args[1:]...).Run(); err != nil {
		return fmt.Errorf("run %s: %w", p.Args[0], err)
	}

	return nil
}

// NopPlayer is silent.
type NopPlayer struct{}

// Beep does nothing.
func (NopPlayer) Beep(context.Context, float64, time.Duration) error { return nil }

// sleep waits for d and reports false if ctx was canceled first.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
