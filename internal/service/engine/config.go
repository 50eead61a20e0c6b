package engine

import (
	"fmt"
	"io"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/service/notify"
	"github.com/oshokin/alarm-clock/internal/service/sound"
)

// NewFromConfig builds an engine on the real clock from settings.
// out is where the terminal bell player rings.
func NewFromConfig(cfg *config.Config, out io.Writer) (*Engine, error) {
	player, err := sound.NewPlayer(cfg.Sound.Player, cfg.Sound.Command, out)
	if err != nil {
		return nil, fmt.Errorf("sound player: %w", err)
	}

	notifier := notify.Multi{notify.Log{}}
	if cfg.Notify.Desktop {
		notifier = append(notifier, notify.NewDesktop())
	}

	return New(Options{
		TickInterval: cfg.TickInterval,
		Player:       player,
		Sound: sound.Options{
			FrequencyHz: cfg.Sound.FrequencyHz,
			Duration:    cfg.Sound.Duration,
			Pause:       cfg.Sound.Pause,
			Repetitions: cfg.Sound.Repetitions,
		},
		Notifier: notifier,
	}), nil
}
