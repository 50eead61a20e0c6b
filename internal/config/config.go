package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the daemon, the terminal UI and the CLI.
type Config struct {
	// ListenAddress is the gRPC address the daemon listens on and clients dial.
	ListenAddress string `yaml:"listen_addr"`
	// Timeout is the duration for individual RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// TickInterval is the clock ticker cadence.
	TickInterval time.Duration `yaml:"tick_interval"`
	// PIDFile records the running daemon's process ID.
	PIDFile string `yaml:"pid_file"`
	// LogLevel is the minimum level written to the log.
	LogLevel string `yaml:"log_level"`
	// LogFile receives logs while the terminal UI owns the screen.
	LogFile string `yaml:"log_file"`
	// Sound configures the audible alert.
	Sound Sound `yaml:"sound"`
	// Notify configures the visible notification.
	Notify Notify `yaml:"notify"`
}

// Sound configures the repeating audible alert.
type Sound struct {
	// Player selects the strategy: auto, beeep, bell, command or none.
	Player string `yaml:"player"`
	// Command is the program and arguments run per beep by the command player.
	Command []string `yaml:"command,omitempty"`
	// FrequencyHz is the tone frequency.
	FrequencyHz float64 `yaml:"frequency_hz"`
	// Duration is the length of one beep.
	Duration time.Duration `yaml:"duration"`
	// Pause is the silence between beeps.
	Pause time.Duration `yaml:"pause"`
	// Repetitions is how many beeps one alarm plays unless stopped.
	Repetitions int `yaml:"repetitions"`
}

// Notify configures visible notifications.
type Notify struct {
	// Desktop enables native desktop notifications.
	Desktop bool `yaml:"desktop"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "alarm-clock.yaml"

	// DefaultListenAddress is the loopback address the daemon binds to.
	DefaultListenAddress = "127.0.0.1:50515"

	// DefaultPIDFilename is the default filename of the daemon PID file.
	DefaultPIDFilename = "alarm-clock.pid"

	// DefaultLogFilename is where the terminal UI writes its logs.
	DefaultLogFilename = "alarm-clock.log"

	// DefaultTimeout is the default duration for RPC calls.
	DefaultTimeout = 5 * time.Second

	// DefaultTickInterval is the clock cadence.
	DefaultTickInterval = time.Second

	// DefaultFrequencyHz, DefaultBeepDuration, DefaultPause and DefaultRepetitions
	// describe the default alarm sound: five 1 kHz beeps half a second apart.
	DefaultFrequencyHz   = 1000.0
	DefaultBeepDuration  = time.Second
	DefaultPause         = 500 * time.Millisecond
	DefaultRepetitions   = 5
	DefaultPlayer        = "auto"
	DefaultLogLevel      = "info"
	minFrequencyHz       = 37.0
	maxFrequencyHz       = 32767.0
	maxRepetitions       = 100

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// Players lists the accepted sound player names.
//
//nolint:gochecknoglobals // Read-only lookup table.
var Players = []string{"auto", "beeep", "bell", "command", "none"}

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownPlayer is returned for an unsupported sound player name.
	errUnknownPlayer = errors.New("unknown sound player")
	// errCommandRequired is returned when the command player has nothing to run.
	errCommandRequired = errors.New("sound command must be provided for the command player")
	// errOutOfRange is returned for numeric settings outside their bounds.
	errOutOfRange = errors.New("value out of range")
)

// Default returns a configuration with every field set to its default.
func Default() *Config {
	cfg := &Config{
		Notify: Notify{Desktop: true},
	}

	// Defaults are applied by Validate; it cannot fail on an empty config.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
// A missing file is not an error: defaults are returned instead.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills in defaults and checks the provided settings.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.ListenAddress == "" {
		settings.ListenAddress = DefaultListenAddress
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ListenAddress); err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.TickInterval <= 0 {
		settings.TickInterval = DefaultTickInterval
	}

	// Matching happens on whole seconds; slower ticks would skip alarms.
	if settings.TickInterval > time.Second {
		return fmt.Errorf("tick interval %s must not exceed 1s: %w", settings.TickInterval, errOutOfRange)
	}

	if settings.PIDFile == "" {
		settings.PIDFile = DefaultPIDFilename
	}

	if settings.LogFile == "" {
		settings.LogFile = DefaultLogFilename
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	return validateSound(&settings.Sound)
}

// validateSound fills in sound defaults and checks bounds.
func validateSound(sound *Sound) error {
	if sound.Player == "" {
		sound.Player = DefaultPlayer
	}

	if !slices.Contains(Players, sound.Player) {
		return fmt.Errorf("%w: %q", errUnknownPlayer, sound.Player)
	}

	if sound.Player == "command" && len(sound.Command) == 0 {
		return errCommandRequired
	}

	if sound.FrequencyHz == 0 {
		sound.FrequencyHz = DefaultFrequencyHz
	}

	if sound.FrequencyHz < minFrequencyHz || sound.FrequencyHz > maxFrequencyHz {
		return fmt.Errorf("frequency %.0f Hz: %w", sound.FrequencyHz, errOutOfRange)
	}

	if sound.Duration <= 0 {
		sound.Duration = DefaultBeepDuration
	}

	if sound.Pause <= 0 {
		sound.Pause = DefaultPause
	}

	if sound.Repetitions == 0 {
		sound.Repetitions = DefaultRepetitions
	}

	if sound.Repetitions < 0 || sound.Repetitions > maxRepetitions {
		return fmt.Errorf("repetitions %d: %w", sound.Repetitions, errOutOfRange)
	}

	return nil
}
