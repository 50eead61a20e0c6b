package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/version"
)

// errUnknownLogLevel is returned for an unsupported --log-level value.
var errUnknownLogLevel = errors.New("unknown log level")

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the configured log level when set.
	logLevel string

	// rootCmd is the base command; every feature is a subcommand.
	rootCmd = &cobra.Command{
		Use:   "alarm-clock",
		Short: "Schedule alarms for a time of day and get woken up.",
		Long: `A single-user alarm clock.

Run "alarm-clock serve" to start the daemon, then add, list, remove and stop
alarms from any terminal. "alarm-clock tui" runs the clock interactively in
the terminal without a daemon.

Alarms are one-shot: each fires at the next occurrence of its time of day
and is then removed. Nothing is kept across restarts.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}
)

// Execute runs the alarm-clock CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

// setupLogging applies --log-level, falling back to the configured level.
func setupLogging(_ *cobra.Command, _ []string) error {
	level := logLevel

	if level == "" {
		// The config file may not exist yet; Load then returns defaults.
		settings, err := config.Load(configPath)
		if err != nil {
			return err
		}

		level = settings.LogLevel
	}

	parsed, ok := logger.ParseLogLevel(level)
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, level)
	}

	logger.SetLevel(parsed)

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&logLevel, "log-level", "l", "", "log level (debug, info, warn, error); overrides the config")
}
