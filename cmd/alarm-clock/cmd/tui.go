package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/tui"
)

// tuiCmd runs the interactive terminal clock.
//
//nolint:gochecknoglobals // Cobra commands are package-level by convention.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the alarm clock interactively in the terminal.",
	Long: `Runs the clock in this terminal: a live clock, the pending alarms and a form
to add one. Keys: a add, d delete selected, s stop sound, q quit.

The interface runs its own clock and does not talk to the daemon. Logs go to
log_file from the configuration.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signalContext()
		defer stop()

		return tui.Run(ctx, &tui.Options{ConfigPath: configPath})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(tuiCmd)
}
