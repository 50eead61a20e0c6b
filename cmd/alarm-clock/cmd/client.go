package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/service/client"
)

var (
	// daemonAddress overrides the daemon address found in the PID file.
	daemonAddress string
	// jsonOutput prints protobuf JSON instead of text.
	jsonOutput bool

	// addCmd schedules an alarm.
	addCmd = &cobra.Command{
		Use:   "add HH:MM[:SS] | add HH MM SS",
		Short: "Schedule an alarm for the next occurrence of a time of day.",
		Long: `Schedules an alarm for the next occurrence of the given time of day.

A time that already passed today rings tomorrow. Hours are 0-23, minutes and
seconds 0-59; leading zeros are optional.`,
		Example: "  alarm-clock add 07:30\n  alarm-clock add 7 30 0",
		Args:    cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return client.Add(cmd.Context(), clientOptions(cmd), args)
		},
	}

	// listCmd prints pending alarms.
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List pending alarms.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return client.List(cmd.Context(), clientOptions(cmd))
		},
	}

	// removeCmd deletes an alarm by label.
	removeCmd = &cobra.Command{
		Use:     "remove HH:MM:SS",
		Aliases: []string{"rm"},
		Short:   "Remove the first pending alarm with the given label.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return client.Remove(cmd.Context(), clientOptions(cmd), args[0])
		},
	}

	// stopCmd silences the ringing alarm.
	stopCmd = &cobra.Command{
		Use:   "stop",
		Short: "Stop the alarm that is sounding.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return client.Stop(cmd.Context(), clientOptions(cmd))
		},
	}

	// watchCmd streams daemon events.
	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Print alarm events as they happen.",
		Long: `Prints alarm events (added, removed, fired, expired, sounding_ended) as they
happen. The command reconnects every second while the daemon is unavailable and
runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signalContext()
			defer stop()

			return client.Watch(ctx, clientOptions(cmd))
		},
	}
)

// clientOptions collects the shared client flags.
func clientOptions(cmd *cobra.Command) *client.Options {
	return &client.Options{
		ConfigPath: configPath,
		Address:    daemonAddress,
		JSON:       jsonOutput,
		Out:        cmd.OutOrStdout(),
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	for _, command := range []*cobra.Command{addCmd, listCmd, removeCmd, stopCmd, watchCmd} {
		command.Flags().StringVarP(&daemonAddress, "address", "a", "", "daemon address; defaults to the running daemon's")
		rootCmd.AddCommand(command)
	}

	for _, command := range []*cobra.Command{addCmd, listCmd, watchCmd} {
		command.Flags().BoolVar(&jsonOutput, "json", false, "print protobuf JSON")
	}
}
